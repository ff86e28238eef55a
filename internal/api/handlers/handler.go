package handlers

import (
	"context"

	"github.com/chainsight/site-api/internal/analysis"
	"github.com/chainsight/site-api/internal/chat"
	"github.com/chainsight/site-api/internal/config"
	"github.com/chainsight/site-api/internal/db"
	"github.com/chainsight/site-api/internal/metrics"
	"github.com/chainsight/site-api/internal/waitlist"
	"go.uber.org/zap"
)

// BatchSubmitter runs the gated sequential upload pipeline.
type BatchSubmitter interface {
	Submit(ctx context.Context, batch analysis.UploadBatch) ([]*analysis.AnalysisResult, error)
}

// QuotaProber reads the remaining daily quota from the analysis service.
type QuotaProber interface {
	CheckRateLimit(ctx context.Context) *analysis.RateLimitStatus
}

// ChatRelay forwards messages to the conversational service.
type ChatRelay interface {
	Initialize(ctx context.Context) chat.Reply
	Send(ctx context.Context, message string) chat.Reply
}

type Handler struct {
	repo         *db.Repository
	waitlist     *waitlist.Service
	orchestrator BatchSubmitter
	prober       QuotaProber
	relay        ChatRelay
	metrics      *metrics.Collector
	limits       config.LimitsConfig
	logger       *zap.Logger
}

func NewHandler(
	repo *db.Repository,
	waitlistSvc *waitlist.Service,
	orchestrator BatchSubmitter,
	prober QuotaProber,
	relay ChatRelay,
	collector *metrics.Collector,
	limits config.LimitsConfig,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		repo:         repo,
		waitlist:     waitlistSvc,
		orchestrator: orchestrator,
		prober:       prober,
		relay:        relay,
		metrics:      collector,
		limits:       limits,
		logger:       logger,
	}
}
