package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/chainsight/site-api/internal/config"
	"go.uber.org/zap"
)

// Fallback replies shown when the conversational service is unreachable
// or returns nothing usable. The relay never surfaces an error to its
// caller.
const (
	FallbackConnectError = "Sorry, there was an error connecting to the chat service."
	FallbackEmptyReply   = "Sorry, I could not process your request."
)

type request struct {
	Message string `json:"message"`
	NewChat bool   `json:"new_chat"`
}

// Reply is the conversational service's response envelope.
type Reply struct {
	Response string `json:"response"`
	Status   string `json:"status"`
}

// Relay forwards messages to the external conversational endpoint. Each
// call is stateless; the new_chat flag is the only conversation marker
// sent, and any session continuity is the external service's concern.
type Relay struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewRelay(cfg *config.ChatConfig, logger *zap.Logger) *Relay {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Relay{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Initialize opens a new conversation and returns the first bot message.
func (r *Relay) Initialize(ctx context.Context) Reply {
	return r.post(ctx, "", true)
}

// Send forwards a user message in an ongoing conversation.
func (r *Relay) Send(ctx context.Context, message string) Reply {
	return r.post(ctx, message, false)
}

func (r *Relay) post(ctx context.Context, message string, newChat bool) Reply {
	payload, err := json.Marshal(request{Message: message, NewChat: newChat})
	if err != nil {
		r.logger.Error("failed to marshal chat request", zap.Error(err))
		return Reply{Response: FallbackConnectError, Status: "error"}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/chat", bytes.NewReader(payload))
	if err != nil {
		r.logger.Error("failed to build chat request", zap.Error(err))
		return Reply{Response: FallbackConnectError, Status: "error"}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("chat service unreachable", zap.Error(err))
		return Reply{Response: FallbackConnectError, Status: "error"}
	}
	defer resp.Body.Close()

	var reply Reply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		r.logger.Warn("failed to decode chat response", zap.Error(err))
		return Reply{Response: FallbackConnectError, Status: "error"}
	}

	if reply.Response == "" {
		reply.Response = FallbackEmptyReply
	}
	if reply.Status == "" {
		reply.Status = "ok"
	}

	return reply
}
