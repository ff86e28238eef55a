package api

import (
	"github.com/chainsight/site-api/internal/api/handlers"
	"github.com/chainsight/site-api/internal/api/middleware"
	"github.com/chainsight/site-api/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Server struct {
	Config *config.Config
	Router *gin.Engine
}

func NewServer(cfg *config.Config, h *handlers.Handler, counter middleware.DailyCounter, httpMetrics gin.HandlerFunc, logger *zap.Logger) *Server {
	gin.SetMode(cfg.Server.Mode)
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
	if httpMetrics != nil {
		router.Use(httpMetrics)
	}

	server := &Server{
		Config: cfg,
		Router: router,
	}

	server.setupRoutes(h, counter, logger)
	return server
}

func (s *Server) setupRoutes(h *handlers.Handler, counter middleware.DailyCounter, logger *zap.Logger) {
	// Health and metrics
	s.Router.GET("/health", h.Health)
	s.Router.GET("/ready", h.Ready)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := s.Router.Group("/api/v1")

	api.GET("/rate-limit", h.RateLimit)
	api.POST("/chat", h.Chat)

	// Public form endpoints are throttled per client IP.
	forms := api.Group("")
	forms.Use(middleware.Throttle(s.Config.Limits.RequestsPerMinute))
	{
		forms.POST("/waitlist", h.JoinWaitlist)
		forms.POST("/demo", h.BookDemo)
		forms.POST("/contact", h.Contact)
		forms.POST("/contracts",
			middleware.DailyUploadQuota(counter, s.Config.Limits.ContractsPerDay, logger),
			h.UploadContracts,
		)
	}
}
