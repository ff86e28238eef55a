package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chainsight/site-api/internal/analysis"
	"github.com/chainsight/site-api/internal/api"
	"github.com/chainsight/site-api/internal/api/handlers"
	"github.com/chainsight/site-api/internal/api/middleware"
	"github.com/chainsight/site-api/internal/chat"
	"github.com/chainsight/site-api/internal/config"
	"github.com/chainsight/site-api/internal/db"
	"github.com/chainsight/site-api/internal/mailer"
	"github.com/chainsight/site-api/internal/metrics"
	redisstore "github.com/chainsight/site-api/internal/storage/redis"
	"github.com/chainsight/site-api/internal/waitlist"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger := newLogger(cfg.Server.Mode)
	defer logger.Sync()

	// Database
	dbConn, err := db.NewConnection(cfg.Database.URL, cfg.Database.MaxConnections, cfg.Database.MaxIdleConns)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer dbConn.Close()

	if err := runMigrations(cfg); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	repo := db.NewRepository(dbConn)

	// Redis-backed daily submission counter (optional)
	var counter middleware.DailyCounter
	if cfg.Redis.URL != "" {
		redisClient := redisstore.NewClient(cfg.Redis.URL)
		defer redisClient.Close()
		counter = redisClient
	}

	// Confirmation email sender
	var sender mailer.Sender = mailer.NewLogSender(logger)
	if cfg.Email.Enabled {
		sesSender, err := mailer.NewSESSender(context.Background(), &cfg.Email)
		if err != nil {
			logger.Fatal("Failed to initialize SES sender", zap.Error(err))
		}
		sender = sesSender
	}

	// Services
	collector := metrics.NewCollector()
	analysisClient := analysis.NewClient(&cfg.Analysis, logger)
	orchestrator := analysis.NewOrchestrator(analysisClient, logger)
	relay := chat.NewRelay(&cfg.Chat, logger)
	waitlistSvc := waitlist.NewService(repo, sender, logger, collector)

	h := handlers.NewHandler(repo, waitlistSvc, orchestrator, analysisClient, relay, collector, cfg.Limits, logger)
	server := api.NewServer(cfg, h, counter, collector.HTTPMetrics(), logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: server.Router,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	logger.Info("API server started", zap.String("port", cfg.Server.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(mode string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if mode == "release" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	return logger
}

func runMigrations(cfg *config.Config) error {
	m, err := migrate.New("file://"+cfg.Database.MigrationsPath, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}
