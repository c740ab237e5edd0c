package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"github.com/iamnithishraja/cavens-sub001/internal/analytics"
	"github.com/iamnithishraja/cavens-sub001/internal/api"
	"github.com/iamnithishraja/cavens-sub001/internal/auth"
	"github.com/iamnithishraja/cavens-sub001/internal/config"
	"github.com/iamnithishraja/cavens-sub001/internal/database"
	"github.com/iamnithishraja/cavens-sub001/internal/logging"
	"github.com/iamnithishraja/cavens-sub001/internal/metrics"
	"github.com/iamnithishraja/cavens-sub001/internal/ranking"
	"github.com/iamnithishraja/cavens-sub001/internal/recommendation"
	"github.com/iamnithishraja/cavens-sub001/internal/server"
	"log/slog"
)

func main() {
	// Optional .env for local development; real deployments set env vars.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		slog.New(slog.NewJSONHandler(os.Stdout, nil)).Error("failed to init logger", "error", err)
		os.Exit(1)
	}

	logger.Info("starting cavens core")

	logger.Info("connecting to database")
	db, err := database.Connect(context.Background(), cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	logger.Info("database connected")

	// Run pending migrations (non-fatal to allow app to start even if migrations fail)
	if err := database.RunMigrations(db, "./migrations", logger); err != nil {
		logger.Warn("failed to run migrations, continuing anyway", "error", err)
	}

	// Repositories
	clubRepo := database.NewClubRepository(db)
	orderRepo := database.NewOrderRepository(db)
	analyticsRepo := database.NewAnalyticsRepository(db)

	// Metrics
	collector, err := metrics.NewHTTPCollector()
	if err != nil {
		logger.Error("failed to create metrics collector", "error", err)
		os.Exit(1)
	}
	engineCollector, err := metrics.NewEngineCollector(collector.Registry())
	if err != nil {
		logger.Error("failed to create engine metrics", "error", err)
		os.Exit(1)
	}

	// Engines
	ranker := ranking.NewEngine(clubRepo, orderRepo, logger.With("service", "ranking"), engineCollector)
	recommender := recommendation.NewEngine(cfg.OpenAI, logger.With("service", "recommendation"), engineCollector)
	snapshots := analytics.NewBuilder(analyticsRepo, logger.With("service", "analytics"))

	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, recommendations will use the rule-based fallback only")
	}

	authConfig := auth.LoadConfigFromEnv()

	mux := http.NewServeMux()
	api.SetupRoutes(mux, ranker, recommender, snapshots, db, authConfig, logger)
	mux.Handle("/metrics", collector.Handler())

	handler := api.RequestIDMiddleware(logger)(collector.InstrumentHandler(mux))

	srv := server.New(cfg.Server, logger, handler)

	go func() {
		if err := srv.Start(); err != nil {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	logger.Info("cavens core started successfully")
	logger.Info("API available", "url", fmt.Sprintf("http://localhost:%s", cfg.Server.Port))

	waitForSignal(logger)

	logger.Info("shutting down")
	if err := srv.Shutdown(context.Background()); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}

func waitForSignal(logger *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	sig := <-c
	logger.Info("received signal", "signal", sig.String())
	signal.Stop(c)
	close(c)
}
