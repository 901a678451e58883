package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/pulseboard/data-ingestor/internal/api"
	"github.com/pulseboard/data-ingestor/internal/config"
	"github.com/pulseboard/data-ingestor/internal/loaders"
	"github.com/pulseboard/data-ingestor/internal/utils"
	"go.uber.org/zap"
)

func main() {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	// Zlog is still a no-op here, so bootstrap failures go to stderr.
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := utils.InitLogger(cfg.LogLevel, cfg.Debug); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = utils.Zlog.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := loaders.NewMongoClient(ctx, cfg)
	if err != nil {
		utils.Zlog.Fatal("Failed to connect to MongoDB", zap.Error(err))
	}

	router := api.NewRouter(db, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		utils.Zlog.Info("Server listening",
			zap.String("port", cfg.Port),
			zap.String("environment", cfg.Environment),
			zap.String("service", cfg.ServiceName))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.Zlog.Fatal("Server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	utils.Zlog.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Zlog.Error("Forced shutdown", zap.Error(err))
	}
	if err := db.Close(shutdownCtx); err != nil {
		utils.Zlog.Error("Failed to close MongoDB client", zap.Error(err))
	}

	utils.Zlog.Info("Server stopped")
}
