package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielmriley/aigent-sub002/internal/api"
	"github.com/danielmriley/aigent-sub002/internal/config"
	"github.com/danielmriley/aigent-sub002/internal/embedcache"
	"github.com/danielmriley/aigent-sub002/internal/eventlog"
	"github.com/danielmriley/aigent-sub002/internal/service"
	"github.com/danielmriley/aigent-sub002/internal/vault"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := config.Load(); err != nil {
		panic(err)
	}

	logger := newLogger(config.LogLevel())
	defer func() { _ = logger.Sync() }()

	log := eventlog.New(config.EventLogPath())

	mgr, err := service.NewManager(log, logger)
	if err != nil {
		logger.Fatal("failed to load memory", zap.Error(err))
	}

	if vaultDir := config.VaultDir(); vaultDir != "" {
		projector := vault.NewProjector(vaultDir, config.VaultTierLimit(), logger)
		mgr.SetProjector(projector)
		logger.Info("vault projection enabled", zap.String("root", projector.Root()))
	} else {
		logger.Info("vault projection disabled",
			zap.String("event_log", config.EventLogPath()))
	}

	if cachePath := config.EmbedCachePath(); cachePath != "" {
		cache, err := embedcache.Open(cachePath)
		if err != nil {
			logger.Fatal("failed to open embedding cache", zap.Error(err))
		}
		defer func() { _ = cache.Close() }()
		mgr.SetEmbedder(cache, nil)
		logger.Info("embedding cache enabled", zap.String("path", cachePath))
	}

	ctx := context.Background()

	seeded, err := mgr.SeedConstitution(ctx, config.BotName(), config.UserName())
	if err != nil {
		logger.Fatal("failed to seed constitution", zap.Error(err))
	}
	if seeded > 0 {
		logger.Info("constitution seeded", zap.Int("entries", seeded))
	}

	app := api.NewApp(mgr, logger)

	addr := config.ServerAddr()
	srv := &http.Server{
		Addr:    addr,
		Handler: app.Router,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.Info("server starting", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}

func newLogger(level string) *zap.Logger {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		parsed = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)

	logger, err := cfg.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
