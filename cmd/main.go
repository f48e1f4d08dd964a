// cmd/main.go is the application entry point.
// It wires together all layers and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/openbracket/tourneyops/internal/config"
	"github.com/openbracket/tourneyops/internal/database"
	"github.com/openbracket/tourneyops/internal/handler"
	"github.com/openbracket/tourneyops/internal/service"
	"github.com/openbracket/tourneyops/internal/store"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// ── 1. Select the store backend once ──────────────────────────────────
	var st *store.Store
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(ctx, cfg.DB, logger)
		if err != nil {
			logger.Fatal("database", zap.Error(err))
		}
		defer pool.Close()
		if err := database.Migrate(cfg.DB, logger); err != nil {
			logger.Fatal("migrations", zap.Error(err))
		}
		st = store.NewPostgres(pool)
		logger.Info("connected to PostgreSQL")
	case config.BackendMemory:
		st = store.NewMemory()
		logger.Warn("using in-memory store; data will not survive a restart")
	}

	// ── 2. Wire up layers ────────────────────────────────────────────────
	svc := service.New(st, cfg.ProductionWebhookURL, logger)
	h := handler.New(svc, logger)
	r := handler.NewRouter(h, logger)

	// ── 3. Start server with graceful shutdown ────────────────────────────
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Run in background goroutine so we can listen for shutdown signal.
	go func() {
		logger.Info("server listening", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	// Block until SIGINT or SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("graceful shutdown failed", zap.Error(err))
	}
	logger.Info("server stopped")
}

// newLogger builds a zap logger from the LOG_LEVEL / LOG_FORMAT settings.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	switch cfg.LogFormat {
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
