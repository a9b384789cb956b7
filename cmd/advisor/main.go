package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/seakeeping-advisor/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/seakeeping-advisor/internal/adapter/kafka"
	"github.com/couchcryptid/seakeeping-advisor/internal/config"
	"github.com/couchcryptid/seakeeping-advisor/internal/observability"
	"github.com/couchcryptid/seakeeping-advisor/internal/pipeline"
	"github.com/couchcryptid/seakeeping-advisor/internal/rao"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	store, err := rao.NewStore(cfg.RAODataDir, logger)
	if err != nil {
		logger.Error("failed to load rao tables", "error", err)
		os.Exit(1)
	}
	store.CacheObserver = func(result string) {
		metrics.RAOCache.WithLabelValues(result).Inc()
	}

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	assessor := pipeline.NewAssessor(store, cfg.ShipPositions, cfg.JonswapGamma, logger, metrics)

	p := pipeline.New(reader, assessor, writer, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, p, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start assessment pipeline.
	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}
