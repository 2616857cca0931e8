package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/metricsvc/internal/config"
	"github.com/aescanero/metricsvc/internal/logging"
	"github.com/aescanero/metricsvc/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/metricsvc/pkg/adapters/tracing"
	"github.com/aescanero/metricsvc/pkg/api/http"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

const serviceName = "metricsvc"

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("starting metricsvc",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	// Initialize adapters
	metricsCollector, err := prometheus.NewCollector(prometheus.Config{
		Namespace:      cfg.Metrics.Namespace,
		Buckets:        cfg.Metrics.Buckets,
		RuntimeMetrics: cfg.Metrics.RuntimeMetrics,
	})
	if err != nil {
		logger.Fatal("failed to create metrics collector", zap.Error(err))
	}

	var tracerProvider trace.TracerProvider = noop.NewTracerProvider()
	shutdownTracing := func(context.Context) error { return nil }
	if cfg.Tracing.Enabled {
		tp := tracing.NewProvider(tracing.Config{
			ServiceName:    cfg.Tracing.ServiceName,
			ServiceVersion: Version,
		}, logger.Named("tracing"))
		tracerProvider = tp
		shutdownTracing = tp.Shutdown
	}

	// Initialize API server
	httpServer := http.NewServer(&http.Config{
		Addr:              cfg.BindAddr,
		EnableH2C:         cfg.HTTP.EnableH2C,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		Metrics:           metricsCollector,
		TracerProvider:    tracerProvider,
		Logger:            logger.Named("http"),
	})

	// Bind before serving so a busy address fails fast
	if err := httpServer.Listen(); err != nil {
		logger.Fatal("failed to start HTTP server", zap.Error(err))
	}

	go func() {
		if err := httpServer.Serve(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("metricsvc started", zap.Stringer("addr", httpServer.Addr()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := shutdownTracing(shutdownCtx); err != nil {
		logger.Error("tracer provider shutdown error", zap.Error(err))
	}

	logger.Info("metricsvc shut down complete")
}

// initLogger initializes the logger from the log filter and format
func initLogger(cfg config.LogConfig) *zap.Logger {
	logger, err := logging.New(logging.Options{
		Name:   serviceName,
		Filter: cfg.Filter,
		Format: cfg.Format,
	})
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
