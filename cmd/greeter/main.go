package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aescanero/greeter/internal/config"
	"github.com/aescanero/greeter/pkg/adapters/metrics/prometheus"
	"github.com/aescanero/greeter/pkg/api/grpc"
	"github.com/aescanero/greeter/pkg/api/http"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Version is set by build flags
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Load configuration
	cfg, err := config.Load(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting greeter",
		zap.String("version", Version),
		zap.String("build_time", BuildTime))

	var metricsCollector *prometheus.Collector
	if cfg.MetricsEnabled {
		metricsCollector = prometheus.NewCollector()
	}

	httpServer := http.NewServer(&http.Config{
		Addr:    cfg.HTTPAddr(),
		Metrics: metricsCollector,
		Logger:  logger,
	})

	// Bind everything before serving anything
	if err := httpServer.Listen(); err != nil {
		logger.Error("HTTP server failed to bind", zap.Error(err))
		return 1
	}

	var grpcServer *grpc.Server
	if addr := cfg.GRPCAddr(); addr != "" {
		grpcServer, err = grpc.NewServer(&grpc.Config{
			Addr:   addr,
			Logger: logger,
		})
		if err != nil {
			logger.Error("gRPC server failed to bind", zap.Error(err))
			shutdownHTTP(httpServer, cfg, logger)
			return 1
		}
	}

	serveErr := make(chan error, 2)

	go func() {
		if err := httpServer.Serve(); err != nil {
			serveErr <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	if grpcServer != nil {
		go func() {
			if err := grpcServer.Start(); err != nil {
				serveErr <- fmt.Errorf("gRPC server failed: %w", err)
			}
		}()
	}

	logger.Info("greeter started",
		zap.String("http_addr", httpServer.Addr()),
		zap.String("grpc_addr", cfg.GRPCAddr()),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled))

	// Wait for interrupt signal or a serve failure
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	exitCode := 0
	select {
	case sig := <-sigCh:
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
	case err := <-serveErr:
		logger.Error("server stopped unexpectedly", zap.Error(err))
		exitCode = 1
	}

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
		exitCode = 1
	}

	if grpcServer != nil {
		if err := grpcServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("gRPC server shutdown error", zap.Error(err))
			exitCode = 1
		}
	}

	logger.Info("greeter shut down complete")
	return exitCode
}

// shutdownHTTP releases the HTTP listener after a later startup step failed
func shutdownHTTP(s *http.Server, cfg *config.Config, logger *zap.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
