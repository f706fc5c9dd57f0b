package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/riskibarqy/football-club/internal/app"
	"github.com/riskibarqy/football-club/internal/config"
	"github.com/riskibarqy/football-club/internal/observability"
	"github.com/riskibarqy/football-club/internal/platform/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).With("service", cfg.ServiceName, "environment", cfg.AppEnv)
	logging.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("api stopped with error", "error", err)
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}

func run(cfg config.Config, logger *logging.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("uptrace shutdown failed", "error", err)
		}
	}()

	stopProfiler, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := stopProfiler(); err != nil {
			logger.Warn("pyroscope stop failed", "error", err)
		}
	}()

	pprofSrv, err := observability.StartPprofServer(cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = observability.StopPprofServer(pprofSrv, logger, cfg.ShutdownTimeout) }()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			logger.Warn("release app resources failed", "error", err)
		}
	}()

	if application.Scheduler != nil {
		application.Scheduler.Start()
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageDriver)
		if err := application.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := application.Server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
