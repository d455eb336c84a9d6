package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/kailas-cloud/wordex/internal/config"
	"github.com/kailas-cloud/wordex/internal/metrics"
	chiTransport "github.com/kailas-cloud/wordex/internal/transport/chi"
	"github.com/kailas-cloud/wordex/internal/version"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "run the HTTP lookup API",
	Action: runServe,
}

func runServe(c *cli.Context) error {
	cfg, err := loadConfig(c, true)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, err := newLogger(c, cfg, cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting wordex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", c.String("env")),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("cache_addrs", cfg.Cache.Redis.Addrs),
	)

	// Register lookup metrics explicitly (no init())
	metrics.RegisterLookupMetrics()

	comps, err := buildComponents(c.Context, cfg, logger)
	if err != nil {
		return err
	}
	defer comps.close()

	server := chiTransport.NewServer(comps.lookup, comps.health, logger)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      newRouter(server, cfg, logger),
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-quit:
		logger.Info("Received shutdown signal")
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func newRouter(server *chiTransport.Server, cfg config.Config, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)
	return r
}
