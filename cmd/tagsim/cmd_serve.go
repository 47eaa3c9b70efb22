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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/tagsim/internal/domain/recommend/request"
	logpkg "github.com/kailas-cloud/tagsim/internal/logger"
	"github.com/kailas-cloud/tagsim/internal/metrics"
	"github.com/kailas-cloud/tagsim/internal/repository/catalog/snapshot"
	chiTransport "github.com/kailas-cloud/tagsim/internal/transport/chi"
	cataloguc "github.com/kailas-cloud/tagsim/internal/usecase/catalog"
	healthuc "github.com/kailas-cloud/tagsim/internal/usecase/health"
	recommenduc "github.com/kailas-cloud/tagsim/internal/usecase/recommend"
	"github.com/kailas-cloud/tagsim/internal/version"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API and UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, env, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting tagsim server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("catalog_driver", cfg.Catalog.Driver),
	)

	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loaded once; the snapshot is never refreshed while serving.
	cat, store, err := loadCatalog(ctx, &cfg, logger)
	if err != nil {
		return err
	}
	snap := snapshot.NewStatic(cat)

	// Pass a nil interface, not a typed nil, when there is no database.
	var pinger healthuc.DBPinger
	if store != nil {
		defer store.Close()
		pinger = store
	}

	recommendSvc := recommenduc.New(snap).WithObserver(metrics.RecommendObserver{})
	catalogSvc := cataloguc.New(snap).
		WithPagination(cfg.Recommend.DefaultPageSize, cfg.Recommend.MaxPageSize)
	healthSvc := healthuc.New(snap, pinger)

	server := chiTransport.NewServer(recommendSvc, catalogSvc, healthSvc, logger).
		WithLimits(request.Limits{DefaultK: cfg.Recommend.DefaultK, MaxK: cfg.Recommend.MaxK})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}
