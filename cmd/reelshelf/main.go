package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"reelshelf/internal/config"
	"reelshelf/internal/logging"
)

func main() {
	cfg, err := config.Load("config/local.env", ".env")
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	logger, closer := logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		File:   cfg.Logging.File,
	})
	defer closer.Close()
	logging.SetGlobalLogger(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	collectionStore, cleanup, err := openStore(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("open collection store")
	}
	defer cleanup()

	gateway := newGateway(cfg.Catalog, logger)
	if !cfg.Catalog.Configured() {
		logger.Warn().Msg("TMDB_API_KEY not set, catalog requests will fail")
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: newHTTPHandler(cfg, collectionStore, gateway, logger),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", server.Addr).
			Str("store", cfg.Database.Driver).
			Int("catalog_max_concurrency", cfg.Catalog.MaxConcurrency).
			Msg("reelshelf API starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			logger.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	logger.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}
	logger.Info().Msg("reelshelf API exited")
}
