package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"reelshelf/internal/admission"
	"reelshelf/internal/app/collections"
	"reelshelf/internal/catalog"
	"reelshelf/internal/config"
	"reelshelf/internal/http/middleware"
	"reelshelf/internal/httpapi"
	"reelshelf/internal/retry"
	"reelshelf/internal/tmdb"
)

func newGateway(cfg config.CatalogConfig, logger zerolog.Logger) *catalog.Gateway {
	client := tmdb.NewClient(cfg.APIKey,
		tmdb.WithBaseURL(cfg.BaseURL),
		tmdb.WithTimeout(cfg.RequestTimeout),
	)

	policy := retry.Policy{
		Attempts:  cfg.RetryAttempts,
		BaseDelay: cfg.RetryBaseDelay,
		Retryable: catalog.IsTransient,
		Logger:    logger,
	}

	return catalog.New(client, admission.New(cfg.MaxConcurrency), policy, logger)
}

func newHTTPHandler(cfg *config.Config, st collections.Store, gateway *catalog.Gateway, logger zerolog.Logger) http.Handler {
	opts := []httpapi.Option{httpapi.WithLogger(logger)}
	if cfg.Security.JWTSecret != "" {
		guard := middleware.RequireOwner([]byte(cfg.Security.JWTSecret), func(r *http.Request) string {
			return mux.Vars(r)["ownerId"]
		})
		opts = append(opts, httpapi.WithOwnerGuard(guard))
		logger.Info().Msg("owner token guard enabled")
	}

	router := httpapi.New(collections.New(st), gateway, opts...).Routes()

	var handler http.Handler = router
	handler = middleware.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)
	return handler
}
