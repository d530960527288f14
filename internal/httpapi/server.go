package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"reelshelf/internal/app/collections"
	"reelshelf/internal/catalog"
	"reelshelf/internal/logging"
	"reelshelf/internal/media"
	"reelshelf/internal/store"
)

// CollectionService captures the collection operations needed by the HTTP handlers.
type CollectionService interface {
	Get(ctx context.Context, ownerID string) (media.Collections, error)
	Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
	Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
}

// CatalogService resolves and browses catalog items.
type CatalogService interface {
	FetchItem(ctx context.Context, kind media.Kind, id string) (media.Item, error)
	Browse(ctx context.Context, query string, page int) (media.Page, error)
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	collections CollectionService
	catalog     CatalogService
	logger      zerolog.Logger
	ownerGuard  mux.MiddlewareFunc
}

// Option customises a Server.
type Option func(*Server)

// WithOwnerGuard installs middleware that runs on every /api/user/{ownerId} route.
func WithOwnerGuard(mw mux.MiddlewareFunc) Option {
	return func(s *Server) {
		s.ownerGuard = mw
	}
}

// WithLogger sets the logger used for unexpected handler failures.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// New configures a Server with the given services.
func New(collections CollectionService, catalog CatalogService, opts ...Option) *Server {
	s := &Server{
		collections: collections,
		catalog:     catalog,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes exposes the HTTP handlers for collections and catalog lookups.
func (s *Server) Routes() *mux.Router {
	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("API is running..."))
	}).Methods(http.MethodGet)

	api := router.PathPrefix("/api").Subrouter()

	users := api.PathPrefix("/user/{ownerId}").Subrouter()
	if s.ownerGuard != nil {
		users.Use(s.ownerGuard)
	}
	users.HandleFunc("", s.handleGetCollections).Methods(http.MethodGet)
	users.HandleFunc("/{list}", s.handleAddMember).Methods(http.MethodPost)
	users.HandleFunc("/{list}", s.handleRemoveMember).Methods(http.MethodDelete)

	api.HandleFunc("/media/browse", s.handleBrowse).Methods(http.MethodGet)
	api.HandleFunc("/media/{kind}/{id}", s.handleGetItem).Methods(http.MethodGet)

	return router
}

type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps a service error onto a status code and a client-safe message.
// Upstream failures never expose their cause.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "internal server error"

	switch {
	case errors.Is(err, errInvalidBody):
		status, message = http.StatusBadRequest, "itemId and mediaType are required in the request body"
	case errors.Is(err, collections.ErrInvalidRequest):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, media.ErrInvalidKind):
		status, message = http.StatusBadRequest, media.ErrInvalidKind.Error()
	case errors.Is(err, media.ErrInvalidList):
		status, message = http.StatusBadRequest, media.ErrInvalidList.Error()
	case errors.Is(err, catalog.ErrInvalidID):
		status, message = http.StatusBadRequest, catalog.ErrInvalidID.Error()
	case errors.Is(err, store.ErrInvalidMember):
		status, message = http.StatusBadRequest, store.ErrInvalidMember.Error()
	case errors.Is(err, store.ErrOwnerNotFound):
		status, message = http.StatusNotFound, "User not found."
	case errors.Is(err, catalog.ErrNotFound):
		status, message = http.StatusNotFound, "media not found"
	case errors.Is(err, catalog.ErrNotConfigured):
		status, message = http.StatusInternalServerError, "Server API key not configured."
	case errors.Is(err, catalog.ErrUpstreamRejected):
		status, message = http.StatusBadGateway, "catalog service rejected the request"
	case errors.Is(err, catalog.ErrUpstreamMalformed):
		status, message = http.StatusBadGateway, "catalog service returned an unexpected response"
	case errors.Is(err, catalog.ErrUpstreamUnavailable):
		status, message = http.StatusServiceUnavailable, "catalog service is unavailable"
	}

	if status >= http.StatusInternalServerError {
		logger := logging.FromContext(r.Context(), s.logger)
		logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Msg("request failed")
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
