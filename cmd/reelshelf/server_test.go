package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"reelshelf/internal/config"
	"reelshelf/internal/store"
)

func testConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{
			MaxConcurrency: 2,
			RetryAttempts:  1,
			RequestTimeout: time.Second,
		},
		CORS: config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
	}
}

func TestHandlerWithoutCatalogKey(t *testing.T) {
	cfg := testConfig()
	handler := newHTTPHandler(cfg, store.NewMemoryStore(), newGateway(cfg.Catalog, zerolog.Nop()), zerolog.Nop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/media/movie/550", nil))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500 without API key, got %d", rr.Code)
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected request id header")
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/u1", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected collections to work without guard, got %d", rr.Code)
	}
}

func TestHandlerOwnerGuard(t *testing.T) {
	cfg := testConfig()
	cfg.Security.JWTSecret = "0123456789abcdef"
	handler := newHTTPHandler(cfg, store.NewMemoryStore(), newGateway(cfg.Catalog, zerolog.Nop()), zerolog.Nop())

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/user/u1", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", rr.Code)
	}

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("health should stay open, got %d", rr.Code)
	}
}
