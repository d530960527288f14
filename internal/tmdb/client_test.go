package tmdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestClientMovie(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/603" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "secret" {
			t.Errorf("expected api_key query parameter, got %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":603,"title":"The Matrix","runtime":136,"poster_path":null,"genres":[{"id":28,"name":"Action"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	movie, err := c.Movie(context.Background(), "603")
	if err != nil {
		t.Fatalf("Movie: %v", err)
	}
	if movie.Title != "The Matrix" || movie.Runtime == nil || *movie.Runtime != 136 {
		t.Fatalf("unexpected movie: %+v", movie)
	}
	if movie.PosterPath != nil {
		t.Fatalf("expected null poster_path to decode as nil")
	}
}

func TestClientSearchMultiParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/multi" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "star wars" || q.Get("page") != "2" {
			t.Errorf("unexpected query %v", q)
		}
		_, _ = w.Write([]byte(`{"page":2,"total_pages":7,"results":[{"id":11,"media_type":"movie","title":"Star Wars"}]}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL+"/"))
	page, err := c.SearchMulti(context.Background(), "star wars", 2)
	if err != nil {
		t.Fatalf("SearchMulti: %v", err)
	}
	if page.Page != 2 || page.TotalPages != 7 || len(page.Results) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestClientStatusErrorHidesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"status_message":"Invalid API key: secret-detail"}`))
	}))
	defer srv.Close()

	c := NewClient("secret", WithBaseURL(srv.URL))
	_, err := c.Show(context.Background(), "1")

	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", statusErr.StatusCode)
	}
	if strings.Contains(err.Error(), "secret-detail") {
		t.Fatalf("upstream body leaked into error: %v", err)
	}
}

func TestClientWithoutKey(t *testing.T) {
	c := NewClient("  ")
	if c.Configured() {
		t.Fatalf("expected blank key to be unconfigured")
	}
	if _, err := c.Trending(context.Background(), 1); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestClientTransportErrorRedactsKey(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	c := NewClient("supersecret", WithBaseURL(srv.URL))
	_, err := c.Movie(context.Background(), "1")
	if err == nil {
		t.Fatalf("expected transport error")
	}
	if strings.Contains(err.Error(), "supersecret") {
		t.Fatalf("api key leaked into error: %v", err)
	}
}
