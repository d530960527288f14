package syncclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"reelshelf/internal/media"
)

// DefaultTimeout bounds a single backend request.
const DefaultTimeout = 15 * time.Second

// StatusError reports a non-2xx response from the server.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 from the server.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// HTTPBackend implements Backend against the reelshelf HTTP API.
type HTTPBackend struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// HTTPOption customises an HTTPBackend.
type HTTPOption func(*HTTPBackend)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(b *HTTPBackend) {
		if c != nil {
			b.httpClient = c
		}
	}
}

// WithBearerToken sends token on every collections request.
func WithBearerToken(token string) HTTPOption {
	return func(b *HTTPBackend) {
		b.token = token
	}
}

// NewHTTPBackend creates a backend rooted at baseURL, e.g. "http://localhost:8080".
func NewHTTPBackend(baseURL string, opts ...HTTPOption) *HTTPBackend {
	b := &HTTPBackend{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

type addMemberRequest struct {
	ItemID    string `json:"itemId"`
	MediaType string `json:"mediaType"`
}

// Collections fetches the owner's collections.
func (b *HTTPBackend) Collections(ctx context.Context, ownerID string) (media.Collections, error) {
	var payload struct {
		Favorites []media.Ref `json:"favorites"`
		Watchlist []media.Ref `json:"watchlist"`
	}
	if err := b.do(ctx, http.MethodGet, userPath(ownerID), nil, &payload); err != nil {
		return media.Collections{}, err
	}

	result := media.Empty(ownerID)
	if payload.Favorites != nil {
		result.Favorites = payload.Favorites
	}
	if payload.Watchlist != nil {
		result.Watchlist = payload.Watchlist
	}
	return result, nil
}

// Add posts ref to the owner's list.
func (b *HTTPBackend) Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) error {
	body, err := json.Marshal(addMemberRequest{ItemID: ref.ID, MediaType: string(ref.Kind)})
	if err != nil {
		return fmt.Errorf("encode add request: %w", err)
	}
	return b.do(ctx, http.MethodPost, userPath(ownerID)+"/"+url.PathEscape(string(list)), body, nil)
}

// Remove deletes ref from the owner's list.
func (b *HTTPBackend) Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) error {
	q := url.Values{}
	q.Set("mediaId", ref.ID)
	q.Set("mediaType", string(ref.Kind))
	path := userPath(ownerID) + "/" + url.PathEscape(string(list)) + "?" + q.Encode()
	return b.do(ctx, http.MethodDelete, path, nil, nil)
}

// FetchItem resolves a single item through the catalog endpoint.
func (b *HTTPBackend) FetchItem(ctx context.Context, kind media.Kind, id string) (media.Item, error) {
	var item media.Item
	path := "/api/media/" + url.PathEscape(string(kind)) + "/" + url.PathEscape(id)
	if err := b.do(ctx, http.MethodGet, path, nil, &item); err != nil {
		return media.Item{}, err
	}
	return item, nil
}

func userPath(ownerID string) string {
	return "/api/user/" + url.PathEscape(ownerID)
}

func (b *HTTPBackend) do(ctx context.Context, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if b.token != "" && strings.HasPrefix(path, "/api/user/") {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var payload struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 4096)).Decode(&payload)
		return &StatusError{StatusCode: resp.StatusCode, Message: payload.Error}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
