// Package tmdb is a minimal client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	DefaultTimeout = 10 * time.Second
)

// ErrMissingAPIKey is returned by every call when no credential is configured.
var ErrMissingAPIKey = errors.New("tmdb api key not configured")

// StatusError reports a non-2xx upstream response. The body is intentionally
// not kept.
type StatusError struct {
	StatusCode int
	Endpoint   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("tmdb %s: unexpected status %d", e.Endpoint, e.StatusCode)
}

// Client talks to the TMDB REST API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(raw string) Option {
	return func(c *Client) {
		if raw != "" {
			c.baseURL = strings.TrimRight(raw, "/")
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// NewClient creates a TMDB client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  strings.TrimSpace(apiKey),
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool {
	return c != nil && c.apiKey != ""
}

// Movie fetches a single movie by id.
func (c *Client) Movie(ctx context.Context, id string) (*Movie, error) {
	var movie Movie
	if err := c.get(ctx, "movie/"+url.PathEscape(id), nil, &movie); err != nil {
		return nil, err
	}
	return &movie, nil
}

// Show fetches a single TV show by id.
func (c *Client) Show(ctx context.Context, id string) (*Show, error) {
	var show Show
	if err := c.get(ctx, "tv/"+url.PathEscape(id), nil, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// Trending returns today's trending movies, shows and people.
func (c *Client) Trending(ctx context.Context, page int) (*ListPage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result ListPage
	if err := c.get(ctx, "trending/all/day", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SearchMulti searches movies, shows and people in one request.
func (c *Client) SearchMulti(ctx context.Context, query string, page int) (*ListPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	var result ListPage
	if err := c.get(ctx, "search/multi", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// get performs an authenticated GET against the API and decodes the body.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, result any) error {
	if !c.Configured() {
		return ErrMissingAPIKey
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	apiURL := c.baseURL + "/" + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", redactKey(err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}

	return nil
}

// redactKey strips the request URL (which carries the api key) from
// transport errors while keeping the underlying cause.
func redactKey(err error) error {
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &url.Error{Op: urlErr.Op, URL: "<redacted>", Err: urlErr.Err}
	}
	return err
}
