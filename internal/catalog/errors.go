package catalog

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"

	"reelshelf/internal/media"
	"reelshelf/internal/tmdb"
)

var (
	// ErrInvalidKind is returned before any upstream work when the kind is unsupported.
	ErrInvalidKind = media.ErrInvalidKind
	// ErrInvalidID is returned for a blank item id.
	ErrInvalidID = errors.New("media id is required")
	// ErrNotConfigured means the upstream credential is missing.
	ErrNotConfigured = errors.New("catalog api key not configured")
	// ErrNotFound means the upstream reported no such item.
	ErrNotFound = errors.New("media not found")
	// ErrUpstreamRejected covers upstream 4xx responses other than 404 and 429.
	ErrUpstreamRejected = errors.New("catalog service rejected the request")
	// ErrUpstreamUnavailable is returned once transient failures exhaust all retries.
	ErrUpstreamUnavailable = errors.New("catalog service unavailable")
	// ErrUpstreamMalformed is returned when the upstream body cannot be decoded.
	ErrUpstreamMalformed = errors.New("catalog service returned a malformed response")
)

// IsTransient reports whether an upstream failure is worth another attempt:
// transport failures (resets, timeouts, DNS) and 5xx or 429 responses.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == http.StatusTooManyRequests || statusErr.StatusCode >= 500
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	// A bare deadline comes from the caller, not the network.
	if errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}

// classify maps an upstream failure onto the gateway's error taxonomy. The
// original error stays in the chain for logging.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) || (errors.Is(err, context.DeadlineExceeded) && !IsTransient(err)) {
		return err
	}
	if errors.Is(err, tmdb.ErrMissingAPIKey) {
		return ErrNotConfigured
	}

	var statusErr *tmdb.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusNotFound:
			return fmt.Errorf("%w: %w", ErrNotFound, err)
		case IsTransient(err):
			return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
		default:
			return fmt.Errorf("%w: %w", ErrUpstreamRejected, err)
		}
	}

	if IsTransient(err) {
		return fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrUpstreamMalformed, err)
}
