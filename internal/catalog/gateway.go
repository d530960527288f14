// Package catalog fronts the external catalog service. Every outbound call is
// admitted through a shared limiter and retried by the retry policy, and the
// upstream's per-kind payloads are normalized into media.Item.
package catalog

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"reelshelf/internal/admission"
	"reelshelf/internal/media"
	"reelshelf/internal/retry"
	"reelshelf/internal/tmdb"
)

// Upstream is the subset of the TMDB client used by the gateway.
type Upstream interface {
	Configured() bool
	Movie(ctx context.Context, id string) (*tmdb.Movie, error)
	Show(ctx context.Context, id string) (*tmdb.Show, error)
	Trending(ctx context.Context, page int) (*tmdb.ListPage, error)
	SearchMulti(ctx context.Context, query string, page int) (*tmdb.ListPage, error)
}

// Gateway resolves single items and browses listings.
type Gateway struct {
	upstream Upstream
	limiter  *admission.Limiter
	policy   retry.Policy
	logger   zerolog.Logger
}

// New creates a Gateway. A policy without a classifier retries IsTransient failures.
func New(upstream Upstream, limiter *admission.Limiter, policy retry.Policy, logger zerolog.Logger) *Gateway {
	if limiter == nil {
		limiter = admission.New(admission.DefaultCapacity)
	}
	if policy.Retryable == nil {
		policy.Retryable = IsTransient
	}
	return &Gateway{
		upstream: upstream,
		limiter:  limiter,
		policy:   policy,
		logger:   logger.With().Str("component", "catalog").Logger(),
	}
}

// FetchItem resolves one movie or show.
func (g *Gateway) FetchItem(ctx context.Context, kind media.Kind, id string) (media.Item, error) {
	if !kind.Valid() {
		return media.Item{}, ErrInvalidKind
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return media.Item{}, ErrInvalidID
	}
	if !g.configured() {
		return media.Item{}, ErrNotConfigured
	}

	var item media.Item
	err := g.limiter.Do(ctx, func(ctx context.Context) error {
		switch kind {
		case media.KindShow:
			show, err := retry.Do(ctx, g.policy, func(ctx context.Context) (*tmdb.Show, error) {
				return g.upstream.Show(ctx, id)
			})
			if err != nil {
				return err
			}
			item = showItem(id, show)
		default:
			movie, err := retry.Do(ctx, g.policy, func(ctx context.Context) (*tmdb.Movie, error) {
				return g.upstream.Movie(ctx, id)
			})
			if err != nil {
				return err
			}
			item = movieItem(id, movie)
		}
		return nil
	})
	if err != nil {
		err = classify(err)
		g.logger.Warn().
			Err(err).
			Str("media_type", string(kind)).
			Str("media_id", id).
			Msg("fetch item failed")
		return media.Item{}, err
	}

	return item, nil
}

// Browse returns the trending listing when query is blank and a multi-search
// otherwise. Only movies and shows are kept; paging is passed through.
func (g *Gateway) Browse(ctx context.Context, query string, page int) (media.Page, error) {
	if page < 1 {
		page = 1
	}
	if !g.configured() {
		return media.Page{}, ErrNotConfigured
	}
	query = strings.TrimSpace(query)

	var listing *tmdb.ListPage
	err := g.limiter.Do(ctx, func(ctx context.Context) error {
		var err error
		listing, err = retry.Do(ctx, g.policy, func(ctx context.Context) (*tmdb.ListPage, error) {
			if query == "" {
				return g.upstream.Trending(ctx, page)
			}
			return g.upstream.SearchMulti(ctx, query, page)
		})
		return err
	})
	if err != nil {
		err = classify(err)
		g.logger.Warn().
			Err(err).
			Str("query", query).
			Int("page", page).
			Msg("browse failed")
		return media.Page{}, err
	}

	return listPage(listing), nil
}

// Limiter exposes the shared admission limiter.
func (g *Gateway) Limiter() *admission.Limiter {
	return g.limiter
}

func (g *Gateway) configured() bool {
	return g.upstream != nil && g.upstream.Configured()
}
