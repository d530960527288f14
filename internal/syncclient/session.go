// Package syncclient implements the client side of the collections contract:
// every mutation is followed by a full re-read of the owner's collections,
// and each member is then resolved to display data independently.
package syncclient

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/iter"

	"reelshelf/internal/media"
)

// DefaultMaxParallel caps concurrent member resolutions for one refresh.
const DefaultMaxParallel = 8

// Backend is the server surface a Session talks to.
type Backend interface {
	Collections(ctx context.Context, ownerID string) (media.Collections, error)
	Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) error
	Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) error
	FetchItem(ctx context.Context, kind media.Kind, id string) (media.Item, error)
}

// View is the rendered state of an owner's collections. Members whose
// resolution failed are left out of the item lists and reported in Missing.
type View struct {
	OwnerID   string       `json:"owner_id"`
	Favorites []media.Item `json:"favorites"`
	Watchlist []media.Item `json:"watchlist"`
	Missing   []media.Ref  `json:"missing,omitempty"`
}

// Session holds the last authoritative view for one owner.
type Session struct {
	backend     Backend
	ownerID     string
	maxParallel int
	logger      zerolog.Logger

	mu   sync.Mutex
	view View
}

// Option customises a Session.
type Option func(*Session)

// WithMaxParallel bounds concurrent member resolutions.
func WithMaxParallel(n int) Option {
	return func(s *Session) {
		if n > 0 {
			s.maxParallel = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a Session for ownerID. The view starts empty until the
// first Refresh.
func NewSession(backend Backend, ownerID string, opts ...Option) *Session {
	s := &Session{
		backend:     backend,
		ownerID:     ownerID,
		maxParallel: DefaultMaxParallel,
		logger:      zerolog.Nop(),
		view:        emptyView(ownerID),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().Str("owner_id", ownerID).Logger()
	return s
}

// View returns the most recently refreshed state.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.view
}

// Add inserts ref into list and then refreshes. The set returned by the
// server for the mutation is not used; the refresh is the source of truth.
func (s *Session) Add(ctx context.Context, list media.List, ref media.Ref) (View, error) {
	if err := s.backend.Add(ctx, s.ownerID, list, ref); err != nil {
		return s.View(), err
	}
	return s.Refresh(ctx)
}

// Remove deletes ref from list and then refreshes.
func (s *Session) Remove(ctx context.Context, list media.List, ref media.Ref) (View, error) {
	if err := s.backend.Remove(ctx, s.ownerID, list, ref); err != nil {
		return s.View(), err
	}
	return s.Refresh(ctx)
}

// Refresh re-reads the owner's collections and resolves every member. A
// failed resolution drops that member and never fails the refresh; only a
// failed read does, in which case the previous view is kept.
func (s *Session) Refresh(ctx context.Context) (View, error) {
	current, err := s.backend.Collections(ctx, s.ownerID)
	if err != nil {
		return s.View(), err
	}

	view := emptyView(s.ownerID)
	view.Favorites, view.Missing = s.resolve(ctx, current.Favorites, view.Missing)
	view.Watchlist, view.Missing = s.resolve(ctx, current.Watchlist, view.Missing)

	s.mu.Lock()
	s.view = view
	s.mu.Unlock()

	return view, nil
}

type resolution struct {
	item media.Item
	ok   bool
}

func (s *Session) resolve(ctx context.Context, refs []media.Ref, missing []media.Ref) ([]media.Item, []media.Ref) {
	mapper := iter.Mapper[media.Ref, resolution]{MaxGoroutines: s.maxParallel}
	results := mapper.Map(refs, func(ref *media.Ref) resolution {
		item, err := s.backend.FetchItem(ctx, ref.Kind, ref.ID)
		if err != nil {
			s.logger.Warn().
				Err(err).
				Str("media_type", string(ref.Kind)).
				Str("media_id", ref.ID).
				Msg("resolve member failed")
			return resolution{}
		}
		return resolution{item: item, ok: true}
	})

	items := make([]media.Item, 0, len(refs))
	for i, res := range results {
		if !res.ok {
			missing = append(missing, refs[i])
			continue
		}
		items = append(items, res.item)
	}
	return items, missing
}

func emptyView(ownerID string) View {
	return View{OwnerID: ownerID, Favorites: []media.Item{}, Watchlist: []media.Item{}}
}
