package collections

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"reelshelf/internal/media"
)

// ErrInvalidRequest marks caller input that cannot address a collection.
var ErrInvalidRequest = errors.New("invalid request")

// Store defines persistence operations required for collection workflows.
type Store interface {
	Read(ctx context.Context, ownerID string) (media.Collections, error)
	Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
	Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
}

// Service describes high level collection operations used by HTTP handlers.
type Service interface {
	Get(ctx context.Context, ownerID string) (media.Collections, error)
	Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
	Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error)
}

type service struct {
	store Store
}

// New constructs a collections Service backed by the given store.
func New(st Store) Service {
	return &service{store: st}
}

func (s *service) Get(ctx context.Context, ownerID string) (media.Collections, error) {
	if err := ctx.Err(); err != nil {
		return media.Collections{}, err
	}
	ownerID, err := validateOwner(ownerID)
	if err != nil {
		return media.Collections{}, err
	}
	return s.store.Read(ctx, ownerID)
}

func (s *service) Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ownerID, ref, err := validateMutation(ownerID, list, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Add(ctx, ownerID, list, ref)
}

func (s *service) Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ownerID, ref, err := validateMutation(ownerID, list, ref)
	if err != nil {
		return nil, err
	}
	return s.store.Remove(ctx, ownerID, list, ref)
}

func validateOwner(ownerID string) (string, error) {
	ownerID = strings.TrimSpace(ownerID)
	switch ownerID {
	case "", "null", "undefined":
		return "", fmt.Errorf("%w: user id is required", ErrInvalidRequest)
	}
	return ownerID, nil
}

func validateMutation(ownerID string, list media.List, ref media.Ref) (string, media.Ref, error) {
	ownerID, err := validateOwner(ownerID)
	if err != nil {
		return "", media.Ref{}, err
	}
	if list != media.Favorites && list != media.Watchlist {
		return "", media.Ref{}, fmt.Errorf("%w: %w", ErrInvalidRequest, media.ErrInvalidList)
	}
	ref.ID = strings.TrimSpace(ref.ID)
	if ref.ID == "" {
		return "", media.Ref{}, fmt.Errorf("%w: item id is required", ErrInvalidRequest)
	}
	if !ref.Kind.Valid() {
		return "", media.Ref{}, fmt.Errorf("%w: %w", ErrInvalidRequest, media.ErrInvalidKind)
	}
	return ownerID, ref, nil
}
