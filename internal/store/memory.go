package store

import (
	"context"
	"sync"

	"reelshelf/internal/media"
)

// MemoryStore keeps collections in process memory. Each owner has its own
// lock, so writers for different owners never wait on each other.
type MemoryStore struct {
	mu     sync.Mutex
	owners map[string]*ownerRecord
}

type ownerRecord struct {
	mu    sync.Mutex
	lists map[media.List][]media.Ref
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{owners: make(map[string]*ownerRecord)}
}

// Read returns a copy of both lists. An unknown owner yields empty lists.
func (m *MemoryStore) Read(_ context.Context, ownerID string) (media.Collections, error) {
	result := media.Empty(ownerID)

	rec := m.lookup(ownerID, false)
	if rec == nil {
		return result, nil
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	result.Favorites = cloneRefs(rec.lists[media.Favorites])
	result.Watchlist = cloneRefs(rec.lists[media.Watchlist])
	return result, nil
}

// Add appends ref to the list unless an equal member is already present.
func (m *MemoryStore) Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := m.lookup(ownerID, true)
	rec.mu.Lock()
	defer rec.mu.Unlock()

	members := rec.lists[list]
	if indexOf(members, ref) < 0 {
		rec.lists[list] = append(members, ref)
	}
	return cloneRefs(rec.lists[list]), nil
}

// Remove drops ref from the list. Removing an absent member is a no-op.
func (m *MemoryStore) Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rec := m.lookup(ownerID, false)
	if rec == nil {
		return nil, ErrOwnerNotFound
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()

	members := rec.lists[list]
	if i := indexOf(members, ref); i >= 0 {
		rec.lists[list] = append(members[:i:i], members[i+1:]...)
	}
	return cloneRefs(rec.lists[list]), nil
}

// Ping always succeeds.
func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

func (m *MemoryStore) lookup(ownerID string, create bool) *ownerRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	rec, ok := m.owners[ownerID]
	if !ok && create {
		rec = &ownerRecord{lists: make(map[media.List][]media.Ref)}
		m.owners[ownerID] = rec
	}
	return rec
}

func indexOf(refs []media.Ref, ref media.Ref) int {
	for i, r := range refs {
		if r == ref {
			return i
		}
	}
	return -1
}

func cloneRefs(refs []media.Ref) []media.Ref {
	out := make([]media.Ref, len(refs))
	copy(out, refs)
	return out
}
