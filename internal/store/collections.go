package store

import (
	"context"
	"database/sql"
	"fmt"

	"reelshelf/internal/media"
)

const (
	insertOwnerSQL = `
		INSERT INTO user_collections (owner_id)
		VALUES ($1)
		ON CONFLICT (owner_id) DO NOTHING
	`
	insertMemberSQL = `
		INSERT INTO collection_members (owner_id, list, media_id, media_kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, list, media_id, media_kind) DO NOTHING
	`
	ownerExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM user_collections WHERE owner_id = $1)
	`
	deleteMemberSQL = `
		DELETE FROM collection_members
		WHERE owner_id = $1 AND list = $2 AND media_id = $3 AND media_kind = $4
	`
	selectListSQL = `
		SELECT media_id, media_kind
		FROM collection_members
		WHERE owner_id = $1 AND list = $2
		ORDER BY added_at ASC, media_kind ASC, media_id ASC
	`
	selectAllSQL = `
		SELECT list, media_id, media_kind
		FROM collection_members
		WHERE owner_id = $1
		ORDER BY added_at ASC, media_kind ASC, media_id ASC
	`
)

// Read returns both lists for the owner. An unknown owner yields empty lists.
func (s *Store) Read(ctx context.Context, ownerID string) (media.Collections, error) {
	rows, err := s.db.QueryContext(ctx, selectAllSQL, ownerID)
	if err != nil {
		return media.Collections{}, fmt.Errorf("select collections: %w", err)
	}
	defer rows.Close()

	result := media.Empty(ownerID)
	for rows.Next() {
		var (
			list string
			ref  media.Ref
		)
		if err := rows.Scan(&list, &ref.ID, &ref.Kind); err != nil {
			return media.Collections{}, fmt.Errorf("scan collection member: %w", err)
		}
		switch media.List(list) {
		case media.Favorites:
			result.Favorites = append(result.Favorites, ref)
		case media.Watchlist:
			result.Watchlist = append(result.Watchlist, ref)
		}
	}
	if err := rows.Err(); err != nil {
		return media.Collections{}, fmt.Errorf("iterate collections: %w", err)
	}

	return result, nil
}

// Add inserts ref into the owner's list, creating the owner record on first
// use. Both inserts are conditional, so a repeated or concurrent add of the
// same member leaves a single copy. The resulting list is returned.
func (s *Store) Add(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, insertOwnerSQL, ownerID); err != nil {
		return nil, fmt.Errorf("insert owner: %w", err)
	}

	if _, err := tx.ExecContext(ctx, insertMemberSQL, ownerID, string(list), ref.ID, string(ref.Kind)); err != nil {
		if isCheckViolation(err) {
			return nil, ErrInvalidMember
		}
		return nil, fmt.Errorf("insert member: %w", err)
	}

	refs, err := listMembers(ctx, tx, ownerID, list)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return refs, nil
}

// Remove deletes ref from the owner's list. Removing an absent member is a
// no-op; only an owner without any record is an error.
func (s *Store) Remove(ctx context.Context, ownerID string, list media.List, ref media.Ref) ([]media.Ref, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if tx != nil {
			_ = tx.Rollback()
		}
	}()

	exists, err := ownerExists(ctx, tx, ownerID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrOwnerNotFound
	}

	if _, err := tx.ExecContext(ctx, deleteMemberSQL, ownerID, string(list), ref.ID, string(ref.Kind)); err != nil {
		return nil, fmt.Errorf("delete member: %w", err)
	}

	refs, err := listMembers(ctx, tx, ownerID, list)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	tx = nil

	return refs, nil
}

func ownerExists(ctx context.Context, q queryRower, ownerID string) (bool, error) {
	var exists bool
	if err := q.QueryRowContext(ctx, ownerExistsSQL, ownerID).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup owner: %w", err)
	}
	return exists, nil
}

func listMembers(ctx context.Context, q queryer, ownerID string, list media.List) ([]media.Ref, error) {
	rows, err := q.QueryContext(ctx, selectListSQL, ownerID, string(list))
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", list, err)
	}
	defer rows.Close()

	refs := []media.Ref{}
	for rows.Next() {
		var ref media.Ref
		if err := rows.Scan(&ref.ID, &ref.Kind); err != nil {
			return nil, fmt.Errorf("scan %s member: %w", list, err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", list, err)
	}
	return refs, nil
}

var (
	_ queryer    = (*sql.Tx)(nil)
	_ queryRower = (*sql.Tx)(nil)
)
