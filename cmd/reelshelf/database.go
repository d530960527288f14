package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"

	"reelshelf/internal/app/collections"
	"reelshelf/internal/config"
	"reelshelf/internal/store"
)

// openStore builds the configured collection store. The returned cleanup
// releases any database handle.
func openStore(ctx context.Context, cfg config.DatabaseConfig, logger zerolog.Logger) (collections.Store, func(), error) {
	if cfg.Driver != config.DriverPostgres {
		logger.Info().Msg("using in-memory collection store")
		return store.NewMemoryStore(), func() {}, nil
	}

	db, err := openDatabase(ctx, cfg.URL)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := store.Migrate(db, store.Up); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		logger.Info().Msg("database migrations applied")
	}

	return store.New(db), func() { _ = db.Close() }, nil
}

// openDatabase establishes a database connection and retries until the instance responds.
func openDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	const (
		pingTimeout    = 5 * time.Second
		maxWait        = 30 * time.Second
		initialBackoff = 500 * time.Millisecond
		maxBackoff     = 5 * time.Second
	)

	deadline := time.Now().Add(maxWait)
	backoff := initialBackoff
	var lastErr error

	for {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		lastErr = db.PingContext(pingCtx)
		cancel()

		if lastErr == nil {
			return db, nil
		}

		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		select {
		case <-ctx.Done():
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > maxBackoff {
			backoff = maxBackoff
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", lastErr)
}
