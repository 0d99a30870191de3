// Package db provides PostgreSQL persistence for resume documents.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database and verifies it.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &DB{pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the resumes table when it does not exist yet.
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resumes (
			id         UUID PRIMARY KEY,
			owner_id   UUID NOT NULL,
			slug       TEXT NOT NULL,
			status     TEXT NOT NULL DEFAULT 'draft',
			deleted    BOOLEAN NOT NULL DEFAULT FALSE,
			document   JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS resumes_owner_slug_idx ON resumes (owner_id, slug) WHERE NOT deleted;
		CREATE INDEX IF NOT EXISTS resumes_owner_idx ON resumes (owner_id);
		CREATE INDEX IF NOT EXISTS resumes_status_idx ON resumes (status);
	`)
	if err != nil {
		return fmt.Errorf("failed to migrate resumes table: %w", err)
	}
	return nil
}
