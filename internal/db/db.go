// Package db provides PostgreSQL storage for moodtunes.
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

// New creates a new database connection pool.
func New(ctx context.Context, databaseURL string) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the database connection pool.
func (db *DB) Close() {
	db.pool.Close()
}

// Pool returns the underlying connection pool for advanced operations.
func (db *DB) Pool() *pgxpool.Pool {
	return db.pool
}

// schema is applied by Migrate. Statements are idempotent.
const schema = `
CREATE TABLE IF NOT EXISTS audio_features (
	track_id     TEXT PRIMARY KEY,
	valence      DOUBLE PRECISION NOT NULL DEFAULT 0,
	energy       DOUBLE PRECISION NOT NULL DEFAULT 0,
	tempo        DOUBLE PRECISION NOT NULL DEFAULT 0,
	danceability DOUBLE PRECISION NOT NULL DEFAULT 0,
	missing      BOOLEAN NOT NULL DEFAULT FALSE,
	fetched_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS audio_features_fetched_at_idx ON audio_features (fetched_at);
`

// Migrate creates the tables moodtunes needs.
func (db *DB) Migrate(ctx context.Context) error {
	if _, err := db.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

// Features returns a FeatureRepository.
func (db *DB) Features() *FeatureRepository {
	return &FeatureRepository{pool: db.pool}
}
