package repository

import (
	"context"
	"database/sql"
	"sync"
	"time"
)

// MemoryRevocationStore records revoked token ids in process memory.
// It is safe for concurrent use. Entries survive until process restart;
// there is no eviction.
type MemoryRevocationStore struct {
	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewMemoryRevocationStore creates an empty in-memory revocation store.
func NewMemoryRevocationStore() *MemoryRevocationStore {
	return &MemoryRevocationStore{tokens: make(map[string]time.Time)}
}

// Add marks the token id as revoked. Adding an already-revoked id is a no-op.
func (s *MemoryRevocationStore) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[jti] = expiresAt
	return nil
}

// Contains reports whether the token id has been revoked.
func (s *MemoryRevocationStore) Contains(ctx context.Context, jti string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.tokens[jti]
	return ok, nil
}

// PostgresRevocationStore records revoked token ids in a PostgreSQL
// database, shared across server instances.
type PostgresRevocationStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresRevocationStore creates a new PostgresRevocationStore with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresRevocationStore(db *sql.DB) *PostgresRevocationStore {
	return &PostgresRevocationStore{DB: db}
}

// Add marks the token id as revoked until expiresAt. The ON CONFLICT DO
// NOTHING clause makes repeated revocation of the same token idempotent.
func (s *PostgresRevocationStore) Add(ctx context.Context, jti string, expiresAt time.Time) error {
	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO revoked_tokens (jti, expires_at) VALUES ($1, $2) ON CONFLICT DO NOTHING`,
		jti, expiresAt,
	)
	return err
}

// Contains reports whether the token id has been revoked.
// If an error occurs during the query, it is returned.
func (s *PostgresRevocationStore) Contains(ctx context.Context, jti string) (bool, error) {
	var revoked bool
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM revoked_tokens WHERE jti = $1)`,
		jti,
	).Scan(&revoked)
	return revoked, err
}
