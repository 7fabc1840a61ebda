package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti TEXT PRIMARY KEY,
    expires_at TIMESTAMPTZ NOT NULL
);
`

func InitPostgres(dsn string) (*sql.DB, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	if err := ensureSchema(db); err != nil {
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return db, nil
}

// ensureSchema creates the revoked_tokens table if it does not exist.
func ensureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
