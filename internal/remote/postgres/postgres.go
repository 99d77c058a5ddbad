// Package postgres is the server-side board repository. Every board query
// is scoped by the owner taken from the caller's session.
package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
)

// ErrNotFound is returned by account and session lookups
var ErrNotFound = errors.New("not found")

// Repository wraps the Postgres connection
type Repository struct {
	db *sql.DB
}

// Open connects to dbURL and runs migrations
func Open(dbURL string) (*Repository, error) {
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	r := New(db)
	if err := r.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return r, nil
}

// New wraps an open connection without migrating
func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Ping checks the connection
func (r *Repository) Ping() error {
	return r.db.Ping()
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
