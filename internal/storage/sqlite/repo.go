// Package sqlite implements a SQLite-backed storage.Repository using
// database/sql. SQLite has no dedicated bulk-load API, but multi-row INSERTs
// inside one transaction keep performance acceptable for full-refresh
// volumes, and foreign keys are enforced once the pragma is on.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	// SQLite driver; replace with your preferred driver if desired.
	_ "modernc.org/sqlite" // alternative: github.com/mattn/go-sqlite3

	"salesdw/internal/schema"
	"salesdw/internal/storage"
)

// Repository is a SQLite-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a SQLite connection using the provided DSN and returns
// a Repository plus a Close function for cleanup.
//
// DSN is passed directly to database/sql; for example:
//
//	"file:smart_sales.dw?_fk=1"
//	"smart_sales.dw"
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	db, err := sql.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("sqlite: open: %w", err)
	}

	// Apply a basic ping with context to fail fast on invalid DSNs.
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	// One connection so the pragma below holds for every statement we run.
	db.SetMaxOpenConns(1)

	// Foreign-key enforcement is per-connection in SQLite and off by
	// default; the refresh transaction depends on it.
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON;"); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("sqlite: enable foreign keys: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// EnsureSchema creates the star-schema tables and constraints if absent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createSchemaStmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite: ensure schema: %w", err)
		}
	}
	return nil
}

// Refresh replaces the warehouse contents in one transaction.
func (r *Repository) Refresh(ctx context.Context, tables map[string]*schema.Table) (storage.Counts, error) {
	return storage.RefreshTx(ctx, r.db, storage.QuestionMark, tables, r.cfg.BatchSize)
}
