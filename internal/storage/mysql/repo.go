// Package mysql implements a MySQL-backed storage.Repository using
// database/sql and go-sql-driver. Tables are InnoDB so foreign keys are
// enforced during the refresh transaction.
package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"salesdw/internal/schema"
	"salesdw/internal/storage"
)

// Config holds MySQL repository configuration derived from storage.Config.
type Config struct {
	// DSN is a go-sql-driver DSN, e.g.
	//   "user:pass@tcp(localhost:3306)/smart_sales?parseTime=true"
	DSN string

	// BatchSize bounds rows per INSERT during Refresh.
	BatchSize int
}

// Repository is a MySQL-backed implementation of storage.Repository.
type Repository struct {
	db  *sql.DB
	cfg Config
}

// NewRepository opens a MySQL connection pool and returns a Repository plus a
// Close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	if strings.TrimSpace(cfg.DSN) == "" {
		return nil, nil, fmt.Errorf("mysql: DSN must not be empty")
	}

	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("mysql: open: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("mysql: ping: %w", err)
	}

	closeFn := func() { db.Close() }
	return &Repository{db: db, cfg: cfg}, closeFn, nil
}

// EnsureSchema creates the star-schema tables and constraints if absent.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range createSchemaStmts {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql: ensure schema: %w", err)
		}
	}
	return nil
}

// Refresh replaces the warehouse contents in one transaction.
func (r *Repository) Refresh(ctx context.Context, tables map[string]*schema.Table) (storage.Counts, error) {
	return storage.RefreshTx(ctx, r.db, storage.QuestionMark, tables, r.cfg.BatchSize)
}
