// Package storage contains storage-agnostic contracts for the warehouse
// writer, a backend factory, and a shared database/sql full-refresh
// implementation.
//
// Backends register themselves in init (see storage/all), so the rest of the
// application depends only on the Repository interface and never imports a
// database driver directly.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"salesdw/internal/schema"
)

// Counts maps warehouse table name to a row count.
type Counts map[string]int64

// Repository is the contract every warehouse backend implements.
type Repository interface {
	// EnsureSchema applies the fixed star-schema DDL, creating tables and
	// foreign-key constraints if absent. Constraints are declarative; the
	// underlying store enforces them at load time.
	EnsureSchema(ctx context.Context) error

	// Refresh atomically replaces the warehouse contents: within one
	// transaction it deletes every table in schema.DeleteOrder (facts
	// first) and bulk-inserts the given tables in schema.LoadOrder
	// (dimensions first). On any failure the transaction rolls back and
	// the prior committed state survives. Returns rows inserted per table.
	Refresh(ctx context.Context, tables map[string]*schema.Table) (Counts, error)

	// Close releases the backend's resources.
	Close()
}

// Config carries backend-agnostic connection settings.
type Config struct {
	// Kind selects the backend: "sqlite", "postgres", "mysql", "mssql".
	Kind string
	// DSN is the backend connection string.
	DSN string
	// BatchSize bounds rows per INSERT statement during Refresh.
	BatchSize int
}

// Factory constructs a Repository for one storage kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register registers (or replaces) a Factory for the given storage kind. It
// is called from backend packages' init functions.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// New opens a Repository for cfg.Kind. Unknown kinds report the registered
// alternatives, which makes a missing blank import obvious.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered storage kinds, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
