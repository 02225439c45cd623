package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite handle and provides repository methods.
type DB struct {
	sq  *sql.DB
	log *slog.Logger
}

// Open opens (or creates) the SQLite database at path and configures it for
// use. It enables WAL mode and foreign key enforcement; cascades on session
// and session-exercise deletion depend on the latter.
func Open(path string, log *slog.Logger) (*DB, error) {
	if log == nil {
		log = slog.Default()
	}

	sq, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	ctx := context.Background()
	if _, err := sq.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		sq.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := sq.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		sq.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	// Single writer by design: one logical session of use at a time.
	sq.SetMaxOpenConns(1)

	if err := sq.PingContext(ctx); err != nil {
		sq.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{sq: sq, log: log}, nil
}

// Close closes the underlying handle.
func (db *DB) Close() error {
	return db.sq.Close()
}

var (
	sharedMu sync.Mutex
	shared   *DB
)

// Init opens the process-wide handle, runs migrations, and caches the
// result. A second call observes the cached handle and performs no
// reinitialization work.
func Init(ctx context.Context, path string, log *slog.Logger) (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared != nil {
		return shared, nil
	}

	db, err := Open(path, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}

	shared = db
	return shared, nil
}

// Handle returns the cached process-wide handle.
func Handle() (*DB, error) {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	return shared, nil
}

// Reset closes and forgets the cached handle. Teardown hook for tests; each
// test run gets a fresh store.
func Reset() {
	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared != nil {
		shared.Close()
		shared = nil
	}
}

func nowMillis() int64 {
	return time.Now().UnixMilli()
}
