package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// app_state keys. The table holds a small fixed set of process-wide durable
// flags; entries are replaced, never accumulated.
const (
	KeyActiveSession = "active_session_id"
	KeySeedExercises = "seed_exercises_v1"
	KeySchemaVersion = "schema_version"
)

// AppStateGet returns the value for key. The second result is false when the
// key is absent.
func (db *DB) AppStateGet(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.sq.QueryRowContext(ctx,
		`SELECT value FROM app_state WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("reading app state %q: %w", key, err)
	}
	return value, true, nil
}

// AppStateSet inserts or replaces the value for key.
func (db *DB) AppStateSet(ctx context.Context, key, value string) error {
	if _, err := db.sq.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`, key, value); err != nil {
		return fmt.Errorf("writing app state %q: %w", key, err)
	}
	return nil
}

// AppStateClear deletes key. Clearing an absent key is not an error.
func (db *DB) AppStateClear(ctx context.Context, key string) error {
	if _, err := db.sq.ExecContext(ctx,
		`DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("clearing app state %q: %w", key, err)
	}
	return nil
}
