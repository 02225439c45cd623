package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
)

// A migration moves the schema from version-1 to version. The list is
// append-only: a store created at any past version reaches the current one
// by replaying only the steps it has not seen. Never remove or repurpose a
// shipped column; evolution is additive.
type migration struct {
	version int
	name    string
	apply   func(ctx context.Context, tx *sql.Tx) error
}

var migrations = []migration{
	{1, "core tables", migrateCoreTables},
	{2, "exercises.measurement_type", addColumn("exercises", "measurement_type TEXT NOT NULL DEFAULT 'weight_reps'")},
	{3, "session_exercises.position", addColumn("session_exercises", "position INTEGER NOT NULL DEFAULT 0")},
	{4, "sets.weight_unit", addColumn("sets", "weight_unit TEXT NULL")},
	{5, "sets.duration_sec", addColumn("sets", "duration_sec INTEGER NULL")},
	{6, "sets.distance_m", addColumn("sets", "distance_m REAL NULL")},
	{7, "sets.assisted", addColumn("sets", "assisted INTEGER NOT NULL DEFAULT 0")},
}

// Migrate brings the store up to the current schema version. Each pending
// step runs in its own transaction together with the version bump, so a
// failed step leaves the store at the last completed version. Applied steps
// are skipped via the version recorded in app_state; the step itself is
// never re-run, so duplicate-column classification is unnecessary.
func (db *DB) Migrate(ctx context.Context) error {
	// app_state bootstraps outside the versioned list: the runner needs it
	// to read the version it is about to manage.
	if _, err := db.sq.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS app_state (
			key TEXT PRIMARY KEY,
			value TEXT
		)`); err != nil {
		return fmt.Errorf("creating app_state table: %w", err)
	}

	current, err := db.schemaVersion(ctx)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		if m.version <= current {
			continue
		}
		if err := db.applyMigration(ctx, m); err != nil {
			return fmt.Errorf("applying migration %d (%s): %w", m.version, m.name, err)
		}
		db.log.Info("migration applied", "version", m.version, "name", m.name)
	}

	return db.applySemanticCorrections(ctx)
}

// Semantic corrections run after the versioned steps on every start. Each is
// a conditional update that only fires while the row is still in its
// pre-correction state, so repeated application is harmless and a manual
// reclassification is never overwritten. The seeded "Bike" entry is timed,
// not loaded; the catalog may be seeded after the schema reaches its final
// version, so this cannot be a one-shot versioned step.
func (db *DB) applySemanticCorrections(ctx context.Context) error {
	res, err := db.sq.ExecContext(ctx, `
		UPDATE exercises
		SET measurement_type = 'time_only'
		WHERE name = 'Bike'
		  AND (measurement_type IS NULL OR measurement_type = 'weight_reps')`)
	if err != nil {
		return fmt.Errorf("correcting bike semantics: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n > 0 {
		db.log.Info("semantic correction applied", "name", "bike is time_only")
	}
	return nil
}

func (db *DB) schemaVersion(ctx context.Context) (int, error) {
	raw, ok, err := db.AppStateGet(ctx, KeySchemaVersion)
	if err != nil {
		return 0, fmt.Errorf("reading schema version: %w", err)
	}
	if !ok {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("parsing schema version %q: %w", raw, err)
	}
	return v, nil
}

func (db *DB) applyMigration(ctx context.Context, m migration) error {
	tx, err := db.sq.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if err := m.apply(ctx, tx); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO app_state (key, value) VALUES (?, ?)`,
		KeySchemaVersion, strconv.Itoa(m.version)); err != nil {
		return fmt.Errorf("recording version: %w", err)
	}
	return tx.Commit()
}

func migrateCoreTables(ctx context.Context, tx *sql.Tx) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date TEXT NOT NULL,
			focus TEXT NOT NULL,
			notes TEXT,
			status TEXT NOT NULL DEFAULT 'active',
			created_at INTEGER NOT NULL,
			finished_at INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			created_at INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS session_exercises (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id INTEGER NOT NULL,
			exercise_name TEXT NOT NULL,
			notes TEXT,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS sets (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_exercise_id INTEGER NOT NULL,
			position INTEGER NOT NULL,
			weight REAL NULL,
			reps INTEGER NULL,
			notes TEXT NULL,
			created_at INTEGER NOT NULL,
			FOREIGN KEY (session_exercise_id) REFERENCES session_exercises(id) ON DELETE CASCADE
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sets_session_exercise_id ON sets(session_exercise_id)`,
	}
	for _, s := range stmts {
		if _, err := tx.ExecContext(ctx, s); err != nil {
			return err
		}
	}
	return nil
}

func addColumn(table, column string) func(context.Context, *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", table, column))
		return err
	}
}
