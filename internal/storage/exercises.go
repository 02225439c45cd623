package storage

import (
	"bufio"
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/claude/gymlog/internal/models"
)

// Default catalog shipped with the binary. One header line, one exercise
// name per line; names may be double-quoted.
//
//go:embed exercises_seed.csv
var defaultSeedCSV string

const defaultListLimit = 500

// SeedExercises bulk-loads the catalog from r. The load is one-time: it is
// guarded by the seed flag, and each insert is INSERT OR IGNORE so a name
// already present from a prior partial run is neither duplicated nor an
// error. The flag is set only after the full pass completes; on failure it
// stays unset and a retry re-attempts the whole seed. Returns the number of
// rows inserted (0 when the flag is already set).
func (db *DB) SeedExercises(ctx context.Context, r io.Reader) (int, error) {
	if _, seeded, err := db.AppStateGet(ctx, KeySeedExercises); err != nil {
		return 0, err
	} else if seeded {
		db.log.Debug("exercise seed already applied")
		return 0, nil
	}

	now := nowMillis()
	inserted := 0
	sc := bufio.NewScanner(r)
	header := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		name := strings.TrimSpace(strings.Trim(line, `"`))
		if name == "" {
			continue
		}
		res, err := db.sq.ExecContext(ctx,
			`INSERT OR IGNORE INTO exercises (name, created_at) VALUES (?, ?)`,
			name, now)
		if err != nil {
			return inserted, fmt.Errorf("seeding exercise %q: %w", name, err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			inserted++
		}
	}
	if err := sc.Err(); err != nil {
		return inserted, fmt.Errorf("reading seed catalog: %w", err)
	}

	if err := db.AppStateSet(ctx, KeySeedExercises, "1"); err != nil {
		return inserted, err
	}
	db.log.Info("exercise catalog seeded", "inserted", inserted)
	return inserted, nil
}

// SeedExercisesDefault seeds from the embedded catalog.
func (db *DB) SeedExercisesDefault(ctx context.Context) (int, error) {
	return db.SeedExercises(ctx, strings.NewReader(defaultSeedCSV))
}

// ListExercises returns catalog entries ordered by name. A non-positive
// limit falls back to the default of 500.
func (db *DB) ListExercises(ctx context.Context, limit int) ([]models.Exercise, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, name, measurement_type, created_at
		 FROM exercises
		 ORDER BY name ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing exercises: %w", err)
	}
	defer rows.Close()

	var result []models.Exercise
	for rows.Next() {
		var e models.Exercise
		if err := rows.Scan(&e.ID, &e.Name, &e.MeasurementType, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning exercise: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// ReclassifyExercise updates the measurement type for all catalog rows
// matching name exactly. No rows matched is a no-op, not an error, and the
// update is idempotent.
func (db *DB) ReclassifyExercise(ctx context.Context, name string, mt models.MeasurementType) error {
	if _, err := db.sq.ExecContext(ctx,
		`UPDATE exercises SET measurement_type = ? WHERE name = ?`,
		string(mt), name); err != nil {
		return fmt.Errorf("reclassifying exercise %q: %w", name, err)
	}
	return nil
}

// ResolveMeasurementType looks up the catalog entry for an exercise name by
// exact match. Names absent from the catalog resolve to the WeightReps
// default.
func (db *DB) ResolveMeasurementType(ctx context.Context, name string) (models.MeasurementType, error) {
	var raw string
	err := db.sq.QueryRowContext(ctx,
		`SELECT measurement_type FROM exercises WHERE name = ?`, name).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return models.WeightReps, nil
	}
	if err != nil {
		return "", fmt.Errorf("resolving measurement type for %q: %w", name, err)
	}
	mt, err := models.ParseMeasurementType(raw)
	if err != nil {
		return models.WeightReps, nil
	}
	return mt, nil
}
