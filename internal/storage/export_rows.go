package storage

import (
	"context"
	"fmt"
)

// Export projections: the read-only boundary consumed by the export writer.
// Column order and sort order are part of the on-disk contract and must not
// change once shipped.

// SessionExportRow mirrors the sessions table in export column order.
type SessionExportRow struct {
	ID         int64   `json:"id"`
	Date       string  `json:"date"`
	Focus      string  `json:"focus"`
	Notes      *string `json:"notes"`
	Status     string  `json:"status"`
	CreatedAt  int64   `json:"created_at"`
	FinishedAt *int64  `json:"finished_at"`
}

// ExerciseExportRow mirrors the exercises table in export column order.
type ExerciseExportRow struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	CreatedAt       int64  `json:"created_at"`
	MeasurementType string `json:"measurement_type"`
}

// SessionExerciseExportRow mirrors the session_exercises table in export
// column order.
type SessionExerciseExportRow struct {
	ID           int64   `json:"id"`
	SessionID    int64   `json:"session_id"`
	ExerciseName string  `json:"exercise_name"`
	Notes        *string `json:"notes"`
	CreatedAt    int64   `json:"created_at"`
	Position     int64   `json:"position"`
}

// SetExportRow mirrors the sets table in export column order. Assisted
// stays the stored 0/1 flag; export does not reinterpret values.
type SetExportRow struct {
	ID                int64    `json:"id"`
	SessionExerciseID int64    `json:"session_exercise_id"`
	Position          int64    `json:"position"`
	Weight            *float64 `json:"weight"`
	WeightUnit        *string  `json:"weight_unit"`
	Reps              *int64   `json:"reps"`
	DurationSec       *int64   `json:"duration_sec"`
	DistanceM         *float64 `json:"distance_m"`
	Assisted          int64    `json:"assisted"`
	Notes             *string  `json:"notes"`
	CreatedAt         int64    `json:"created_at"`
}

// CSV header rows, in the contract's column order.
var (
	SessionExportHeaders         = []string{"id", "date", "focus", "notes", "status", "created_at", "finished_at"}
	ExerciseExportHeaders        = []string{"id", "name", "created_at", "measurement_type"}
	SessionExerciseExportHeaders = []string{"id", "session_id", "exercise_name", "notes", "created_at", "position"}
	SetExportHeaders             = []string{"id", "session_exercise_id", "position", "weight", "weight_unit", "reps", "duration_sec", "distance_m", "assisted", "notes", "created_at"}
)

// ExportSessions reads all sessions ordered by created_at, id.
func (db *DB) ExportSessions(ctx context.Context) ([]SessionExportRow, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, date, focus, notes, status, created_at, finished_at
		 FROM sessions
		 ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exporting sessions: %w", err)
	}
	defer rows.Close()

	result := []SessionExportRow{}
	for rows.Next() {
		var r SessionExportRow
		if err := rows.Scan(&r.ID, &r.Date, &r.Focus, &r.Notes, &r.Status, &r.CreatedAt, &r.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning session export row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExportExercises reads the whole catalog ordered by name, id.
func (db *DB) ExportExercises(ctx context.Context) ([]ExerciseExportRow, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, name, created_at, measurement_type
		 FROM exercises
		 ORDER BY name ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exporting exercises: %w", err)
	}
	defer rows.Close()

	result := []ExerciseExportRow{}
	for rows.Next() {
		var r ExerciseExportRow
		if err := rows.Scan(&r.ID, &r.Name, &r.CreatedAt, &r.MeasurementType); err != nil {
			return nil, fmt.Errorf("scanning exercise export row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExportSessionExercises reads all session exercises ordered by session,
// position, created_at, id.
func (db *DB) ExportSessionExercises(ctx context.Context) ([]SessionExerciseExportRow, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, session_id, exercise_name, notes, created_at, position
		 FROM session_exercises
		 ORDER BY session_id ASC, position ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exporting session exercises: %w", err)
	}
	defer rows.Close()

	result := []SessionExerciseExportRow{}
	for rows.Next() {
		var r SessionExerciseExportRow
		if err := rows.Scan(&r.ID, &r.SessionID, &r.ExerciseName, &r.Notes, &r.CreatedAt, &r.Position); err != nil {
			return nil, fmt.Errorf("scanning session exercise export row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ExportSets reads all sets ordered by owner, position, created_at, id.
func (db *DB) ExportSets(ctx context.Context) ([]SetExportRow, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, session_exercise_id, position, weight, weight_unit,
		        reps, duration_sec, distance_m, assisted, notes, created_at
		 FROM sets
		 ORDER BY session_exercise_id ASC, position ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("exporting sets: %w", err)
	}
	defer rows.Close()

	result := []SetExportRow{}
	for rows.Next() {
		var r SetExportRow
		if err := rows.Scan(&r.ID, &r.SessionExerciseID, &r.Position, &r.Weight, &r.WeightUnit,
			&r.Reps, &r.DurationSec, &r.DistanceM, &r.Assisted, &r.Notes, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning set export row: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
