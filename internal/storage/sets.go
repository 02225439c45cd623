package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claude/gymlog/internal/models"
)

const setColumns = `id, session_exercise_id, position, weight, weight_unit,
	reps, duration_sec, distance_m, assisted, notes, created_at`

// InsertSet records one set under a session exercise. The position is
// 1 + max(existing positions) for the owner, starting at 1; positions are
// never renumbered after deletion, so they stay a stable chronological
// ordering. Position computation and insert share one transaction so an
// interleaved write cannot produce a duplicate position. Every field is
// stored regardless of the owner's measurement type. Returns the fully
// materialized row so callers can render it without a follow-up read.
func (db *DB) InsertSet(ctx context.Context, sessionExerciseID int64, in models.SetInput) (*models.Set, error) {
	tx, err := db.sq.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var position int64
	if err := tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(position), 0) + 1 FROM sets WHERE session_exercise_id = ?`,
		sessionExerciseID).Scan(&position); err != nil {
		return nil, fmt.Errorf("computing next set position: %w", err)
	}

	assisted := 0
	if in.Assisted {
		assisted = 1
	}
	now := nowMillis()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO sets (session_exercise_id, position, weight, weight_unit,
		   reps, duration_sec, distance_m, assisted, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sessionExerciseID, position, in.Weight, in.WeightUnit,
		in.Reps, in.DurationSec, in.DistanceM, assisted, in.Notes, now)
	if err != nil {
		return nil, fmt.Errorf("inserting set: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil || id <= 0 {
		if err := tx.QueryRowContext(ctx, `SELECT last_insert_rowid()`).Scan(&id); err != nil {
			return nil, fmt.Errorf("querying last insert id: %w", err)
		}
		if id <= 0 {
			return nil, ErrNoInsertID
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing set: %w", err)
	}

	return &models.Set{
		ID:                id,
		SessionExerciseID: sessionExerciseID,
		Position:          position,
		Weight:            in.Weight,
		WeightUnit:        in.WeightUnit,
		Reps:              in.Reps,
		DurationSec:       in.DurationSec,
		DistanceM:         in.DistanceM,
		Assisted:          in.Assisted,
		Notes:             in.Notes,
		CreatedAt:         now,
	}, nil
}

// ListSets returns a session exercise's sets ordered by position, with id
// as a tie-break against positions inserted out of order.
func (db *DB) ListSets(ctx context.Context, sessionExerciseID int64) ([]models.Set, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT `+setColumns+`
		 FROM sets
		 WHERE session_exercise_id = ?
		 ORDER BY position ASC, id ASC`, sessionExerciseID)
	if err != nil {
		return nil, fmt.Errorf("listing sets: %w", err)
	}
	defer rows.Close()

	var result []models.Set
	for rows.Next() {
		s, err := scanSet(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}
	return result, rows.Err()
}

// DeleteSet removes one set by id. Remaining positions are untouched.
func (db *DB) DeleteSet(ctx context.Context, id int64) error {
	if _, err := db.sq.ExecContext(ctx,
		`DELETE FROM sets WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting set: %w", err)
	}
	return nil
}

// LatestSetFor returns the most recently recorded set under an exercise
// name, across all sessions, or nil when none exists. Scoping by name keeps
// history across sessions; display code uses it to suggest defaults.
func (db *DB) LatestSetFor(ctx context.Context, exerciseName string) (*models.Set, error) {
	row := db.sq.QueryRowContext(ctx,
		`SELECT s.id, s.session_exercise_id, s.position, s.weight, s.weight_unit,
		        s.reps, s.duration_sec, s.distance_m, s.assisted, s.notes, s.created_at
		 FROM sets s
		 JOIN session_exercises se ON se.id = s.session_exercise_id
		 WHERE se.exercise_name = ?
		 ORDER BY s.created_at DESC, s.id DESC
		 LIMIT 1`, exerciseName)
	s, err := scanSet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying latest set for %q: %w", exerciseName, err)
	}
	return s, nil
}

// PersonalBest returns the maximum weight ever recorded under an exercise
// name, across all sessions, or nil when no weighted set exists.
func (db *DB) PersonalBest(ctx context.Context, exerciseName string) (*float64, error) {
	var best *float64
	err := db.sq.QueryRowContext(ctx,
		`SELECT MAX(s.weight)
		 FROM sets s
		 JOIN session_exercises se ON se.id = s.session_exercise_id
		 WHERE se.exercise_name = ? AND s.weight IS NOT NULL`, exerciseName).
		Scan(&best)
	if err != nil {
		return nil, fmt.Errorf("querying personal best for %q: %w", exerciseName, err)
	}
	return best, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSet(row rowScanner) (*models.Set, error) {
	var s models.Set
	if err := row.Scan(&s.ID, &s.SessionExerciseID, &s.Position, &s.Weight, &s.WeightUnit,
		&s.Reps, &s.DurationSec, &s.DistanceM, &s.Assisted, &s.Notes, &s.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning set: %w", err)
	}
	return &s, nil
}
