package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/claude/gymlog/internal/models"
)

// ErrEmptyExerciseName rejects additions whose name is blank after trimming.
var ErrEmptyExerciseName = errors.New("exercise name is empty")

// AddSessionExercise attaches an exercise to a session by name. The name is
// trimmed and stored as free text, not as a catalog foreign key, so the row
// outlives later catalog renames. Ad-hoc additions get position 0; template
// preload is the only caller assigning explicit positions.
func (db *DB) AddSessionExercise(ctx context.Context, sessionID int64, name string, notes *string) (int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyExerciseName
	}
	if notes != nil {
		trimmed := strings.TrimSpace(*notes)
		if trimmed == "" {
			notes = nil
		} else {
			notes = &trimmed
		}
	}

	res, err := db.sq.ExecContext(ctx,
		`INSERT INTO session_exercises (session_id, exercise_name, notes, created_at)
		 VALUES (?, ?, ?, ?)`,
		sessionID, name, notes, nowMillis())
	if err != nil {
		return 0, fmt.Errorf("inserting session exercise: %w", err)
	}
	id, err := db.insertedID(ctx, res)
	if err != nil {
		return 0, fmt.Errorf("adding session exercise: %w", err)
	}
	return id, nil
}

// DeleteSessionExercise removes one exercise from a session; its sets
// cascade with it.
func (db *DB) DeleteSessionExercise(ctx context.Context, id int64) error {
	if _, err := db.sq.ExecContext(ctx,
		`DELETE FROM session_exercises WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session exercise: %w", err)
	}
	return nil
}

// ListSessionExercises returns a session's exercises, each annotated with
// its resolved measurement type (catalog left join by exact name; unmatched
// names fall back to weight_reps). Ordered by creation descending; Position
// is exposed for callers wanting the template preload order instead.
func (db *DB) ListSessionExercises(ctx context.Context, sessionID int64) ([]models.SessionExercise, error) {
	rows, err := db.sq.QueryContext(ctx,
		`SELECT se.id, se.session_id, se.exercise_name, se.notes, se.position, se.created_at,
		        COALESCE(e.measurement_type, 'weight_reps')
		 FROM session_exercises se
		 LEFT JOIN exercises e ON e.name = se.exercise_name
		 WHERE se.session_id = ?
		 ORDER BY se.created_at DESC, se.id DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing session exercises: %w", err)
	}
	defer rows.Close()

	var result []models.SessionExercise
	for rows.Next() {
		var se models.SessionExercise
		if err := rows.Scan(&se.ID, &se.SessionID, &se.ExerciseName, &se.Notes,
			&se.Position, &se.CreatedAt, &se.MeasurementType); err != nil {
			return nil, fmt.Errorf("scanning session exercise: %w", err)
		}
		result = append(result, se)
	}
	return result, rows.Err()
}
