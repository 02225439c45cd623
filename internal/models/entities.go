package models

// Session status values. A session is created active and finishes exactly
// once; there is no transition back.
const (
	StatusActive   = "active"
	StatusFinished = "finished"
)

// Session is one workout occasion.
type Session struct {
	ID         int64
	Date       string // ISO calendar date (YYYY-MM-DD)
	Focus      string
	Notes      *string
	Status     string
	CreatedAt  int64 // epoch millis
	FinishedAt *int64
}

// Exercise is a named movement in the catalog.
type Exercise struct {
	ID              int64
	Name            string
	MeasurementType MeasurementType
	CreatedAt       int64
}

// SessionExercise is one exercise instance attached to one session.
// ExerciseName is a point-in-time snapshot, not a foreign key: the row keeps
// its name even if the catalog entry is later renamed or removed.
// MeasurementType is a read-side annotation resolved against the catalog by
// exact name match; unmatched names fall back to WeightReps.
type SessionExercise struct {
	ID              int64
	SessionID       int64
	ExerciseName    string
	Notes           *string
	Position        int64
	CreatedAt       int64
	MeasurementType MeasurementType
}

// Set is one recorded performance unit under a SessionExercise. All columns
// are stored regardless of the owner's measurement type; which ones are
// meaningful is decided by MeasurementType.Uses.
type Set struct {
	ID                int64
	SessionExerciseID int64
	Position          int64
	Weight            *float64
	WeightUnit        *string
	Reps              *int64
	DurationSec       *int64
	DistanceM         *float64
	Assisted          bool
	Notes             *string
	CreatedAt         int64
}
