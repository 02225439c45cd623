package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/claude/gymlog/internal/models"
)

func newTestSessionExercise(t *testing.T, db *DB, name string) int64 {
	t.Helper()
	ctx := context.Background()
	sessionID, err := db.CreateSession(ctx, "2026-01-01", "push", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	id, err := db.AddSessionExercise(ctx, sessionID, name, nil)
	if err != nil {
		t.Fatalf("AddSessionExercise: %v", err)
	}
	return id
}

// Positions run 1, 2, 3, … in call order and are never reused after a
// delete, so the chronological ordering survives deletions.
func TestInsertSetPositions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seID := newTestSessionExercise(t, db, "Bench Press")

	first, err := db.InsertSet(ctx, seID, models.SetInput{Weight: ptr(100.0), Reps: ptr(int64(5))})
	if err != nil {
		t.Fatalf("InsertSet: %v", err)
	}
	if first.Position != 1 {
		t.Fatalf("first position = %d, want 1", first.Position)
	}
	if first.Weight == nil || *first.Weight != 100 || first.Reps == nil || *first.Reps != 5 {
		t.Fatalf("materialized row lost fields: %+v", first)
	}

	second, _ := db.InsertSet(ctx, seID, models.SetInput{Weight: ptr(100.0), Reps: ptr(int64(5))})
	if second.Position != 2 {
		t.Fatalf("second position = %d, want 2", second.Position)
	}

	if err := db.DeleteSet(ctx, first.ID); err != nil {
		t.Fatalf("DeleteSet: %v", err)
	}
	third, _ := db.InsertSet(ctx, seID, models.SetInput{Weight: ptr(105.0), Reps: ptr(int64(3))})
	if third.Position != 3 {
		t.Fatalf("position after delete = %d, want 3 (no reuse)", third.Position)
	}
}

func TestInsertSetPerOwnerPositions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := newTestSessionExercise(t, db, "Bench Press")
	b := newTestSessionExercise(t, db, "Lat pulldown")

	if s, _ := db.InsertSet(ctx, a, models.SetInput{}); s.Position != 1 {
		t.Fatalf("a first position = %d", s.Position)
	}
	if s, _ := db.InsertSet(ctx, b, models.SetInput{}); s.Position != 1 {
		t.Fatalf("b starts at %d, want its own 1", s.Position)
	}
}

// The ledger stores all columns regardless of measurement type; a timed set
// with no weight or reps is not rejected.
func TestInsertSetTimeOnly(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seID := newTestSessionExercise(t, db, "Bike")

	set, err := db.InsertSet(ctx, seID, models.SetInput{DurationSec: ptr(int64(600))})
	if err != nil {
		t.Fatalf("InsertSet: %v", err)
	}
	if set.DurationSec == nil || *set.DurationSec != 600 {
		t.Fatalf("duration = %v, want 600", set.DurationSec)
	}
	if set.Weight != nil || set.Reps != nil {
		t.Fatal("weight/reps not null on a time-only set")
	}

	stored, err := db.ListSets(ctx, seID)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 1 {
		t.Fatalf("stored sets = %d", len(stored))
	}
	if stored[0].Weight != nil || stored[0].Reps != nil {
		t.Fatal("nulls not preserved in storage")
	}
}

func TestListSetsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seID := newTestSessionExercise(t, db, "Bench Press")

	for i := 0; i < 3; i++ {
		if _, err := db.InsertSet(ctx, seID, models.SetInput{}); err != nil {
			t.Fatal(err)
		}
	}
	sets, err := db.ListSets(ctx, seID)
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range sets {
		if s.Position != int64(i+1) {
			t.Fatalf("set %d position = %d, want %d", i, s.Position, i+1)
		}
	}
}

func TestLatestSetForSpansSessions(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// Two sessions, same exercise name: history is name-scoped.
	a := newTestSessionExercise(t, db, "Bench Press")
	if _, err := db.InsertSet(ctx, a, models.SetInput{Weight: ptr(90.0), Reps: ptr(int64(8))}); err != nil {
		t.Fatal(err)
	}
	b := newTestSessionExercise(t, db, "Bench Press")
	latest, err := db.InsertSet(ctx, b, models.SetInput{Weight: ptr(100.0), Reps: ptr(int64(5))})
	if err != nil {
		t.Fatal(err)
	}

	got, err := db.LatestSetFor(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("LatestSetFor: %v", err)
	}
	if got == nil || got.ID != latest.ID {
		t.Fatalf("latest = %+v, want id %d", got, latest.ID)
	}

	none, err := db.LatestSetFor(ctx, "Never Logged")
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatal("expected nil for never-logged exercise")
	}
}

func TestPersonalBest(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a := newTestSessionExercise(t, db, "Bench Press")
	b := newTestSessionExercise(t, db, "Bench Press")
	db.InsertSet(ctx, a, models.SetInput{Weight: ptr(90.0), Reps: ptr(int64(8))})
	db.InsertSet(ctx, b, models.SetInput{Weight: ptr(105.0), Reps: ptr(int64(3))})
	db.InsertSet(ctx, b, models.SetInput{Reps: ptr(int64(10))}) // bodyweight, no weight

	best, err := db.PersonalBest(ctx, "Bench Press")
	if err != nil {
		t.Fatalf("PersonalBest: %v", err)
	}
	if best == nil || *best != 105 {
		t.Fatalf("best = %v, want 105", best)
	}

	none, err := db.PersonalBest(ctx, "Never Logged")
	if err != nil {
		t.Fatal(err)
	}
	if none != nil {
		t.Fatalf("best for never-logged = %v, want nil", none)
	}
}

func TestAddSessionExerciseRejectsBlankName(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	sessionID, _ := db.CreateSession(ctx, "", "push", nil)

	if _, err := db.AddSessionExercise(ctx, sessionID, "   ", nil); !errors.Is(err, ErrEmptyExerciseName) {
		t.Fatalf("err = %v, want ErrEmptyExerciseName", err)
	}
}

func TestListSessionExercisesAnnotation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SeedExercisesDefault(ctx); err != nil {
		t.Fatal(err)
	}
	if err := db.ReclassifyExercise(ctx, "Bike", models.TimeOnly); err != nil {
		t.Fatal(err)
	}

	sessionID, _ := db.CreateSession(ctx, "", "cardio", nil)
	db.AddSessionExercise(ctx, sessionID, "Bike", nil)
	db.AddSessionExercise(ctx, sessionID, "Not In Catalog", nil)

	list, err := db.ListSessionExercises(ctx, sessionID)
	if err != nil {
		t.Fatal(err)
	}
	byName := map[string]models.MeasurementType{}
	for _, se := range list {
		byName[se.ExerciseName] = se.MeasurementType
	}
	if byName["Bike"] != models.TimeOnly {
		t.Errorf("Bike annotated as %s, want time_only", byName["Bike"])
	}
	if byName["Not In Catalog"] != models.WeightReps {
		t.Errorf("unmatched name annotated as %s, want weight_reps", byName["Not In Catalog"])
	}
}

func TestDeleteSessionExerciseCascadesSets(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	seID := newTestSessionExercise(t, db, "Bench Press")

	if _, err := db.InsertSet(ctx, seID, models.SetInput{Weight: ptr(60.0)}); err != nil {
		t.Fatal(err)
	}
	if err := db.DeleteSessionExercise(ctx, seID); err != nil {
		t.Fatalf("DeleteSessionExercise: %v", err)
	}
	sets, err := db.ListSets(ctx, seID)
	if err != nil {
		t.Fatal(err)
	}
	if len(sets) != 0 {
		t.Fatalf("%d sets survived exercise removal", len(sets))
	}
}
