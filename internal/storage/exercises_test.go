package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/claude/gymlog/internal/models"
)

const testSeed = `exercise_name
Bench Press
"Lat pulldown"

  Leg press
`

func TestSeedExercisesParsesCatalog(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	n, err := db.SeedExercises(ctx, strings.NewReader(testSeed))
	if err != nil {
		t.Fatalf("SeedExercises: %v", err)
	}
	if n != 3 {
		t.Fatalf("inserted = %d, want 3 (header and blank lines skipped)", n)
	}

	list, err := db.ListExercises(ctx, 0)
	if err != nil {
		t.Fatalf("ListExercises: %v", err)
	}
	var names []string
	for _, e := range list {
		names = append(names, e.Name)
		if e.MeasurementType != models.WeightReps {
			t.Errorf("%s measurement type = %s, want default weight_reps", e.Name, e.MeasurementType)
		}
	}
	// Quotes stripped, whitespace trimmed, name-ascending order.
	want := []string{"Bench Press", "Lat pulldown", "Leg press"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("names = %v, want %v", names, want)
		}
	}
}

func TestSeedExercisesOneTime(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SeedExercises(ctx, strings.NewReader(testSeed)); err != nil {
		t.Fatal(err)
	}
	n, err := db.SeedExercises(ctx, strings.NewReader(testSeed))
	if err != nil {
		t.Fatalf("second seed: %v", err)
	}
	if n != 0 {
		t.Fatalf("second seed inserted %d rows, want 0 (flag guard)", n)
	}

	list, _ := db.ListExercises(ctx, 0)
	if len(list) != 3 {
		t.Fatalf("catalog size = %d after double seed, want 3", len(list))
	}
}

func TestSeedExercisesIgnoresExistingNames(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	// A name present from a prior partial run is neither duplicated nor an
	// error on the next full pass.
	if _, err := db.sq.ExecContext(ctx,
		`INSERT INTO exercises (name, created_at) VALUES ('Bench Press', 1)`); err != nil {
		t.Fatal(err)
	}
	n, err := db.SeedExercises(ctx, strings.NewReader(testSeed))
	if err != nil {
		t.Fatalf("SeedExercises: %v", err)
	}
	if n != 2 {
		t.Fatalf("inserted = %d, want 2", n)
	}
}

func TestListExercisesLimit(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SeedExercises(ctx, strings.NewReader(testSeed)); err != nil {
		t.Fatal(err)
	}
	list, err := db.ListExercises(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
}

func TestReclassifyExercise(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	if _, err := db.SeedExercises(ctx, strings.NewReader(testSeed)); err != nil {
		t.Fatal(err)
	}

	if err := db.ReclassifyExercise(ctx, "Bench Press", models.TimeOnly); err != nil {
		t.Fatalf("ReclassifyExercise: %v", err)
	}
	mt, err := db.ResolveMeasurementType(ctx, "Bench Press")
	if err != nil {
		t.Fatal(err)
	}
	if mt != models.TimeOnly {
		t.Fatalf("measurement type = %s, want time_only", mt)
	}

	// Exact-match only; no match is a no-op, not an error.
	if err := db.ReclassifyExercise(ctx, "bench press", models.Cardio); err != nil {
		t.Fatalf("no-match reclassify: %v", err)
	}
	if mt, _ := db.ResolveMeasurementType(ctx, "Bench Press"); mt != models.TimeOnly {
		t.Fatalf("measurement type changed by case-mismatched name: %s", mt)
	}
}

func TestResolveMeasurementTypeDefault(t *testing.T) {
	db := newTestDB(t)

	mt, err := db.ResolveMeasurementType(context.Background(), "Not In Catalog")
	if err != nil {
		t.Fatal(err)
	}
	if mt != models.WeightReps {
		t.Fatalf("unmatched name resolved to %s, want weight_reps default", mt)
	}
}
