package storage

import (
	"context"
	"testing"
	"time"

	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/templates"
)

func TestCreateSessionDefaults(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreateSession(ctx, "", "  ", nil)
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	s, err := db.GetSession(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if s == nil {
		t.Fatal("session not found after create")
	}
	if s.Date != time.Now().Format("2006-01-02") {
		t.Errorf("date = %q, want today", s.Date)
	}
	if s.Focus != "other" {
		t.Errorf("focus = %q, want other", s.Focus)
	}
	if s.Status != models.StatusActive {
		t.Errorf("status = %q, want active", s.Status)
	}
	if s.FinishedAt != nil {
		t.Error("finished_at set on a fresh session")
	}
}

func TestCreateSessionSetsActivePointer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, err := db.CreateSession(ctx, "2026-01-01", "push", nil)
	if err != nil {
		t.Fatal(err)
	}
	active, ok, err := db.ActiveSessionID(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !ok || active != id {
		t.Fatalf("active = %d ok=%v, want %d", active, ok, id)
	}
}

// Starting a new session supersedes tracking of the previous active one,
// even when it was never finished. The superseded session keeps its own
// active status; only the pointer moves.
func TestCreateSessionOverwritesActivePointer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	first, _ := db.CreateSession(ctx, "", "push", nil)
	second, err := db.CreateSession(ctx, "", "pull", nil)
	if err != nil {
		t.Fatal(err)
	}

	active, ok, _ := db.ActiveSessionID(ctx)
	if !ok || active != second {
		t.Fatalf("active = %d, want %d", active, second)
	}
	s, _ := db.GetSession(ctx, first)
	if s.Status != models.StatusActive {
		t.Fatalf("superseded session status = %q, want still active", s.Status)
	}
}

func TestFinishSession(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, _ := db.CreateSession(ctx, "", "push", nil)
	if err := db.FinishSession(ctx, id); err != nil {
		t.Fatalf("FinishSession: %v", err)
	}

	s, _ := db.GetSession(ctx, id)
	if s.Status != models.StatusFinished {
		t.Errorf("status = %q, want finished", s.Status)
	}
	if s.FinishedAt == nil {
		t.Error("finished_at not stamped")
	}
	if _, ok, _ := db.ActiveSessionID(ctx); ok {
		t.Error("active pointer not cleared")
	}

	// Terminal: a second finish must not revert the status.
	if err := db.FinishSession(ctx, id); err != nil {
		t.Fatalf("second finish: %v", err)
	}
	s, _ = db.GetSession(ctx, id)
	if s.Status != models.StatusFinished || s.FinishedAt == nil {
		t.Error("second finish disturbed terminal state")
	}
}

func TestFinishNonActiveSessionKeepsPointer(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	old, _ := db.CreateSession(ctx, "", "push", nil)
	current, _ := db.CreateSession(ctx, "", "pull", nil)

	if err := db.FinishSession(ctx, old); err != nil {
		t.Fatal(err)
	}
	active, ok, _ := db.ActiveSessionID(ctx)
	if !ok || active != current {
		t.Fatalf("active = %d ok=%v, want %d untouched", active, ok, current)
	}
}

func TestDeleteSessionCascades(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, _ := db.CreateSession(ctx, "", "push", nil)
	seID, err := db.AddSessionExercise(ctx, id, "Bench Press", nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertSet(ctx, seID, models.SetInput{Weight: ptr(100.0), Reps: ptr(int64(5))}); err != nil {
		t.Fatal(err)
	}

	if err := db.DeleteSession(ctx, id); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}

	if s, _ := db.GetSession(ctx, id); s != nil {
		t.Error("session still present")
	}
	if ses, _ := db.ListSessionExercises(ctx, id); len(ses) != 0 {
		t.Errorf("%d session exercises survived the cascade", len(ses))
	}
	if sets, _ := db.ListSets(ctx, seID); len(sets) != 0 {
		t.Errorf("%d sets survived the cascade", len(sets))
	}
	if _, ok, _ := db.ActiveSessionID(ctx); ok {
		t.Error("active pointer not released on delete")
	}
}

func TestGetSessionMissing(t *testing.T) {
	db := newTestDB(t)

	s, err := db.GetSession(context.Background(), 9999)
	if err != nil {
		t.Fatalf("missing session lookup errored: %v", err)
	}
	if s != nil {
		t.Fatal("expected nil for missing session")
	}
}

func TestListSessionsOrder(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	a, _ := db.CreateSession(ctx, "2026-01-01", "push", nil)
	b, _ := db.CreateSession(ctx, "2026-01-02", "pull", nil)

	sessions, err := db.ListSessions(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 2 {
		t.Fatalf("len = %d, want 2", len(sessions))
	}
	if sessions[0].ID != b || sessions[1].ID != a {
		t.Fatalf("order = [%d %d], want newest first [%d %d]", sessions[0].ID, sessions[1].ID, b, a)
	}
}

func TestPreloadTemplate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	lib := templates.Default()

	id, _ := db.CreateSession(ctx, "", "push", nil)
	n, err := db.PreloadTemplate(ctx, id, "push", lib)
	if err != nil {
		t.Fatalf("PreloadTemplate: %v", err)
	}
	tpl, _ := lib.Lookup("push")
	if want := len(tpl.Anchors) + len(tpl.Suggested); n != want {
		t.Fatalf("inserted = %d, want %d", n, want)
	}

	rows, err := db.ExportSessionExercises(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Anchors first, then suggestions, positions 0..n-1 in list order.
	want := append(append([]string{}, tpl.Anchors...), tpl.Suggested...)
	if len(rows) != len(want) {
		t.Fatalf("rows = %d, want %d", len(rows), len(want))
	}
	for i, r := range rows {
		if r.Position != int64(i) {
			t.Errorf("row %d position = %d, want %d", i, r.Position, i)
		}
		if r.ExerciseName != want[i] {
			t.Errorf("row %d name = %q, want %q", i, r.ExerciseName, want[i])
		}
	}
}

func TestPreloadTemplateUnknownFocus(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	id, _ := db.CreateSession(ctx, "", "whatever", nil)
	n, err := db.PreloadTemplate(ctx, id, "whatever", templates.Default())
	if err != nil {
		t.Fatalf("unknown focus errored: %v", err)
	}
	if n != 0 {
		t.Fatalf("inserted = %d for unknown focus, want 0", n)
	}
}
