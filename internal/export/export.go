// Package export writes a faithful dump of the four persistent entities:
// per-table CSV files plus a single JSON document, in fixed column and sort
// orders so a re-import reproduces identical row sets. Values are exported
// verbatim — no unit conversion, no timezone shifting.
package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/claude/gymlog/internal/storage"
)

const formatVersion = 1

// Result describes one completed export.
type Result struct {
	ExportID uuid.UUID
	Dir      string

	Sessions         int
	Exercises        int
	SessionExercises int
	Sets             int
}

// Exporter dumps the store to files.
type Exporter struct {
	db  *storage.DB
	log *slog.Logger
}

// New creates an Exporter.
func New(db *storage.DB, log *slog.Logger) *Exporter {
	if log == nil {
		log = slog.Default()
	}
	return &Exporter{db: db, log: log}
}

type manifest struct {
	ExportFormatVersion int            `json:"export_format_version"`
	ExportID            string         `json:"export_id"`
	ExportedAt          string         `json:"exported_at"`
	DBName              string         `json:"db_name"`
	Tables              manifestTables `json:"tables"`
}

type manifestTables struct {
	Sessions         []storage.SessionExportRow         `json:"sessions"`
	Exercises        []storage.ExerciseExportRow        `json:"exercises"`
	SessionExercises []storage.SessionExerciseExportRow `json:"session_exercises"`
	Sets             []storage.SetExportRow             `json:"sets"`
}

// ExportAll dumps every table into a timestamped directory under baseDir and
// returns where it wrote and how much.
func (e *Exporter) ExportAll(ctx context.Context, baseDir string) (*Result, error) {
	sessions, err := e.db.ExportSessions(ctx)
	if err != nil {
		return nil, err
	}
	exercises, err := e.db.ExportExercises(ctx)
	if err != nil {
		return nil, err
	}
	sessionExercises, err := e.db.ExportSessionExercises(ctx)
	if err != nil {
		return nil, err
	}
	sets, err := e.db.ExportSets(ctx)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(baseDir, "gym_log_"+time.Now().Format("2006-01-02_150405"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	if err := writeCSV(filepath.Join(dir, "sessions.csv"), storage.SessionExportHeaders, sessionCSVRows(sessions)); err != nil {
		return nil, err
	}
	if err := writeCSV(filepath.Join(dir, "exercises.csv"), storage.ExerciseExportHeaders, exerciseCSVRows(exercises)); err != nil {
		return nil, err
	}
	if err := writeCSV(filepath.Join(dir, "session_exercises.csv"), storage.SessionExerciseExportHeaders, sessionExerciseCSVRows(sessionExercises)); err != nil {
		return nil, err
	}
	if err := writeCSV(filepath.Join(dir, "sets.csv"), storage.SetExportHeaders, setCSVRows(sets)); err != nil {
		return nil, err
	}

	res := &Result{
		ExportID:         uuid.New(),
		Dir:              dir,
		Sessions:         len(sessions),
		Exercises:        len(exercises),
		SessionExercises: len(sessionExercises),
		Sets:             len(sets),
	}

	m := manifest{
		ExportFormatVersion: formatVersion,
		ExportID:            res.ExportID.String(),
		ExportedAt:          time.Now().UTC().Format(time.RFC3339),
		DBName:              "gym_log",
		Tables: manifestTables{
			Sessions:         sessions,
			Exercises:        exercises,
			SessionExercises: sessionExercises,
			Sets:             sets,
		},
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "export.json"), data, 0o644); err != nil {
		return nil, fmt.Errorf("writing export json: %w", err)
	}

	e.log.Info("export complete", "dir", dir,
		"sessions", res.Sessions, "exercises", res.Exercises,
		"session_exercises", res.SessionExercises, "sets", res.Sets)
	return res, nil
}

func writeCSV(path string, headers []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(headers); err != nil {
		return fmt.Errorf("writing %s headers: %w", filepath.Base(path), err)
	}
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing %s row: %w", filepath.Base(path), err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// CSV cell encoding: NULL becomes the empty field, numbers keep their
// shortest round-trip form.

func cellI64(v int64) string { return strconv.FormatInt(v, 10) }

func cellOptI64(v *int64) string {
	if v == nil {
		return ""
	}
	return cellI64(*v)
}

func cellOptF64(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func cellOptStr(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func sessionCSVRows(rows []storage.SessionExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			cellI64(r.ID), r.Date, r.Focus, cellOptStr(r.Notes), r.Status,
			cellI64(r.CreatedAt), cellOptI64(r.FinishedAt),
		})
	}
	return out
}

func exerciseCSVRows(rows []storage.ExerciseExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{cellI64(r.ID), r.Name, cellI64(r.CreatedAt), r.MeasurementType})
	}
	return out
}

func sessionExerciseCSVRows(rows []storage.SessionExerciseExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			cellI64(r.ID), cellI64(r.SessionID), r.ExerciseName, cellOptStr(r.Notes),
			cellI64(r.CreatedAt), cellI64(r.Position),
		})
	}
	return out
}

func setCSVRows(rows []storage.SetExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, []string{
			cellI64(r.ID), cellI64(r.SessionExerciseID), cellI64(r.Position),
			cellOptF64(r.Weight), cellOptStr(r.WeightUnit), cellOptI64(r.Reps),
			cellOptI64(r.DurationSec), cellOptF64(r.DistanceM), cellI64(r.Assisted),
			cellOptStr(r.Notes), cellI64(r.CreatedAt),
		})
	}
	return out
}
