package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymlog/internal/models"
	"github.com/claude/gymlog/internal/templates"
)

// ErrNoInsertID is returned when neither the insert result nor the
// last_insert_rowid() fallback yields a generated id. The operation fails
// explicitly rather than returning a guessed id.
var ErrNoInsertID = errors.New("could not determine inserted row id")

// CreateSession inserts a new active session and points the active-session
// state at it. A blank date defaults to today's ISO calendar date, a blank
// focus to "other". Starting a new session overwrites any prior active
// pointer even if that session was never finished; the previous session
// stays active in its own row but is no longer tracked.
func (db *DB) CreateSession(ctx context.Context, date, focus string, notes *string) (int64, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	focus = strings.TrimSpace(focus)
	if focus == "" {
		focus = "other"
	}

	res, err := db.sq.ExecContext(ctx,
		`INSERT INTO sessions (date, focus, notes, status, created_at)
		 VALUES (?, ?, ?, 'active', ?)`,
		date, focus, notes, nowMillis())
	if err != nil {
		return 0, fmt.Errorf("inserting session: %w", err)
	}

	id, err := db.insertedID(ctx, res)
	if err != nil {
		return 0, fmt.Errorf("creating session: %w", err)
	}

	if err := db.AppStateSet(ctx, KeyActiveSession, strconv.FormatInt(id, 10)); err != nil {
		return 0, err
	}
	return id, nil
}

// insertedID extracts the generated id from an insert result, falling back
// to last_insert_rowid() when the driver does not report one.
func (db *DB) insertedID(ctx context.Context, res sql.Result) (int64, error) {
	if id, err := res.LastInsertId(); err == nil && id > 0 {
		return id, nil
	}
	var id int64
	if err := db.sq.QueryRowContext(ctx, `SELECT last_insert_rowid()`).Scan(&id); err != nil {
		return 0, fmt.Errorf("querying last insert id: %w", err)
	}
	if id <= 0 {
		return 0, ErrNoInsertID
	}
	return id, nil
}

// FinishSession marks a session finished and stamps finished_at. Finishing
// is independent of the active pointer: the pointer is cleared only when it
// references this session. The transition is terminal; nothing reverts a
// finished session to active.
func (db *DB) FinishSession(ctx context.Context, id int64) error {
	if _, err := db.sq.ExecContext(ctx,
		`UPDATE sessions SET status = 'finished', finished_at = ? WHERE id = ?`,
		nowMillis(), id); err != nil {
		return fmt.Errorf("finishing session: %w", err)
	}
	return db.releaseActivePointer(ctx, id)
}

// DeleteSession removes a session. Its session exercises and their sets go
// with it via foreign key cascade. The active pointer is released if this
// session held it.
func (db *DB) DeleteSession(ctx context.Context, id int64) error {
	if _, err := db.sq.ExecContext(ctx,
		`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return db.releaseActivePointer(ctx, id)
}

func (db *DB) releaseActivePointer(ctx context.Context, id int64) error {
	active, ok, err := db.ActiveSessionID(ctx)
	if err != nil {
		return err
	}
	if ok && active == id {
		return db.AppStateClear(ctx, KeyActiveSession)
	}
	return nil
}

// ActiveSessionID returns the session id the active pointer references. The
// second result is false when no session is tracked.
func (db *DB) ActiveSessionID(ctx context.Context) (int64, bool, error) {
	raw, ok, err := db.AppStateGet(ctx, KeyActiveSession)
	if err != nil || !ok {
		return 0, false, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parsing active session id %q: %w", raw, err)
	}
	return id, true, nil
}

// GetSession returns a session by id, or nil when it does not exist.
func (db *DB) GetSession(ctx context.Context, id int64) (*models.Session, error) {
	var s models.Session
	err := db.sq.QueryRowContext(ctx,
		`SELECT id, date, focus, notes, status, created_at, finished_at
		 FROM sessions WHERE id = ?`, id).
		Scan(&s.ID, &s.Date, &s.Focus, &s.Notes, &s.Status, &s.CreatedAt, &s.FinishedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}
	return &s, nil
}

// ListSessions returns sessions ordered by creation descending.
func (db *DB) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.sq.QueryContext(ctx,
		`SELECT id, date, focus, notes, status, created_at, finished_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer rows.Close()

	var result []models.Session
	for rows.Next() {
		var s models.Session
		if err := rows.Scan(&s.ID, &s.Date, &s.Focus, &s.Notes, &s.Status, &s.CreatedAt, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// PreloadTemplate inserts the template exercises for a focus into a session:
// anchors first, then suggestions, with positions 0, 1, 2, … in list order.
// A focus without a template is a no-op. Names are inserted as given;
// template data is expected to use canonical catalog names, so no alias
// resolution happens here. Returns the number of exercises inserted.
func (db *DB) PreloadTemplate(ctx context.Context, sessionID int64, focus string, lib *templates.Library) (int, error) {
	tpl, ok := lib.Lookup(focus)
	if !ok {
		db.log.Debug("no template for focus", "focus", focus)
		return 0, nil
	}

	all := make([]string, 0, len(tpl.Anchors)+len(tpl.Suggested))
	all = append(all, tpl.Anchors...)
	all = append(all, tpl.Suggested...)

	for position, name := range all {
		if _, err := db.sq.ExecContext(ctx,
			`INSERT INTO session_exercises (session_id, exercise_name, position, created_at)
			 VALUES (?, ?, ?, ?)`,
			sessionID, name, position, nowMillis()); err != nil {
			return position, fmt.Errorf("preloading template exercise %q: %w", name, err)
		}
	}
	return len(all), nil
}
