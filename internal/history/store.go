// SPDX-License-Identifier: MPL-2.0

package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/launchrun/launchrun/internal/launcher"

	_ "modernc.org/sqlite"
)

const (
	driverName = "sqlite"
	dsnOptions = "?_pragma=busy_timeout(3000)&_pragma=journal_mode(WAL)"

	// StatusStarted marks a session that has not reported back.
	StatusStarted Status = "started"
	// StatusSucceeded marks a session that exited with status 0.
	StatusSucceeded Status = "succeeded"
	// StatusFailed marks a session that exited non-zero or could not start.
	StatusFailed Status = "failed"
)

var (
	// ErrPathRequired is returned by Open for an empty path.
	ErrPathRequired = errors.New("history: path is required")

	_ launcher.Recorder = (*Store)(nil)
)

type (
	// Status is the lifecycle state of a recorded session.
	Status string

	// Record is one row of launch history.
	Record struct {
		SessionID string
		Name      string
		Project   string
		Source    string
		Mode      string
		Runner    string
		Status    Status
		ExitCode  int
		Error     string
		StartedAt time.Time
		// FinishedAt is zero while Status is StatusStarted.
		FinishedAt time.Time
	}

	// Store is the SQLite-backed history.
	Store struct {
		db *sql.DB
		mu sync.Mutex
	}
)

// Open opens or creates the database at path, creating its directory.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, ErrPathRequired
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("history: create dir: %w", err)
	}
	db, err := sql.Open(driverName, path+dsnOptions)
	if err != nil {
		return nil, fmt.Errorf("history: open db: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordStart implements launcher.Recorder.
func (s *Store) RecordStart(ctx context.Context, sess launcher.Session) error {
	const q = `
INSERT INTO launches (
	session_id, name, project, source, mode, runner, status, exit_code, error, started_at, finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, 0, '', ?, 0)
ON CONFLICT(session_id) DO NOTHING`

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, q,
		sess.ID.String(), sess.Name, sess.Project, sess.Source, sess.Mode.String(), string(sess.Runner),
		string(StatusStarted), sess.StartedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("history: record start: %w", err)
	}
	return nil
}

// RecordFinish implements launcher.Recorder. A session that never
// reported a start is inserted complete.
func (s *Store) RecordFinish(ctx context.Context, res launcher.SessionResult) error {
	const q = `
INSERT INTO launches (
	session_id, name, project, source, mode, runner, status, exit_code, error, started_at, finished_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET
	status = excluded.status,
	exit_code = excluded.exit_code,
	error = excluded.error,
	finished_at = excluded.finished_at`

	status := StatusSucceeded
	errText := ""
	if !res.Succeeded() {
		status = StatusFailed
		if res.Err != nil {
			errText = res.Err.Error()
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.ExecContext(ctx, q,
		res.ID.String(), res.Name, res.Project, res.Source, res.Mode.String(), string(res.Runner),
		string(status), res.ExitCode, errText, res.StartedAt.UnixMilli(), res.FinishedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("history: record finish: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first. A non-empty project
// restricts the result to that project.
func (s *Store) Recent(ctx context.Context, limit int, project string) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT session_id, name, project, source, mode, runner, status, exit_code, error, started_at, finished_at
FROM launches
WHERE ? = '' OR project = ?
ORDER BY started_at DESC, rowid DESC
LIMIT ?`

	rows, err := s.db.QueryContext(ctx, q, project, project, limit)
	if err != nil {
		return nil, fmt.Errorf("history: query: %w", err)
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var rec Record
		var status string
		var startedAt, finishedAt int64
		if err := rows.Scan(&rec.SessionID, &rec.Name, &rec.Project, &rec.Source, &rec.Mode, &rec.Runner,
			&status, &rec.ExitCode, &rec.Error, &startedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		rec.Status = Status(status)
		rec.StartedAt = time.UnixMilli(startedAt)
		if finishedAt > 0 {
			rec.FinishedAt = time.UnixMilli(finishedAt)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep records and returns how many rows
// were removed.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		return 0, fmt.Errorf("history: keep must not be negative, got %d", keep)
	}
	const q = `
DELETE FROM launches
WHERE rowid NOT IN (
	SELECT rowid FROM launches ORDER BY started_at DESC, rowid DESC LIMIT ?
)`

	s.mu.Lock()
	defer s.mu.Unlock()
	res, err := s.db.ExecContext(ctx, q, keep)
	if err != nil {
		return 0, fmt.Errorf("history: prune: %w", err)
	}
	return res.RowsAffected()
}

func (s *Store) migrate(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS launches (
	session_id TEXT NOT NULL PRIMARY KEY,
	name TEXT NOT NULL,
	project TEXT NOT NULL DEFAULT '',
	source TEXT NOT NULL DEFAULT '',
	mode TEXT NOT NULL,
	runner TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL,
	exit_code INTEGER NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	started_at INTEGER NOT NULL,
	finished_at INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_launches_project_started
ON launches(project, started_at DESC);`

	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("history: migrate: %w", err)
	}
	return nil
}

// Duration is FinishedAt minus StartedAt, or zero while running.
func (r Record) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
