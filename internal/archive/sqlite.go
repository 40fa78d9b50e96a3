// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package archive

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS task_history (
	task_id     INTEGER PRIMARY KEY,
	task        TEXT NOT NULL,
	tool_used   TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	duration    REAL NOT NULL DEFAULT 0,
	result      TEXT,
	error       TEXT,
	start_time  TEXT,
	end_time    TEXT,
	archived_at TEXT NOT NULL
);`

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	mu  sync.RWMutex
	db  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (or creates) a SQLite archive. source is a path or a
// file: URL; ":memory:" gives an in-memory archive.
func OpenSQLite(ctx context.Context, source string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", source)
	if err != nil {
		return nil, taskerrors.Wrap(taskerrors.Archive, fmt.Sprintf("open sqlite %q", source), err)
	}
	// A single connection keeps :memory: databases alive across calls.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, taskerrors.Wrap(taskerrors.Archive, "set WAL mode", err)
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, taskerrors.Wrap(taskerrors.Archive, "create schema", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, history []task.Task) error {
	if len(history) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "begin", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO task_history (task_id, task, tool_used, status, duration, result, error, start_time, end_time, archived_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(task_id) DO UPDATE SET
			task = excluded.task,
			tool_used = excluded.tool_used,
			status = excluded.status,
			duration = excluded.duration,
			result = excluded.result,
			error = excluded.error,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			archived_at = excluded.archived_at`)
	if err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "prepare upsert", err)
	}
	defer stmt.Close()

	now := s.now()
	for _, t := range history {
		r := toRow(t, now)
		if _, err := stmt.ExecContext(ctx, r.ID, r.Text, r.ToolUsed, r.Status, r.Duration,
			r.Result, r.Error, r.StartTime, r.EndTime, r.ArchivedAt); err != nil {
			return taskerrors.Wrap(taskerrors.Archive, fmt.Sprintf("save task %d", t.ID), err)
		}
	}
	if err := tx.Commit(); err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "commit", err)
	}
	return nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT task_id, task, tool_used, status, duration, result, error, start_time, end_time, archived_at
		FROM task_history ORDER BY task_id`)
	if err != nil {
		return nil, taskerrors.Wrap(taskerrors.Archive, "list history", err)
	}
	defer rows.Close()

	var out []task.Task
	for rows.Next() {
		var r row
		if err := rows.Scan(&r.ID, &r.Text, &r.ToolUsed, &r.Status, &r.Duration,
			&r.Result, &r.Error, &r.StartTime, &r.EndTime, &r.ArchivedAt); err != nil {
			return nil, taskerrors.Wrap(taskerrors.Archive, "scan history", err)
		}
		t, err := r.task()
		if err != nil {
			return nil, taskerrors.Wrap(taskerrors.Archive, fmt.Sprintf("decode task %d", r.ID), err)
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, taskerrors.Wrap(taskerrors.Archive, "list history", err)
	}
	return out, nil
}

func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM task_history").Scan(&n); err != nil {
		return 0, taskerrors.Wrap(taskerrors.Archive, "count history", err)
	}
	return n, nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, "DELETE FROM task_history"); err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "clear history", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
