// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package archive

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS task_history (
	task_id     BIGINT PRIMARY KEY,
	task        TEXT NOT NULL,
	tool_used   TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	duration    DOUBLE PRECISION NOT NULL DEFAULT 0,
	result      TEXT,
	error       TEXT,
	start_time  TEXT,
	end_time    TEXT,
	archived_at TEXT NOT NULL
)`

const postgresUpsert = `
INSERT INTO task_history (task_id, task, tool_used, status, duration, result, error, start_time, end_time, archived_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (task_id) DO UPDATE SET
	task = EXCLUDED.task,
	tool_used = EXCLUDED.tool_used,
	status = EXCLUDED.status,
	duration = EXCLUDED.duration,
	result = EXCLUDED.result,
	error = EXCLUDED.error,
	start_time = EXCLUDED.start_time,
	end_time = EXCLUDED.end_time,
	archived_at = EXCLUDED.archived_at`

// pingTimeout bounds the connection check when opening the archive.
const pingTimeout = 5 * time.Second

// PostgresStore implements Store on a pgx connection pool.
type PostgresStore struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

// OpenPostgres connects, verifies the connection and ensures the schema.
func OpenPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, taskerrors.Wrap(taskerrors.Archive, "open postgres", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, taskerrors.Wrap(taskerrors.Archive, "connect postgres", err)
	}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, taskerrors.Wrap(taskerrors.Archive, "create schema", err)
	}
	return &PostgresStore{pool: pool, now: time.Now}, nil
}

func (s *PostgresStore) Save(ctx context.Context, history []task.Task) error {
	if len(history) == 0 {
		return nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "begin", err)
	}
	defer tx.Rollback(ctx) // no-op after commit

	now := s.now()
	batch := &pgx.Batch{}
	for _, t := range history {
		r := toRow(t, now)
		batch.Queue(postgresUpsert, r.ID, r.Text, r.ToolUsed, r.Status, r.Duration,
			r.Result, r.Error, r.StartTime, r.EndTime, r.ArchivedAt)
	}
	results := tx.SendBatch(ctx, batch)
	for _, t := range history {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return taskerrors.Wrap(taskerrors.Archive, fmt.Sprintf("save task %d", t.ID), err)
		}
	}
	if err := results.Close(); err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "save history", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "commit", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]task.Task, error) {
	rows, err := s.pool.Query(ctx, `
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

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, "SELECT COUNT(*) FROM task_history").Scan(&n); err != nil {
		return 0, taskerrors.Wrap(taskerrors.Archive, "count history", err)
	}
	return n, nil
}

func (s *PostgresStore) Clear(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "TRUNCATE task_history"); err != nil {
		return taskerrors.Wrap(taskerrors.Archive, "clear history", err)
	}
	return nil
}

// Close releases the pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
