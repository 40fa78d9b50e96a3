// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package archive keeps a local copy of fetched task history so that it can
// be browsed without the backend. Records are keyed by task id; saving a
// history again updates existing rows in place.
//
// Two stores exist: SQLite (the default, a file under the XDG state dir) and
// PostgreSQL (when a DSN is stored in the keychain). Result payloads are kept
// as the exact JSON the backend sent.
package archive

import (
	"context"
	"encoding/json"
	"time"

	"taskdeck/cli/internal/dsn"
	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
)

// Store is a history archive.
type Store interface {
	// Save upserts every task by id.
	Save(ctx context.Context, history []task.Task) error
	// List returns archived tasks in ascending id order.
	List(ctx context.Context) ([]task.Task, error)
	// Count returns the number of archived tasks.
	Count(ctx context.Context) (int, error)
	// Clear removes every archived task.
	Clear(ctx context.Context) error
	Close() error
}

// Open opens the store addressed by a sqlite://, file: or postgres:// DSN.
func Open(ctx context.Context, raw string) (Store, error) {
	normalized, err := dsn.Parse(raw)
	if err != nil {
		return nil, taskerrors.Wrap(taskerrors.Archive, "parse archive DSN", err)
	}
	switch dsn.DetectDBType(raw) {
	case dsn.DBTypePostgreSQL:
		return OpenPostgres(ctx, normalized)
	default:
		return OpenSQLite(ctx, normalized)
	}
}

const timeLayout = time.RFC3339Nano

// row is the storage shape shared by both stores.
type row struct {
	ID         int64
	Text       string
	ToolUsed   string
	Status     string
	Duration   float64
	Result     *string
	Error      *string
	StartTime  *string
	EndTime    *string
	ArchivedAt string
}

func toRow(t task.Task, now time.Time) row {
	r := row{
		ID:         int64(t.ID),
		Text:       t.Text,
		ToolUsed:   t.ToolUsed,
		Status:     string(t.Status),
		Duration:   t.Duration,
		ArchivedAt: now.UTC().Format(timeLayout),
	}
	if raw := t.Result.Raw(); len(raw) > 0 {
		s := string(raw)
		r.Result = &s
	}
	if t.Error != "" {
		r.Error = &t.Error
	}
	r.StartTime = formatTime(t.StartTime)
	r.EndTime = formatTime(t.EndTime)
	return r
}

func (r row) task() (task.Task, error) {
	t := task.Task{
		ID:        int(r.ID),
		Text:      r.Text,
		ToolUsed:  r.ToolUsed,
		Status:    task.Status(r.Status),
		Duration:  r.Duration,
		StartTime: parseTime(r.StartTime),
		EndTime:   parseTime(r.EndTime),
	}
	if r.Error != nil {
		t.Error = *r.Error
	}
	if r.Result != nil && *r.Result != "" && *r.Result != "null" {
		var res task.Result
		if err := json.Unmarshal([]byte(*r.Result), &res); err != nil {
			return t, err
		}
		t.Result = &res
	}
	return t, nil
}

func formatTime(ts *task.Timestamp) *string {
	if ts == nil || ts.IsZero() {
		return nil
	}
	s := ts.UTC().Format(timeLayout)
	return &s
}

func parseTime(s *string) *task.Timestamp {
	if s == nil {
		return nil
	}
	t, err := time.Parse(timeLayout, *s)
	if err != nil {
		return nil
	}
	return &task.Timestamp{Time: t}
}
