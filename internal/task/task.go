// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package task defines the wire model shared with the task execution backend.
//
// Values of these types are created by decoding backend responses and are never
// mutated by the client afterwards.
package task

import (
	"slices"
	"time"
)

// Status is the lifecycle state reported by the backend.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Task is a single execution record as returned by POST /api/execute,
// GET /api/history and GET /api/task/{id}.
type Task struct {
	ID       int     `json:"task_id"`
	Text     string  `json:"task"`
	ToolUsed string  `json:"tool_used"`
	Status   Status  `json:"status"`
	Duration float64 `json:"duration"`
	// Result is nil when the backend sent null or omitted it.
	Result *Result `json:"result,omitempty"`
	// Error is empty when the backend sent null or omitted it.
	Error     string     `json:"error,omitempty"`
	StartTime *Timestamp `json:"start_time,omitempty"`
	EndTime   *Timestamp `json:"end_time,omitempty"`
}

// Completed reports whether the backend finished the task successfully.
func (t Task) Completed() bool { return t.Status == StatusCompleted }

// Tool describes a backend capability. Version is optional on the wire.
type Tool struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Version     string `json:"version,omitempty"`
}

// DefaultToolVersion is reported when the backend omits a version.
const DefaultToolVersion = "1.0.0"

// VersionOrDefault returns the tool version or DefaultToolVersion.
func (t Tool) VersionOrDefault() string {
	if t.Version == "" {
		return DefaultToolVersion
	}
	return t.Version
}

// ExecuteRequest is the body of POST /api/execute. A nil Tool is sent as
// JSON null and lets the backend choose.
type ExecuteRequest struct {
	Task string  `json:"task"`
	Tool *string `json:"tool"`
}

// NewExecuteRequest builds a request; an empty tool name means no preference.
func NewExecuteRequest(text, tool string) ExecuteRequest {
	req := ExecuteRequest{Task: text}
	if tool != "" {
		req.Tool = &tool
	}
	return req
}

// ToolsResponse is the body of GET /api/tools.
type ToolsResponse struct {
	Tools []Tool `json:"tools"`
}

// HistoryResponse is the body of GET /api/history, in submission order.
type HistoryResponse struct {
	History []Task `json:"history"`
}

// NewestFirst returns history most recent first. The reversal is applied to
// a copy; history itself keeps the backend's ascending order.
func NewestFirst(history []Task) []Task {
	out := slices.Clone(history)
	slices.Reverse(out)
	return out
}

// Health is the body of GET /health.
type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Agent     string `json:"agent"`
}

// ErrorBody is the body of any non-2xx backend response.
type ErrorBody struct {
	Error string `json:"error"`
}

// Timestamp decodes the backend's ISO-8601 timestamps, which carry no zone
// designator. Unparseable values decode to the zero time instead of failing
// the whole record.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" || len(s) < 2 {
		return nil
	}
	s = s[1 : len(s)-1]
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + ts.Format("2006-01-02T15:04:05.999999") + `"`), nil
}
