// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"fmt"
	"net/http"

	"taskdeck/cli/internal/task"
)

// Execute calls POST /api/execute with {task, tool}.
// The request is awaited until the backend answers; there is no client-side timeout.
func (h *HTTP) Execute(ctx context.Context, req task.ExecuteRequest) (*task.Task, error) {
	var out task.Task
	if err := h.do(ctx, "execute task", http.MethodPost, h.endpoints.Execute, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// History calls GET /api/history and returns records in submission order.
func (h *HTTP) History(ctx context.Context) ([]task.Task, error) {
	var out task.HistoryResponse
	if err := h.do(ctx, "get history", http.MethodGet, h.endpoints.History, nil, &out); err != nil {
		return nil, err
	}
	return out.History, nil
}

// Task calls GET /api/task/{id}.
func (h *HTTP) Task(ctx context.Context, id int) (*task.Task, error) {
	var out task.Task
	if err := h.do(ctx, "get task", http.MethodGet, fmt.Sprintf(h.endpoints.Task, id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Health calls GET /health. No request body is sent.
func (h *HTTP) Health(ctx context.Context) (*task.Health, error) {
	var out task.Health
	if err := h.do(ctx, "health check", http.MethodGet, h.endpoints.Health, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
