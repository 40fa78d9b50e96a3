// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend provides interfaces and implementations for communicating with the
// task execution backend. It defines the API contract for submitting tasks, listing
// tools and reading history, and an HTTP implementation of it.
package backend

import (
	"context"

	"taskdeck/cli/internal/task"
)

// API defines backend operations the client depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// Execute submits a task. A non-2xx response yields an error wrapping
	// *APIError; a failed or undecodable round trip yields a transport error.
	Execute(ctx context.Context, req task.ExecuteRequest) (*task.Task, error)
	// Tools returns the tool registry in backend order.
	Tools(ctx context.Context) ([]task.Tool, error)
	// History returns all task records in submission order.
	History(ctx context.Context) ([]task.Task, error)
	// Task returns a single record. A missing id yields *APIError with 404.
	Task(ctx context.Context, id int) (*task.Task, error)
	// Health calls the backend liveness endpoint.
	Health(ctx context.Context) (*task.Health, error)
}
