// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"taskdeck/cli/internal/task"
)

// fakeAPI implements backend.API for testing.
type fakeAPI struct {
	mu sync.Mutex

	tools      []task.Tool
	toolsErr   error
	history    []task.Task
	historyErr error

	executeResult *task.Task
	executeErr    error
	// executeHook runs inside Execute before it returns, e.g. to block.
	executeHook func(req task.ExecuteRequest)

	executeCalls int
	historyCalls int
	requests     []task.ExecuteRequest
}

func (f *fakeAPI) Execute(_ context.Context, req task.ExecuteRequest) (*task.Task, error) {
	f.mu.Lock()
	f.executeCalls++
	f.requests = append(f.requests, req)
	hook := f.executeHook
	f.mu.Unlock()
	if hook != nil {
		hook(req)
	}
	if f.executeErr != nil {
		return nil, f.executeErr
	}
	return f.executeResult, nil
}

func (f *fakeAPI) Tools(context.Context) ([]task.Tool, error) {
	if f.toolsErr != nil {
		return nil, f.toolsErr
	}
	return f.tools, nil
}

func (f *fakeAPI) History(context.Context) ([]task.Task, error) {
	f.mu.Lock()
	f.historyCalls++
	f.mu.Unlock()
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.history, nil
}

func (f *fakeAPI) Task(context.Context, int) (*task.Task, error) { return nil, nil }

func (f *fakeAPI) Health(context.Context) (*task.Health, error) {
	return &task.Health{Status: "healthy"}, nil
}

func (f *fakeAPI) counts() (execute, history int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.executeCalls, f.historyCalls
}

// mustResult decodes a JSON payload into a task.Result.
func mustResult(t *testing.T, payload string) *task.Result {
	t.Helper()
	var r task.Result
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	return &r
}
