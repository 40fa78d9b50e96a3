// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package termui

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskdeck/cli/internal/task"
)

func TestMain(m *testing.M) {
	pterm.DisableColor()
	os.Exit(m.Run())
}

func result(t *testing.T, payload string) *task.Result {
	t.Helper()
	var r task.Result
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	return &r
}

func TestTaskRendersVariants(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    []string
		absent  []string
	}{
		{
			name:    "code wins over other fields",
			payload: `{"code":"print(1)","language":"python","code_type":"script","documentation":"ignored docs"}`,
			want:    []string{"Language: python", "Type: script", "print(1)"},
			absent:  []string{"ignored docs"},
		},
		{
			name:    "documentation",
			payload: `{"documentation":"Use the force"}`,
			want:    []string{"Documentation", "Use the force"},
		},
		{
			name:    "list",
			payload: `{"results":["alpha","beta"],"num_results":7}`,
			want:    []string{"Found 7 results:", "alpha", "beta"},
		},
		{
			name:    "generic",
			payload: `{"answer":42}`,
			want:    []string{`"answer": 42`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Task(task.Task{ID: 3, Text: "do it", ToolUsed: "auto", Status: task.StatusCompleted, Duration: 0.5, Result: result(t, tt.payload)})
			assert.Contains(t, out, "Task #3")
			assert.Contains(t, out, "COMPLETED")
			assert.Contains(t, out, "Duration: 0.50s")
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestTaskFailedShowsError(t *testing.T) {
	out := Task(task.Task{ID: 1, Status: task.StatusFailed, Error: "Tool 'x' not found", Result: result(t, `{"code":"hidden"}`)})
	assert.Contains(t, out, "FAILED")
	assert.Contains(t, out, "Error: Tool 'x' not found")
	assert.NotContains(t, out, "hidden")
}

func TestTaskSkipsFalsyResult(t *testing.T) {
	for _, payload := range []string{`""`, `false`, `0`} {
		out := Task(task.Task{ID: 3, Status: task.StatusCompleted, Result: result(t, payload)})
		assert.Contains(t, out, "Task #3")
		assert.NotContains(t, out, "Result", "payload %s", payload)
	}
}

func TestTools(t *testing.T) {
	assert.Equal(t, MsgNoTools+"\n", Tools(nil))

	out := Tools([]task.Tool{{Name: "search", Description: "Web search"}, {Name: "docs", Description: "Docs"}})
	assert.Contains(t, out, "search")
	assert.Contains(t, out, "Web search")
	assert.Less(t, strings.Index(out, "search"), strings.Index(out, "docs"))
}

func TestToolInfo(t *testing.T) {
	tools := []task.Tool{{Name: "search", Description: "Web search"}, {Name: "code", Description: "Code", Version: "2.1.0"}}

	out := ToolInfo(tools, "search")
	assert.Contains(t, out, "Version: 1.0.0")
	assert.Contains(t, ToolInfo(tools, "code"), "Version: 2.1.0")
	assert.Equal(t, "Tool 'nope' not found\n", ToolInfo(tools, "nope"))
}

func TestHistoryNewestFirstAndTruncated(t *testing.T) {
	assert.Equal(t, MsgNoHistory+"\n", History(nil, 80))

	long := strings.Repeat("word ", 40)
	history := []task.Task{
		{ID: 1, Text: "first", Status: task.StatusCompleted},
		{ID: 2, Text: long, Status: task.StatusFailed},
		{ID: 3, Text: "third", Status: task.StatusPending},
	}
	out := History(history, 80)

	assert.Less(t, strings.Index(out, "third"), strings.Index(out, "first"))
	assert.Contains(t, out, "…")
	assert.NotContains(t, out, strings.TrimSpace(long))
	assert.Equal(t, 1, history[0].ID)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "a b", Truncate("a\n  b", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	// Wide runes count as two columns.
	assert.Equal(t, "日本…", Truncate("日本語テキスト", 6))
}

func TestHealth(t *testing.T) {
	out := Health(&task.Health{Status: "healthy", Agent: "WebAgent", Timestamp: "2025-01-01T00:00:00"})
	assert.Contains(t, out, "Status: healthy")
	assert.Contains(t, out, "Agent: WebAgent")
	assert.Contains(t, out, "Timestamp: 2025-01-01T00:00:00")
}
