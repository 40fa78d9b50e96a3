// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"taskdeck/cli/internal/markup"
	"taskdeck/cli/internal/task"
)

// parse parses a fragment and returns its root nodes.
func parse(t *testing.T, f markup.Fragment) []*html.Node {
	t.Helper()
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(string(f)), body)
	require.NoError(t, err)
	return nodes
}

// text returns the text content of a fragment.
func text(t *testing.T, f markup.Fragment) string {
	t.Helper()
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range parse(t, f) {
		walk(n)
	}
	return sb.String()
}

// elements returns every element named tag in the fragment, in document order.
func elements(t *testing.T, f markup.Fragment, tag string) []*html.Node {
	t.Helper()
	var out []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range parse(t, f) {
		walk(n)
	}
	return out
}

func nodeText(n *html.Node) string {
	var sb strings.Builder
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func TestRenderTaskHeader(t *testing.T) {
	tk := task.Task{
		ID:       7,
		Text:     `<img src=x onerror="alert('x')"> & more`,
		ToolUsed: "search",
		Status:   task.StatusCompleted,
		Duration: 1.23456,
	}
	frag := RenderTask(tk)

	assert.Empty(t, elements(t, frag, "img"), "task text must not become markup")
	content := text(t, frag)
	assert.Contains(t, content, "Task #7")
	assert.Contains(t, content, "COMPLETED")
	assert.Contains(t, content, tk.Text)
	assert.Contains(t, content, "Tool Used: search")
	assert.Contains(t, content, "Duration: 1.23s")
	assert.Empty(t, elements(t, frag, "pre"), "no result block without a result")

	for _, payload := range []string{`""`, `false`, `0`} {
		tk.Result = mustResult(t, payload)
		frag := RenderTask(tk)
		assert.Empty(t, elements(t, frag, "pre"), "falsy result %s", payload)
		assert.NotContains(t, text(t, frag), "Result:", "falsy result %s", payload)
	}
}

func TestRenderTaskResultVariants(t *testing.T) {
	tests := []struct {
		name     string
		payload  string
		contains []string
		items    []string
		pre      string
	}{
		{
			name:     "code",
			payload:  `{"code":"if a < b && c:\n    pass","language":"python","code_type":"function"}`,
			contains: []string{"Language: python", "Type: function"},
			pre:      "if a < b && c:\n    pass",
		},
		{
			name:    "documentation",
			payload: `{"documentation":"<h1>not a heading</h1>"}`,
			pre:     "<h1>not a heading</h1>",
		},
		{
			name:     "list",
			payload:  `{"results":["<b>one</b>","two"],"num_results":2}`,
			contains: []string{"Found 2 results:"},
			items:    []string{"<b>one</b>", "two"},
		},
		{
			name:    "generic",
			payload: `{"summary":"<script>x</script>","score":1}`,
			pre:     "{\n  \"summary\": \"<script>x</script>\",\n  \"score\": 1\n}",
		},
		{
			name:     "conflicting payload renders code",
			payload:  `{"code":"x = 1","documentation":"doc","results":["a"],"num_results":1,"language":"python","code_type":"snippet"}`,
			contains: []string{"Language: python"},
			pre:      "x = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frag := RenderTask(task.Task{
				ID:     1,
				Status: task.StatusCompleted,
				Result: mustResult(t, tt.payload),
			})

			assert.Empty(t, elements(t, frag, "script"))
			assert.Empty(t, elements(t, frag, "h1"))
			assert.Empty(t, elements(t, frag, "b"))

			content := text(t, frag)
			for _, want := range tt.contains {
				assert.Contains(t, content, want)
			}

			if tt.pre != "" {
				pres := elements(t, frag, "pre")
				require.Len(t, pres, 1)
				assert.Equal(t, tt.pre, nodeText(pres[0]))
			}

			if tt.items != nil {
				lis := elements(t, frag, "li")
				require.Len(t, lis, len(tt.items))
				for i, want := range tt.items {
					assert.Equal(t, want, nodeText(lis[i]))
				}
				assert.NotContains(t, content, "doc")
			}
		})
	}
}

func TestRenderFailedTaskShowsError(t *testing.T) {
	frag := RenderTask(task.Task{
		ID:     2,
		Status: task.StatusFailed,
		Error:  "Tool 'nope' not found <x>",
		Result: mustResult(t, `{"code":"ignored"}`),
	})

	content := text(t, frag)
	assert.Contains(t, content, "FAILED")
	assert.Contains(t, content, "Error: Tool 'nope' not found <x>")
	assert.NotContains(t, content, "ignored")
}

func TestStatusBadgeMatchesStylesheet(t *testing.T) {
	classOf := func(f markup.Fragment) string {
		spans := elements(t, f, "span")
		require.Len(t, spans, 1)
		for _, a := range spans[0].Attr {
			if a.Key == "class" {
				return a.Val
			}
		}
		return ""
	}

	assert.Equal(t, "status-badge completed", classOf(RenderTask(task.Task{ID: 1, Status: task.StatusCompleted})))
	assert.Equal(t, "status-badge failed", classOf(RenderErrorCard("boom")))
	assert.Equal(t, "status-badge pending", classOf(RenderHistory([]task.Task{{ID: 2, Status: task.StatusPending}})))
}

func TestRenderErrorCard(t *testing.T) {
	frag := RenderErrorCard("boom <i>")
	assert.Empty(t, elements(t, frag, "i"))
	assert.Equal(t, "Errorboom <i>", text(t, frag))
}
