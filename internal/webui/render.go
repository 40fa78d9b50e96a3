// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"fmt"
	"strconv"
	"strings"

	"taskdeck/cli/internal/markup"
	"taskdeck/cli/internal/task"
)

// RenderTask renders a task as a result card: header metadata, then either
// the result block (completed tasks with a payload) or the error line.
//
// The result block probes the payload in the order code, documentation,
// results, generic; see task.Result.Kind.
func RenderTask(t task.Task) markup.Fragment {
	var b markup.Builder
	b.Markup(`<div class="result-card">`)
	b.Markup(`<h3>Task #`).Text(strconv.Itoa(t.ID)).Markup(`</h3>`)
	b.Fragment(statusBadge(string(t.Status), strings.ToUpper(string(t.Status))))
	b.Markup(`<p><strong>Task:</strong> `).Text(t.Text).Markup(`</p>`)
	b.Markup(`<p><strong>Tool Used:</strong> `).Text(t.ToolUsed).Markup(`</p>`)
	b.Markup(`<p><strong>Duration:</strong> `).Text(formatDuration(t.Duration)).Markup(`</p>`)

	switch {
	case t.Completed() && !t.Result.Empty():
		b.Markup(`<div class="result-content"><h4>Result:</h4>`)
		b.Fragment(renderResult(t.Result))
		b.Markup(`</div>`)
	case t.Error != "":
		b.Markup(`<p><strong>Error:</strong> `).Text(t.Error).Markup(`</p>`)
	}

	b.Markup(`</div>`)
	return b.Build()
}

func renderResult(r *task.Result) markup.Fragment {
	var b markup.Builder
	switch r.Kind() {
	case task.KindCode:
		code := r.Code()
		b.Markup(`<p><strong>Language:</strong> `).Text(code.Language).Markup(`</p>`)
		b.Markup(`<p><strong>Type:</strong> `).Text(code.CodeType).Markup(`</p>`)
		b.Markup(`<pre><code>`).Text(code.Code).Markup(`</code></pre>`)
	case task.KindDocumentation:
		b.Markup(`<pre><code>`).Text(r.Documentation()).Markup(`</code></pre>`)
	case task.KindList:
		list := r.List()
		b.Markup(`<p><strong>Found `).Text(strconv.Itoa(list.NumResults)).Markup(` results:</strong></p><ul>`)
		for _, item := range list.Results {
			b.Markup(`<li>`).Text(item).Markup(`</li>`)
		}
		b.Markup(`</ul>`)
	default:
		b.Markup(`<pre><code>`).Text(r.Pretty()).Markup(`</code></pre>`)
	}
	return b.Build()
}

// RenderErrorCard renders an inline error card for the results region.
func RenderErrorCard(msg string) markup.Fragment {
	var b markup.Builder
	b.Markup(`<div class="result-card">`)
	b.Fragment(statusBadge("failed", "Error"))
	b.Markup(`<p>`).Text(msg).Markup(`</p>`)
	b.Markup(`</div>`)
	return b.Build()
}

// RenderLoading renders the results placeholder shown while submitting.
func RenderLoading() markup.Fragment {
	return markup.Fragment(`<div class="placeholder"><div class="loading"></div> Processing task...</div>`)
}

func statusBadge(class, label string) markup.Fragment {
	var b markup.Builder
	b.Markup(`<span class="status-badge `).Text(class).Markup(`">`).Text(label).Markup(`</span>`)
	return b.Build()
}

func placeholder(msg string) markup.Fragment {
	var b markup.Builder
	b.Markup(`<p class="placeholder">`).Text(msg).Markup(`</p>`)
	return b.Build()
}

func formatDuration(seconds float64) string {
	return fmt.Sprintf("%.2fs", seconds)
}
