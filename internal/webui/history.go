// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"context"
	"strconv"

	"taskdeck/cli/internal/markup"
	"taskdeck/cli/internal/task"
)

// History region placeholders.
const (
	MsgNoHistory         = "No tasks executed yet."
	MsgHistoryLoadFailed = "Failed to load history"
)

// LoadHistory fetches the full task history and renders it most recent first.
// It never fails: errors become a placeholder. When a history sink is attached
// the fetched records are mirrored into it in their original order.
func (s *Session) LoadHistory(ctx context.Context) {
	history, err := s.api.History(ctx)
	if err != nil {
		s.logger.Warn("failed to load history", "error", err)
		s.update(func(p *Page) { p.History = placeholder(MsgHistoryLoadFailed) })
		return
	}

	if s.sink != nil && len(history) > 0 {
		if err := s.sink.Save(ctx, history); err != nil {
			s.logger.Warn("failed to archive history", "error", err)
		}
	}

	frag := RenderHistory(history)
	s.update(func(p *Page) { p.History = frag })
}

// RenderHistory renders records most recent first. The input slice is not
// modified; the reversal is applied to a copy.
func RenderHistory(history []task.Task) markup.Fragment {
	if len(history) == 0 {
		return placeholder(MsgNoHistory)
	}
	var b markup.Builder
	for _, t := range task.NewestFirst(history) {
		b.Fragment(renderHistoryItem(t))
	}
	return b.Build()
}

func renderHistoryItem(t task.Task) markup.Fragment {
	var b markup.Builder
	b.Markup(`<div class="history-item">`)
	b.Markup(`<div class="task-id">Task #`).Text(strconv.Itoa(t.ID)).Markup(`</div>`)
	b.Markup(`<div class="task-text">`).Text(t.Text).Markup(`</div>`)
	b.Markup(`<div class="task-meta">`)
	b.Fragment(statusBadge(string(t.Status), string(t.Status)))
	b.Markup(` | Tool: `).Text(t.ToolUsed)
	b.Markup(` | Duration: `).Text(formatDuration(t.Duration))
	b.Markup(`</div></div>`)
	return b.Build()
}
