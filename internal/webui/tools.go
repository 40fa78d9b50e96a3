// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"context"

	"taskdeck/cli/internal/markup"
	"taskdeck/cli/internal/task"
)

// Tools region placeholders.
const (
	MsgNoTools         = "No tools available"
	MsgToolsLoadFailed = "Failed to load tools"
)

// LoadTools fetches the tool registry once and fills the tools region and the
// tool selection options. It never fails: errors become a placeholder.
func (s *Session) LoadTools(ctx context.Context) {
	tools, err := s.api.Tools(ctx)
	if err != nil {
		s.logger.Warn("failed to load tools", "error", err)
		s.update(func(p *Page) { p.Tools = placeholder(MsgToolsLoadFailed) })
		return
	}
	if len(tools) == 0 {
		s.update(func(p *Page) { p.Tools = placeholder(MsgNoTools) })
		return
	}

	var b markup.Builder
	for _, t := range tools {
		b.Fragment(renderToolCard(t))
	}
	cards := b.Build()

	s.update(func(p *Page) {
		p.Tools = cards
		for _, t := range tools {
			p.ToolOptions = append(p.ToolOptions, t.Name)
		}
	})
}

func renderToolCard(t task.Tool) markup.Fragment {
	var b markup.Builder
	b.Markup(`<div class="tool-card"><h3>`).Text(t.Name).Markup(`</h3>`)
	b.Markup(`<p>`).Text(t.Description).Markup(`</p></div>`)
	return b.Build()
}
