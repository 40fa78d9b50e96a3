// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package termui renders tasks, tools and history for the terminal with
// pterm. It applies the same result probe order as the web dashboard.
package termui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/pterm/pterm"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/task"
)

// Empty-state messages.
const (
	MsgNoTools     = "No tools available"
	MsgNoHistory   = "No tasks executed yet."
	MsgTaskMissing = "Task not found"
)

// minTextWidth is the narrowest task column History will truncate to.
const minTextWidth = 16

var (
	titleStyle = pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)
	labelStyle = pterm.NewStyle(pterm.Bold)
	mutedStyle = pterm.NewStyle(pterm.FgGray)
)

func statusStyle(s task.Status) *pterm.Style {
	switch s {
	case task.StatusCompleted:
		return pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	case task.StatusFailed:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	}
}

// Task renders one task: header, then the result for completed tasks or the
// error line otherwise.
func Task(t task.Task) string {
	var b strings.Builder
	b.WriteString(titleStyle.Sprintf("Task #%d", t.ID))
	b.WriteString("  ")
	b.WriteString(statusStyle(t.Status).Sprint(strings.ToUpper(string(t.Status))))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Task:"), t.Text)
	fmt.Fprintf(&b, "%s %s   %s %.2fs\n", labelStyle.Sprint("Tool Used:"), t.ToolUsed, labelStyle.Sprint("Duration:"), t.Duration)

	switch {
	case t.Completed() && !t.Result.Empty():
		b.WriteString("\n")
		b.WriteString(Result(t.Result))
	case !t.Completed() && t.Error != "":
		b.WriteString(pterm.NewStyle(pterm.FgRed).Sprint("Error: " + t.Error))
		b.WriteString("\n")
	}
	return b.String()
}

// Result renders a payload by probing code, documentation, results, then
// falling back to indented JSON.
func Result(r *task.Result) string {
	switch r.Kind() {
	case task.KindCode:
		c := r.Code()
		header := fmt.Sprintf("%s %s   %s %s", labelStyle.Sprint("Language:"), c.Language, labelStyle.Sprint("Type:"), c.CodeType)
		return header + "\n" + box("Code", c.Code)
	case task.KindDocumentation:
		return box("Documentation", r.Documentation())
	case task.KindList:
		l := r.List()
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d results:\n", l.NumResults)
		items := make([]pterm.BulletListItem, 0, len(l.Results))
		for _, s := range l.Results {
			items = append(items, pterm.BulletListItem{Level: 0, Text: s})
		}
		if len(items) > 0 {
			list, err := pterm.DefaultBulletList.WithItems(items).Srender()
			if err != nil {
				list = strings.Join(l.Results, "\n")
			}
			b.WriteString(list)
		}
		return b.String()
	default:
		return box("Result", r.Pretty())
	}
}

func box(title, body string) string {
	return pterm.DefaultBox.WithTitle(mutedStyle.Sprint(title)).Sprint(body) + "\n"
}

// Tools renders the tool registry as a table in backend order.
func Tools(tools []task.Tool) string {
	if len(tools) == 0 {
		return MsgNoTools + "\n"
	}
	data := pterm.TableData{{"Name", "Description"}}
	for _, t := range tools {
		data = append(data, []string{t.Name, t.Description})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		var b strings.Builder
		for _, t := range tools {
			fmt.Fprintf(&b, "%s - %s\n", t.Name, t.Description)
		}
		return b.String()
	}
	return out + "\n"
}

// ToolInfo renders the details of the named tool.
func ToolInfo(tools []task.Tool, name string) string {
	t, ok := backend.FindTool(tools, name)
	if !ok {
		return fmt.Sprintf("Tool '%s' not found\n", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Name:"), t.Name)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Description:"), t.Description)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Version:"), t.VersionOrDefault())
	return b.String()
}

// History renders records most recent first as a table fitting width
// columns. Long task texts are truncated by display width.
func History(history []task.Task, width int) string {
	if len(history) == 0 {
		return MsgNoHistory + "\n"
	}
	textWidth := max(width-48, minTextWidth)

	data := pterm.TableData{{"ID", "Status", "Tool", "Duration", "Task"}}
	for _, t := range task.NewestFirst(history) {
		data = append(data, []string{
			strconv.Itoa(t.ID),
			statusStyle(t.Status).Sprint(string(t.Status)),
			t.ToolUsed,
			fmt.Sprintf("%.2fs", t.Duration),
			Truncate(t.Text, textWidth),
		})
	}
	out, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Sprintf("%d tasks\n", len(history))
	}
	return out + "\n"
}

// Truncate shortens s to at most width display columns, marking the cut
// with an ellipsis. Line breaks are flattened to spaces.
func Truncate(s string, width int) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.Truncate(s, width, "…")
}

// Health renders the backend health report.
func Health(h *task.Health) string {
	style := pterm.NewStyle(pterm.FgGreen, pterm.Bold)
	if h.Status != "healthy" {
		style = pterm.NewStyle(pterm.FgYellow, pterm.Bold)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Status:"), style.Sprint(h.Status))
	if h.Agent != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Agent:"), h.Agent)
	}
	if h.Timestamp != "" {
		fmt.Fprintf(&b, "%s %s\n", labelStyle.Sprint("Timestamp:"), h.Timestamp)
	}
	return b.String()
}
