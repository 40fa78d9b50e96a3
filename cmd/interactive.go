// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/terminal"
	"taskdeck/cli/internal/termui"
	"taskdeck/cli/internal/webui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

const (
	promptMain         = "taskdeck> "
	promptContinuation = "... "
)

var (
	interactiveTool string
)

// interactiveCmd runs a read-eval-print loop over the backend.
var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive task session",
	Long: `The interactive command reads tasks line by line and submits each one.

Commands:
  tools     list available tools
  history   show executed tasks, most recent first
  exit      leave the session (also: quit)

End a line with \ to continue the task on the next line.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		s, closeArchive := newSession(cmd.Context(), api)
		defer closeArchive()

		pterm.DefaultHeader.Println("taskdeck interactive")
		pterm.Println("Type a task, or 'tools', 'history', 'exit'.")
		r := &repl{
			in:      bufio.NewScanner(os.Stdin),
			out:     cmd.OutOrStdout(),
			api:     api,
			session: s,
			tool:    interactiveTool,
		}
		return r.run(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().StringVarP(&interactiveTool, "tool", "t", "", "Tool to use for every task")
}

type repl struct {
	in      *bufio.Scanner
	out     io.Writer
	api     backend.API
	session *webui.Session
	tool    string
}

// readEntry reads one logical entry. A line ending in a backslash continues
// onto the next line. ok is false at end of input.
func (r *repl) readEntry() (entry string, ok bool) {
	var parts []string
	prompt := promptMain
	for {
		fmt.Fprint(r.out, prompt)
		if !r.in.Scan() {
			if len(parts) > 0 {
				return strings.Join(parts, "\n"), true
			}
			return "", false
		}
		// A trailing backslash is the prompt's Shift+Enter.
		line, shift := strings.CutSuffix(r.in.Text(), `\`)
		parts = append(parts, line)
		if !webui.Submits(webui.KeyEvent{Key: webui.KeyEnter, Shift: shift}) {
			prompt = promptContinuation
			continue
		}
		return strings.Join(parts, "\n"), true
	}
}

func (r *repl) run(ctx context.Context) error {
	for {
		entry, ok := r.readEntry()
		if !ok {
			fmt.Fprintln(r.out)
			return r.in.Err()
		}
		switch strings.ToLower(strings.TrimSpace(entry)) {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "tools":
			tools, err := r.api.Tools(ctx)
			if err != nil {
				httperrors.Print(err, "loading tools", settings.BackendURL)
				continue
			}
			fmt.Fprint(r.out, termui.Tools(tools))
		case "history":
			history, err := fetchHistory(ctx, r.api)
			if err != nil {
				httperrors.Print(err, "loading history", settings.BackendURL)
				continue
			}
			fmt.Fprint(r.out, termui.History(history, terminal.Width()))
		default:
			r.session.SetInput(entry, r.tool)
			// Failures are already printed; the loop goes on.
			_ = runTask(ctx, r.out, r.session)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
