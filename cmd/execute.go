// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/termui"
	"taskdeck/cli/internal/webui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	executeTool string
)

// executeCmd submits one task and prints the finished record.
var executeCmd = &cobra.Command{
	Use:   "execute <task>",
	Short: "Submit a task and print its result",
	Long: `The execute command submits a natural-language task to the backend and waits
for the finished record. Without --tool the backend picks a tool itself.

Example: taskdeck execute "generate a python function that reverses a list" -t code_generator`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		s, closeArchive := newSession(cmd.Context(), api)
		defer closeArchive()

		s.SetInput(strings.Join(args, " "), executeTool)
		return runTask(cmd.Context(), cmd.OutOrStdout(), s)
	},
}

func init() {
	rootCmd.AddCommand(executeCmd)
	executeCmd.Flags().StringVarP(&executeTool, "tool", "t", "", "Tool to use (default: let the backend choose)")
}

// runTask submits the session input and prints the outcome. Errors returned
// have already been shown.
func runTask(ctx context.Context, out io.Writer, s *webui.Session) error {
	stop := spinner("executing task")
	t, err := s.ExecuteTask(ctx)
	stop()

	if err == nil {
		fmt.Fprint(out, termui.Task(*t))
		return nil
	}

	switch {
	case errors.Is(err, webui.ErrBusy):
		pterm.Warning.Println("Another task is already executing. Please wait for it to finish.")
	case taskerrors.KindOf(err) == taskerrors.Validation:
		pterm.Warning.Println(webui.MsgEmptyTask)
	case taskerrors.KindOf(err) == taskerrors.Application:
		pterm.Error.Println(s.Snapshot().ErrorMessage)
	default:
		httperrors.Print(err, "executing the task", settings.BackendURL)
	}
	return reported(err)
}
