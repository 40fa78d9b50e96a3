package cmd

import (
	"fmt"
	"strconv"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/termui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// taskCmd shows one task record by id.
var taskCmd = &cobra.Command{
	Use:   "task <id>",
	Short: "Show a single task by id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id < 0 {
			return fmt.Errorf("invalid task id %q", args[0])
		}
		api, err := newAPI()
		if err != nil {
			return err
		}
		t, err := api.Task(cmd.Context(), id)
		if err != nil {
			if backend.IsNotFound(err) {
				pterm.Warning.Println(termui.MsgTaskMissing)
				return reported(err)
			}
			httperrors.Print(err, "loading the task", settings.BackendURL)
			return reported(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), termui.Task(*t))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(taskCmd)
}
