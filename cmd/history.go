package cmd

import (
	"context"
	"fmt"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/task"
	"taskdeck/cli/internal/terminal"
	"taskdeck/cli/internal/termui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	historyOffline bool
)

// historyCmd prints task history, newest first.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show executed tasks, most recent first",
	Long: `The history command lists every task the backend has executed, most recent first.
With --offline the local archive is read instead, so the history stays available
when the backend is down. The archive is filled whenever history is fetched with
archive.enabled set in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		var (
			history []task.Task
			err     error
		)
		if historyOffline {
			history, err = archivedHistory(ctx)
			if err != nil {
				pterm.Error.Println("Failed to read the history archive")
				pterm.Println("   " + err.Error())
				return reported(err)
			}
		} else {
			api, err := newAPI()
			if err != nil {
				return err
			}
			history, err = fetchHistory(ctx, api)
			if err != nil {
				httperrors.Print(err, "loading history", settings.BackendURL)
				return reported(err)
			}
		}
		fmt.Fprint(cmd.OutOrStdout(), termui.History(history, terminal.Width()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().BoolVar(&historyOffline, "offline", false, "Read the local archive instead of the backend")
}

// fetchHistory loads history from the backend and mirrors it into the archive
// when enabled. Archive failures are logged only.
func fetchHistory(ctx context.Context, api backend.API) ([]task.Task, error) {
	history, err := api.History(ctx)
	if err != nil {
		return nil, err
	}
	if settings.Archive.Enabled {
		store, err := openArchive(ctx)
		if err != nil {
			logger.Warn("history archive unavailable", "error", err)
			return history, nil
		}
		defer store.Close()
		if err := store.Save(ctx, history); err != nil {
			logger.Warn("failed to archive history", "error", err)
		}
	}
	return history, nil
}

func archivedHistory(ctx context.Context) ([]task.Task, error) {
	store, err := openArchive(ctx)
	if err != nil {
		return nil, err
	}
	defer store.Close()
	return store.List(ctx)
}
