package cmd

import (
	"fmt"

	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/termui"

	"github.com/spf13/cobra"
)

// healthCmd checks that the backend is up.
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		h, err := api.Health(cmd.Context())
		if err != nil {
			httperrors.Print(err, "checking backend health", settings.BackendURL)
			return reported(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), termui.Health(h))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
