// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"fmt"

	"taskdeck/cli/internal/httperrors"
	"taskdeck/cli/internal/termui"

	"github.com/spf13/cobra"
)

// toolsCmd lists the tools registered on the backend.
var toolsCmd = &cobra.Command{
	Use:     "tools",
	Aliases: []string{"list-tools"},
	Short:   "List available tools",
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		tools, err := api.Tools(cmd.Context())
		if err != nil {
			httperrors.Print(err, "loading tools", settings.BackendURL)
			return reported(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), termui.Tools(tools))
		return nil
	},
}

// toolInfoCmd shows one tool by name.
var toolInfoCmd = &cobra.Command{
	Use:   "tool-info <name>",
	Short: "Show details of a tool",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		api, err := newAPI()
		if err != nil {
			return err
		}
		tools, err := api.Tools(cmd.Context())
		if err != nil {
			httperrors.Print(err, "loading tools", settings.BackendURL)
			return reported(err)
		}
		fmt.Fprint(cmd.OutOrStdout(), termui.ToolInfo(tools, args[0]))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	rootCmd.AddCommand(toolInfoCmd)
}
