// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package cmd provides the command-line interface for taskdeck. It implements
// subcommands for submitting tasks, browsing tools and history, running the
// web dashboard and managing the local history archive, using the Cobra CLI
// framework with pterm for terminal output.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"taskdeck/cli/internal/config"
	"taskdeck/cli/internal/logging"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	showVersion bool
	backendFlag string
	debugFlag   bool

	// settings and logger are populated before any subcommand runs.
	settings config.Config
	logger   = slog.Default()
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:           "taskdeck",
	Short:         "taskdeck CLI for submitting tasks to a tool-using agent backend",
	Long:          `taskdeck submits natural-language tasks to an agent backend, shows the registered tools and the task history, and serves a small web dashboard over the same operations.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadSettings()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if showVersion {
			agent := "unknown"
			if api, err := newAPI(); err == nil {
				if h, err := api.Health(cmd.Context()); err == nil && h.Agent != "" {
					agent = h.Agent
				}
			}
			fmt.Printf("taskdeck %s\nbackend %s (%s)\n", Version, agent, settings.BackendURL)
			return nil
		}
		// If no flag is set, show help
		return cmd.Help()
	},
}

// Execute runs the CLI application.
// Errors already shown to the user are not printed again.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "Show CLI and backend version information")
	rootCmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Backend URL (overrides config and "+config.EnvBackendURL+")")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

// loadSettings reads the config file, applies flag overrides and builds the
// logger every command shares.
func loadSettings() error {
	c, err := config.Load()
	if err != nil {
		return err
	}
	if backendFlag != "" {
		c.BackendURL = backendFlag
	}
	if debugFlag {
		c.LogLevel = "debug"
		pterm.EnableDebugMessages()
	}
	settings = c
	logger = logging.NewLogger(c.LogLevel, os.Stderr)
	return nil
}
