// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"taskdeck/cli/internal/webserver"
	"taskdeck/cli/internal/webui"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	servePort      int
	serveNoBrowser bool
)

// serveCmd runs the web dashboard until interrupted.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web dashboard",
	Long: `The serve command starts the task dashboard on 127.0.0.1 and opens it in the
default browser. Submissions from every open page share one busy guard, so only
one task executes at a time. Press Ctrl+C to stop.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		api, err := newAPI()
		if err != nil {
			return err
		}

		cfg := webserver.Config{
			Port:       settings.Serve.Port,
			NoBrowser:  settings.Serve.NoBrowser,
			Logger:     logger,
			API:        api,
			BackendURL: settings.BackendURL,
			Guard:      webui.NewGuard(),
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}
		if cmd.Flags().Changed("no-browser") {
			cfg.NoBrowser = serveNoBrowser
		}
		if settings.Archive.Enabled {
			store, err := openArchive(ctx)
			if err != nil {
				logger.Warn("history archive unavailable", "error", err)
			} else {
				defer store.Close()
				cfg.Sink = store
			}
		}

		srv, err := webserver.New(cfg)
		if err != nil {
			return err
		}
		pterm.Info.Printfln("Dashboard running at %s (backend %s)", srv.URL(), settings.BackendURL)
		pterm.Println("Press Ctrl+C to stop.")
		return srv.ListenAndServe(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVar(&servePort, "port", webserver.DefaultPort, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveNoBrowser, "no-browser", false, "Do not open a browser")
}
