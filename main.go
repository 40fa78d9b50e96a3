// Package main is the entry point for the taskdeck CLI application.
// It submits tasks to an agent backend and serves a small web dashboard.
package main

import (
	"taskdeck/cli/cmd"
)

// main is the entry point for the taskdeck CLI application.
// It initializes and executes the command-line interface.
func main() {
	cmd.Execute()
}
