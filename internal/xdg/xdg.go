// Package xdg resolves XDG Base Directory paths for taskdeck.
//
// Directories fall back to the traditional locations under the home directory
// when the XDG environment variables are unset, and are created private.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "taskdeck"

// ConfigDir returns the XDG config directory for taskdeck.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/taskdeck when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for taskdeck, where the local
// history archive lives. It falls back to ~/.local/state/taskdeck.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

func resolve(env, fallback string) (string, error) {
	base := os.Getenv(env)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, fallback)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
