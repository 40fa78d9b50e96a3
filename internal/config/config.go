// Package config loads and stores CLI configuration in the XDG config dir.
// Only non-secret settings are kept here; the PostgreSQL archive DSN goes to
// the OS keychain.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"taskdeck/cli/internal/xdg"
)

// Defaults.
const (
	DefaultBackendURL = "http://127.0.0.1:5000"
	DefaultLogLevel   = "info"
	DefaultServePort  = 3000
	archiveFile       = "history.db"
	fileName          = "config.yaml"
)

// Environment overrides, applied after the file.
const (
	EnvBackendURL = "TASKDECK_BACKEND_URL"
	EnvLogLevel   = "TASKDECK_LOG_LEVEL"
)

// Config holds non-sensitive CLI settings.
type Config struct {
	BackendURL string        `yaml:"backend_url"`
	LogLevel   string        `yaml:"log_level"`
	Serve      ServeConfig   `yaml:"serve"`
	Archive    ArchiveConfig `yaml:"archive"`
}

// ServeConfig holds web dashboard settings.
type ServeConfig struct {
	Port      int  `yaml:"port"`
	NoBrowser bool `yaml:"no_browser"`
}

// ArchiveConfig controls the local history archive. Path is the SQLite file
// used when no PostgreSQL DSN is stored in the keychain.
type ArchiveConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns a Config with every default populated.
func Default() Config {
	c := Config{
		BackendURL: DefaultBackendURL,
		LogLevel:   DefaultLogLevel,
		Serve:      ServeConfig{Port: DefaultServePort},
	}
	if dir, err := xdg.StateDir(); err == nil {
		c.Archive.Path = filepath.Join(dir, archiveFile)
	}
	return c
}

// Path returns the path to the config file.
func Path() (string, error) {
	dir, err := xdg.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads the config file; a missing file returns defaults. Environment
// overrides are applied in both cases.
func Load() (Config, error) {
	p, err := Path()
	if err != nil {
		return Default(), err
	}
	return LoadFile(p)
}

// LoadFile reads configuration from p over the defaults, then applies
// environment overrides.
func LoadFile(p string) (Config, error) {
	c, err := readFile(p)
	if err != nil {
		return c, err
	}
	applyEnv(&c)
	return c, nil
}

// readFile reads p over the defaults without environment overrides.
func readFile(p string) (Config, error) {
	c := Default()
	data, err := os.ReadFile(p)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("reading %s: %w", p, err)
	default:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing %s: %w", p, err)
		}
	}
	if c.Serve.Port <= 0 {
		c.Serve.Port = DefaultServePort
	}
	return c, nil
}

// Update applies fn to the configuration stored at p and writes it back.
// Environment overrides are neither applied nor persisted.
func Update(p string, fn func(c *Config)) error {
	c, err := readFile(p)
	if err != nil {
		return err
	}
	fn(&c)
	return SaveFile(p, c)
}

// Save writes configuration with 0600 permissions.
func Save(c Config) error {
	p, err := Path()
	if err != nil {
		return err
	}
	return SaveFile(p, c)
}

// SaveFile writes c to p with 0600 permissions.
func SaveFile(p string, c Config) error {
	b, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(p, b, 0o600)
}

func applyEnv(c *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvBackendURL)); v != "" {
		c.BackendURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = v
	}
}
