package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"taskdeck/cli/internal/archive"
	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/keychain"
	"taskdeck/cli/internal/webui"
)

// errReported marks an error whose message was already printed.
var errReported = errors.New("reported")

func reported(err error) error {
	return fmt.Errorf("%w: %w", errReported, err)
}

func newAPI() (backend.API, error) {
	return backend.New(settings.BackendURL, logger)
}

// archiveSource returns the DSN of the active archive: the one stored in the
// keychain when present, otherwise the configured SQLite file.
func archiveSource() (source string, fromKeychain bool, err error) {
	if km, err := keychain.GetManager(); err == nil {
		if v, err := km.LoadArchiveDSN(); err == nil && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v), true, nil
		}
	}
	if settings.Archive.Path == "" {
		return "", false, errors.New("no archive path configured")
	}
	return settings.Archive.Path, false, nil
}

// openArchive opens the active archive, creating the SQLite directory when needed.
func openArchive(ctx context.Context) (archive.Store, error) {
	source, fromKeychain, err := archiveSource()
	if err != nil {
		return nil, err
	}
	if fromKeychain {
		return archive.Open(ctx, source)
	}
	if err := os.MkdirAll(filepath.Dir(source), 0o700); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return archive.OpenSQLite(ctx, source)
}

// newSession builds a terminal-side session. When the archive is enabled the
// returned close function must be called to release it.
func newSession(ctx context.Context, api backend.API) (*webui.Session, func()) {
	opts := []webui.Option{webui.WithLogger(logger)}
	closeFn := func() {}
	if settings.Archive.Enabled {
		store, err := openArchive(ctx)
		if err != nil {
			logger.Warn("history archive unavailable", "error", err)
		} else {
			opts = append(opts, webui.WithHistorySink(store))
			closeFn = func() { _ = store.Close() }
		}
	}
	return webui.NewSession(api, opts...), closeFn
}
