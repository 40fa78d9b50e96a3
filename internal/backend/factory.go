// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"log/slog"
)

// New creates a backend API implementation for the given backend URL.
// Only the URL's origin is used. Returns HTTP client (real backend).
func New(backendURL string, logger *slog.Logger) (API, error) {
	origin, err := Origin(backendURL)
	if err != nil {
		return nil, err
	}
	return newHTTP(origin, DefaultEndpoints(), logger), nil
}
