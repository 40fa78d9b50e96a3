// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoints contains REST API endpoint paths relative to the backend origin.
type Endpoints struct {
	Execute string // e.g., "/api/execute"
	Tools   string // e.g., "/api/tools"
	History string // e.g., "/api/history"
	Task    string // e.g., "/api/task/%d"
	Health  string // e.g., "/health"
}

// DefaultEndpoints returns the paths served by the task execution backend.
func DefaultEndpoints() Endpoints {
	return Endpoints{
		Execute: "/api/execute",
		Tools:   "/api/tools",
		History: "/api/history",
		Task:    "/api/task/%d",
		Health:  "/health",
	}
}

// Origin reduces a configured backend URL to scheme://host[:port].
// Paths, queries and fragments are dropped because every endpoint is
// addressed from the origin.
func Origin(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty backend URL")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse backend URL: %w", err)
	}
	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return "", fmt.Errorf("unsupported backend URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("backend URL %q has no host", raw)
	}
	return scheme + "://" + u.Host, nil
}
