// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package dsn

import (
	"net/url"
	"strings"
)

// SQLiteResolver handles sqlite://path and file:path archive addresses.
type SQLiteResolver struct{}

// NewSQLiteResolver creates a new SQLite resolver
func NewSQLiteResolver() *SQLiteResolver {
	return &SQLiteResolver{}
}

// Parse extracts the database file path and query parameters.
func (r *SQLiteResolver) Parse(dsn string) (*DSNInfo, error) {
	trimmed := strings.TrimSpace(dsn)
	lower := strings.ToLower(trimmed)

	var rest string
	switch {
	case strings.HasPrefix(lower, "sqlite3://"):
		rest = trimmed[len("sqlite3://"):]
	case strings.HasPrefix(lower, "sqlite://"):
		rest = trimmed[len("sqlite://"):]
	case strings.HasPrefix(lower, "file:"):
		rest = trimmed[len("file:"):]
	default:
		return nil, NewParseError(dsn, "missing or invalid scheme", "use sqlite:///path/to/history.db")
	}

	info := &DSNInfo{
		Type:     DBTypeSQLite,
		Params:   make(map[string]string),
		Original: dsn,
	}
	path, query, _ := strings.Cut(rest, "?")
	if query != "" {
		values, err := url.ParseQuery(query)
		if err != nil {
			return nil, NewParseError(dsn, "invalid query parameters", "")
		}
		for key, v := range values {
			if len(v) > 0 {
				info.Params[key] = v[0]
			}
		}
	}
	info.Database = strings.TrimSpace(path)
	if info.Database == "" {
		return nil, NewParseError(dsn, "missing database file", "use sqlite:///path/to/history.db")
	}
	return info, nil
}

// Normalize returns the file: URL the sqlite driver opens.
func (r *SQLiteResolver) Normalize(info *DSNInfo) (string, error) {
	if info == nil {
		return "", NewParseError("", "nil DSN info", "")
	}
	out := "file:" + info.Database
	if len(info.Params) > 0 {
		q := url.Values{}
		for k, v := range info.Params {
			q.Set(k, v)
		}
		out += "?" + q.Encode()
	}
	return out, nil
}

// Validate checks that the DSN names a database file.
func (r *SQLiteResolver) Validate(dsn string) error {
	_, err := r.Parse(dsn)
	return err
}
