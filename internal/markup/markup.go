// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package markup builds HTML fragments from untrusted text.
//
// A Fragment is only ever produced by concatenating literal markup with values
// passed through Escape, so it is safe to insert into a page verbatim.
package markup

import (
	"html"
	"strings"
)

// Fragment is a piece of HTML that is safe to insert as raw markup.
type Fragment string

// Escape converts arbitrary text to text safe for HTML element content and
// quoted attribute values. It escapes &, <, >, " and '.
//
// Escape must be applied exactly once to each raw string; escaping an
// already escaped string would show entity names to the user.
func Escape(s string) string {
	return html.EscapeString(s)
}

// Builder accumulates a Fragment. Raw markup goes through Markup, untrusted
// text through Text.
type Builder struct {
	sb strings.Builder
}

// Markup appends literal trusted markup.
func (b *Builder) Markup(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Text appends untrusted text, escaped.
func (b *Builder) Text(s string) *Builder {
	b.sb.WriteString(Escape(s))
	return b
}

// Fragment appends an already built fragment.
func (b *Builder) Fragment(f Fragment) *Builder {
	b.sb.WriteString(string(f))
	return b
}

// Build returns the accumulated fragment.
func (b *Builder) Build() Fragment {
	return Fragment(b.sb.String())
}
