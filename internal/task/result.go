// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package task

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Kind names the variant of a result payload.
type Kind int

const (
	KindGeneric Kind = iota
	KindCode
	KindDocumentation
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindCode:
		return "code"
	case KindDocumentation:
		return "documentation"
	case KindList:
		return "list"
	default:
		return "generic"
	}
}

// Result is the polymorphic payload of a completed task. The backend sends
// no type tag; the variant is derived by Kind from which fields are present.
type Result struct {
	raw    json.RawMessage
	fields map[string]any
}

// NewResult builds a Result from already decoded fields. Used by tests and
// by stores that persist payloads.
func NewResult(fields map[string]any) (*Result, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(fields); err != nil {
		return nil, err
	}
	r := &Result{}
	if err := r.UnmarshalJSON(bytes.TrimSpace(buf.Bytes())); err != nil {
		return nil, err
	}
	return r, nil
}

// Raw returns the payload exactly as received.
func (r *Result) Raw() json.RawMessage {
	if r == nil {
		return nil
	}
	return r.raw
}

// Empty reports whether the payload is absent in the JSON sense: missing,
// null, false, 0 or "". Objects and arrays are never empty, even when they
// have no members.
func (r *Result) Empty() bool {
	if r == nil || len(r.raw) == 0 {
		return true
	}
	if r.fields != nil {
		return false
	}
	var v any
	if err := json.Unmarshal(r.raw, &v); err != nil {
		return false
	}
	return !truthy(v)
}

func (r *Result) UnmarshalJSON(b []byte) error {
	r.raw = append(r.raw[:0], b...)
	r.fields = nil
	// Non-object payloads are kept raw and render as a generic dump.
	var fields map[string]any
	if err := json.Unmarshal(b, &fields); err == nil {
		r.fields = fields
	}
	return nil
}

func (r Result) MarshalJSON() ([]byte, error) {
	if len(r.raw) == 0 {
		return []byte("null"), nil
	}
	return r.raw, nil
}

// Kind probes the payload in the fixed order code, documentation, results,
// falling back to generic. A field counts as present when it is truthy in
// the JSON sense: not null, false, 0 or "". A results array is present even
// when empty.
func (r *Result) Kind() Kind {
	if r == nil || r.fields == nil {
		return KindGeneric
	}
	if truthy(r.fields["code"]) {
		return KindCode
	}
	if truthy(r.fields["documentation"]) {
		return KindDocumentation
	}
	if truthy(r.fields["results"]) {
		if _, ok := r.fields["results"].([]any); ok {
			return KindList
		}
	}
	return KindGeneric
}

// CodeResult is the code variant.
type CodeResult struct {
	Code     string
	Language string
	CodeType string
}

// Code returns the code variant fields.
func (r *Result) Code() CodeResult {
	return CodeResult{
		Code:     r.str("code"),
		Language: r.str("language"),
		CodeType: r.str("code_type"),
	}
}

// Documentation returns the documentation text.
func (r *Result) Documentation() string {
	return r.str("documentation")
}

// ListResult is the list variant.
type ListResult struct {
	Results    []string
	NumResults int
}

// List returns the list variant. Non-string items are rendered as compact JSON.
func (r *Result) List() ListResult {
	var out ListResult
	items, _ := r.fields["results"].([]any)
	for _, item := range items {
		out.Results = append(out.Results, stringify(item))
	}
	if n, ok := r.fields["num_results"].(float64); ok {
		out.NumResults = int(n)
	} else {
		out.NumResults = len(out.Results)
	}
	return out
}

// Pretty returns the payload as indented JSON.
func (r *Result) Pretty() string {
	if r == nil || len(r.raw) == 0 {
		return "null"
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.raw, "", "  "); err != nil {
		return string(r.raw)
	}
	return buf.String()
}

// Fields returns the decoded top-level object, or nil for non-object payloads.
func (r *Result) Fields() map[string]any {
	if r == nil {
		return nil
	}
	return r.fields
}

func (r *Result) str(key string) string {
	v, ok := r.fields[key]
	if !ok || v == nil {
		return ""
	}
	return stringify(v)
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
