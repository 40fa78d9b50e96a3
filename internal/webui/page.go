// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package webui holds the page state of the task dashboard and the components
// that own its regions: the tool registry loader, the history synchronizer and
// the task submission controller.
//
// All rendering goes through package markup, so every region holds a fragment
// that is safe to insert into a page verbatim. A Session is one page load; its
// state is guarded by a mutex and read through Snapshot.
package webui

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"taskdeck/cli/internal/backend"
	"taskdeck/cli/internal/markup"
	"taskdeck/cli/internal/task"
)

// Submit control labels.
const (
	LabelIdle       = "Execute Task"
	LabelSubmitting = "Executing..."
)

// Control is the state of the submit button.
type Control struct {
	Disabled bool
	Label    string
}

// Page is the full UI state of one page load. Each region is written by
// exactly one component.
type Page struct {
	// Tools is owned by LoadTools.
	Tools markup.Fragment
	// ToolOptions are the selection choices after the default "auto" entry,
	// in backend order. Owned by LoadTools.
	ToolOptions []string
	// History is owned by LoadHistory.
	History markup.Fragment
	// Results, Current, Submit and Alert are owned by ExecuteTask.
	Results markup.Fragment
	// Current is the task shown in Results, nil when Results shows a
	// placeholder or an error card.
	Current *task.Task
	// ErrorMessage is the text of the error card in Results, if any.
	ErrorMessage string
	Submit       Control
	// Alert is the last validation notification.
	Alert string

	Input        string
	SelectedTool string
}

// Notifier delivers a blocking user notification, like a browser alert.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Notify(msg string) { f(msg) }

// HistorySink receives every successfully fetched history, in fetched order.
type HistorySink interface {
	Save(ctx context.Context, history []task.Task) error
}

// Session is one page load: the page state plus the components driving it.
type Session struct {
	api      backend.API
	guard    *Guard
	notifier Notifier
	sink     HistorySink
	logger   *slog.Logger

	mu   sync.Mutex
	page Page
}

// Option configures a Session.
type Option func(*Session)

// WithGuard shares a submission guard between sessions. Sessions created
// without one get a private guard.
func WithGuard(g *Guard) Option { return func(s *Session) { s.guard = g } }

// WithNotifier sets the validation notifier.
func WithNotifier(n Notifier) Option { return func(s *Session) { s.notifier = n } }

// WithHistorySink mirrors fetched history into sink.
func WithHistorySink(sink HistorySink) Option { return func(s *Session) { s.sink = sink } }

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option { return func(s *Session) { s.logger = l } }

// NewSession creates a session in its initial, not yet loaded state.
func NewSession(api backend.API, opts ...Option) *Session {
	s := &Session{api: api}
	for _, opt := range opts {
		opt(s)
	}
	if s.guard == nil {
		s.guard = NewGuard()
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.page = Page{
		Tools:   placeholder("Loading tools..."),
		History: placeholder("Loading history..."),
		Results: placeholder("Submit a task to see results here."),
		Submit:  Control{Label: LabelIdle},
	}
	return s
}

// Start performs the page-load work: the tool registry and the history are
// fetched independently and each fills its own region. Failures end up as
// placeholders, never as errors.
func (s *Session) Start(ctx context.Context) {
	var g errgroup.Group
	g.Go(func() error {
		s.LoadTools(ctx)
		return nil
	})
	g.Go(func() error {
		s.LoadHistory(ctx)
		return nil
	})
	_ = g.Wait()
}

// SetInput models the user typing a task and picking a tool. An empty tool
// means no preference.
func (s *Session) SetInput(text, tool string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page.Input = text
	s.page.SelectedTool = tool
	s.page.Alert = ""
}

// SetAlert shows a notification raised by the front end itself, such as a
// refused overlapping submission.
func (s *Session) SetAlert(msg string) {
	s.update(func(p *Page) { p.Alert = msg })
}

// Snapshot returns a copy of the current page state.
func (s *Session) Snapshot() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := s.page
	p.ToolOptions = slices.Clone(s.page.ToolOptions)
	return p
}

func (s *Session) update(fn func(p *Page)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.page)
}
