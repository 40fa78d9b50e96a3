// Copyright (c) 2025 Seedfast
// Licensed under the MIT License. See LICENSE file in the project root for details.

package webui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/sync/semaphore"

	"taskdeck/cli/internal/backend"
	taskerrors "taskdeck/cli/internal/errors"
	"taskdeck/cli/internal/task"
)

// MsgEmptyTask is the validation notification for blank input.
const MsgEmptyTask = "Please enter a task"

// ErrBusy is returned when a submission is refused because another one holds
// the guard. Match it with errors.Is.
var ErrBusy = taskerrors.New(taskerrors.Busy, "a task is already executing")

// Guard is the single permit that serializes submissions. The submit control
// is disabled exactly while the permit is held.
type Guard struct {
	sem *semaphore.Weighted
}

// NewGuard returns a released guard.
func NewGuard() *Guard {
	return &Guard{sem: semaphore.NewWeighted(1)}
}

// TryAcquire takes the permit without blocking.
func (g *Guard) TryAcquire() bool { return g.sem.TryAcquire(1) }

// Release returns the permit.
func (g *Guard) Release() { g.sem.Release(1) }

// ExecuteTask runs one submission: idle -> submitting -> idle.
//
// Blank input notifies the user and returns a validation error without any
// network call or guard use. A submission while another one is in flight returns ErrBusy
// and leaves the page untouched. Otherwise the task is sent and awaited; on
// success the result is rendered, history refreshed and the input cleared;
// on failure an error card is rendered and history is left alone. The submit
// control is always restored before returning, even if rendering panics.
func (s *Session) ExecuteTask(ctx context.Context) (result *task.Task, err error) {
	var text, tool string
	s.update(func(p *Page) {
		text = strings.TrimSpace(p.Input)
		tool = p.SelectedTool
	})
	if text == "" {
		s.update(func(p *Page) { p.Alert = MsgEmptyTask })
		if s.notifier != nil {
			s.notifier.Notify(MsgEmptyTask)
		}
		return nil, taskerrors.New(taskerrors.Validation, MsgEmptyTask)
	}

	if !s.guard.TryAcquire() {
		return nil, ErrBusy
	}

	s.update(func(p *Page) {
		p.Submit = Control{Disabled: true, Label: LabelSubmitting}
		p.Results = RenderLoading()
		p.Current = nil
		p.ErrorMessage = ""
		p.Alert = ""
	})

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("task submission panicked", "panic", r)
			msg := fmt.Sprintf("Failed to execute task: %v", r)
			s.showError(msg)
			result, err = nil, fmt.Errorf("execute task: %v", r)
		}
		s.update(func(p *Page) { p.Submit = Control{Label: LabelIdle} })
		s.guard.Release()
	}()

	s.logger.Debug("submitting task", "task", text, "tool", tool)
	t, err := s.api.Execute(ctx, task.NewExecuteRequest(text, tool))
	if err != nil {
		s.logger.Info("task submission failed", "kind", taskerrors.KindOf(err), "error", err)
		s.showError(errorCardMessage(err))
		return nil, err
	}

	card := RenderTask(*t)
	s.update(func(p *Page) {
		p.Results = card
		p.Current = t
	})
	s.LoadHistory(ctx)
	s.update(func(p *Page) { p.Input = "" })
	return t, nil
}

func (s *Session) showError(msg string) {
	card := RenderErrorCard(msg)
	s.update(func(p *Page) {
		p.Results = card
		p.Current = nil
		p.ErrorMessage = msg
	})
}

// errorCardMessage returns the backend message for application errors and a
// generic prefix plus the cause for anything else.
func errorCardMessage(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	cause := err
	var e *taskerrors.E
	if errors.As(err, &e) && e.Err != nil {
		cause = e.Err
	}
	return "Failed to execute task: " + cause.Error()
}

// Key names used by Submits.
const KeyEnter = "Enter"

// KeyEvent is a key press in the task input.
type KeyEvent struct {
	Key   string
	Shift bool
}

// Submits reports whether ev submits the task input: Enter without Shift.
// The dashboard's inline script and the interactive prompt both follow it.
func Submits(ev KeyEvent) bool {
	return ev.Key == KeyEnter && !ev.Shift
}

// HandleKey applies the input's keyboard contract to the session. A submitting
// key runs ExecuteTask and reports true, meaning the default action (a line
// break) must be suppressed. Shift+Enter and every other key report false.
func (s *Session) HandleKey(ctx context.Context, ev KeyEvent) bool {
	if !Submits(ev) {
		return false
	}
	_, _ = s.ExecuteTask(ctx)
	return true
}
