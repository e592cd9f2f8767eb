// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/shell/runner.go
// Summary: Frame loop that owns a Shell.
// Usage: Surfaces post terminal events with Post and run session
//   operations with Do; everything executes on the Run goroutine.
// Notes: Each tick steps physics before drawing. Frames are only presented
//   when something changed or an animation is running.

package shell

import (
	"context"
	"errors"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/paint"
)

// ErrStopped is returned by Do once the loop has exited.
var ErrStopped = errors.New("shell: runner stopped")

// Presenter shows composed frames, usually on a terminal.
type Presenter interface {
	Present(buf *paint.Buffer)
}

type command struct {
	fn   func(*Shell) error
	done chan error
}

// Runner drives a Shell from a single goroutine.
type Runner struct {
	shell     *Shell
	interval  time.Duration
	presenter Presenter

	events  chan tcell.Event
	cmds    chan command
	refresh chan bool
	done    chan struct{}
}

// NewRunner wraps s. presenter may be nil for headless sessions.
func NewRunner(s *Shell, presenter Presenter) *Runner {
	return &Runner{
		shell:     s,
		interval:  s.cfg.Shell.FrameInterval,
		presenter: presenter,
		events:    make(chan tcell.Event, 64),
		cmds:      make(chan command),
		refresh:   make(chan bool, 1),
		done:      make(chan struct{}),
	}
}

// Post queues a terminal event. It drops the event once the loop is gone.
func (r *Runner) Post(ev tcell.Event) {
	select {
	case r.events <- ev:
	case <-r.done:
	}
}

// Do runs fn on the loop goroutine and waits for its result.
func (r *Runner) Do(ctx context.Context, fn func(*Shell) error) error {
	cmd := command{fn: fn, done: make(chan error, 1)}
	select {
	case r.cmds <- cmd:
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	}
	select {
	case err := <-cmd.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	case <-r.done:
		return ErrStopped
	}
}

// Run loops until ctx ends or the user quits.
func (r *Runner) Run(ctx context.Context) error {
	defer close(r.done)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s := r.shell
	s.clock.SetRefreshNotifier(r.refresh)
	go s.clock.Run(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	s.log.Info().Dur("frame", r.interval).Int("cols", s.vp.W).Int("rows", s.vp.H).Msg("session started")
	for {
		if s.Quit() {
			s.log.Info().Msg("session ended by user")
			return nil
		}
		select {
		case ev := <-r.events:
			s.HandleEvent(ev)
		case cmd := <-r.cmds:
			cmd.done <- cmd.fn(s)
		case <-r.refresh:
			s.Invalidate()
		case <-ticker.C:
			s.Tick(s.now())
			if r.presenter != nil && s.NeedsDraw() {
				r.presenter.Present(s.Render())
			}
		case <-ctx.Done():
			return nil
		}
	}
}
