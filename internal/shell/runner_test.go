// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/paint"
)

type framePresenter chan *paint.Buffer

func (p framePresenter) Present(buf *paint.Buffer) {
	select {
	case p <- buf:
	default:
	}
}

func startRunner(t *testing.T, s *Shell, p Presenter) (*Runner, context.CancelFunc, <-chan error) {
	t.Helper()
	r := NewRunner(s, p)
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	t.Cleanup(cancel)
	return r, cancel, errc
}

func TestRunnerDoRunsOnLoop(t *testing.T) {
	s, _ := newTestShell(t, nil)
	r, cancel, errc := startRunner(t, s, nil)

	ctx := context.Background()
	if err := r.Do(ctx, func(s *Shell) error { return s.OpenApp(ctx, "about") }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	var st State
	if err := r.Do(ctx, func(s *Shell) error { st = s.State(); return nil }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if len(st.Windows) != 1 || st.ActiveID != "about" {
		t.Fatalf("state = %+v", st)
	}

	cancel()
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on cancel")
	}
	if err := r.Do(ctx, func(*Shell) error { return nil }); !errors.Is(err, ErrStopped) {
		t.Fatalf("Do after stop = %v", err)
	}
}

func TestRunnerQuitsOnCtrlQ(t *testing.T) {
	s, _ := newTestShell(t, nil)
	r, _, errc := startRunner(t, s, nil)
	r.Post(tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl))
	select {
	case err := <-errc:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("Run did not stop on Ctrl+Q")
	}
}

func TestRunnerPresentsFrames(t *testing.T) {
	s, _ := newTestShell(t, func(c *config.Config) { c.Shell.FrameInterval = time.Millisecond })
	frames := make(framePresenter, 1)
	startRunner(t, s, frames)
	select {
	case buf := <-frames:
		if buf.W != 120 || buf.H != 40 {
			t.Fatalf("frame size %dx%d", buf.W, buf.H)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("no frame presented")
	}
}
