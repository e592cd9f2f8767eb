// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/shell"
	"github.com/framegrace/deskfolio/paint"
)

func useSimulation(t *testing.T) tcell.SimulationScreen {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	SetScreenFactory(func() (tcell.Screen, error) { return sim, nil })
	t.Cleanup(func() { SetScreenFactory(nil) })
	return sim
}

func TestPresentCopiesBuffer(t *testing.T) {
	sim := useSimulation(t)
	d, err := Open()
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	buf := paint.NewBuffer(4, 2, tcell.StyleDefault)
	buf.Set(1, 1, paint.Cell{Ch: 'A', Style: tcell.StyleDefault.Bold(true)})
	d.Present(buf)

	ch, _, style, _ := sim.GetContent(1, 1)
	if ch != 'A' {
		t.Fatalf("cell (1,1) = %q, want A", ch)
	}
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrBold == 0 {
		t.Fatalf("style not copied")
	}
	d.Present(nil)
}

func TestRunEndsOnCtrlQ(t *testing.T) {
	sim := useSimulation(t)
	store, err := content.Open(context.Background(), content.MemoryPath, nil)
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	defer store.Close()

	cfg := config.Default()
	cfg.Shell.SkipBoot = true
	cfg.Shell.FrameInterval = time.Millisecond

	var size [2]int
	build := func(ctx context.Context, w, h int) (*shell.Shell, error) {
		size = [2]int{w, h}
		sim.InjectKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl)
		return shell.New(ctx, w, h, shell.Options{Config: cfg, Source: store, Logger: zerolog.Nop()})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Run(ctx, build); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ctx.Err() != nil {
		t.Fatalf("Run ended by timeout instead of Ctrl+Q")
	}
	if size != [2]int{80, 25} {
		t.Fatalf("session size = %v", size)
	}
}
