// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
	"github.com/gdamore/tcell/v2"
)

func TestLookup(t *testing.T) {
	a, err := Lookup("spotify")
	if err != nil || a.Title != "Spotify Player" || a.WidthPx != 400 || a.HeightPx != 600 {
		t.Fatalf("Lookup(spotify) = %+v, %v", a, err)
	}
	if _, err := Lookup("contacts"); !errors.Is(err, ErrUnknownApp) {
		t.Fatalf("expected ErrUnknownApp, got %v", err)
	}
	if len(Apps()) != 6 {
		t.Fatalf("catalog has %d apps", len(Apps()))
	}
}

func TestCellsAndSpec(t *testing.T) {
	a, _ := Lookup("about")
	w, h := a.Cells(CellSize{W: 8, H: 16})
	if w != 75 || h != 25 {
		t.Fatalf("Cells = %dx%d", w, h)
	}
	w, h = a.Cells(CellSize{W: 1000, H: 1000})
	if w != 10 || h != 4 {
		t.Fatalf("Cells should floor at 10x4, got %dx%d", w, h)
	}
	spec := a.Spec(CellSize{W: 8, H: 16}, nil)
	if spec.ID != "about" || spec.Title != "About Me" || spec.Width != 75 || spec.X != nil {
		t.Fatalf("Spec = %+v", spec)
	}
}

func TestBuildEveryApp(t *testing.T) {
	ctx := context.Background()
	store, err := content.Open(ctx, content.MemoryPath, nil)
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	defer store.Close()

	f := &Factory{
		Source:  store,
		Palette: theming.Default(),
		Open:    func(string) error { return nil },
		Now:     func() time.Time { return time.Unix(0, 0) },
	}
	for _, a := range Apps() {
		p, err := f.Build(ctx, a.ID)
		if err != nil {
			t.Fatalf("Build(%s): %v", a.ID, err)
		}
		if _, ok := p.(paint.Placeholder); ok {
			t.Fatalf("Build(%s) fell back to a placeholder", a.ID)
		}
		buf := paint.NewBuffer(40, 12, tcell.StyleDefault)
		p.Draw(buf, buf.Bounds())
	}
	if _, err := f.Build(ctx, "nope"); !errors.Is(err, ErrUnknownApp) {
		t.Fatalf("expected ErrUnknownApp, got %v", err)
	}
}

func TestBuildFallsBackToPlaceholder(t *testing.T) {
	ctx := context.Background()
	store, err := content.Open(ctx, content.MemoryPath, nil)
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	store.Close()

	f := &Factory{Source: store, Palette: theming.Default()}
	p, err := f.Build(ctx, "github")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if _, ok := p.(paint.Placeholder); !ok {
		t.Fatalf("expected placeholder, got %T", p)
	}
}
