// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"testing"

	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/paint"
)

func TestHitWindow(t *testing.T) {
	frame := paint.Rect{X: 10, Y: 5, W: 30, H: 10}
	tests := []struct {
		x, y int
		want Part
	}{
		{9, 5, PartNone},
		{12, 5, PartTitle},
		{36, 5, PartClose},
		{38, 5, PartClose},
		{33, 5, PartMaximize},
		{30, 5, PartMinimize},
		{39, 14, PartResize},
		{20, 8, PartBody},
	}
	for _, tt := range tests {
		if got := HitWindow(frame, tt.x, tt.y); got != tt.want {
			t.Errorf("HitWindow(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestWindowAtPrefersTopmostAndSkipsMinimized(t *testing.T) {
	vp := desktop.Viewport{W: 80, H: 24}
	ws := []desktop.Window{
		{ID: "a", X: 0, Y: 0, Width: 20, Height: 10, Z: 101},
		{ID: "b", X: 5, Y: 2, Width: 20, Height: 10, Z: 102},
		{ID: "c", X: 5, Y: 2, Width: 20, Height: 10, Z: 103, Minimized: true},
	}
	w, part, ok := WindowAt(vp, ws, 8, 4)
	if !ok || w.ID != "b" || part != PartBody {
		t.Fatalf("WindowAt = %s %v %v", w.ID, part, ok)
	}
	if _, _, ok := WindowAt(vp, ws, 60, 20); ok {
		t.Fatalf("expected no window at empty desktop")
	}
}

func TestIconRectsWrapColumns(t *testing.T) {
	work := paint.Rect{W: 80, H: 10}
	rs := IconRects(work, 4)
	if rs[0] != (paint.Rect{X: 1, Y: 1, W: IconW, H: IconH}) {
		t.Fatalf("first icon at %+v", rs[0])
	}
	if rs[1].Y != 5 || rs[1].X != 1 {
		t.Fatalf("second icon at %+v", rs[1])
	}
	if rs[2].X != 1+IconW+1 || rs[2].Y != 1 {
		t.Fatalf("third icon should start a new column, got %+v", rs[2])
	}
	if IconAt(work, 4, 2, 6) != 1 || IconAt(work, 4, 60, 6) != -1 {
		t.Fatalf("IconAt mismatch")
	}
}

func TestTaskbarLayout(t *testing.T) {
	bar := paint.Rect{Y: 23, W: 80, H: 1}
	ws := []desktop.Window{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}
	l := Taskbar(bar, ws, 20)
	if l.Start.X != 0 || l.Start.W != len(StartLabel) {
		t.Fatalf("start = %+v", l.Start)
	}
	if l.Clock.X != 60 || l.Clock.W != 20 {
		t.Fatalf("clock = %+v", l.Clock)
	}
	if len(l.Items) != 2 || l.Items[0].Rect.W != taskItemW {
		t.Fatalf("items = %+v", l.Items)
	}
	id, ok := l.ItemAt(l.Items[1].Rect.X, 23)
	if !ok || id != "b" {
		t.Fatalf("ItemAt = %q %v", id, ok)
	}
	if _, ok := l.ItemAt(l.Start.X, 23); ok {
		t.Fatalf("start button reported as item")
	}
}

func TestMenuIsClampedInside(t *testing.T) {
	work := paint.Rect{W: 40, H: 20}
	m := Menu{X: 38, Y: 18, Items: []string{"View", "Refresh", "Terminal", "Display Settings"}}
	r := MenuRect(m, work)
	if r.X+r.W > 40 || r.Y+r.H > 20 || r.X < 0 || r.Y < 0 {
		t.Fatalf("menu escapes work area: %+v", r)
	}
	if r.W != len("Display Settings")+4 || r.H != 6 {
		t.Fatalf("menu size %dx%d", r.W, r.H)
	}
	if got := MenuItemAt(m, work, r.X+2, r.Y+3); got != 2 {
		t.Fatalf("MenuItemAt = %d", got)
	}
	if got := MenuItemAt(m, work, r.X+2, r.Y); got != -1 {
		t.Fatalf("border row hit an item: %d", got)
	}
}
