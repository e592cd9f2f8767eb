// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package assistant

import (
	"testing"
	"time"

	"github.com/framegrace/deskfolio/paint"
)

func TestTipsRotateWithTheirDurations(t *testing.T) {
	t0 := time.Unix(0, 0)
	a := New(10, 5, t0)
	tips := Tips()

	a.Update(t0.Add(4999 * time.Millisecond))
	if a.Tip() != tips[0] {
		t.Fatalf("first tip replaced early")
	}
	a.Update(t0.Add(5 * time.Second))
	if a.Tip() != tips[1] {
		t.Fatalf("expected second tip, got %q", a.Tip().Text)
	}

	// 5s * 5 tips then the 6s tip wraps back to the first.
	a.Update(t0.Add(31 * time.Second))
	if a.Tip() != tips[0] {
		t.Fatalf("rotation should wrap, got %q", a.Tip().Text)
	}
}

func TestBubbleFadesIn(t *testing.T) {
	t0 := time.Unix(0, 0)
	a := New(0, 0, t0)
	a.Update(t0)
	if a.View().Alpha != 0 {
		t.Fatalf("bubble should start transparent, got %v", a.View().Alpha)
	}
	a.Update(t0.Add(time.Second))
	if a.View().Alpha != 1 {
		t.Fatalf("bubble should be opaque, got %v", a.View().Alpha)
	}
}

func TestDragIsClamped(t *testing.T) {
	bounds := paint.Rect{W: 80, H: 23}
	a := New(10, 5, time.Unix(0, 0))
	a.BeginDrag(12, 6)
	a.DragTo(200, 200, bounds)
	v := a.View()
	if v.X != 80-SpriteW || v.Y != 23-SpriteH {
		t.Fatalf("drag not clamped: (%d,%d)", v.X, v.Y)
	}
	a.DragTo(-50, -50, bounds)
	if v := a.View(); v.X != 0 || v.Y != 0 {
		t.Fatalf("drag not clamped at origin: (%d,%d)", v.X, v.Y)
	}
	a.EndDrag()
	a.DragTo(30, 10, bounds)
	if v := a.View(); v.X != 0 {
		t.Fatalf("moved without an active drag")
	}
}

func TestCloseHides(t *testing.T) {
	a := New(3, 3, time.Unix(0, 0))
	if !a.CloseRect().Contains(3+SpriteW-1, 3) {
		t.Fatalf("close box misplaced")
	}
	a.Close()
	if a.Visible() || a.View().Visible {
		t.Fatalf("assistant still visible after close")
	}
}
