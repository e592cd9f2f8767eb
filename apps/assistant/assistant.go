// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/assistant/assistant.go
// Summary: Draggable desktop helper that rotates through usage tips.
// Notes: Positions are in cells. The bubble fades in through a Timeline
//   each time a new tip appears.

package assistant

import (
	"time"

	"github.com/framegrace/deskfolio/internal/effects"
	"github.com/framegrace/deskfolio/paint"
)

// Sprite size in cells.
const (
	SpriteW = 6
	SpriteH = 3

	fadeKey      = "bubble"
	fadeDuration = 250 * time.Millisecond
)

// Tip is a message and how long it stays up.
type Tip struct {
	Text     string
	Duration time.Duration
}

// Tips returns the rotation, in order.
func Tips() []Tip {
	return []Tip{
		{"Hi there! I'm Clippy 2.0. Need help with anything?", 5 * time.Second},
		{"Want to see my projects? Double-click on the Projects icon!", 5 * time.Second},
		{"You can download my resume from the Resume icon.", 5 * time.Second},
		{"Try right-clicking on the desktop for more options!", 5 * time.Second},
		{"Check out my GitHub by clicking on the GitHub icon.", 5 * time.Second},
		{"Did you know? You can resize and move windows just like in a real OS!", 6 * time.Second},
	}
}

// View is the presentation state for one frame.
type View struct {
	Visible bool
	X, Y    int
	Text    string
	// Alpha is the bubble opacity in [0,1].
	Alpha float64
}

// Assistant tracks position, drag and the current tip.
type Assistant struct {
	tips    []Tip
	current int
	shownAt time.Time
	visible bool

	x, y     int
	dragging bool
	offX     int
	offY     int

	timeline *effects.Timeline
}

// New places the assistant at (x, y) showing the first tip.
func New(x, y int, now time.Time) *Assistant {
	a := &Assistant{
		tips:     Tips(),
		shownAt:  now,
		visible:  true,
		x:        x,
		y:        y,
		timeline: effects.NewTimeline(0),
	}
	a.timeline.AnimateWith(fadeKey, 1, fadeDuration, effects.EaseOutQuad, now)
	return a
}

// Update rotates to the next tip when the current one has expired.
func (a *Assistant) Update(now time.Time) {
	if !a.visible {
		return
	}
	for now.Sub(a.shownAt) >= a.tips[a.current].Duration {
		a.shownAt = a.shownAt.Add(a.tips[a.current].Duration)
		a.current = (a.current + 1) % len(a.tips)
		a.timeline.Set(fadeKey, 0)
		a.timeline.AnimateTo(fadeKey, 1, fadeDuration, a.shownAt)
	}
	a.timeline.Update(now)
}

// Tip returns the tip on screen.
func (a *Assistant) Tip() Tip { return a.tips[a.current] }

func (a *Assistant) Visible() bool { return a.visible }

// Close hides the assistant for the rest of the session.
func (a *Assistant) Close() {
	a.visible = false
	a.dragging = false
}

// SpriteRect is the draggable body.
func (a *Assistant) SpriteRect() paint.Rect {
	return paint.Rect{X: a.x, Y: a.y, W: SpriteW, H: SpriteH}
}

// CloseRect is the close box at the sprite's top-right corner.
func (a *Assistant) CloseRect() paint.Rect {
	return paint.Rect{X: a.x + SpriteW - 1, Y: a.y, W: 1, H: 1}
}

// BeginDrag grabs the sprite at (px, py).
func (a *Assistant) BeginDrag(px, py int) {
	a.dragging = true
	a.offX, a.offY = px-a.x, py-a.y
}

func (a *Assistant) Dragging() bool { return a.dragging }

// DragTo moves the sprite with the pointer, keeping it inside bounds.
func (a *Assistant) DragTo(px, py int, bounds paint.Rect) {
	if !a.dragging {
		return
	}
	a.MoveTo(px-a.offX, py-a.offY, bounds)
}

func (a *Assistant) EndDrag() { a.dragging = false }

// MoveTo places the sprite at (x, y) clamped inside bounds.
func (a *Assistant) MoveTo(x, y int, bounds paint.Rect) {
	a.x = max(bounds.X, min(x, bounds.X+bounds.W-SpriteW))
	a.y = max(bounds.Y, min(y, bounds.Y+bounds.H-SpriteH))
}

func (a *Assistant) View() View {
	return View{
		Visible: a.visible,
		X:       a.x,
		Y:       a.y,
		Text:    a.tips[a.current].Text,
		Alpha:   a.timeline.Get(fadeKey),
	}
}
