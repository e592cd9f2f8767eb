// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notes/engine.go
// Summary: Frame-stepped peel and fall simulation for the sticky-note stack.
// Usage: The shell calls Step once per frame with the sampled pointer state
//   and draws from Snapshot.
// Notes: A gesture owns at most one note. The guard is released only when
//   the pointer is seen up on a later frame.

package notes

import (
	"math"
	"math/rand/v2"
	"time"
)

// Sink receives lifecycle notifications from the engine.
type Sink interface {
	NoteFalling(id string)
	NoteRemoved(id string)
}

// Input is the pointer state sampled for one frame. Positions are in
// screen pixels.
type Input struct {
	Pointer Vec2
	Down    bool
	// Start is where the current gesture began.
	Start Vec2
}

// View is the presentation copy of a note for one frame.
type View struct {
	ID    string
	Text  string
	Color Color
	Stack int
	State State

	Rest         Rect
	Displacement Vec2
	Rotation     Rotation
	DragDir      Vec2

	Peel  float64
	Fall  float64
	Hover float64
	Scale float64
	Alpha float64
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand injects the random source used for fall velocities and new notes.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithSink installs the lifecycle sink.
func WithSink(s Sink) Option {
	return func(e *Engine) { e.sink = s }
}

// WithMaxDrag sets the drag distance in pixels that maps to a full peel.
func WithMaxDrag(px float64) Option {
	return func(e *Engine) {
		if px > 0 {
			e.maxDrag = px
		}
	}
}

// Engine advances every note in an arena.
type Engine struct {
	arena   *Arena
	scene   Scene
	rng     *rand.Rand
	sink    Sink
	maxDrag float64

	target   string
	selected bool
}

// NewEngine creates an engine over arena laid out by scene.
func NewEngine(arena *Arena, scene Scene, opts ...Option) *Engine {
	e := &Engine{
		arena:   arena,
		scene:   scene,
		maxDrag: DefaultMaxDrag,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// Arena returns the simulation records.
func (e *Engine) Arena() *Arena { return e.arena }

// Scene returns the current layout.
func (e *Engine) Scene() Scene { return e.scene }

// SetScene replaces the layout, typically after a resize.
func (e *Engine) SetScene(s Scene) { e.scene = s }

// Target returns the id of the note owned by the current gesture, if any.
func (e *Engine) Target() string { return e.target }

// MaxDrag returns the full-peel drag distance in pixels.
func (e *Engine) MaxDrag() float64 { return e.maxDrag }

// Step advances the simulation by dt using the sampled input.
func (e *Engine) Step(in Input, dt time.Duration) {
	ms := float64(dt) / float64(time.Millisecond)

	if !in.Down {
		e.selected = false
		e.target = ""
	}

	if in.Down && !e.selected {
		if top := e.arena.Topmost(); top != nil && e.scene.Hit(top, in.Pointer) {
			if top.transition(Peeling) {
				e.target = top.ID
				e.selected = true
			}
		}
	}

	for _, n := range e.arena.notes {
		switch n.State {
		case Peeling:
			e.stepPeel(n, in)
		case Falling:
			if integrate(n, ms) >= RemoveAt && n.transition(Removed) {
				if e.sink != nil {
					e.sink.NoteRemoved(n.ID)
				}
			}
		}
	}

	top := e.arena.Topmost()
	for _, n := range e.arena.notes {
		if n == top && n.State == Idle && !in.Down {
			n.Hover = easeHover(n.Hover, e.scene.Hit(n, in.Pointer))
			continue
		}
		n.Hover = 0
	}
}

func (e *Engine) stepPeel(n *Note, in Input) {
	switch {
	case in.Down && n.ID == e.target:
		dx := in.Pointer.X - in.Start.X
		dy := in.Pointer.Y - in.Start.Y
		n.Peel = PeelProgress(dx, dy, e.maxDrag)
		if l := math.Hypot(dx, dy); l > 0 {
			n.DragDir = Vec2{X: dx / l, Y: dy / l}
		}
		if n.Peel >= PeelThreshold {
			cdx := clamp(dx, -e.maxDrag, e.maxDrag)
			cdy := max(dy, -1.5*e.maxDrag)
			e.fall(n, dragVelocity(e.rng, cdx, cdy))
		}
	case !in.Down:
		if n.Peel >= PeelThreshold {
			e.fall(n, releaseVelocity(e.rng))
			return
		}
		n.Peel = max(n.Peel-SnapBackStep, 0)
		if n.Peel < epsilon {
			n.Peel = 0
			n.transition(Idle)
		}
	default:
		n.Peel = 0
		n.transition(Idle)
	}
}

func (e *Engine) fall(n *Note, v Motion) {
	if !n.transition(Falling) {
		return
	}
	n.Velocity = v
	n.Position = Motion{}
	n.Rotation = Rotation{}
	n.fallElapsed = 0
	n.Hover = 0
	if e.target == n.ID {
		e.target = ""
	}
	if e.sink != nil {
		e.sink.NoteFalling(n.ID)
	}
}

// AddNote places a new random note on top of the stack.
func (e *Engine) AddNote() *Note {
	return e.arena.Add(RandomNote(e.rng, e.arena.NextStack()))
}

// Fling peels the topmost interactable note past the threshold as if it
// had been dragged straight up, and returns its id. Any gesture in progress
// keeps its guard, and other notes are left as they are.
func (e *Engine) Fling() (string, bool) {
	top := e.arena.Topmost()
	if top == nil || !top.transition(Peeling) {
		return "", false
	}
	top.Peel = 1
	top.DragDir = Vec2{Y: -1}
	e.fall(top, dragVelocity(e.rng, 0, -e.maxDrag))
	return top.ID, top.State == Falling
}

// Busy reports whether any note is mid-animation.
func (e *Engine) Busy() bool {
	for _, n := range e.arena.notes {
		if n.State == Peeling || n.State == Falling || n.Hover > 0 {
			return true
		}
	}
	return false
}

// Snapshot returns views of every visible note, bottom to top.
func (e *Engine) Snapshot() []View {
	ns := e.arena.Visible()
	out := make([]View, 0, len(ns))
	for _, n := range ns {
		out = append(out, View{
			ID:           n.ID,
			Text:         n.Text,
			Color:        n.Color,
			Stack:        n.Stack,
			State:        n.State,
			Rest:         e.scene.Rest(n),
			Displacement: e.scene.Displacement(n),
			Rotation:     n.Rotation,
			DragDir:      n.DragDir,
			Peel:         n.Peel,
			Fall:         n.Fall,
			Hover:        n.Hover,
			Scale:        1 + HoverScale*n.Hover,
			Alpha:        1 - 0.8*n.Fall,
		})
	}
	return out
}
