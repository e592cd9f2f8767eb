// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: notes/note.go
// Summary: Sticky note records and their explicit animation state machine.
// Usage: Notes live in an Arena and are mutated in place by Engine.Step.

package notes

import (
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
)

// State is the animation state of a note.
type State int

const (
	Idle State = iota
	Peeling
	Falling
	Removed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Peeling:
		return "peeling"
	case Falling:
		return "falling"
	case Removed:
		return "removed"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText lets State render as its name in JSON and YAML.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a state name.
func (s *State) UnmarshalText(b []byte) error {
	for st := Idle; st <= Removed; st++ {
		if st.String() == string(b) {
			*s = st
			return nil
		}
	}
	return fmt.Errorf("notes: unknown state %q", b)
}

// allowed lists the legal transitions. Removed is terminal and nothing
// returns to Peeling once it has started falling.
var allowed = map[State][]State{
	Idle:    {Peeling},
	Peeling: {Idle, Falling},
	Falling: {Removed},
}

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Hex formats the colour as #rrggbb.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Vec2 is a planar vector.
type Vec2 struct {
	X, Y float64
}

// Motion is a planar vector plus a rotational component.
type Motion struct {
	X, Y, Rot float64
}

// Rotation holds the three tumbling angles in radians.
type Rotation struct {
	X, Y, Z float64
}

// Note is one sticky note plus its transient animation state.
type Note struct {
	ID     string
	Color  Color
	Text   string
	Offset Vec2
	// Stack orders notes front to back; higher draws on top. It is
	// unrelated to window z-order.
	Stack int

	State State
	// Peel and Fall are normalized progress values in [0,1].
	Peel float64
	Fall float64
	// Hover is the smoothed hover intensity in [0,1].
	Hover float64
	// DragDir is the unit direction of the current drag.
	DragDir Vec2

	Velocity Motion
	Position Motion
	Rotation Rotation

	fallElapsed float64 // ms since the note started falling
}

// Interactable reports whether the note can still be peeled.
func (n *Note) Interactable() bool {
	return n.State == Idle || n.State == Peeling
}

// Visible reports whether the note should be drawn.
func (n *Note) Visible() bool {
	return n.State != Removed
}

// transition moves the note to next if the state machine allows it.
func (n *Note) transition(next State) bool {
	if n.State == next {
		return true
	}
	for _, s := range allowed[n.State] {
		if s == next {
			n.State = next
			return true
		}
	}
	return false
}

// SeedNotes returns the scene's initial stack, bottom to top.
func SeedNotes() []Note {
	return []Note{
		{ID: "note-1", Color: Color{255, 204, 51}, Text: "Complete project by Friday", Offset: Vec2{0, 0}, Stack: 1},
		{ID: "note-2", Color: Color{102, 204, 255}, Text: "Call Mom about weekend plans", Offset: Vec2{0.3, -0.2}, Stack: 2},
		{ID: "note-3", Color: Color{255, 153, 204}, Text: "Buy groceries:\n- Milk\n- Bread\n- Eggs", Offset: Vec2{0.6, -0.4}, Stack: 3},
		{ID: "note-4", Color: Color{153, 255, 153}, Text: "Schedule dentist appointment", Offset: Vec2{0.9, -0.6}, Stack: 4},
		{ID: "note-5", Color: Color{255, 179, 102}, Text: "Prepare presentation slides", Offset: Vec2{1.2, -0.8}, Stack: 5},
	}
}

var sampleTexts = []string{
	"New task to complete",
	"Remember to call back",
	"Meeting at 3pm tomorrow",
	"Don't forget to smile :)",
	"Check emails before noon",
}

// RandomNote builds a new note with a fresh id, a pastel colour, one of the
// sample texts and a small random offset.
func RandomNote(r *rand.Rand, stack int) Note {
	channel := func() uint8 { return uint8(100 + r.IntN(155)) }
	return Note{
		ID:     uuid.NewString(),
		Color:  Color{channel(), channel(), channel()},
		Text:   sampleTexts[r.IntN(len(sampleTexts))],
		Offset: Vec2{X: r.Float64() * 0.5, Y: -r.Float64() * 0.5},
		Stack:  stack,
	}
}
