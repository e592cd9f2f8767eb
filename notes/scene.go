// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package notes

// Scene places notes in screen-pixel space. The stack anchor is the
// top-left corner of a note with zero offset; positive offset Y moves a
// note up, as in a y-up 3D scene.
type Scene struct {
	Origin Vec2
	NoteW  float64
	NoteH  float64
	// UnitPx converts offset units to pixels.
	UnitPx float64
	// Width and Height are the scene extent. Fall displacement is scaled by
	// half of each.
	Width  float64
	Height float64
}

// Rect is a pixel-space rectangle.
type Rect struct {
	X, Y, W, H float64
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// Rest returns the note's resting rectangle, before fall displacement.
func (s Scene) Rest(n *Note) Rect {
	return Rect{
		X: s.Origin.X + n.Offset.X*s.UnitPx,
		Y: s.Origin.Y - n.Offset.Y*s.UnitPx,
		W: s.NoteW,
		H: s.NoteH,
	}
}

// Displacement converts the fall position into pixels. Positive Y is down.
func (s Scene) Displacement(n *Note) Vec2 {
	return Vec2{
		X: n.Position.X * s.Width * 0.5,
		Y: n.Position.Y * s.Height * 0.5,
	}
}

// Hit reports whether p touches the note's resting surface.
func (s Scene) Hit(n *Note, p Vec2) bool {
	return s.Rest(n).Contains(p)
}

// Bounds returns the smallest rectangle covering every resting note; the
// shell uses it to route double-clicks to the note scene.
func (s Scene) Bounds(ns []*Note) Rect {
	if len(ns) == 0 {
		return Rect{X: s.Origin.X, Y: s.Origin.Y, W: s.NoteW, H: s.NoteH}
	}
	r := s.Rest(ns[0])
	x0, y0, x1, y1 := r.X, r.Y, r.X+r.W, r.Y+r.H
	for _, n := range ns[1:] {
		r := s.Rest(n)
		x0, y0 = min(x0, r.X), min(y0, r.Y)
		x1, y1 = max(x1, r.X+r.W), max(y1, r.Y+r.H)
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
