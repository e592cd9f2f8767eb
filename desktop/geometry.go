// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package desktop

import "github.com/framegrace/deskfolio/paint"

// TaskbarHeight is the number of rows reserved for the taskbar strip.
const TaskbarHeight = 1

// Viewport is the screen size in cells.
type Viewport struct {
	W, H int
}

// WorkArea is the part of the viewport above the taskbar.
func (v Viewport) WorkArea() paint.Rect {
	return paint.Rect{W: v.W, H: max(v.H-TaskbarHeight, 0)}
}

// Taskbar is the strip along the bottom edge.
func (v Viewport) Taskbar() paint.Rect {
	return paint.Rect{Y: max(v.H-TaskbarHeight, 0), W: v.W, H: min(TaskbarHeight, v.H)}
}

// Frame returns the on-screen rectangle of w: the work area when
// maximized, the stored geometry otherwise.
func (v Viewport) Frame(w Window) paint.Rect {
	if w.Maximized {
		return v.WorkArea()
	}
	return paint.Rect{X: w.X, Y: w.Y, W: w.Width, H: w.Height}
}

// Geometry is a cached window position and size.
type Geometry struct {
	X, Y, Width, Height int
}

// GeometryOf captures the stored geometry of w.
func GeometryOf(w Window) Geometry {
	return Geometry{X: w.X, Y: w.Y, Width: w.Width, Height: w.Height}
}
