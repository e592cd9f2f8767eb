// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/layout.go
// Summary: Cell geometry for window chrome, icons, the taskbar and the menu.
// Usage: The compositor draws with these rectangles and the shell hit-tests
//   pointer events against the same ones.

package render

import (
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/paint"
)

const (
	IconW = 10
	IconH = 3

	StartLabel = " Start "
	taskItemW  = 18
	minItemW   = 4
)

// Part identifies the region of a window under the pointer.
type Part int

const (
	PartNone Part = iota
	PartTitle
	PartMinimize
	PartMaximize
	PartClose
	PartResize
	PartBody
)

func (p Part) String() string {
	switch p {
	case PartTitle:
		return "title"
	case PartMinimize:
		return "minimize"
	case PartMaximize:
		return "maximize"
	case PartClose:
		return "close"
	case PartResize:
		return "resize"
	case PartBody:
		return "body"
	default:
		return "none"
	}
}

// Body is the content area inside the frame border.
func Body(frame paint.Rect) paint.Rect {
	return paint.Rect{X: frame.X + 1, Y: frame.Y + 1, W: max(frame.W-2, 0), H: max(frame.H-2, 0)}
}

// Buttons returns the minimize, maximize and close boxes on the title row.
// Boxes that do not fit have zero width; close is dropped last.
func Buttons(frame paint.Rect) (minimize, maximize, closeBox paint.Rect) {
	y := frame.Y
	if frame.W >= 5 {
		closeBox = paint.Rect{X: frame.X + frame.W - 4, Y: y, W: 3, H: 1}
	}
	if frame.W >= 12 {
		maximize = paint.Rect{X: closeBox.X - 3, Y: y, W: 3, H: 1}
		minimize = paint.Rect{X: closeBox.X - 6, Y: y, W: 3, H: 1}
	}
	return minimize, maximize, closeBox
}

// HitWindow classifies (x, y) against a window frame.
func HitWindow(frame paint.Rect, x, y int) Part {
	if !frame.Contains(x, y) {
		return PartNone
	}
	minR, maxR, closeR := Buttons(frame)
	switch {
	case closeR.Contains(x, y):
		return PartClose
	case maxR.Contains(x, y):
		return PartMaximize
	case minR.Contains(x, y):
		return PartMinimize
	case y == frame.Y:
		return PartTitle
	case x == frame.X+frame.W-1 && y == frame.Y+frame.H-1:
		return PartResize
	}
	return PartBody
}

// WindowAt returns the topmost visible window under (x, y).
func WindowAt(vp desktop.Viewport, stacked []desktop.Window, x, y int) (desktop.Window, Part, bool) {
	for i := len(stacked) - 1; i >= 0; i-- {
		w := stacked[i]
		if w.Minimized {
			continue
		}
		if part := HitWindow(vp.Frame(w), x, y); part != PartNone {
			return w, part, true
		}
	}
	return desktop.Window{}, PartNone, false
}

// IconRects lays icons out in columns from the top-left of the work area.
func IconRects(work paint.Rect, n int) []paint.Rect {
	rects := make([]paint.Rect, 0, n)
	x, y := work.X+1, work.Y+1
	for range n {
		if y+IconH > work.Y+work.H && y > work.Y+1 {
			x += IconW + 1
			y = work.Y + 1
		}
		rects = append(rects, paint.Rect{X: x, Y: y, W: IconW, H: IconH})
		y += IconH + 1
	}
	return rects
}

// IconAt returns the index of the icon under (x, y), or -1.
func IconAt(work paint.Rect, n, x, y int) int {
	for i, r := range IconRects(work, n) {
		if r.Contains(x, y) {
			return i
		}
	}
	return -1
}

// TaskItem is one window button on the taskbar.
type TaskItem struct {
	ID   string
	Rect paint.Rect
}

// TaskbarLayout places the start button, window items and the clock.
type TaskbarLayout struct {
	Start paint.Rect
	Items []TaskItem
	Clock paint.Rect
}

// Taskbar lays out bar for the windows in open order.
func Taskbar(bar paint.Rect, ws []desktop.Window, clockW int) TaskbarLayout {
	l := TaskbarLayout{
		Start: paint.Rect{X: bar.X, Y: bar.Y, W: min(runewidth.StringWidth(StartLabel), bar.W), H: bar.H},
	}
	clockW = min(clockW, max(bar.W-l.Start.W, 0))
	l.Clock = paint.Rect{X: bar.X + bar.W - clockW, Y: bar.Y, W: clockW, H: bar.H}

	x := l.Start.X + l.Start.W + 1
	avail := l.Clock.X - x
	if len(ws) == 0 || avail < minItemW {
		return l
	}
	w := min(taskItemW, avail/len(ws)-1)
	if w < minItemW {
		w = minItemW
	}
	for _, win := range ws {
		if x+w > l.Clock.X {
			break
		}
		l.Items = append(l.Items, TaskItem{ID: win.ID, Rect: paint.Rect{X: x, Y: bar.Y, W: w, H: bar.H}})
		x += w + 1
	}
	return l
}

// ItemAt returns the window id of the taskbar item under (x, y).
func (l TaskbarLayout) ItemAt(x, y int) (string, bool) {
	for _, it := range l.Items {
		if it.Rect.Contains(x, y) {
			return it.ID, true
		}
	}
	return "", false
}

// Menu is an open context menu anchored where it was requested.
type Menu struct {
	X, Y  int
	Items []string
	Hover int
}

// MenuRect sizes the menu and clamps it inside area.
func MenuRect(m Menu, area paint.Rect) paint.Rect {
	w := 0
	for _, it := range m.Items {
		w = max(w, runewidth.StringWidth(it))
	}
	r := paint.Rect{W: min(w+4, area.W), H: min(len(m.Items)+2, area.H)}
	r.X = max(area.X, min(m.X, area.X+area.W-r.W))
	r.Y = max(area.Y, min(m.Y, area.Y+area.H-r.H))
	return r
}

// MenuItemAt returns the index of the entry under (x, y), or -1.
func MenuItemAt(m Menu, area paint.Rect, x, y int) int {
	r := MenuRect(m, area)
	if !Body(r).Contains(x, y) {
		return -1
	}
	i := y - r.Y - 1
	if i >= len(m.Items) {
		return -1
	}
	return i
}
