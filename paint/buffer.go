// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: paint/buffer.go
// Summary: Cell buffers shared by the compositor, panels and screen drivers.
// Usage: Panels and overlays draw into a Buffer; drivers blit it to tcell or PNG.

package paint

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Cell is a single character cell with its style.
type Cell struct {
	Ch    rune
	Style tcell.Style
}

// Rect is an integer rectangle in cell space.
type Rect struct {
	X, Y, W, H int
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Intersect returns the overlap of two rectangles (zero size when disjoint).
func (r Rect) Intersect(o Rect) Rect {
	x0, y0 := max(r.X, o.X), max(r.Y, o.Y)
	x1, y1 := min(r.X+r.W, o.X+o.W), min(r.Y+r.H, o.Y+o.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{X: x0, Y: y0}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Buffer is a W×H grid of cells. Writes outside the grid are dropped.
type Buffer struct {
	W, H  int
	Cells [][]Cell
}

// NewBuffer allocates a buffer filled with blanks in the given style.
func NewBuffer(w, h int, style tcell.Style) *Buffer {
	w, h = max(w, 0), max(h, 0)
	b := &Buffer{W: w, H: h, Cells: make([][]Cell, h)}
	for y := range b.Cells {
		b.Cells[y] = make([]Cell, w)
		for x := range b.Cells[y] {
			b.Cells[y][x] = Cell{Ch: ' ', Style: style}
		}
	}
	return b
}

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() Rect {
	return Rect{W: b.W, H: b.H}
}

// Set writes a cell if (x, y) is inside the buffer.
func (b *Buffer) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return
	}
	b.Cells[y][x] = c
}

// Get returns the cell at (x, y), or a zero cell outside the buffer.
func (b *Buffer) Get(x, y int) Cell {
	if x < 0 || y < 0 || x >= b.W || y >= b.H {
		return Cell{}
	}
	return b.Cells[y][x]
}

// Fill paints every cell of r with ch in style.
func (b *Buffer) Fill(r Rect, ch rune, style tcell.Style) {
	r = r.Intersect(b.Bounds())
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			b.Cells[y][x] = Cell{Ch: ch, Style: style}
		}
	}
}

// Text writes s starting at (x, y), stopping after maxW columns (maxW <= 0
// means the rest of the row). Wide runes take two columns. Returns the
// number of columns written.
func (b *Buffer) Text(x, y int, s string, style tcell.Style, maxW int) int {
	if maxW <= 0 {
		maxW = b.W - x
	}
	col := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > maxW {
			break
		}
		b.Set(x+col, y, Cell{Ch: r, Style: style})
		if w == 2 {
			b.Set(x+col+1, y, Cell{Ch: ' ', Style: style})
		}
		col += w
	}
	return col
}

// Box draws a single-line frame around r.
func (b *Buffer) Box(r Rect, style tcell.Style) {
	if r.W < 2 || r.H < 2 {
		return
	}
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := r.X + 1; x < x1; x++ {
		b.Set(x, r.Y, Cell{Ch: '─', Style: style})
		b.Set(x, y1, Cell{Ch: '─', Style: style})
	}
	for y := r.Y + 1; y < y1; y++ {
		b.Set(r.X, y, Cell{Ch: '│', Style: style})
		b.Set(x1, y, Cell{Ch: '│', Style: style})
	}
	b.Set(r.X, r.Y, Cell{Ch: '┌', Style: style})
	b.Set(x1, r.Y, Cell{Ch: '┐', Style: style})
	b.Set(r.X, y1, Cell{Ch: '└', Style: style})
	b.Set(x1, y1, Cell{Ch: '┘', Style: style})
}

// Blit copies src into b with its top-left corner at (x, y), clipped to clip.
func (b *Buffer) Blit(src *Buffer, x, y int, clip Rect) {
	if src == nil {
		return
	}
	clip = clip.Intersect(b.Bounds())
	for sy := 0; sy < src.H; sy++ {
		for sx := 0; sx < src.W; sx++ {
			if clip.Contains(x+sx, y+sy) {
				b.Cells[y+sy][x+sx] = src.Cells[sy][sx]
			}
		}
	}
}

// String renders the buffer runes line by line, for tests and logs.
func (b *Buffer) String() string {
	var sb strings.Builder
	for y, row := range b.Cells {
		for _, c := range row {
			if c.Ch == 0 {
				sb.WriteRune(' ')
				continue
			}
			sb.WriteRune(c.Ch)
		}
		if y < len(b.Cells)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Truncate shortens s to at most w columns, appending an ellipsis when cut.
func Truncate(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= w {
		return s
	}
	return runewidth.Truncate(s, w, "…")
}

// Wrap breaks text into lines of at most w columns on word boundaries.
// Explicit newlines are kept.
func Wrap(text string, w int) []string {
	if w <= 0 {
		return nil
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			switch {
			case line == "":
				line = word
			case runewidth.StringWidth(line)+1+runewidth.StringWidth(word) <= w:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
			for runewidth.StringWidth(line) > w {
				head := runewidth.Truncate(line, w, "")
				out = append(out, head)
				line = line[len(head):]
			}
		}
		out = append(out, line)
	}
	return out
}
