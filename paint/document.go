// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package paint

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style tcell.Style
}

// Line is one logical line of a Document. A wrapped line is reflowed to
// the panel width; otherwise its spans are laid out left to right and cut
// at the edge.
type Line struct {
	Spans  []Span
	Wrap   bool
	Indent int
}

// Document is a scrollable list of styled lines. Panels build one and
// delegate Draw and Scroll to it.
type Document struct {
	Lines  []Line
	Base   tcell.Style
	offset int
	rows   int
}

// Heading appends an unwrapped line.
func (d *Document) Heading(text string, style tcell.Style) {
	d.Lines = append(d.Lines, Line{Spans: []Span{{Text: text, Style: style}}})
}

// Para appends a paragraph reflowed to the panel width.
func (d *Document) Para(text string, style tcell.Style, indent int) {
	d.Lines = append(d.Lines, Line{Spans: []Span{{Text: text, Style: style}}, Wrap: true, Indent: indent})
}

// Row appends a line made of spans.
func (d *Document) Row(spans ...Span) {
	d.Lines = append(d.Lines, Line{Spans: spans})
}

// Blank appends an empty line.
func (d *Document) Blank() {
	d.Lines = append(d.Lines, Line{})
}

// Offset is the first visible row.
func (d *Document) Offset() int { return d.offset }

// Scroll moves the view by delta rows. It is clamped on the next Draw.
func (d *Document) Scroll(delta int) {
	d.offset = max(d.offset+delta, 0)
	if d.rows > 0 {
		d.offset = min(d.offset, d.rows-1)
	}
}

// layout flattens the document into rows for width w.
func (d *Document) layout(w int) []Line {
	var rows []Line
	for _, l := range d.Lines {
		if !l.Wrap || len(l.Spans) == 0 {
			rows = append(rows, l)
			continue
		}
		sp := l.Spans[0]
		for _, text := range Wrap(sp.Text, max(w-l.Indent, 1)) {
			rows = append(rows, Line{Spans: []Span{{Text: text, Style: sp.Style}}, Indent: l.Indent})
		}
	}
	return rows
}

// Draw renders the visible rows into area.
func (d *Document) Draw(buf *Buffer, area Rect) {
	if area.Empty() {
		return
	}
	buf.Fill(area, ' ', d.Base)
	rows := d.layout(area.W)
	d.rows = len(rows)
	d.offset = max(min(d.offset, len(rows)-area.H), 0)
	for i := 0; i < area.H && d.offset+i < len(rows); i++ {
		row := rows[d.offset+i]
		x := area.X + row.Indent
		for _, sp := range row.Spans {
			left := area.X + area.W - x
			if left <= 0 {
				break
			}
			x += buf.Text(x, area.Y+i, Truncate(sp.Text, left), sp.Style, left)
		}
	}
}

// Width returns the display width of the widest unwrapped line.
func (d *Document) Width() int {
	w := 0
	for _, l := range d.Lines {
		lw := l.Indent
		for _, sp := range l.Spans {
			lw += runewidth.StringWidth(sp.Text)
		}
		w = max(w, lw)
	}
	return w
}
