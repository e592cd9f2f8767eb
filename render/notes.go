// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/notes"
	"github.com/framegrace/deskfolio/paint"
)

// maxShear bounds the z rotation used for shearing so tan stays finite.
const maxShear = 1.2

// NoteRect converts a note view to its on-screen cell rectangle, including
// fall displacement, hover scale and the squash from x rotation.
func NoteRect(v notes.View, cellW, cellH float64) paint.Rect {
	cellW, cellH = max(cellW, 1), max(cellH, 1)
	scale := v.Scale
	if scale <= 0 {
		scale = 1
	}
	wpx := v.Rest.W * scale
	hpx := v.Rest.H * scale * math.Max(math.Abs(math.Cos(v.Rotation.X)), 0.15)
	// Scale around the centre of the resting box.
	cx := v.Rest.X + v.Rest.W/2 + v.Displacement.X
	cy := v.Rest.Y + v.Rest.H/2 + v.Displacement.Y
	return paint.Rect{
		X: int(math.Round((cx - wpx/2) / cellW)),
		Y: int(math.Round((cy - hpx/2) / cellH)),
		W: max(int(math.Round(wpx/cellW)), 3),
		H: max(int(math.Round(hpx/cellH)), 1),
	}
}

// NoteColor is the note fill after hover lightening and the fall fade
// toward the desktop colour.
func NoteColor(v notes.View, desk colorful.Color) colorful.Color {
	c := colorful.Color{R: float64(v.Color.R) / 255, G: float64(v.Color.G) / 255, B: float64(v.Color.B) / 255}
	if v.Hover > 0 {
		c = theming.Blend(c, colorful.Color{R: 1, G: 1, B: 1}, 0.25*v.Hover)
	}
	return theming.Blend(desk, c, v.Alpha)
}

// FoldRows is how many bottom rows of an h-row note are folded up.
func FoldRows(peel float64, h int) int {
	return min(int(math.Round(peel*float64(h)*0.5)), h/2)
}

func drawNotes(buf *paint.Buffer, pal theming.Palette, f Frame) {
	desk := pal.RGB("desktop")
	ink := colorful.Color{R: 0.1, G: 0.1, B: 0.1}
	work := f.Viewport.WorkArea()
	for _, v := range f.Notes {
		if v.State == notes.Removed {
			continue
		}
		r := NoteRect(v, f.CellW, f.CellH)
		face := NoteColor(v, desk)
		back := theming.Blend(face, colorful.Color{}, 0.3)
		text := theming.Blend(desk, ink, v.Alpha)

		faceStyle := tcell.StyleDefault.Background(theming.ToTcell(face)).Foreground(theming.ToTcell(text))
		backStyle := tcell.StyleDefault.Background(theming.ToTcell(back)).Foreground(theming.ToTcell(face))

		fold := FoldRows(v.Peel, r.H)
		shear := math.Tan(max(-maxShear, min(v.Rotation.Z, maxShear)))
		lines := paint.Wrap(v.Text, max(r.W-2, 1))

		for row := 0; row < r.H-fold; row++ {
			dx := int(math.Round(shear * (float64(row) - float64(r.H)/2)))
			y := r.Y + row
			x := r.X + dx
			folded := row >= r.H-2*fold
			style, ch := faceStyle, ' '
			if folded {
				style, ch = backStyle, '▚'
			}
			for col := 0; col < r.W; col++ {
				if work.Contains(x+col, y) {
					buf.Set(x+col, y, paint.Cell{Ch: ch, Style: style})
				}
			}
			if !folded && row >= 1 && row-1 < len(lines) {
				line := paint.Truncate(lines[row-1], r.W-2)
				col := x + 1
				for _, c := range line {
					w := runewidth.RuneWidth(c)
					if w == 0 {
						continue
					}
					if work.Contains(col, y) {
						buf.Set(col, y, paint.Cell{Ch: c, Style: faceStyle})
					}
					if w == 2 && work.Contains(col+1, y) {
						buf.Set(col+1, y, paint.Cell{Ch: ' ', Style: faceStyle})
					}
					col += w
				}
			}
		}
	}
}
