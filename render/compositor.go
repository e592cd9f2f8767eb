// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: render/compositor.go
// Summary: Composes one desktop frame into a cell buffer.
// Usage: The shell builds a Frame from its state each tick; drivers blit the
//   resulting buffer to tcell or encode it as PNG.
// Notes: Draw reads only the Frame. Layers are painted back to front:
//   background, icons, notes, windows, assistant, menu, taskbar.

package render

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/deskfolio/apps/assistant"
	"github.com/framegrace/deskfolio/apps/boot"
	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/notes"
	"github.com/framegrace/deskfolio/paint"
)

// Widget is a self-sizing strip element such as the taskbar clock.
type Widget interface {
	Width() int
	Draw(buf *paint.Buffer, area paint.Rect, style tcell.Style)
}

// Icon is a desktop shortcut.
type Icon struct {
	ID       string
	Label    string
	Glyph    string
	Selected bool
}

// Frame is everything needed to draw one screen.
type Frame struct {
	Viewport desktop.Viewport
	Palette  theming.Palette

	// Windows in any order; Draw stacks them by z.
	Windows  []desktop.Window
	ActiveID string
	// Grabbed is the window being moved or resized, if any.
	Grabbed string

	Icons []Icon
	Notes []notes.View
	// CellW and CellH are the pixel size of a cell, used to place notes.
	CellW, CellH float64

	Menu      *Menu
	Assistant *assistant.View
	Clock     Widget
	Boot      *boot.View
}

// Draw renders f into a new buffer.
func Draw(f Frame) *paint.Buffer {
	pal := f.Palette
	buf := paint.NewBuffer(f.Viewport.W, f.Viewport.H, pal.Style("desktop.fg", "desktop"))
	if f.Boot != nil {
		drawBoot(buf, pal, *f.Boot)
		return buf
	}
	work := f.Viewport.WorkArea()

	drawIcons(buf, pal, work, f.Icons)
	drawNotes(buf, pal, f)

	stacked := append([]desktop.Window(nil), f.Windows...)
	desktop.SortByZ(stacked)
	for _, w := range stacked {
		if w.Minimized {
			continue
		}
		drawWindow(buf, pal, work, f.Viewport.Frame(w), w, w.ID == f.ActiveID, w.ID == f.Grabbed)
	}

	if f.Assistant != nil && f.Assistant.Visible {
		drawAssistant(buf, pal, work, *f.Assistant)
	}
	if f.Menu != nil {
		drawMenu(buf, pal, work, *f.Menu)
	}
	drawTaskbar(buf, pal, f)
	return buf
}

var iconGlyphs = map[string]string{
	"folder":   "[=]",
	"pdf":      "[¶]",
	"github":   "[#]",
	"spotify":  "[♫]",
	"portal":   "[i]",
	"terminal": "[>_]",
}

// Glyph returns the icon glyph for an icon name.
func Glyph(icon string) string {
	if g, ok := iconGlyphs[icon]; ok {
		return g
	}
	return "[?]"
}

func centered(buf *paint.Buffer, r paint.Rect, y int, s string, style tcell.Style) {
	s = paint.Truncate(s, r.W)
	x := r.X + (r.W-runewidth.StringWidth(s))/2
	buf.Text(x, y, s, style, r.W)
}

func drawIcons(buf *paint.Buffer, pal theming.Palette, work paint.Rect, icons []Icon) {
	base := pal.Style("desktop.fg", "desktop")
	sel := pal.Style("desktop.fg", "selection")
	for i, r := range IconRects(work, len(icons)) {
		ic := icons[i]
		style := base
		if ic.Selected {
			style = sel
			buf.Fill(r, ' ', sel)
		}
		centered(buf, r, r.Y, ic.Glyph, style.Bold(true))
		centered(buf, r, r.Y+1, ic.Label, style)
	}
}

func drawWindow(buf *paint.Buffer, pal theming.Palette, work, frame paint.Rect, w desktop.Window, active, grabbed bool) {
	if frame.Empty() {
		return
	}
	frameStyle := pal.Style("frame", "window")
	titleStyle := pal.Style("title.fg", "title")
	if active {
		titleStyle = pal.Style("title.fg", "title.active")
		frameStyle = pal.Style("title.active", "window")
	}
	if grabbed {
		frameStyle = frameStyle.Foreground(pal.Color("accent"))
	}

	clip := paint.NewBuffer(frame.W, frame.H, pal.Style("text", "window"))
	local := clip.Bounds()
	clip.Box(local, frameStyle)
	clip.Fill(paint.Rect{W: frame.W, H: 1}, ' ', titleStyle)
	clip.Text(1, 0, " "+w.Title, titleStyle.Bold(true), max(frame.W-11, 1))

	minR, maxR, closeR := Buttons(local)
	maxLabel := "[□]"
	if w.Maximized {
		maxLabel = "[▫]"
	}
	clip.Text(minR.X, 0, "[_]", titleStyle, minR.W)
	clip.Text(maxR.X, 0, maxLabel, titleStyle, maxR.W)
	clip.Text(closeR.X, 0, "[x]", titleStyle, closeR.W)
	if !w.Maximized && frame.W > 1 && frame.H > 1 {
		clip.Set(frame.W-1, frame.H-1, paint.Cell{Ch: '◢', Style: frameStyle})
	}

	body := Body(local)
	if !body.Empty() {
		content := paint.NewBuffer(body.W, body.H, pal.Style("text", "window"))
		panel, ok := w.Content.(paint.Panel)
		if !ok || panel == nil {
			panel = paint.Placeholder{Message: "No content", Style: pal.Style("muted", "window")}
		}
		panel.Draw(content, content.Bounds())
		clip.Blit(content, body.X, body.Y, body)
	}
	buf.Blit(clip, frame.X, frame.Y, work)
}

func drawMenu(buf *paint.Buffer, pal theming.Palette, work paint.Rect, m Menu) {
	r := MenuRect(m, work)
	style := pal.Style("menu.fg", "menu")
	hover := pal.Style("title.fg", "menu.hover")
	buf.Fill(r, ' ', style)
	buf.Box(r, style)
	for i, item := range m.Items {
		y := r.Y + 1 + i
		if y >= r.Y+r.H-1 {
			break
		}
		s := style
		if i == m.Hover {
			s = hover
			buf.Fill(paint.Rect{X: r.X + 1, Y: y, W: r.W - 2, H: 1}, ' ', s)
		}
		buf.Text(r.X+2, y, item, s, r.W-3)
	}
}

func drawTaskbar(buf *paint.Buffer, pal theming.Palette, f Frame) {
	bar := f.Viewport.Taskbar()
	if bar.Empty() {
		return
	}
	base := pal.Style("taskbar.fg", "taskbar")
	buf.Fill(bar, ' ', base)

	clockW := 0
	if f.Clock != nil {
		clockW = f.Clock.Width()
	}
	l := Taskbar(bar, f.Windows, clockW)
	buf.Text(l.Start.X, l.Start.Y, StartLabel, pal.Style("title.fg", "start").Bold(true), l.Start.W)

	byID := make(map[string]desktop.Window, len(f.Windows))
	for _, w := range f.Windows {
		byID[w.ID] = w
	}
	for _, it := range l.Items {
		w := byID[it.ID]
		style := pal.Style("taskbar.fg", "taskbar.item")
		switch {
		case w.ID == f.ActiveID && !w.Minimized:
			style = style.Bold(true).Underline(true)
		case w.Minimized:
			style = pal.Style("muted", "taskbar.item")
		}
		buf.Fill(it.Rect, ' ', style)
		buf.Text(it.Rect.X+1, it.Rect.Y, paint.Truncate(w.Title, it.Rect.W-2), style, it.Rect.W-2)
	}
	if f.Clock != nil {
		f.Clock.Draw(buf, l.Clock, base)
	}
}

// BubbleWidth is the widest the assistant's speech bubble gets.
const BubbleWidth = 32

// BubbleRect places the speech bubble above the sprite, inside work.
func BubbleRect(v assistant.View, work paint.Rect) (paint.Rect, []string) {
	w := min(BubbleWidth, work.W)
	lines := paint.Wrap(v.Text, max(w-4, 1))
	r := paint.Rect{W: w, H: len(lines) + 2}
	r.X = max(work.X, min(v.X+assistant.SpriteW-w, work.X+work.W-w))
	r.Y = v.Y - r.H
	if r.Y < work.Y {
		r.Y = v.Y + assistant.SpriteH
	}
	return r, lines
}

var sprite = []string{
	" ╭──╮ ",
	" │◉◉│ ",
	" ╰┬┬╯ ",
}

func drawAssistant(buf *paint.Buffer, pal theming.Palette, work paint.Rect, v assistant.View) {
	bodyStyle := pal.Style("desktop.fg", "desktop").Bold(true)
	for i, row := range sprite {
		buf.Text(v.X, v.Y+i, row, bodyStyle, assistant.SpriteW)
	}
	buf.Set(v.X+assistant.SpriteW-1, v.Y, paint.Cell{Ch: 'x', Style: pal.Style("title.fg", "title.active")})

	if v.Alpha <= 0 {
		return
	}
	bg := theming.Blend(pal.RGB("desktop"), pal.RGB("bubble"), v.Alpha)
	fg := theming.Blend(pal.RGB("desktop"), pal.RGB("bubble.fg"), v.Alpha)
	style := tcell.StyleDefault.Background(theming.ToTcell(bg)).Foreground(theming.ToTcell(fg))

	r, lines := BubbleRect(v, work)
	buf.Fill(r, ' ', style)
	buf.Box(r, style)
	for i, line := range lines {
		buf.Text(r.X+2, r.Y+1+i, line, style, r.W-4)
	}
}

func drawBoot(buf *paint.Buffer, pal theming.Palette, v boot.View) {
	area := buf.Bounds()
	style := pal.Style("boot.fg", "boot")
	buf.Fill(area, ' ', style)
	mid := area.H / 2

	centered(buf, area, mid-3, v.OS, style.Bold(true))

	barW := min(40, max(area.W-4, 0))
	if barW > 2 {
		x := area.X + (area.W-barW)/2
		filled := int(v.Progress / 100 * float64(barW-2))
		filled = max(0, min(filled, barW-2))
		buf.Set(x, mid, paint.Cell{Ch: '[', Style: style})
		buf.Set(x+barW-1, mid, paint.Cell{Ch: ']', Style: style})
		barStyle := style.Foreground(pal.Color("boot.bar"))
		for i := 0; i < barW-2; i++ {
			ch := '░'
			if i < filled {
				ch = '█'
			}
			buf.Set(x+1+i, mid, paint.Cell{Ch: ch, Style: barStyle})
		}
	}
	centered(buf, area, mid+2, v.Message, style)
}
