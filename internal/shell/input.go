// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/shell/input.go
// Summary: Routes tcell key and mouse events to overlays, windows, icons
//   and the note scene.

package shell

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/apps/catalog"
	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/notes"
	"github.com/framegrace/deskfolio/paint"
	"github.com/framegrace/deskfolio/render"
)

// pointer is the sampled mouse state. The note engine reads it every frame.
type pointer struct {
	x, y    int
	buttons tcell.ButtonMask
	// notes is set when the current left-button gesture began on the
	// desktop, so the note engine may claim it.
	notes          bool
	startX, startY int
}

type grab struct {
	id   string
	part render.Part
	offX int
	offY int
}

type click struct {
	target string
	x, y   int
	at     time.Time
}

// HandleEvent applies one terminal event.
func (s *Shell) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		s.Resize(w, h)
	case *tcell.EventKey:
		s.handleKey(ev)
	case *tcell.EventMouse:
		s.handleMouse(ev)
	}
}

func (s *Shell) handleKey(ev *tcell.EventKey) {
	s.dirty = true
	switch ev.Key() {
	case tcell.KeyCtrlQ, tcell.KeyCtrlC:
		s.quit = true
		return
	}
	if s.boot != nil {
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyEnter:
			s.SkipBoot()
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == ' ' {
			s.SkipBoot()
		}
		return
	}
	switch ev.Key() {
	case tcell.KeyEscape:
		if s.menu != nil {
			s.menu = nil
		}
		return
	case tcell.KeyCtrlN:
		s.AddNote()
		return
	}
	if s.menu != nil {
		s.menuKey(ev)
		return
	}
	if w, ok := s.wm.Window(s.wm.ActiveID()); ok && !w.Minimized {
		if h, ok := w.Content.(paint.KeyHandler); ok {
			h.HandleKey(ev)
		}
	}
}

func (s *Shell) menuKey(ev *tcell.EventKey) {
	m := s.menu
	switch ev.Key() {
	case tcell.KeyUp:
		m.Hover = (m.Hover - 1 + len(m.Items)) % len(m.Items)
	case tcell.KeyDown:
		m.Hover = (m.Hover + 1) % len(m.Items)
	case tcell.KeyEnter:
		item := m.Items[m.Hover]
		s.menu = nil
		s.menuActivate(item)
	}
}

// OpenMenu shows the desktop context menu at (x, y).
func (s *Shell) OpenMenu(x, y int) {
	s.menu = &render.Menu{X: x, Y: y, Items: menuItems}
	s.dirty = true
}

// MenuOpen reports whether the context menu is showing.
func (s *Shell) MenuOpen() bool { return s.menu != nil }

func (s *Shell) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	buttons := ev.Buttons()
	prev := s.input.buttons
	s.input.x, s.input.y = x, y
	s.input.buttons = buttons & (tcell.ButtonPrimary | tcell.ButtonSecondary | tcell.ButtonMiddle)
	s.dirty = true

	pressed := func(b tcell.ButtonMask) bool { return buttons&b != 0 && prev&b == 0 }
	released := func(b tcell.ButtonMask) bool { return buttons&b == 0 && prev&b != 0 }

	switch {
	case buttons&tcell.WheelUp != 0:
		s.wheel(x, y, -3)
	case buttons&tcell.WheelDown != 0:
		s.wheel(x, y, 3)
	case pressed(tcell.ButtonPrimary):
		s.leftDown(x, y)
	case pressed(tcell.ButtonSecondary):
		s.rightDown(x, y)
	case buttons&tcell.ButtonPrimary != 0:
		s.drag(x, y)
	}
	if released(tcell.ButtonPrimary) {
		s.grab = nil
		if s.assistant != nil {
			s.assistant.EndDrag()
		}
	}
	if buttons&tcell.ButtonPrimary == 0 {
		s.input.notes = false
	}
}

// doubleClick records a click on target and reports whether it completes
// a double click.
func (s *Shell) doubleClick(target string, x, y int) bool {
	now := s.now()
	last := s.lastClick
	s.lastClick = click{target: target, x: x, y: y, at: now}
	if last.target != target || now.Sub(last.at) > s.cfg.Shell.DoubleClick {
		return false
	}
	if abs(last.x-x) > 1 || abs(last.y-y) > 1 {
		return false
	}
	s.lastClick = click{}
	return true
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (s *Shell) leftDown(x, y int) {
	if s.boot != nil {
		s.SkipBoot()
		return
	}
	work := s.vp.WorkArea()

	if s.menu != nil {
		i := render.MenuItemAt(*s.menu, work, x, y)
		inside := render.MenuRect(*s.menu, work).Contains(x, y)
		if i >= 0 {
			item := s.menu.Items[i]
			s.menu = nil
			s.menuActivate(item)
			return
		}
		s.menu = nil
		if inside {
			return
		}
	}

	if a := s.assistant; a != nil && a.Visible() {
		if a.CloseRect().Contains(x, y) {
			a.Close()
			return
		}
		if a.SpriteRect().Contains(x, y) {
			a.BeginDrag(x, y)
			return
		}
	}

	if bar := s.vp.Taskbar(); bar.Contains(x, y) {
		l := render.Taskbar(bar, s.wm.Windows(), s.clock.Width())
		if l.Start.Contains(x, y) {
			s.OpenMenu(x, bar.Y-len(menuItems)-2)
			return
		}
		if id, ok := l.ItemAt(x, y); ok {
			s.taskbarClick(id)
		}
		return
	}

	if w, part, ok := render.WindowAt(s.vp, s.wm.Stacked(), x, y); ok {
		s.windowDown(w, part, x, y)
		return
	}

	apps := catalog.Apps()
	if i := render.IconAt(work, len(apps), x, y); i >= 0 {
		id := apps[i].ID
		s.selectedIcon = id
		if s.doubleClick("icon:"+id, x, y) {
			s.openLogged(id)
		}
		return
	}
	s.selectedIcon = ""

	// The press fell through to the desktop: the note engine may take it.
	s.input.notes = true
	s.input.startX, s.input.startY = x, y
	bounds := s.engine.Scene().Bounds(s.engine.Arena().Visible())
	if bounds.Contains(s.pixel(x, y)) && s.doubleClick("notes", x, y) {
		s.AddNote()
	}
}

func (s *Shell) windowDown(w desktop.Window, part render.Part, x, y int) {
	s.wm.Focus(w.ID)
	switch part {
	case render.PartClose:
		_ = s.WindowAction(w.ID, ActionClose)
	case render.PartMinimize:
		s.wm.Minimize(w.ID)
	case render.PartMaximize:
		s.toggleMaximize(w.ID)
	case render.PartTitle:
		if s.doubleClick("title:"+w.ID, x, y) {
			s.toggleMaximize(w.ID)
			return
		}
		if !w.Maximized {
			s.grab = &grab{id: w.ID, part: part, offX: x - w.X, offY: y - w.Y}
		}
	case render.PartResize:
		if !w.Maximized {
			s.grab = &grab{id: w.ID, part: part}
		}
	}
}

func (s *Shell) drag(x, y int) {
	if a := s.assistant; a != nil && a.Dragging() {
		a.DragTo(x, y, s.vp.WorkArea())
		return
	}
	g := s.grab
	if g == nil {
		return
	}
	w, ok := s.wm.Window(g.id)
	if !ok {
		s.grab = nil
		return
	}
	work := s.vp.WorkArea()
	switch g.part {
	case render.PartTitle:
		nx := max(0, min(x-g.offX, work.W-w.Width))
		ny := max(0, min(y-g.offY, work.H-w.Height))
		s.wm.Reposition(g.id, nx, ny)
	case render.PartResize:
		nw, nh := s.clampSize(x-w.X+1, y-w.Y+1)
		nw = min(nw, work.W-w.X)
		nh = min(nh, work.H-w.Y)
		s.wm.Resize(g.id, nw, nh)
	}
}

func (s *Shell) rightDown(x, y int) {
	if s.boot != nil {
		return
	}
	work := s.vp.WorkArea()
	if !work.Contains(x, y) {
		s.menu = nil
		return
	}
	if _, _, ok := render.WindowAt(s.vp, s.wm.Stacked(), x, y); ok {
		s.menu = nil
		return
	}
	s.OpenMenu(x, y)
}

func (s *Shell) wheel(x, y, delta int) {
	w, part, ok := render.WindowAt(s.vp, s.wm.Stacked(), x, y)
	if !ok || part != render.PartBody {
		return
	}
	if sc, ok := w.Content.(paint.Scroller); ok {
		sc.Scroll(delta)
	}
}

// pixel converts a cell to the pixel at its centre.
func (s *Shell) pixel(x, y int) notes.Vec2 {
	return notes.Vec2{
		X: (float64(x) + 0.5) * float64(s.cellW()),
		Y: (float64(y) + 0.5) * float64(s.cellH()),
	}
}

// noteInput samples the pointer for the note engine.
func (s *Shell) noteInput() notes.Input {
	return notes.Input{
		Pointer: s.pixel(s.input.x, s.input.y),
		Down:    s.input.notes && s.input.buttons&tcell.ButtonPrimary != 0,
		Start:   s.pixel(s.input.startX, s.input.startY),
	}
}
