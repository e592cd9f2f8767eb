// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package shell

import (
	"time"

	"github.com/framegrace/deskfolio/apps/catalog"
	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/notes"
	"github.com/framegrace/deskfolio/paint"
	"github.com/framegrace/deskfolio/render"
)

// Tick advances animations to now: boot progress, the assistant rotation,
// the clock and one physics step with the sampled pointer.
func (s *Shell) Tick(now time.Time) {
	dt := max(now.Sub(s.lastFrame), 0)
	s.lastFrame = now

	if s.boot != nil {
		s.boot.Update(now)
		s.dirty = true
		if s.boot.Done(now) {
			s.boot = nil
			s.log.Debug().Msg("boot finished")
		}
		return
	}
	if s.assistant != nil {
		before := s.assistant.View()
		s.assistant.Update(now)
		if s.assistant.View() != before {
			s.dirty = true
		}
	}
	if s.clock.Tick() {
		s.dirty = true
	}
	busy := s.engine.Busy()
	s.engine.Step(s.noteInput(), dt)
	if busy || s.engine.Busy() {
		s.dirty = true
	}
}

// Animating reports whether frames change without input.
func (s *Shell) Animating() bool {
	return s.boot != nil || s.engine.Busy()
}

// NeedsDraw reports and clears the redraw flag.
func (s *Shell) NeedsDraw() bool {
	d := s.dirty
	s.dirty = false
	return d || s.Animating()
}

// Invalidate forces a redraw on the next frame.
func (s *Shell) Invalidate() { s.dirty = true }

// Frame snapshots the session for the compositor.
func (s *Shell) Frame() render.Frame {
	f := render.Frame{
		Viewport: s.vp,
		Palette:  s.palette,
		Windows:  s.wm.Windows(),
		ActiveID: s.wm.ActiveID(),
		Notes:    s.engine.Snapshot(),
		CellW:    float64(s.cellW()),
		CellH:    float64(s.cellH()),
		Menu:     s.menu,
		Clock:    s.clock,
	}
	if s.grab != nil {
		f.Grabbed = s.grab.id
	}
	for _, a := range catalog.Apps() {
		f.Icons = append(f.Icons, render.Icon{
			ID:       a.ID,
			Label:    a.Title,
			Glyph:    render.Glyph(a.Icon),
			Selected: a.ID == s.selectedIcon,
		})
	}
	if s.assistant != nil {
		v := s.assistant.View()
		f.Assistant = &v
	}
	if s.boot != nil {
		v := s.boot.View()
		f.Boot = &v
	}
	return f
}

// Render composes the current frame.
func (s *Shell) Render() *paint.Buffer {
	return render.Draw(s.Frame())
}

// WindowInfo is the wire form of a window.
type WindowInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Z         int    `json:"z"`
	Minimized bool   `json:"minimized"`
	Maximized bool   `json:"maximized"`
	Active    bool   `json:"active"`
}

// NoteInfo is the wire form of a note.
type NoteInfo struct {
	ID    string      `json:"id"`
	Text  string      `json:"text"`
	State notes.State `json:"state"`
	Stack int         `json:"stack"`
	Peel  float64     `json:"peel"`
	Fall  float64     `json:"fall"`
	Color string      `json:"color"`
}

// State is a serialisable summary of the session.
type State struct {
	Booting  bool         `json:"booting"`
	ActiveID string       `json:"active_id"`
	Windows  []WindowInfo `json:"windows"`
	Notes    []NoteInfo   `json:"notes"`
}

func windowInfo(w desktop.Window, active string) WindowInfo {
	return WindowInfo{
		ID: w.ID, Title: w.Title,
		X: w.X, Y: w.Y, Width: w.Width, Height: w.Height, Z: w.Z,
		Minimized: w.Minimized, Maximized: w.Maximized,
		Active: w.ID == active,
	}
}

// NoteInfoOf converts an engine snapshot entry.
func NoteInfoOf(v notes.View) NoteInfo {
	return NoteInfo{
		ID: v.ID, Text: v.Text, State: v.State, Stack: v.Stack,
		Peel: v.Peel, Fall: v.Fall, Color: v.Color.Hex(),
	}
}

// State summarises windows in z order and the visible notes.
func (s *Shell) State() State {
	st := State{Booting: s.boot != nil, ActiveID: s.wm.ActiveID()}
	st.Windows = make([]WindowInfo, 0)
	for _, w := range s.wm.Stacked() {
		st.Windows = append(st.Windows, windowInfo(w, st.ActiveID))
	}
	st.Notes = make([]NoteInfo, 0)
	for _, v := range s.engine.Snapshot() {
		st.Notes = append(st.Notes, NoteInfoOf(v))
	}
	return st
}
