// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desktop/manager.go
// Summary: Window manager operations enforcing z-order and uniqueness.
// Usage: Driven by the shell controller on its frame goroutine.
// Notes: Not safe for concurrent use; the shell is the single writer.

package desktop

import "math/rand/v2"

// initialZ is the z-order counter before any window is raised.
const initialZ = 100

// Manager owns the window store, the z-order counter and the active id.
// Operations on unknown ids are silent no-ops.
type Manager struct {
	store    Store
	highestZ int
	activeID string

	rng            *rand.Rand
	placeW, placeH int
	dispatcher     *EventDispatcher
}

// Option configures a Manager.
type Option func(*Manager)

// WithRand sets the source used for default window placement.
func WithRand(r *rand.Rand) Option {
	return func(m *Manager) { m.rng = r }
}

// WithPlacementArea bounds random default positions to [0,w)×[0,h).
func WithPlacementArea(w, h int) Option {
	return func(m *Manager) { m.placeW, m.placeH = w, h }
}

// WithDispatcher routes state-change events to d.
func WithDispatcher(d *EventDispatcher) Option {
	return func(m *Manager) { m.dispatcher = d }
}

// NewManager creates an empty window manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		highestZ: initialZ,
		placeW:   75,
		placeH:   18,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if m.dispatcher == nil {
		m.dispatcher = NewEventDispatcher()
	}
	return m
}

// Dispatcher returns the event dispatcher used by the manager.
func (m *Manager) Dispatcher() *EventDispatcher {
	return m.dispatcher
}

// ActiveID returns the active window id, or "" when none is active.
func (m *Manager) ActiveID() string {
	return m.activeID
}

// Window returns a copy of the window with the given id.
func (m *Manager) Window(id string) (Window, bool) {
	w := m.store.get(id)
	if w == nil {
		return Window{}, false
	}
	return *w, true
}

// Windows returns copies of all windows in the order they were opened.
func (m *Manager) Windows() []Window {
	return m.store.snapshot()
}

// Stacked returns copies of all windows ordered back to front.
func (m *Manager) Stacked() []Window {
	ws := m.store.snapshot()
	SortByZ(ws)
	return ws
}

// HighestZ returns the last z-order value handed out.
func (m *Manager) HighestZ() int {
	return m.highestZ
}

func (m *Manager) nextZ() int {
	m.highestZ++
	return m.highestZ
}

func (m *Manager) emit(t EventType, id string) {
	m.dispatcher.Broadcast(Event{Type: t, WindowID: id, ActiveID: m.activeID})
}

func (m *Manager) setActive(id string) {
	if m.activeID == id {
		return
	}
	m.activeID = id
	m.emit(EventActiveChanged, id)
}

// promoteTopmost makes the highest window active, optionally skipping
// minimized ones.
func (m *Manager) promoteTopmost(skipMinimized bool) {
	if top := m.store.topmost(skipMinimized); top != nil {
		m.setActive(top.ID)
		return
	}
	m.setActive("")
}

// Open creates the window described by spec, or brings an existing window
// with the same id to the front. It never fails.
func (m *Manager) Open(spec OpenSpec) {
	if w := m.store.get(spec.ID); w != nil {
		w.Minimized = false
		w.Z = m.nextZ()
		m.emit(EventWindowFocused, w.ID)
		m.setActive(w.ID)
		return
	}

	w := &Window{
		ID:      spec.ID,
		Title:   spec.Title,
		Icon:    spec.Icon,
		Content: spec.Content,
		Width:   spec.Width,
		Height:  spec.Height,
	}
	if spec.X != nil {
		w.X = *spec.X
	} else if m.placeW > 0 {
		w.X = m.rng.IntN(m.placeW)
	}
	if spec.Y != nil {
		w.Y = *spec.Y
	} else if m.placeH > 0 {
		w.Y = m.rng.IntN(m.placeH)
	}
	w.Z = m.nextZ()
	m.store.add(w)
	m.emit(EventWindowOpened, w.ID)
	m.setActive(w.ID)
}

// Close removes the window.
func (m *Manager) Close(id string) {
	if !m.store.remove(id) {
		return
	}
	m.emit(EventWindowClosed, id)
	if m.activeID == id {
		m.promoteTopmost(false)
	}
}

// Minimize hides the window in the taskbar.
func (m *Manager) Minimize(id string) {
	w := m.store.get(id)
	if w == nil {
		return
	}
	w.Minimized = true
	m.emit(EventWindowMinimized, id)
	if m.activeID == id {
		m.promoteTopmost(true)
	}
}

// Maximize sets the maximized flag. Z-order is unchanged.
func (m *Manager) Maximize(id string) {
	w := m.store.get(id)
	if w == nil {
		return
	}
	w.Maximized = true
	m.emit(EventWindowMaximized, id)
}

// Restore clears the maximized flag. Z-order is unchanged.
func (m *Manager) Restore(id string) {
	w := m.store.get(id)
	if w == nil {
		return
	}
	w.Maximized = false
	m.emit(EventWindowRestored, id)
}

// RestoreMinimized un-minimizes the window and raises it to the front.
func (m *Manager) RestoreMinimized(id string) {
	w := m.store.get(id)
	if w == nil {
		return
	}
	w.Minimized = false
	w.Z = m.nextZ()
	m.emit(EventWindowRestored, id)
	m.setActive(id)
}

// Focus raises the window and makes it active without touching its
// minimized or maximized flags.
func (m *Manager) Focus(id string) {
	w := m.store.get(id)
	if w == nil {
		return
	}
	w.Z = m.nextZ()
	m.emit(EventWindowFocused, id)
	m.setActive(id)
}

// Reposition moves the window. Ignored while maximized.
func (m *Manager) Reposition(id string, x, y int) {
	w := m.store.get(id)
	if w == nil || w.Maximized {
		return
	}
	w.X, w.Y = x, y
	m.emit(EventWindowMoved, id)
}

// Resize changes the window size. Ignored while maximized.
func (m *Manager) Resize(id string, width, height int) {
	w := m.store.get(id)
	if w == nil || w.Maximized {
		return
	}
	w.Width, w.Height = width, height
	m.emit(EventWindowResized, id)
}
