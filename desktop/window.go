// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desktop/window.go
// Summary: Window records and the store that holds the open windows.
// Usage: Owned by Manager; readers receive copies through Manager.Windows.

package desktop

import "sort"

// Window is one open application surface.
type Window struct {
	ID    string
	Title string
	Icon  string
	// Content is opaque to the manager. The compositor draws it when it is
	// a paint.Panel and shows a placeholder otherwise.
	Content any

	X, Y          int
	Width, Height int
	Minimized     bool
	Maximized     bool
	Z             int
}

// OpenSpec describes an open request. X and Y are optional.
type OpenSpec struct {
	ID      string
	Title   string
	Icon    string
	Content any
	Width   int
	Height  int
	X, Y    *int
}

// At returns a copy of the spec with an explicit position.
func (s OpenSpec) At(x, y int) OpenSpec {
	s.X, s.Y = &x, &y
	return s
}

// Store is the window record store. It is a plain container; every
// invariant is enforced by Manager.
type Store struct {
	windows []*Window
}

func (s *Store) get(id string) *Window {
	for _, w := range s.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}

func (s *Store) add(w *Window) {
	s.windows = append(s.windows, w)
}

func (s *Store) remove(id string) bool {
	for i, w := range s.windows {
		if w.ID == id {
			s.windows = append(s.windows[:i], s.windows[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of open windows.
func (s *Store) Len() int {
	return len(s.windows)
}

// topmost returns the highest-z window, optionally skipping minimized ones.
func (s *Store) topmost(skipMinimized bool) *Window {
	var top *Window
	for _, w := range s.windows {
		if skipMinimized && w.Minimized {
			continue
		}
		if top == nil || w.Z > top.Z {
			top = w
		}
	}
	return top
}

// snapshot copies the records in insertion order.
func (s *Store) snapshot() []Window {
	out := make([]Window, len(s.windows))
	for i, w := range s.windows {
		out[i] = *w
	}
	return out
}

// SortByZ orders windows back to front.
func SortByZ(ws []Window) {
	sort.SliceStable(ws, func(i, j int) bool { return ws[i].Z < ws[j].Z })
}
