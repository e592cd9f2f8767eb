// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package notes

import "sort"

// Arena holds every note record indexed by id. Removed notes are kept so
// indices stay stable; they are simply never drawn again.
type Arena struct {
	notes []*Note
	byID  map[string]*Note
}

// NewArena creates an arena holding copies of seed.
func NewArena(seed ...Note) *Arena {
	a := &Arena{byID: make(map[string]*Note)}
	for _, n := range seed {
		a.Add(n)
	}
	return a
}

// Add stores a copy of n and returns the arena's record. A note whose id
// is already present replaces nothing and the existing record is returned.
func (a *Arena) Add(n Note) *Note {
	if existing, ok := a.byID[n.ID]; ok {
		return existing
	}
	rec := n
	a.notes = append(a.notes, &rec)
	a.byID[rec.ID] = &rec
	return &rec
}

// Get returns the note record with the given id.
func (a *Arena) Get(id string) *Note {
	return a.byID[id]
}

// Len returns the number of records, removed ones included.
func (a *Arena) Len() int {
	return len(a.notes)
}

// NextStack returns a stacking index above every note in the arena.
func (a *Arena) NextStack() int {
	top := 0
	for _, n := range a.notes {
		top = max(top, n.Stack)
	}
	return top + 1
}

// Topmost returns the interactable note with the highest stacking index.
func (a *Arena) Topmost() *Note {
	var top *Note
	for _, n := range a.notes {
		if !n.Interactable() {
			continue
		}
		if top == nil || n.Stack > top.Stack {
			top = n
		}
	}
	return top
}

// Visible returns the drawable notes ordered bottom to top.
func (a *Arena) Visible() []*Note {
	out := make([]*Note, 0, len(a.notes))
	for _, n := range a.notes {
		if n.Visible() {
			out = append(out, n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Stack < out[j].Stack })
	return out
}

// All returns every record in insertion order.
func (a *Arena) All() []*Note {
	return append([]*Note(nil), a.notes...)
}
