// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: desktop/dispatcher.go
// Summary: Event fan-out for window manager state changes.
// Usage: The shell, logging and the HTTP surface subscribe to window events.

package desktop

import "sync"

// EventType defines the type of an event.
type EventType int

const (
	EventWindowOpened EventType = iota
	EventWindowClosed
	EventWindowFocused
	EventWindowMinimized
	EventWindowMaximized
	EventWindowRestored
	EventWindowMoved
	EventWindowResized
	// EventActiveChanged fires whenever the active window id changes,
	// including to none.
	EventActiveChanged
)

var eventNames = map[EventType]string{
	EventWindowOpened:    "opened",
	EventWindowClosed:    "closed",
	EventWindowFocused:   "focused",
	EventWindowMinimized: "minimized",
	EventWindowMaximized: "maximized",
	EventWindowRestored:  "restored",
	EventWindowMoved:     "moved",
	EventWindowResized:   "resized",
	EventActiveChanged:   "active_changed",
}

func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Event represents a window manager state change.
type Event struct {
	Type     EventType
	WindowID string
	// ActiveID is the active window after the change ("" for none).
	ActiveID string
}

// Listener is an interface that any component can implement to receive events.
type Listener interface {
	OnEvent(event Event)
}

// EventDispatcher manages a list of listeners and broadcasts events to them.
type EventDispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
}

// NewEventDispatcher creates a new dispatcher.
func NewEventDispatcher() *EventDispatcher {
	return &EventDispatcher{}
}

// Subscribe adds a new listener to receive events.
func (d *EventDispatcher) Subscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.listeners = append(d.listeners, listener)
}

// Unsubscribe removes a listener.
func (d *EventDispatcher) Unsubscribe(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			break
		}
	}
}

// Broadcast sends an event to all subscribed listeners.
func (d *EventDispatcher) Broadcast(event Event) {
	d.mu.RLock()
	listeners := append([]Listener(nil), d.listeners...)
	d.mu.RUnlock()
	for _, l := range listeners {
		l.OnEvent(event)
	}
}
