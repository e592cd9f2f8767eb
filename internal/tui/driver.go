// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/tui/driver.go
// Summary: tcell screen driver that presents composed desktop frames.
// Usage: Run wires a Driver to a shell.Runner; tests swap the screen
//   factory for a simulation screen.

package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/paint"
)

var screenFactory = tcell.NewScreen

// SetScreenFactory overrides the screen factory used by Open. Passing nil
// restores the default.
func SetScreenFactory(factory func() (tcell.Screen, error)) {
	if factory == nil {
		screenFactory = tcell.NewScreen
		return
	}
	screenFactory = factory
}

// Driver owns a tcell screen for the lifetime of a session.
type Driver struct {
	screen tcell.Screen
}

// Open creates and initialises a screen with mouse motion reporting enabled.
func Open() (*Driver, error) {
	screen, err := screenFactory()
	if err != nil {
		return nil, fmt.Errorf("init screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("screen init: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.HideCursor()
	screen.Clear()
	return &Driver{screen: screen}, nil
}

// Size returns the screen size in cells.
func (d *Driver) Size() (int, int) {
	return d.screen.Size()
}

// Present copies buf to the screen and shows it.
func (d *Driver) Present(buf *paint.Buffer) {
	if buf == nil {
		return
	}
	d.screen.Clear()
	for y, row := range buf.Cells {
		for x, c := range row {
			d.screen.SetContent(x, y, c.Ch, nil, c.Style)
		}
	}
	d.screen.Show()
}

// PollEvent blocks for the next terminal event. It returns nil after Close.
func (d *Driver) PollEvent() tcell.Event {
	return d.screen.PollEvent()
}

// Close restores the terminal.
func (d *Driver) Close() {
	d.screen.DisableMouse()
	d.screen.Fini()
}

// Underlying exposes the wrapped screen.
func (d *Driver) Underlying() tcell.Screen {
	return d.screen
}
