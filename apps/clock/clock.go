// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package clock provides the taskbar clock.
package clock

import (
	"context"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/framegrace/deskfolio/paint"
)

const (
	TimeLayout = "15:04"
	DateLayout = "Jan 2, 2006"
)

// Clock keeps the current time for the taskbar and pings a refresh channel
// when the displayed minute changes.
type Clock struct {
	mu          sync.RWMutex
	now         func() time.Time
	current     time.Time
	refreshChan chan<- bool
}

// New creates a clock reading time from now, or time.Now when nil.
func New(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, current: now()}
}

func (c *Clock) SetRefreshNotifier(ch chan<- bool) {
	c.mu.Lock()
	c.refreshChan = ch
	c.mu.Unlock()
}

// Run updates the time every second until ctx is done.
func (c *Clock) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if c.Tick() {
				c.notify()
			}
		case <-ctx.Done():
			return nil
		}
	}
}

// Tick samples the time source and reports whether the label changed.
func (c *Clock) Tick() bool {
	t := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	changed := t.Format(TimeLayout+DateLayout) != c.current.Format(TimeLayout+DateLayout)
	c.current = t
	return changed
}

func (c *Clock) notify() {
	c.mu.RLock()
	ch := c.refreshChan
	c.mu.RUnlock()
	if ch == nil {
		return
	}
	select {
	case ch <- true:
	default:
	}
}

// Time is the HH:MM part of the label.
func (c *Clock) Time() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Format(TimeLayout)
}

// Date is the "Jan 2, 2006" part of the label.
func (c *Clock) Date() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current.Format(DateLayout)
}

// Label is the full taskbar text.
func (c *Clock) Label() string {
	return c.Time() + "  " + c.Date()
}

// Width is the number of columns Draw needs including padding.
func (c *Clock) Width() int {
	return runewidth.StringWidth(c.Label()) + 2
}

// Draw renders the label right-aligned in area.
func (c *Clock) Draw(buf *paint.Buffer, area paint.Rect, style tcell.Style) {
	if area.Empty() {
		return
	}
	label := paint.Truncate(c.Label(), area.W)
	x := area.X + area.W - runewidth.StringWidth(label) - 1
	buf.Text(max(x, area.X), area.Y, label, style, area.W)
}
