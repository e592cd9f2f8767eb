// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package tui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/shell"
)

// Builder creates the session once the screen size is known.
type Builder func(ctx context.Context, w, h int) (*shell.Shell, error)

// Run opens the terminal, builds a session sized to it and drives it until
// the user quits or ctx ends. It logs to the logger stored in ctx.
func Run(ctx context.Context, build Builder) error {
	log := logging.FromContext(ctx)
	d, err := Open()
	if err != nil {
		return err
	}
	pumpDone := make(chan struct{})
	defer func() {
		d.Close()
		<-pumpDone
	}()

	w, h := d.Size()
	s, err := build(ctx, w, h)
	if err != nil {
		close(pumpDone)
		return err
	}
	r := shell.NewRunner(s, d)
	go func() {
		defer close(pumpDone)
		pump(d, r)
	}()

	log.Debug().Int("cols", w).Int("rows", h).Msg("terminal ready")
	return r.Run(ctx)
}

// pump forwards terminal events until the screen is finalised.
func pump(d *Driver, r *shell.Runner) {
	for {
		ev := d.PollEvent()
		if ev == nil {
			return
		}
		if _, ok := ev.(*tcell.EventInterrupt); ok {
			continue
		}
		r.Post(ev)
	}
}
