// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/shell"
	"github.com/framegrace/deskfolio/internal/tui"
)

// errNoTTY is returned when the interactive desktop is started without a
// terminal on stdin and stdout.
var errNoTTY = errors.New("the desktop needs an interactive terminal; use serve, mcp or screenshot for headless use")

// isTerminal is swapped in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func newRunCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the interactive desktop (default)",
		Args:  cobra.NoArgs,
		RunE:  c.runTUI,
	}
}

func (c *cli) runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal() {
		return errNoTTY
	}
	path := c.cfg.Logging.File
	if path == "" {
		path = config.DefaultLogPath()
	}
	log, closer, err := logging.OpenFile(path, c.cfg.Logging.Level)
	if err != nil {
		return err
	}
	defer closer.Close()
	log.Info().Str("config", c.path).Str("version", version).Msg("deskfolio starting")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx = logging.WithContext(ctx, log)

	var closeStore func() error
	defer func() {
		if closeStore != nil {
			closeStore()
		}
	}()
	build := func(ctx context.Context, w, h int) (*shell.Shell, error) {
		s, store, err := c.newSession(ctx, w, h, log)
		if err != nil {
			return nil, err
		}
		closeStore = store.Close
		return s, nil
	}
	if err := tui.Run(ctx, build); err != nil {
		log.Error().Err(err).Msg("desktop exited with error")
		return err
	}
	log.Info().Msg("deskfolio stopped")
	return nil
}
