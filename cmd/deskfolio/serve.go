// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/web"
)

func newServeCmd(c *cli) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a headless desktop behind an HTTP API",
		Long: `Run a headless desktop session and serve it over HTTP.

Routes:
  GET  /                         HTML view of the desktop
  GET  /screen.png, /screen.txt  current frame
  GET  /api/apps                 app catalog
  GET  /api/state, /api/windows  session state
  POST /api/windows              open an app: {"app": "about"}
  POST /api/windows/:id/:action  close, minimize, maximize, restore, focus
  POST /api/notes                add a sticky note
  POST /api/notes/peel           peel the topmost note`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			log, err := logging.Console(c.cfg.Logging.Level)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			runner, wait, err := c.headless(ctx, log)
			if err != nil {
				return err
			}
			srvErr := web.New(runner, log).ListenAndServe(ctx, c.cfg.Server.Addr)
			stop()
			return errors.Join(srvErr, wait())
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, PORT or DESKFOLIO_ADDR)")
	return cmd
}
