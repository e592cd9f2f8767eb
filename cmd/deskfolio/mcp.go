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
	"github.com/framegrace/deskfolio/internal/mcpserver"
)

func newMCPCmd(c *cli) *cobra.Command {
	var (
		transport string
		port      int
	)
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Expose a headless desktop as MCP tools",
		Long: `Start a Model Context Protocol server over a headless desktop session.

Tools: list_windows, open_app, window_action, add_note, peel_note, screenshot.

Supported transports:
  stdio             Standard I/O (default)
  streamable-http   Streamable HTTP transport

Examples:
  deskfolio mcp
  deskfolio mcp --transport streamable-http --port 8081`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("transport") {
				c.cfg.MCP.Transport = transport
			}
			if cmd.Flags().Changed("port") {
				c.cfg.MCP.Port = port
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
			srv := mcpserver.New(runner, version, log)
			srvErr := srv.Serve(ctx, c.cfg.MCP.Transport, c.cfg.MCP.Port, cmd.InOrStdin(), cmd.OutOrStdout())
			stop()
			return errors.Join(srvErr, wait())
		},
	}
	cmd.Flags().StringVar(&transport, "transport", mcpserver.TransportStdio, "Transport: stdio, streamable-http")
	cmd.Flags().IntVar(&port, "port", 8081, "HTTP port for streamable-http transport")
	return cmd
}
