// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/shell"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// cli holds state shared by every subcommand.
type cli struct {
	configPath string
	logLevel   string
	skipBoot   bool

	cfg  *config.Config
	path string
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "deskfolio",
		Short: "A portfolio desktop that runs in your terminal",
		Long: `deskfolio is a small desktop environment in the terminal: windows, a
taskbar, desktop icons and a stack of sticky notes you can peel off.

Without a subcommand it starts the interactive desktop.`,
		Version:           version,
		SilenceErrors:     true,
		SilenceUsage:      true,
		PersistentPreRunE: c.load,
		RunE:              c.runTUI,
	}
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "Config file (default: "+config.EnvConfig+" or the user config dir)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Override the configured log level")
	root.PersistentFlags().BoolVar(&c.skipBoot, "skip-boot", false, "Start on the desktop without the boot screen")

	root.AddCommand(
		newRunCmd(c),
		newServeCmd(c),
		newMCPCmd(c),
		newScreenshotCmd(c),
		newVersionCmd(),
	)
	return root
}

// load reads .env and the config file before any subcommand runs.
func (c *cli) load(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotenv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}
	var err error
	if c.configPath != "" {
		c.path = c.configPath
		c.cfg, err = config.LoadFile(c.configPath)
	} else {
		c.cfg, c.path, err = config.Load()
	}
	if err != nil {
		return err
	}
	if c.logLevel != "" {
		c.cfg.Logging.Level = c.logLevel
	}
	if c.skipBoot {
		c.cfg.Shell.SkipBoot = true
	}
	return nil
}

// newSession opens the content catalog and builds a session of w x h cells.
// The caller closes the returned store.
func (c *cli) newSession(ctx context.Context, w, h int, log zerolog.Logger) (*shell.Shell, *content.Store, error) {
	store, err := content.Open(ctx, c.cfg.Content.Database, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("open content: %w", err)
	}
	s, err := shell.New(ctx, w, h, shell.Options{Config: c.cfg, Source: store, Logger: log})
	if err != nil {
		store.Close()
		return nil, nil, err
	}
	return s, store, nil
}

// headless starts a session without a terminal and runs its loop in the
// background until ctx ends. The returned wait function blocks until the
// loop has stopped and the catalog is closed.
func (c *cli) headless(ctx context.Context, log zerolog.Logger) (*shell.Runner, func() error, error) {
	s, store, err := c.newSession(ctx, c.cfg.Shell.Columns, c.cfg.Shell.Rows, log)
	if err != nil {
		return nil, nil, err
	}
	r := shell.NewRunner(s, nil)
	errc := make(chan error, 1)
	go func() { errc <- r.Run(ctx) }()
	wait := func() error {
		err := <-errc
		store.Close()
		return err
	}
	return r, wait, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "deskfolio %s\n", version)
			return nil
		},
	}
}
