// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/framegrace/deskfolio/render"
)

func newScreenshotCmd(c *cli) *cobra.Command {
	var (
		out    string
		format string
		open   []string
		notes  int
		cols   int
		rows   int
	)
	cmd := &cobra.Command{
		Use:   "screenshot",
		Short: "Render one desktop frame to PNG or text",
		Long: `Render a single frame of a fresh desktop session, skipping the boot screen.

Examples:
  deskfolio screenshot -o desk.png
  deskfolio screenshot --open about,terminal --format text`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != "png" && format != "text" {
				return fmt.Errorf("unsupported format: %s (use png or text)", format)
			}
			c.cfg.Shell.SkipBoot = true
			w, h := c.cfg.Shell.Columns, c.cfg.Shell.Rows
			if cols > 0 {
				w = cols
			}
			if rows > 0 {
				h = rows
			}
			ctx := cmd.Context()
			s, store, err := c.newSession(ctx, w, h, zerolog.Nop())
			if err != nil {
				return err
			}
			defer store.Close()

			for _, id := range open {
				if err := s.OpenApp(ctx, id); err != nil {
					return err
				}
			}
			for range notes {
				s.AddNote()
			}
			buf := s.Render()

			var dst io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("create %s: %w", out, err)
				}
				defer f.Close()
				dst = f
			}
			if format == "text" {
				_, err = fmt.Fprintln(dst, buf.String())
				return err
			}
			return render.EncodePNG(dst, buf)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "-", "Output file, - for stdout")
	cmd.Flags().StringVar(&format, "format", "png", "Output format: png, text")
	cmd.Flags().StringSliceVar(&open, "open", nil, "Apps to open before rendering, in order")
	cmd.Flags().IntVar(&notes, "notes", 0, "Extra sticky notes to add")
	cmd.Flags().IntVar(&cols, "cols", 0, "Width in cells (default from config)")
	cmd.Flags().IntVar(&rows, "rows", 0, "Height in cells (default from config)")
	return cmd
}
