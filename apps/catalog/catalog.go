// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/catalog/catalog.go
// Summary: Fixed launch tuples for every desktop app and the panel factory.
// Usage: Icons, the context menu, the terminal and the remote surfaces all
//   open windows through Lookup and Factory.Build.

package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/framegrace/deskfolio/apps/about"
	"github.com/framegrace/deskfolio/apps/github"
	"github.com/framegrace/deskfolio/apps/projects"
	"github.com/framegrace/deskfolio/apps/resume"
	"github.com/framegrace/deskfolio/apps/spotify"
	"github.com/framegrace/deskfolio/apps/terminal"
	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

// ErrUnknownApp is returned for ids outside the catalog.
var ErrUnknownApp = errors.New("catalog: unknown app")

// App is a launch tuple. Sizes are in pixels, as designed for a 1:1
// browser canvas, and are converted to cells on open.
type App struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Icon     string `json:"icon"`
	WidthPx  int    `json:"width_px"`
	HeightPx int    `json:"height_px"`
}

var apps = []App{
	{ID: "projects", Title: "Projects", Icon: "folder", WidthPx: 800, HeightPx: 500},
	{ID: "resume", Title: "Resume", Icon: "pdf", WidthPx: 700, HeightPx: 800},
	{ID: "github", Title: "GitHub", Icon: "github", WidthPx: 800, HeightPx: 600},
	{ID: "spotify", Title: "Spotify Player", Icon: "spotify", WidthPx: 400, HeightPx: 600},
	{ID: "about", Title: "About Me", Icon: "portal", WidthPx: 600, HeightPx: 400},
	{ID: "terminal", Title: "Terminal", Icon: "terminal", WidthPx: 700, HeightPx: 400},
}

// Apps returns the catalog in desktop icon order.
func Apps() []App {
	return append([]App(nil), apps...)
}

// Lookup finds an app by id.
func Lookup(id string) (App, error) {
	for _, a := range apps {
		if a.ID == id {
			return a, nil
		}
	}
	return App{}, fmt.Errorf("%w: %q", ErrUnknownApp, id)
}

// CellSize is the pixel size of one terminal cell.
type CellSize struct {
	W, H int
}

// Cells converts the app's pixel size to cells, never below 10x4.
func (a App) Cells(cs CellSize) (w, h int) {
	cw, ch := max(cs.W, 1), max(cs.H, 1)
	return max(a.WidthPx/cw, 10), max(a.HeightPx/ch, 4)
}

// Spec builds the open request for a with the given content.
func (a App) Spec(cs CellSize, panel paint.Panel) desktop.OpenSpec {
	w, h := a.Cells(cs)
	return desktop.OpenSpec{
		ID:      a.ID,
		Title:   a.Title,
		Icon:    a.Icon,
		Content: panel,
		Width:   w,
		Height:  h,
	}
}

// Source is everything the panels read from the content catalog.
type Source interface {
	about.Source
	resume.Source
	projects.Source
	github.Source
	spotify.Source
	terminal.Source
}

// Factory builds panels for catalog apps.
type Factory struct {
	Source    Source
	Palette   theming.Palette
	Overrides map[string]map[string]string
	// Open lets the terminal's "open" command launch other apps.
	Open func(id string) error
	Now  func() time.Time
}

var _ Source = (*content.Store)(nil)

// Build creates the panel for app id. Content that fails to load yields a
// placeholder panel rather than an error so the window still opens.
func (f *Factory) Build(ctx context.Context, id string) (paint.Panel, error) {
	if _, err := Lookup(id); err != nil {
		return nil, err
	}
	pal := theming.ForApp(f.Palette, id, f.Overrides)
	var (
		p   paint.Panel
		err error
	)
	switch id {
	case "about":
		p, err = about.New(ctx, f.Source, pal)
	case "resume":
		p, err = resume.New(ctx, f.Source, pal)
	case "projects":
		p, err = projects.New(ctx, f.Source, pal)
	case "github":
		p, err = github.New(ctx, f.Source, pal)
	case "spotify":
		p, err = spotify.New(ctx, f.Source, pal)
	case "terminal":
		p = terminal.New(f.Source, pal, f.Open, f.Now)
	}
	if err != nil {
		return paint.Placeholder{
			Message: fmt.Sprintf("%s unavailable: %v", id, err),
			Style:   pal.Style("muted", "window"),
		}, nil
	}
	return p, nil
}
