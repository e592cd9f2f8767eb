// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/shell/shell.go
// Summary: Desktop session state and the operations the surfaces call.
// Usage: A Runner owns one Shell and is the only goroutine that touches it.
//   Terminal input arrives through HandleEvent; the HTTP and MCP surfaces
//   call the exported operations through Runner.Do.
// Notes: Window geometry is in cells. Sizes in the config are pixels and
//   are converted with the configured cell size.

package shell

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/rs/zerolog"

	"github.com/framegrace/deskfolio/apps/assistant"
	"github.com/framegrace/deskfolio/apps/boot"
	"github.com/framegrace/deskfolio/apps/catalog"
	"github.com/framegrace/deskfolio/apps/clock"
	"github.com/framegrace/deskfolio/config"
	"github.com/framegrace/deskfolio/desktop"
	"github.com/framegrace/deskfolio/internal/logging"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/notes"
	"github.com/framegrace/deskfolio/render"
)

// Window actions accepted by WindowAction.
const (
	ActionClose    = "close"
	ActionMinimize = "minimize"
	ActionMaximize = "maximize"
	ActionRestore  = "restore"
	ActionFocus    = "focus"
)

// ErrUnknownAction is returned by WindowAction for unsupported actions.
var ErrUnknownAction = errors.New("shell: unknown window action")

// Context menu entries.
const (
	MenuView     = "View"
	MenuRefresh  = "Refresh"
	MenuTerminal = "Terminal"
	MenuDisplay  = "Display Settings"
)

var menuItems = []string{MenuView, MenuRefresh, MenuTerminal, MenuDisplay}

// Options configure a Shell.
type Options struct {
	Config *config.Config
	Source catalog.Source
	Logger zerolog.Logger
	// Now and Rand make sessions reproducible in tests.
	Now  func() time.Time
	Rand *rand.Rand
}

// Shell is one desktop session.
type Shell struct {
	ctx context.Context
	cfg *config.Config
	log zerolog.Logger
	now func() time.Time
	rng *rand.Rand

	vp      desktop.Viewport
	palette theming.Palette
	wm      *desktop.Manager
	factory *catalog.Factory

	engine    *notes.Engine
	boot      *boot.Screen
	assistant *assistant.Assistant
	clock     *clock.Clock

	selectedIcon string
	menu         *render.Menu
	geometry     map[string]desktop.Geometry

	input     pointer
	grab      *grab
	lastClick click
	lastFrame time.Time
	quit      bool
	dirty     bool
}

// New builds a session sized w x h cells.
func New(ctx context.Context, w, h int, opts Options) (*Shell, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Source == nil {
		return nil, errors.New("shell: content source is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now().UnixNano()), rand.Uint64()))
	}

	pal, err := theming.Default().WithOverrides(cfg.Theme.Colors)
	if err != nil {
		return nil, fmt.Errorf("theme: %w", err)
	}

	s := &Shell{
		ctx:      ctx,
		cfg:      cfg,
		log:      logging.Component(opts.Logger, "shell"),
		now:      now,
		rng:      rng,
		vp:       desktop.Viewport{W: w, H: h},
		palette:  pal,
		geometry: make(map[string]desktop.Geometry),
		clock:    clock.New(now),
		dirty:    true,
	}
	s.wm = desktop.NewManager(
		desktop.WithRand(rng),
		desktop.WithPlacementArea(cfg.Windows.PlaceWidth/cfg.Shell.CellWidth, cfg.Windows.PlaceHeight/cfg.Shell.CellHeight),
	)
	s.wm.Dispatcher().Subscribe(s)

	s.factory = &catalog.Factory{
		Source:    opts.Source,
		Palette:   pal,
		Overrides: cfg.Theme.Apps,
		Open:      func(id string) error { return s.OpenApp(s.ctx, id) },
		Now:       now,
	}

	s.engine = notes.NewEngine(notes.NewArena(notes.SeedNotes()...), s.noteScene(),
		notes.WithRand(rng),
		notes.WithMaxDrag(cfg.Notes.MaxDrag),
		notes.WithSink(noteLogger{logging.Component(opts.Logger, "notes")}),
	)

	start := now()
	s.lastFrame = start
	if !cfg.Shell.SkipBoot {
		s.boot = boot.New(cfg.Shell.OS, cfg.Shell.BootDuration, rng, start)
	}
	if cfg.Shell.Assistant {
		work := s.vp.WorkArea()
		s.assistant = assistant.New(work.W-assistant.SpriteW-2, work.H-assistant.SpriteH-1, start)
		s.assistant.MoveTo(work.W-assistant.SpriteW-2, work.H-assistant.SpriteH-1, work)
	}
	return s, nil
}

// OnEvent logs window manager events and marks the screen for redraw.
func (s *Shell) OnEvent(ev desktop.Event) {
	s.dirty = true
	switch ev.Type {
	case desktop.EventWindowOpened, desktop.EventWindowClosed:
		s.log.Info().Str("window", ev.WindowID).Str("event", ev.Type.String()).Msg("window lifecycle")
	default:
		s.log.Debug().Str("window", ev.WindowID).Str("event", ev.Type.String()).Str("active", ev.ActiveID).Msg("window event")
	}
}

type noteLogger struct {
	log zerolog.Logger
}

func (l noteLogger) NoteFalling(id string) { l.log.Info().Str("note", id).Msg("note falling") }
func (l noteLogger) NoteRemoved(id string) { l.log.Info().Str("note", id).Msg("note removed") }

// Viewport is the screen size in cells.
func (s *Shell) Viewport() desktop.Viewport { return s.vp }

// Manager exposes the window manager.
func (s *Shell) Manager() *desktop.Manager { return s.wm }

// Engine exposes the note engine.
func (s *Shell) Engine() *notes.Engine { return s.engine }

// Quit reports whether the user asked to leave.
func (s *Shell) Quit() bool { return s.quit }

// Booting reports whether the boot screen is still up.
func (s *Shell) Booting() bool { return s.boot != nil }

// SkipBoot dismisses the boot screen.
func (s *Shell) SkipBoot() {
	if s.boot != nil {
		s.boot = nil
		s.dirty = true
	}
}

// Resize changes the viewport and keeps every window reachable.
func (s *Shell) Resize(w, h int) {
	s.vp = desktop.Viewport{W: w, H: h}
	s.engine.SetScene(s.noteScene())
	for _, win := range s.wm.Windows() {
		s.clampWindow(win.ID)
	}
	if s.assistant != nil {
		v := s.assistant.View()
		s.assistant.MoveTo(v.X, v.Y, s.vp.WorkArea())
	}
	s.menu = nil
	s.dirty = true
}

func (s *Shell) cellW() int { return s.cfg.Shell.CellWidth }
func (s *Shell) cellH() int { return s.cfg.Shell.CellHeight }

// minSize and maxSize bound window geometry in cells.
func (s *Shell) minSize() (int, int) {
	return max(s.cfg.Windows.MinWidth/s.cellW(), 12), max(s.cfg.Windows.MinHeight/s.cellH(), 4)
}

func (s *Shell) maxSize() (int, int) {
	work := s.vp.WorkArea()
	w := min(s.cfg.Windows.MaxWidth/s.cellW(), work.W)
	h := min(s.cfg.Windows.MaxHeight/s.cellH(), work.H)
	return max(w, 1), max(h, 1)
}

func (s *Shell) clampSize(w, h int) (int, int) {
	minW, minH := s.minSize()
	maxW, maxH := s.maxSize()
	return min(max(w, minW), maxW), min(max(h, minH), maxH)
}

// clampWindow keeps a window inside the work area.
func (s *Shell) clampWindow(id string) {
	w, ok := s.wm.Window(id)
	if !ok || w.Maximized {
		return
	}
	work := s.vp.WorkArea()
	if w.Width > work.W || w.Height > work.H {
		s.wm.Resize(id, min(w.Width, work.W), min(w.Height, work.H))
		w, _ = s.wm.Window(id)
	}
	x := max(0, min(w.X, work.W-w.Width))
	y := max(0, min(w.Y, work.H-w.Height))
	if x != w.X || y != w.Y {
		s.wm.Reposition(id, x, y)
	}
}

// noteScene lays the note stack out on the right of the desktop.
func (s *Shell) noteScene() notes.Scene {
	n := s.cfg.Notes
	pxW := float64(s.vp.W * s.cellW())
	pxH := float64(s.vp.WorkArea().H * s.cellH())
	sceneW, sceneH := pxW*n.SceneWidth, pxH*n.SceneHeight
	x0 := pxW - sceneW
	y0 := (pxH - sceneH) / 2
	return notes.Scene{
		Origin: notes.Vec2{X: x0 + (sceneW-n.NoteWidth)/2 - n.UnitPx/2, Y: y0 + sceneH*0.25},
		NoteW:  n.NoteWidth,
		NoteH:  n.NoteHeight,
		UnitPx: n.UnitPx,
		Width:  sceneW,
		Height: sceneH,
	}
}

// OpenApp opens or raises the catalog app id.
func (s *Shell) OpenApp(ctx context.Context, id string) error {
	app, err := catalog.Lookup(id)
	if err != nil {
		return err
	}
	if _, open := s.wm.Window(id); open {
		s.wm.Open(desktop.OpenSpec{ID: id})
		return nil
	}
	panel, err := s.factory.Build(ctx, id)
	if err != nil {
		return fmt.Errorf("build %s: %w", id, err)
	}
	spec := app.Spec(catalog.CellSize{W: s.cellW(), H: s.cellH()}, panel)
	spec.Width, spec.Height = s.clampSize(spec.Width, spec.Height)
	s.wm.Open(spec)
	s.clampWindow(id)
	return nil
}

// WindowAction applies one of the Action constants to window id. Unknown
// ids are ignored.
func (s *Shell) WindowAction(id, action string) error {
	switch action {
	case ActionClose:
		s.wm.Close(id)
		delete(s.geometry, id)
	case ActionMinimize:
		s.wm.Minimize(id)
	case ActionMaximize:
		if w, ok := s.wm.Window(id); ok && !w.Maximized {
			s.toggleMaximize(id)
		}
	case ActionRestore:
		w, ok := s.wm.Window(id)
		switch {
		case !ok:
		case w.Minimized:
			s.wm.RestoreMinimized(id)
		case w.Maximized:
			s.toggleMaximize(id)
		}
	case ActionFocus:
		s.wm.Focus(id)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}

// toggleMaximize maximizes id, caching its geometry, or restores it and
// reapplies the cached geometry.
func (s *Shell) toggleMaximize(id string) {
	w, ok := s.wm.Window(id)
	if !ok {
		return
	}
	if !w.Maximized {
		s.geometry[id] = desktop.GeometryOf(w)
		s.wm.Maximize(id)
		return
	}
	s.wm.Restore(id)
	if g, ok := s.geometry[id]; ok {
		s.wm.Reposition(id, g.X, g.Y)
		s.wm.Resize(id, g.Width, g.Height)
		delete(s.geometry, id)
	}
	s.clampWindow(id)
}

// taskbarClick restores a minimized window, minimizes the active one and
// focuses any other.
func (s *Shell) taskbarClick(id string) {
	w, ok := s.wm.Window(id)
	switch {
	case !ok:
	case w.Minimized:
		s.wm.RestoreMinimized(id)
	case s.wm.ActiveID() == id:
		s.wm.Minimize(id)
	default:
		s.wm.Focus(id)
	}
}

// AddNote puts a new note on top of the stack.
func (s *Shell) AddNote() notes.View {
	n := s.engine.AddNote()
	s.dirty = true
	s.log.Debug().Str("note", n.ID).Msg("note added")
	for _, v := range s.engine.Snapshot() {
		if v.ID == n.ID {
			return v
		}
	}
	return notes.View{ID: n.ID}
}

// PeelNote flings the topmost note off the stack.
func (s *Shell) PeelNote() (string, bool) {
	s.dirty = true
	return s.engine.Fling()
}

func (s *Shell) menuActivate(item string) {
	switch item {
	case MenuView:
		s.openLogged("about")
	case MenuTerminal:
		s.openLogged("terminal")
	case MenuRefresh, MenuDisplay:
		s.log.Debug().Str("item", item).Msg("menu entry has no action")
	}
}

func (s *Shell) openLogged(id string) {
	if err := s.OpenApp(s.ctx, id); err != nil {
		s.log.Error().Err(err).Str("app", id).Msg("open app")
	}
}
