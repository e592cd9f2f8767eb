// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: config/config.go
// Summary: Typed deskfolio configuration with YAML persistence.
// Usage: Load once at startup; commands pass sections down to the shell,
//   the content store, the logger and the servers.

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the whole configuration file.
type Config struct {
	Shell   Shell   `yaml:"shell"`
	Windows Windows `yaml:"windows"`
	Notes   Notes   `yaml:"notes"`
	Content Content `yaml:"content"`
	Logging Logging `yaml:"logging"`
	Server  Server  `yaml:"server"`
	MCP     MCP     `yaml:"mcp"`
	Theme   Theme   `yaml:"theme"`
}

// Shell holds session behaviour.
type Shell struct {
	OS            string        `yaml:"os"`
	BootDuration  time.Duration `yaml:"boot_duration"`
	SkipBoot      bool          `yaml:"skip_boot"`
	FrameInterval time.Duration `yaml:"frame_interval"`
	// CellWidth and CellHeight are the assumed pixel size of a cell. Pixel
	// sizes elsewhere in the config are converted with them.
	CellWidth   int           `yaml:"cell_width_px"`
	CellHeight  int           `yaml:"cell_height_px"`
	DoubleClick time.Duration `yaml:"double_click"`
	Assistant   bool          `yaml:"assistant"`
	// Viewport is the headless screen size in cells.
	Columns int `yaml:"columns"`
	Rows    int `yaml:"rows"`
}

// Windows bounds window geometry, in pixels.
type Windows struct {
	MinWidth    int `yaml:"min_width_px"`
	MinHeight   int `yaml:"min_height_px"`
	MaxWidth    int `yaml:"max_width_px"`
	MaxHeight   int `yaml:"max_height_px"`
	PlaceWidth  int `yaml:"placement_width_px"`
	PlaceHeight int `yaml:"placement_height_px"`
}

// Notes configures the sticky-note scene.
type Notes struct {
	MaxDrag float64 `yaml:"max_drag_px"`
	// SceneWidth and SceneHeight are fractions of the viewport.
	SceneWidth  float64 `yaml:"scene_width"`
	SceneHeight float64 `yaml:"scene_height"`
	UnitPx      float64 `yaml:"unit_px"`
	NoteWidth   float64 `yaml:"note_width_px"`
	NoteHeight  float64 `yaml:"note_height_px"`
}

type Content struct {
	// Database is a sqlite path, or ":memory:".
	Database string `yaml:"database"`
}

type Logging struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Server struct {
	Addr string `yaml:"addr"`
}

type MCP struct {
	// Transport is "stdio" or "streamable-http".
	Transport string `yaml:"transport"`
	Port      int    `yaml:"port"`
}

// Theme overrides palette roles with hex colours, globally and per app.
type Theme struct {
	Colors map[string]string            `yaml:"colors,omitempty"`
	Apps   map[string]map[string]string `yaml:"apps,omitempty"`
}

// Default returns the stock configuration.
func Default() *Config {
	return &Config{
		Shell: Shell{
			OS:            "DeskOS",
			BootDuration:  4 * time.Second,
			FrameInterval: 16 * time.Millisecond,
			CellWidth:     8,
			CellHeight:    16,
			DoubleClick:   400 * time.Millisecond,
			Assistant:     true,
			Columns:       120,
			Rows:          40,
		},
		Windows: Windows{
			MinWidth:    300,
			MinHeight:   200,
			MaxWidth:    700,
			MaxHeight:   600,
			PlaceWidth:  600,
			PlaceHeight: 300,
		},
		Notes: Notes{
			MaxDrag:     350,
			SceneWidth:  0.3,
			SceneHeight: 0.9,
			UnitPx:      40,
			NoteWidth:   160,
			NoteHeight:  112,
		},
		Content: Content{Database: ":memory:"},
		Logging: Logging{Level: "info"},
		Server:  Server{Addr: ":8080"},
		MCP:     MCP{Transport: "stdio", Port: 8081},
	}
}

// Validate rejects sizes and intervals that cannot drive a session.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	positive("shell.boot_duration", float64(c.Shell.BootDuration))
	positive("shell.frame_interval", float64(c.Shell.FrameInterval))
	positive("shell.cell_width_px", float64(c.Shell.CellWidth))
	positive("shell.cell_height_px", float64(c.Shell.CellHeight))
	positive("shell.double_click", float64(c.Shell.DoubleClick))
	positive("shell.columns", float64(c.Shell.Columns))
	positive("shell.rows", float64(c.Shell.Rows))
	positive("windows.min_width_px", float64(c.Windows.MinWidth))
	positive("windows.min_height_px", float64(c.Windows.MinHeight))
	positive("windows.placement_width_px", float64(c.Windows.PlaceWidth))
	positive("windows.placement_height_px", float64(c.Windows.PlaceHeight))
	if c.Windows.MaxWidth < c.Windows.MinWidth || c.Windows.MaxHeight < c.Windows.MinHeight {
		errs = append(errs, errors.New("windows: max size is below min size"))
	}
	positive("notes.max_drag_px", c.Notes.MaxDrag)
	positive("notes.scene_width", c.Notes.SceneWidth)
	positive("notes.scene_height", c.Notes.SceneHeight)
	positive("notes.unit_px", c.Notes.UnitPx)
	positive("notes.note_width_px", c.Notes.NoteWidth)
	positive("notes.note_height_px", c.Notes.NoteHeight)
	if c.Content.Database == "" {
		errs = append(errs, errors.New("content.database is required"))
	}
	switch c.MCP.Transport {
	case "stdio", "streamable-http":
	default:
		errs = append(errs, fmt.Errorf("mcp.transport must be stdio or streamable-http, got %q", c.MCP.Transport))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Load reads the config file, writing defaults there on first use, then
// applies environment overrides and validates the result.
func Load() (*Config, string, error) {
	path, err := Path()
	if err != nil {
		return nil, "", fmt.Errorf("resolve config path: %w", err)
	}
	cfg, err := LoadFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadFile is Load for an explicit path.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		if err := Save(path, cfg); err != nil {
			return nil, fmt.Errorf("write default config: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path as YAML.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
