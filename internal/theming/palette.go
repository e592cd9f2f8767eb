// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/theming/palette.go
// Summary: Named colour roles shared by the compositor and the panels.
// Usage: Default() gives the stock palette; ForApp layers per-panel
//   overrides read from config on top of it.

package theming

import (
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Palette maps colour roles such as "desktop" or "title.active" to colours.
type Palette struct {
	colors map[string]colorful.Color
}

var defaults = map[string]string{
	"desktop":      "#008080",
	"desktop.fg":   "#ffffff",
	"taskbar":      "#c0c0c0",
	"taskbar.fg":   "#000000",
	"taskbar.item": "#dcdcdc",
	"start":        "#1f6f3f",
	"window":       "#f4f4f4",
	"text":         "#202020",
	"muted":        "#6b6b6b",
	"heading":      "#1a4f9c",
	"accent":       "#2f7de1",
	"link":         "#0b61c4",
	"title":        "#7a7a7a",
	"title.active": "#0a246a",
	"title.fg":     "#ffffff",
	"frame":        "#9a9a9a",
	"menu":         "#ececec",
	"menu.fg":      "#111111",
	"menu.hover":   "#0a246a",
	"bubble":       "#fff7c2",
	"bubble.fg":    "#1a1a1a",
	"boot":         "#000000",
	"boot.fg":      "#e0e0e0",
	"boot.bar":     "#2f7de1",
	"terminal":     "#111827",
	"terminal.fg":  "#4ade80",
	"prompt":       "#facc15",
	"player":       "#121212",
	"player.fg":    "#f5f5f5",
	"player.hi":    "#1db954",
	"selection":    "#3a6ea5",
}

// Default returns the stock palette.
func Default() Palette {
	p := Palette{colors: make(map[string]colorful.Color, len(defaults))}
	for role, hex := range defaults {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(fmt.Sprintf("theming: bad default %s=%s", role, hex))
		}
		p.colors[role] = c
	}
	return p
}

// Roles lists every known role, sorted.
func Roles() []string {
	out := make([]string, 0, len(defaults))
	for r := range defaults {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}

// RGB returns the colour of role. Unknown roles fall back to magenta so
// they are easy to spot.
func (p Palette) RGB(role string) colorful.Color {
	if c, ok := p.colors[role]; ok {
		return c
	}
	return colorful.Color{R: 1, B: 1}
}

// Color returns role as a tcell colour.
func (p Palette) Color(role string) tcell.Color {
	return ToTcell(p.RGB(role))
}

// Style builds a style with foreground fg and background bg roles.
func (p Palette) Style(fg, bg string) tcell.Style {
	return tcell.StyleDefault.Foreground(p.Color(fg)).Background(p.Color(bg))
}

// WithOverrides returns a copy with roles replaced by hex colours.
func (p Palette) WithOverrides(overrides map[string]string) (Palette, error) {
	out := Palette{colors: make(map[string]colorful.Color, len(p.colors))}
	for k, v := range p.colors {
		out.colors[k] = v
	}
	for role, hex := range overrides {
		if _, ok := defaults[role]; !ok {
			return p, fmt.Errorf("theming: unknown colour role %q", role)
		}
		c, err := colorful.Hex(hex)
		if err != nil {
			return p, fmt.Errorf("theming: role %q: %w", role, err)
		}
		out.colors[role] = c
	}
	return out, nil
}

// ForApp returns base merged with the overrides configured for app.
// Invalid overrides leave base untouched.
func ForApp(base Palette, app string, overrides map[string]map[string]string) Palette {
	ov := overrides[app]
	if len(ov) == 0 {
		return base
	}
	p, err := base.WithOverrides(ov)
	if err != nil {
		return base
	}
	return p
}

// ToTcell converts a colorful colour to a tcell true colour.
func ToTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// Blend mixes a toward b by t in Lab space.
func Blend(a, b colorful.Color, t float64) colorful.Color {
	return a.BlendLab(b, max(0, min(t, 1))).Clamped()
}
