// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package about renders the "About Me" window.
package about

import (
	"context"
	"fmt"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

// Source supplies the profile and prose blocks.
type Source interface {
	Profile(ctx context.Context) (content.Profile, error)
	Sections(ctx context.Context, panel string) ([]content.Section, error)
}

// Panel is a scrollable profile page.
type Panel struct {
	paint.Document
}

// New loads the profile from src and lays it out.
func New(ctx context.Context, src Source, pal theming.Palette) (*Panel, error) {
	prof, err := src.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	sections, err := src.Sections(ctx, "about")
	if err != nil {
		return nil, fmt.Errorf("load about sections: %w", err)
	}

	text := pal.Style("text", "window")
	muted := pal.Style("muted", "window")
	heading := pal.Style("heading", "window").Bold(true)

	p := &Panel{}
	p.Base = text
	p.Heading("About Me", heading)
	p.Blank()
	p.Heading(prof.Name, text.Bold(true))
	p.Heading(prof.Role, muted)
	p.Blank()
	for _, f := range []struct{ icon, value string }{
		{"@", prof.Email},
		{"⌂", prof.Location},
		{"▣", prof.Company},
		{"◷", prof.Experience},
	} {
		if f.value == "" {
			continue
		}
		p.Row(paint.Span{Text: f.icon + " ", Style: muted}, paint.Span{Text: f.value, Style: text})
	}
	for _, sec := range sections {
		p.Blank()
		p.Heading(sec.Heading, heading)
		for _, line := range sec.Lines {
			p.Para(line, text, 2)
		}
	}
	return p, nil
}
