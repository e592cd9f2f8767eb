// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package resume

import (
	"context"
	"fmt"
	"strings"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

// Source supplies the records a resume is built from.
type Source interface {
	Profile(ctx context.Context) (content.Profile, error)
	Sections(ctx context.Context, panel string) ([]content.Section, error)
	Jobs(ctx context.Context) ([]content.Job, error)
	Education(ctx context.Context) ([]content.Degree, error)
	Certifications(ctx context.Context) ([]string, error)
}

// Panel is a scrollable one-column resume.
type Panel struct {
	paint.Document
}

func New(ctx context.Context, src Source, pal theming.Palette) (*Panel, error) {
	prof, err := src.Profile(ctx)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	sections, err := src.Sections(ctx, "resume")
	if err != nil {
		return nil, fmt.Errorf("load resume sections: %w", err)
	}
	jobs, err := src.Jobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("load jobs: %w", err)
	}
	degrees, err := src.Education(ctx)
	if err != nil {
		return nil, fmt.Errorf("load education: %w", err)
	}
	certs, err := src.Certifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("load certifications: %w", err)
	}

	text := pal.Style("text", "window")
	muted := pal.Style("muted", "window")
	heading := pal.Style("heading", "window").Bold(true)
	link := pal.Style("link", "window").Underline(true)

	p := &Panel{}
	p.Base = text
	p.Row(paint.Span{Text: "My Resume  ", Style: heading}, paint.Span{Text: "[Download PDF: resume.pdf]", Style: link})
	p.Blank()
	p.Heading(prof.Name, text.Bold(true))
	p.Heading(prof.Role, muted)
	var contacts []string
	for _, c := range []string{prof.Email, prof.Phone, prof.GitHub} {
		if c != "" {
			contacts = append(contacts, c)
		}
	}
	p.Para(strings.Join(contacts, " · "), muted, 0)

	section := func(title string) {
		p.Blank()
		p.Heading(title, heading)
		p.Heading(strings.Repeat("─", len([]rune(title))), heading)
	}

	for _, sec := range sections {
		section(sec.Heading)
		for _, line := range sec.Lines {
			p.Para(line, text, 0)
		}
	}

	section("Experience")
	for i, j := range jobs {
		if i > 0 {
			p.Blank()
		}
		p.Row(paint.Span{Text: j.Title, Style: text.Bold(true)}, paint.Span{Text: "  " + j.Period, Style: muted})
		p.Heading(j.Company, muted)
		for _, h := range j.Highlights {
			p.Para("• "+h, text, 1)
		}
	}

	section("Education")
	for _, d := range degrees {
		p.Row(paint.Span{Text: d.Degree, Style: text.Bold(true)}, paint.Span{Text: "  " + d.Period, Style: muted})
		p.Heading(d.School, muted)
	}

	if len(certs) > 0 {
		section("Certifications")
		for _, c := range certs {
			p.Para("• "+c, text, 1)
		}
	}
	return p, nil
}
