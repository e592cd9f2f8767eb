// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/projects/projects.go
// Summary: Project gallery with an All/Featured filter and highlighted
//   source samples.

package projects

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

// Source supplies the project list.
type Source interface {
	Projects(ctx context.Context, featuredOnly bool) ([]content.Project, error)
}

// Filter selects which projects are listed.
type Filter int

const (
	All Filter = iota
	Featured
)

func (f Filter) String() string {
	if f == Featured {
		return "featured"
	}
	return "all"
}

type entry struct {
	project  content.Project
	language string
	code     [][]paint.Span
}

// Panel lists projects. It reacts to a/f/Tab to change the filter.
type Panel struct {
	paint.Document
	entries []entry
	filter  Filter
	pal     theming.Palette
}

func New(ctx context.Context, src Source, pal theming.Palette) (*Panel, error) {
	list, err := src.Projects(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("load projects: %w", err)
	}
	codeBase := pal.Style("text", "taskbar.item")
	p := &Panel{pal: pal}
	for _, pr := range list {
		lang := DetectLanguage(pr.SnippetFile, pr.Snippet)
		p.entries = append(p.entries, entry{
			project:  pr,
			language: lang,
			code:     Highlight(lang, pr.SnippetFile, pr.Snippet, codeBase),
		})
	}
	p.rebuild()
	return p, nil
}

// Filter returns the active filter.
func (p *Panel) Filter() Filter { return p.filter }

// SetFilter switches the listing and scrolls back to the top.
func (p *Panel) SetFilter(f Filter) {
	if f == p.filter {
		return
	}
	p.filter = f
	p.Scroll(-p.Offset())
	p.rebuild()
}

// Visible returns the names of the listed projects.
func (p *Panel) Visible() []string {
	var out []string
	for _, e := range p.entries {
		if p.filter == All || e.project.Featured {
			out = append(out, e.project.Name)
		}
	}
	return out
}

func (p *Panel) HandleKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyTab:
		p.SetFilter(1 - p.filter)
	case tcell.KeyUp:
		p.Scroll(-1)
	case tcell.KeyDown:
		p.Scroll(1)
	case tcell.KeyPgUp:
		p.Scroll(-10)
	case tcell.KeyPgDn:
		p.Scroll(10)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a':
			p.SetFilter(All)
		case 'f':
			p.SetFilter(Featured)
		}
	}
}

func (p *Panel) rebuild() {
	pal := p.pal
	text := pal.Style("text", "window")
	muted := pal.Style("muted", "window")
	heading := pal.Style("heading", "window").Bold(true)
	accent := pal.Style("accent", "window")
	link := pal.Style("link", "window").Underline(true)
	on := pal.Style("title.fg", "accent")
	off := pal.Style("text", "taskbar.item")

	tab := func(label string, f Filter) paint.Span {
		if p.filter == f {
			return paint.Span{Text: " " + label + " ", Style: on}
		}
		return paint.Span{Text: " " + label + " ", Style: off}
	}

	p.Lines = nil
	p.Base = text
	p.Row(paint.Span{Text: "My Projects   ", Style: heading}, tab("All", All), paint.Span{Text: " ", Style: text}, tab("Featured", Featured))
	p.Blank()

	for _, e := range p.entries {
		pr := e.project
		if p.filter == Featured && !pr.Featured {
			continue
		}
		title := []paint.Span{{Text: pr.Name, Style: text.Bold(true)}}
		if pr.Featured {
			title = append(title, paint.Span{Text: " ★", Style: accent})
		}
		p.Row(title...)
		p.Para(pr.Description, muted, 0)

		var tags []paint.Span
		for _, tech := range pr.Technologies {
			tags = append(tags, paint.Span{Text: "[" + tech + "]", Style: accent}, paint.Span{Text: " ", Style: text})
		}
		if len(tags) > 0 {
			p.Row(tags...)
		}

		var links []paint.Span
		if pr.GitHub != "" {
			links = append(links, paint.Span{Text: "Code: ", Style: muted}, paint.Span{Text: pr.GitHub, Style: link})
		}
		if pr.Demo != "" && pr.Demo != "#" {
			links = append(links, paint.Span{Text: "  Demo: ", Style: muted}, paint.Span{Text: pr.Demo, Style: link})
		}
		if len(links) > 0 {
			p.Row(links...)
		}

		if len(e.code) > 0 {
			label := pr.SnippetFile
			if e.language != "" {
				label += " · " + e.language
			}
			p.Row(paint.Span{Text: "── " + label + " " + strings.Repeat("─", 8), Style: muted})
			for _, row := range e.code {
				p.Lines = append(p.Lines, paint.Line{Spans: row, Indent: 2})
			}
		}
		p.Blank()
	}
}
