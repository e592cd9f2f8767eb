// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package github renders a static snapshot of the owner's code-hosting
// profile. Nothing is fetched over the network.
package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

type Source interface {
	Account(ctx context.Context) (content.Account, error)
	Repos(ctx context.Context) ([]content.Repo, error)
}

type Panel struct {
	paint.Document
}

var languageColors = map[string]int32{
	"TypeScript": 0x3178c6,
	"JavaScript": 0xf1e05a,
	"Go":         0x00add8,
	"Python":     0x3572a5,
	"Rust":       0xdea584,
}

func languageStyle(lang string, base tcell.Style) tcell.Style {
	if c, ok := languageColors[lang]; ok {
		return base.Foreground(tcell.NewHexColor(c))
	}
	return base
}

func New(ctx context.Context, src Source, pal theming.Palette) (*Panel, error) {
	acct, err := src.Account(ctx)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	repos, err := src.Repos(ctx)
	if err != nil {
		return nil, fmt.Errorf("load repos: %w", err)
	}

	text := pal.Style("text", "window")
	muted := pal.Style("muted", "window")
	heading := pal.Style("heading", "window").Bold(true)
	link := pal.Style("link", "window").Bold(true)

	p := &Panel{}
	p.Base = text
	p.Row(paint.Span{Text: "GitHub Profile  ", Style: heading}, paint.Span{Text: acct.URL, Style: muted})
	p.Blank()
	p.Heading("@"+acct.Login, text.Bold(true))
	p.Para(acct.Bio, muted, 0)
	p.Heading(fmt.Sprintf("%d followers · %d following · %d repositories",
		acct.Followers, acct.Following, acct.PublicRepos), text)
	p.Blank()
	p.Heading("Popular repositories", heading)

	for _, r := range repos {
		p.Blank()
		p.Row(
			paint.Span{Text: r.Name, Style: link},
			paint.Span{Text: fmt.Sprintf("  ★ %d  ⑂ %d", r.Stars, r.Forks), Style: muted},
		)
		p.Para(r.Description, text, 0)
		meta := []paint.Span{
			{Text: "● ", Style: languageStyle(r.Language, muted)},
			{Text: r.Language, Style: muted},
			{Text: "  Updated " + r.Updated, Style: muted},
		}
		p.Row(meta...)
		if len(r.Topics) > 0 {
			p.Para("#"+strings.Join(r.Topics, " #"), pal.Style("accent", "window"), 0)
		}
	}
	return p, nil
}
