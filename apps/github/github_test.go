// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package github

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

type stubSource struct{}

func (stubSource) Account(context.Context) (content.Account, error) {
	return content.Account{Login: "octo", Followers: 3, Following: 1, PublicRepos: 2, URL: "https://example.test/octo"}, nil
}

func (stubSource) Repos(context.Context) ([]content.Repo, error) {
	return []content.Repo{
		{Name: "big", Stars: 10, Forks: 2, Language: "Go", Topics: []string{"cli", "tui"}, Updated: "2024-01-01"},
		{Name: "small", Stars: 1, Language: "Cobol"},
	}, nil
}

func TestGithubPanel(t *testing.T) {
	p, err := New(context.Background(), stubSource{}, theming.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	buf := paint.NewBuffer(60, 30, tcell.StyleDefault)
	p.Draw(buf, buf.Bounds())
	out := buf.String()
	for _, want := range []string{"@octo", "3 followers · 1 following · 2 repositories", "big  ★ 10  ⑂ 2", "#cli #tui", "Updated 2024-01-01"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
}

func TestLanguageStyle(t *testing.T) {
	base := tcell.StyleDefault
	if languageStyle("Go", base) == base {
		t.Fatalf("known language should be coloured")
	}
	if languageStyle("Cobol", base) != base {
		t.Fatalf("unknown language keeps base style")
	}
}
