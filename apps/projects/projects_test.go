// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package projects

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

func newPanel(t *testing.T) *Panel {
	t.Helper()
	ctx := context.Background()
	store, err := content.Open(ctx, content.MemoryPath, nil)
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	p, err := New(ctx, store, theming.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		file, code, want string
	}{
		{"main.go", "package main\n", "Go"},
		{"app.py", "def f():\n    return 1\n", "Python"},
		{"index.js", "export const x = 1;\n", "JavaScript"},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.file, tt.code); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.file, got, tt.want)
		}
	}
}

func TestHighlightKeepsLinesAndColours(t *testing.T) {
	base := tcell.StyleDefault
	code := "func Add(a, b int) int {\n\treturn a + b\n}\n"
	rows := Highlight("Go", "add.go", code, base)
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	var text strings.Builder
	styled := false
	for _, sp := range rows[0] {
		text.WriteString(sp.Text)
		if sp.Style != base {
			styled = true
		}
	}
	if text.String() != "func Add(a, b int) int {" {
		t.Fatalf("first row text = %q", text.String())
	}
	if !styled {
		t.Fatalf("expected keyword styling on first row")
	}
	if got := rows[1][0].Text; !strings.HasPrefix(got, "    ") {
		t.Fatalf("tabs should expand to spaces, got %q", got)
	}
}

func TestFilterTogglesListing(t *testing.T) {
	p := newPanel(t)
	if len(p.Visible()) != 5 || p.Filter() != All {
		t.Fatalf("expected all 5 projects, got %v", p.Visible())
	}

	p.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'f', tcell.ModNone))
	if p.Filter() != Featured || len(p.Visible()) != 3 {
		t.Fatalf("featured filter shows %v", p.Visible())
	}

	buf := paint.NewBuffer(80, 120, tcell.StyleDefault)
	p.Draw(buf, buf.Bounds())
	out := buf.String()
	if strings.Contains(out, "Weather Dashboard") {
		t.Fatalf("non-featured project drawn under featured filter")
	}
	if !strings.Contains(out, "Portfolio OS ★") {
		t.Fatalf("featured marker missing:\n%s", out)
	}

	p.HandleKey(tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone))
	if p.Filter() != All {
		t.Fatalf("tab should toggle back to all")
	}
}

func TestPanelDrawsSnippetLabel(t *testing.T) {
	p := newPanel(t)
	buf := paint.NewBuffer(100, 200, tcell.StyleDefault)
	p.Draw(buf, buf.Bounds())
	out := buf.String()
	for _, want := range []string{"My Projects", "forecast.go · Go", "func Average", "[Stripe]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q", want)
		}
	}
}
