// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package resume

import (
	"context"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/framegrace/deskfolio/internal/content"
	"github.com/framegrace/deskfolio/internal/theming"
	"github.com/framegrace/deskfolio/paint"
)

func TestResumeFromSeededStore(t *testing.T) {
	ctx := context.Background()
	store, err := content.Open(ctx, content.MemoryPath, nil)
	if err != nil {
		t.Fatalf("content.Open: %v", err)
	}
	defer store.Close()

	p, err := New(ctx, store, theming.Default())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	buf := paint.NewBuffer(90, 200, tcell.StyleDefault)
	p.Draw(buf, buf.Bounds())
	out := buf.String()
	for _, want := range []string{
		"Download PDF",
		"Yassine Developer",
		"Experience",
		"Senior Frontend Developer  2021 - Present",
		"• Mentored junior developers",
		"University of Technology",
		"Certifications",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in resume", want)
		}
	}
	if strings.Index(out, "Summary") > strings.Index(out, "Experience") {
		t.Fatalf("summary should precede experience")
	}
}
