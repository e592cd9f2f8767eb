// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package paint

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestBufferWritesAreClipped(t *testing.T) {
	b := NewBuffer(4, 2, tcell.StyleDefault)
	b.Set(-1, 0, Cell{Ch: 'x'})
	b.Set(4, 1, Cell{Ch: 'x'})
	b.Set(1, 1, Cell{Ch: 'y'})

	if got := b.String(); got != "    \n y  " {
		t.Fatalf("unexpected buffer contents %q", got)
	}
}

func TestTextStopsAtMaxWidth(t *testing.T) {
	b := NewBuffer(10, 1, tcell.StyleDefault)
	n := b.Text(0, 0, "hello world", tcell.StyleDefault, 5)
	if n != 5 {
		t.Fatalf("expected 5 columns written, got %d", n)
	}
	if got := strings.TrimRight(b.String(), " "); got != "hello" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestRectIntersect(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Rect
		want  Rect
		empty bool
	}{
		{"overlap", Rect{0, 0, 10, 10}, Rect{5, 5, 10, 10}, Rect{5, 5, 5, 5}, false},
		{"inside", Rect{0, 0, 10, 10}, Rect{2, 2, 3, 3}, Rect{2, 2, 3, 3}, false},
		{"disjoint", Rect{0, 0, 2, 2}, Rect{5, 5, 1, 1}, Rect{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Intersect(tt.b)
			if got.Empty() != tt.empty {
				t.Fatalf("Empty() = %v, want %v", got.Empty(), tt.empty)
			}
			if !tt.empty && got != tt.want {
				t.Fatalf("Intersect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestWrapKeepsWordsAndNewlines(t *testing.T) {
	lines := Wrap("one two three\nfour", 8)
	want := []string{"one two", "three", "four"}
	if len(lines) != len(want) {
		t.Fatalf("got %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestTruncateAddsEllipsis(t *testing.T) {
	if got := Truncate("Spotify Player", 8); got != "Spotify…" {
		t.Fatalf("Truncate = %q", got)
	}
	if got := Truncate("Resume", 8); got != "Resume" {
		t.Fatalf("Truncate should keep short strings, got %q", got)
	}
}
