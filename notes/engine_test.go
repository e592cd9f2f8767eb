// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package notes

import (
	"math/rand/v2"
	"testing"
	"time"
)

const frame = 16 * time.Millisecond

type sinkRecorder struct {
	falling []string
	removed []string
}

func (s *sinkRecorder) NoteFalling(id string) { s.falling = append(s.falling, id) }
func (s *sinkRecorder) NoteRemoved(id string) { s.removed = append(s.removed, id) }

func testScene() Scene {
	return Scene{Origin: Vec2{100, 100}, NoteW: 120, NoteH: 120, UnitPx: 40, Width: 800, Height: 600}
}

// stacked builds notes with the given ids at the same offset, bottom first.
func stacked(ids ...string) []Note {
	out := make([]Note, len(ids))
	for i, id := range ids {
		out[i] = Note{ID: id, Text: id, Stack: i + 1}
	}
	return out
}

func newTestEngine(seed []Note, sink Sink) *Engine {
	return NewEngine(NewArena(seed...), testScene(),
		WithRand(rand.New(rand.NewPCG(4, 2))), WithSink(sink))
}

var centre = Vec2{160, 160}

func press(e *Engine, at Vec2) {
	e.Step(Input{Pointer: at, Start: at, Down: true}, frame)
}

func drag(e *Engine, start Vec2, dx, dy float64) {
	e.Step(Input{Pointer: Vec2{start.X + dx, start.Y + dy}, Start: start, Down: true}, frame)
}

func release(e *Engine, at Vec2) {
	e.Step(Input{Pointer: at}, frame)
}

func TestPeelProgress(t *testing.T) {
	tests := []struct {
		name   string
		dx, dy float64
		want   float64
	}{
		{"still", 0, 0, 0},
		{"downward", 0, 100, 0},
		{"threshold", 0, -350, 0.8},
		{"half", 0, -218.75, 0.5},
		{"clamped-up", 0, -10000, 1},
		{"sideways", 350, 0, 0},
		{"sideways-clamped", -5000, -350, 0.6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PeelProgress(tt.dx, tt.dy, DefaultMaxDrag)
			if diff := got - tt.want; diff > 1e-12 || diff < -1e-12 {
				t.Fatalf("PeelProgress(%v,%v) = %v, want %v", tt.dx, tt.dy, got, tt.want)
			}
		})
	}
}

func TestOnlyTopmostNotePeels(t *testing.T) {
	e := newTestEngine(stacked("A", "B", "C"), nil)
	press(e, centre)
	drag(e, centre, 0, -100)

	a, b, c := e.arena.Get("A"), e.arena.Get("B"), e.arena.Get("C")
	if e.Target() != "C" || c.State != Peeling || c.Peel <= 0 {
		t.Fatalf("expected C peeling, target=%q state=%v peel=%v", e.Target(), c.State, c.Peel)
	}
	if a.State != Idle || b.State != Idle || a.Peel != 0 || b.Peel != 0 {
		t.Fatalf("notes below the top must stay idle: A=%v B=%v", a.State, b.State)
	}
}

func TestPeelAtThresholdFallsSameFrame(t *testing.T) {
	sink := &sinkRecorder{}
	e := newTestEngine(stacked("A", "B"), sink)
	press(e, centre)
	drag(e, centre, 0, -350)

	b := e.arena.Get("B")
	if b.State != Falling {
		t.Fatalf("expected B falling at progress %v, got %v", b.Peel, b.State)
	}
	if len(sink.falling) != 1 || sink.falling[0] != "B" {
		t.Fatalf("falling notifications = %v", sink.falling)
	}
	if e.Target() != "" {
		t.Fatalf("falling note must release the drag target, got %q", e.Target())
	}
	if b.Velocity.Y > 0 {
		t.Fatalf("upward drag must not start with downward velocity: %+v", b.Velocity)
	}
}

func TestGuardHoldsUntilRelease(t *testing.T) {
	e := newTestEngine(stacked("A", "B"), nil)
	press(e, centre)
	drag(e, centre, 0, -400)
	if e.arena.Get("B").State != Falling {
		t.Fatalf("B should be falling")
	}
	// Still holding: A is now topmost under the pointer but must not be
	// picked up by the same gesture.
	drag(e, centre, 0, -400)
	press(e, centre)
	if a := e.arena.Get("A"); a.State != Idle || e.Target() != "" {
		t.Fatalf("A grabbed mid-gesture: state=%v target=%q", a.State, e.Target())
	}

	release(e, centre)
	press(e, centre)
	if e.Target() != "A" {
		t.Fatalf("new gesture should grab A, got %q", e.Target())
	}
}

func TestFallingNoteNeverPeelsAgain(t *testing.T) {
	e := newTestEngine(stacked("A", "B"), nil)
	press(e, centre)
	drag(e, centre, 0, -350)
	release(e, centre)

	b := e.arena.Get("B")
	for i := 0; i < 20; i++ {
		press(e, centre)
		drag(e, centre, 0, -100)
		release(e, centre)
		if b.State == Peeling || b.State == Idle {
			t.Fatalf("falling note returned to %v", b.State)
		}
		if e.Target() == "B" {
			t.Fatalf("falling note became drag target")
		}
	}
}

func TestRemovalFiresOnceAfterFall(t *testing.T) {
	sink := &sinkRecorder{}
	e := newTestEngine(stacked("A"), sink)
	press(e, centre)
	drag(e, centre, 0, -350)

	a := e.arena.Get("A")
	elapsed := time.Duration(0)
	removedAt := time.Duration(-1)
	for i := 0; i < 400; i++ {
		release(e, Vec2{})
		elapsed += frame
		if removedAt < 0 && len(sink.removed) > 0 {
			removedAt = elapsed
		}
	}
	if len(sink.removed) != 1 || sink.removed[0] != "A" {
		t.Fatalf("removed notifications = %v", sink.removed)
	}
	if removedAt < 2700*time.Millisecond {
		t.Fatalf("removed after %v, want at least 2.7s", removedAt)
	}
	if a.State != Removed {
		t.Fatalf("expected Removed, got %v", a.State)
	}
	if len(e.Snapshot()) != 0 {
		t.Fatalf("removed notes must not be drawn")
	}
	if e.arena.Len() != 1 {
		t.Fatalf("removed note should stay in the arena")
	}
}

func TestReleaseBelowThresholdSnapsBack(t *testing.T) {
	e := newTestEngine(stacked("A"), nil)
	press(e, centre)
	drag(e, centre, 0, -218.75)
	a := e.arena.Get("A")
	if a.Peel != 0.5 {
		t.Fatalf("expected peel 0.5, got %v", a.Peel)
	}

	frames := 0
	for a.State == Peeling {
		release(e, centre)
		frames++
		if a.Peel < 0 {
			t.Fatalf("peel overshot to %v", a.Peel)
		}
		if frames > 10 {
			t.Fatalf("snap back did not finish")
		}
	}
	if frames != 5 || a.Peel != 0 || a.State != Idle {
		t.Fatalf("snap back took %d frames, peel=%v state=%v", frames, a.Peel, a.State)
	}
}

func TestReleaseAboveThresholdFalls(t *testing.T) {
	sink := &sinkRecorder{}
	e := newTestEngine(stacked("A"), sink)
	a := e.arena.Get("A")
	press(e, centre)
	a.Peel = 0.9
	release(e, centre)
	if a.State != Falling || len(sink.falling) != 1 {
		t.Fatalf("expected fall on release, got %v", a.State)
	}
	if a.Velocity.Y != 0 {
		t.Fatalf("release velocity has no vertical component, got %v", a.Velocity.Y)
	}
}

func TestStalePeelResetsOnNewGesture(t *testing.T) {
	e := newTestEngine(stacked("A"), nil)
	press(e, centre)
	drag(e, centre, 0, -218.75)
	release(e, centre)
	a := e.arena.Get("A")
	if a.State != Peeling {
		t.Fatalf("expected A snapping back, got %v", a.State)
	}
	press(e, Vec2{700, 700})
	if a.State != Idle || a.Peel != 0 {
		t.Fatalf("stale peel not reset: state=%v peel=%v", a.State, a.Peel)
	}
}

func TestHoverEasesAndDecays(t *testing.T) {
	e := newTestEngine(stacked("A", "B"), nil)
	b := e.arena.Get("B")
	prev := 0.0
	for i := 0; i < 30; i++ {
		release(e, centre)
		if b.Hover <= prev || b.Hover > 1 {
			t.Fatalf("frame %d: hover %v did not increase from %v", i, b.Hover, prev)
		}
		prev = b.Hover
	}
	if a := e.arena.Get("A"); a.Hover != 0 {
		t.Fatalf("only the topmost note hovers, A=%v", a.Hover)
	}
	if v := e.Snapshot()[1]; v.Scale <= 1 || v.Scale > 1+HoverScale {
		t.Fatalf("hover scale out of range: %v", v.Scale)
	}

	release(e, Vec2{700, 700})
	if b.Hover >= prev {
		t.Fatalf("hover should decay off the note: %v >= %v", b.Hover, prev)
	}
	press(e, centre)
	if b.Hover != 0 {
		t.Fatalf("hover must be zero while pressed, got %v", b.Hover)
	}
}

func TestSnapshotOrderAndAlpha(t *testing.T) {
	seed := SeedNotes()
	seed[0], seed[4] = seed[4], seed[0]
	e := NewEngine(NewArena(seed...), testScene(), WithRand(rand.New(rand.NewPCG(1, 1))))
	views := e.Snapshot()
	if len(views) != 5 {
		t.Fatalf("expected 5 views, got %d", len(views))
	}
	for i := 1; i < len(views); i++ {
		if views[i-1].Stack >= views[i].Stack {
			t.Fatalf("snapshot not ordered by stack: %d then %d", views[i-1].Stack, views[i].Stack)
		}
	}
	if views[0].Alpha != 1 || views[0].Scale != 1 {
		t.Fatalf("idle note alpha/scale = %v/%v", views[0].Alpha, views[0].Scale)
	}
}

func TestAddNoteGoesOnTop(t *testing.T) {
	e := NewEngine(NewArena(SeedNotes()...), testScene(), WithRand(rand.New(rand.NewPCG(9, 9))))
	n := e.AddNote()
	if n.Stack != 6 || e.arena.Topmost() != n {
		t.Fatalf("new note stack=%d, want 6 on top", n.Stack)
	}
	if n.ID == "" || n.Text == "" {
		t.Fatalf("new note missing id or text: %+v", n)
	}
	for _, c := range []uint8{n.Color.R, n.Color.G, n.Color.B} {
		if c < 100 {
			t.Fatalf("colour channel %d below 100", c)
		}
	}
	if n.Offset.X < 0 || n.Offset.X >= 0.5 || n.Offset.Y > 0 || n.Offset.Y <= -0.5 {
		t.Fatalf("offset out of range: %+v", n.Offset)
	}
}

func TestFlingDropsTopmost(t *testing.T) {
	sink := &sinkRecorder{}
	e := newTestEngine(stacked("A", "B"), sink)
	id, ok := e.Fling()
	if !ok || id != "B" {
		t.Fatalf("Fling() = %q,%v", id, ok)
	}
	if e.Target() != "" {
		t.Fatalf("fling must leave no gesture behind")
	}
	id, ok = e.Fling()
	if !ok || id != "A" {
		t.Fatalf("second Fling() = %q,%v", id, ok)
	}
	if _, ok := e.Fling(); ok {
		t.Fatalf("nothing left to fling")
	}
}

func TestFlingKeepsGestureGuard(t *testing.T) {
	sink := &sinkRecorder{}
	e := newTestEngine(stacked("A", "B", "C"), sink)
	press(e, centre)
	drag(e, centre, 0, -100)
	a := e.arena.Get("A")
	a.State, a.Peel = Peeling, 0.3

	id, ok := e.Fling()
	if !ok || id != "C" {
		t.Fatalf("Fling() = %q,%v", id, ok)
	}
	if c := e.arena.Get("C"); c.State != Falling || c.Velocity.Y > 0 {
		t.Fatalf("C state=%v velocity=%+v", c.State, c.Velocity)
	}
	if len(sink.falling) != 1 || sink.falling[0] != "C" {
		t.Fatalf("falling notifications = %v", sink.falling)
	}
	if a.State != Peeling || a.Peel != 0.3 {
		t.Fatalf("fling touched A: state=%v peel=%v", a.State, a.Peel)
	}
	if !e.selected || e.Target() != "" {
		t.Fatalf("guard after fling: selected=%v target=%q", e.selected, e.Target())
	}

	drag(e, centre, 0, -100)
	if b := e.arena.Get("B"); b.State != Idle || e.Target() != "" {
		t.Fatalf("B grabbed by the held gesture: state=%v target=%q", b.State, e.Target())
	}
	release(e, centre)
	press(e, centre)
	if e.Target() != "B" {
		t.Fatalf("new gesture should grab B, got %q", e.Target())
	}
}

func TestTransitionRejectsIllegalMoves(t *testing.T) {
	n := &Note{}
	if n.transition(Falling) {
		t.Fatalf("idle note must not jump to falling")
	}
	n.State = Removed
	if n.transition(Idle) || n.transition(Peeling) {
		t.Fatalf("removed is terminal")
	}
}

func TestStateTextRoundTrip(t *testing.T) {
	for _, st := range []State{Idle, Peeling, Falling, Removed} {
		b, _ := st.MarshalText()
		var got State
		if err := got.UnmarshalText(b); err != nil || got != st {
			t.Fatalf("round trip of %v = %v, %v", st, got, err)
		}
	}
	var st State
	if err := st.UnmarshalText([]byte("flying")); err == nil {
		t.Fatalf("expected error for unknown state")
	}
}
