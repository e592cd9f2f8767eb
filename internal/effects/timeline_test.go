// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package effects

import (
	"math"
	"testing"
	"time"
)

func TestTimelineEasesToTarget(t *testing.T) {
	tl := NewTimeline(0)
	t0 := time.Unix(1000, 0)
	if v := tl.AnimateTo("bar", 100, 300*time.Millisecond, t0); v != 0 {
		t.Fatalf("animation should start from the initial value, got %v", v)
	}

	tl.Update(t0.Add(150 * time.Millisecond))
	if v := tl.Get("bar"); math.Abs(v-50) > 1e-9 {
		t.Fatalf("smoothstep midpoint = %v, want 50", v)
	}
	if !tl.IsAnimating("bar") || !tl.HasActiveAnimations() {
		t.Fatalf("expected bar to be animating")
	}

	tl.Update(t0.Add(time.Second))
	if v := tl.Get("bar"); v != 100 {
		t.Fatalf("expected target reached, got %v", v)
	}
	if tl.IsAnimating("bar") {
		t.Fatalf("finished animation still reported active")
	}
}

func TestTimelineRetargetStartsFromCurrent(t *testing.T) {
	tl := NewTimeline(0)
	t0 := time.Unix(0, 0)
	tl.AnimateWith("x", 10, 100*time.Millisecond, EaseLinear, t0)
	v := tl.AnimateTo("x", 20, 100*time.Millisecond, t0.Add(50*time.Millisecond))
	if math.Abs(v-5) > 1e-9 {
		t.Fatalf("retarget should start at 5, got %v", v)
	}
	tl.Update(t0.Add(100 * time.Millisecond))
	if got := tl.Get("x"); math.Abs(got-12.5) > 1e-9 {
		t.Fatalf("linear easing kept across retarget: got %v", got)
	}
	if tl.Target("x") != 20 {
		t.Fatalf("target = %v", tl.Target("x"))
	}
}

func TestTimelineZeroDurationJumps(t *testing.T) {
	tl := NewTimeline(1)
	if v := tl.AnimateTo("k", 3, 0, time.Now()); v != 3 {
		t.Fatalf("zero duration should jump, got %v", v)
	}
	tl.Set("k", 7)
	tl.Reset("missing")
	if tl.Get("k") != 7 || tl.Get("missing") != 1 {
		t.Fatalf("Set/Get mismatch")
	}
}

func TestEasingEndpoints(t *testing.T) {
	for name, f := range map[string]EasingFunc{
		"linear":       EaseLinear,
		"smoothstep":   EaseSmoothstep,
		"smootherstep": EaseSmootherstep,
		"outquad":      EaseOutQuad,
		"outcubic":     EaseOutCubic,
	} {
		if f(0) != 0 || f(1) != 1 {
			t.Errorf("%s: f(0)=%v f(1)=%v", name, f(0), f(1))
		}
	}
}
