// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/effects/timeline.go
// Summary: Per-key animation timeline with configurable easing functions.
// Usage: Boot progress and the assistant bubble ease toward targets through
//   a Timeline stepped by the frame loop.
// Notes: Time is passed in explicitly so frames and tests agree on "now".

package effects

import (
	"sync"
	"time"
)

// EasingFunc maps linear progress in [0,1] to eased progress in [0,1].
type EasingFunc func(t float64) float64

var (
	EaseLinear EasingFunc = func(t float64) float64 { return t }

	// EaseSmoothstep accelerates at the start and decelerates at the end.
	EaseSmoothstep EasingFunc = func(t float64) float64 {
		return t * t * (3 - 2*t)
	}

	EaseSmootherstep EasingFunc = func(t float64) float64 {
		return t * t * t * (t*(t*6-15) + 10)
	}

	EaseOutQuad EasingFunc = func(t float64) float64 {
		return t * (2 - t)
	}

	EaseOutCubic EasingFunc = func(t float64) float64 {
		t1 := t - 1
		return t1*t1*t1 + 1
	}
)

type keyState struct {
	start     float64
	target    float64
	current   float64
	startTime time.Time
	duration  time.Duration
	easing    EasingFunc
}

// Timeline tracks one eased value per key.
type Timeline struct {
	mu      sync.Mutex
	states  map[string]*keyState
	easing  EasingFunc
	initial float64
}

// NewTimeline creates a timeline whose unseen keys start at initial and
// ease with smoothstep.
func NewTimeline(initial float64) *Timeline {
	return &Timeline{
		states:  make(map[string]*keyState),
		easing:  EaseSmoothstep,
		initial: initial,
	}
}

// AnimateTo retargets key at now and returns its value at that instant.
// An animation already in flight restarts from its current value.
func (tl *Timeline) AnimateTo(key string, target float64, d time.Duration, now time.Time) float64 {
	return tl.AnimateWith(key, target, d, nil, now)
}

// AnimateWith is AnimateTo with an explicit easing function; nil keeps the
// key's previous easing or the timeline default.
func (tl *Timeline) AnimateWith(key string, target float64, d time.Duration, ease EasingFunc, now time.Time) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()

	st := tl.states[key]
	if st == nil {
		st = &keyState{current: tl.initial, easing: tl.easing}
		tl.states[key] = st
	} else {
		st.current = st.valueAt(now)
	}
	if ease != nil {
		st.easing = ease
	}
	st.start = st.current
	st.target = target
	st.startTime = now
	st.duration = d
	if d <= 0 || st.current == target {
		st.current = target
	}
	return st.current
}

// Set jumps key to v without animating.
func (tl *Timeline) Set(key string, v float64) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.states[key] = &keyState{start: v, target: v, current: v, easing: tl.easing}
}

// Get returns the value of key as of the last Update or AnimateTo.
func (tl *Timeline) Get(key string) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if st := tl.states[key]; st != nil {
		return st.current
	}
	return tl.initial
}

// Target returns the value key is heading toward.
func (tl *Timeline) Target(key string) float64 {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	if st := tl.states[key]; st != nil {
		return st.target
	}
	return tl.initial
}

// Update advances every key to now.
func (tl *Timeline) Update(now time.Time) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, st := range tl.states {
		st.current = st.valueAt(now)
	}
}

// IsAnimating reports whether key has not yet reached its target.
func (tl *Timeline) IsAnimating(key string) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	st := tl.states[key]
	return st != nil && st.current != st.target
}

// HasActiveAnimations reports whether any key is still moving.
func (tl *Timeline) HasActiveAnimations() bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, st := range tl.states {
		if st.current != st.target {
			return true
		}
	}
	return false
}

// Reset forgets key.
func (tl *Timeline) Reset(key string) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	delete(tl.states, key)
}

func (st *keyState) valueAt(now time.Time) float64 {
	if st.duration <= 0 {
		return st.target
	}
	if now.Before(st.startTime) {
		return st.start
	}
	elapsed := now.Sub(st.startTime)
	if elapsed >= st.duration {
		return st.target
	}
	p := float64(elapsed) / float64(st.duration)
	return st.start + (st.target-st.start)*st.easing(p)
}
