// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/boot/boot.go
// Summary: Boot screen progress model shown before the desktop.
// Usage: The shell calls Update every frame until Done, and draws View.

package boot

import (
	"math/rand/v2"
	"time"

	"github.com/framegrace/deskfolio/internal/effects"
)

const (
	// StepInterval is how often progress jumps forward.
	StepInterval = 400 * time.Millisecond
	// MaxStep bounds each jump.
	MaxStep = 15.0
	// EaseDuration is how long the bar takes to catch up with a jump.
	EaseDuration = 300 * time.Millisecond
	// MessageSpacing is the progress distance between boot messages.
	MessageSpacing = 20.0

	barKey = "bar"
)

// Messages returns the boot messages for an OS called name.
func Messages(name string) []string {
	return []string{
		"Initializing system...",
		"Loading kernel...",
		"Starting services...",
		"Checking hardware...",
		"Loading desktop environment...",
		"Welcome to " + name,
	}
}

// View is what the compositor needs to draw the boot screen.
type View struct {
	OS       string
	Progress float64 // eased bar position in [0,100]
	Message  string
}

// Screen advances boot progress in random steps.
type Screen struct {
	os       string
	messages []string
	rng      *rand.Rand
	duration time.Duration

	start    time.Time
	lastStep time.Time
	progress float64
	msg      int
	timeline *effects.Timeline
}

// New starts a boot sequence at now that lasts duration.
func New(osName string, duration time.Duration, rng *rand.Rand, now time.Time) *Screen {
	if rng == nil {
		rng = rand.New(rand.NewPCG(uint64(now.UnixNano()), 0))
	}
	return &Screen{
		os:       osName,
		messages: Messages(osName),
		rng:      rng,
		duration: duration,
		start:    now,
		lastStep: now,
		timeline: effects.NewTimeline(0),
	}
}

// Update applies every progress step due by now and advances the bar.
func (s *Screen) Update(now time.Time) {
	for s.progress < 100 && now.Sub(s.lastStep) >= StepInterval {
		s.lastStep = s.lastStep.Add(StepInterval)
		s.step(s.lastStep)
	}
	s.timeline.Update(now)
}

func (s *Screen) step(at time.Time) {
	next := s.progress + s.rng.Float64()*MaxStep
	if next >= 100 {
		s.progress = 100
	} else {
		if next > float64(s.msg)*MessageSpacing && s.msg < len(s.messages)-1 {
			s.msg++
		}
		s.progress = next
	}
	s.timeline.AnimateTo(barKey, s.progress, EaseDuration, at)
}

// Progress is the target progress in [0,100].
func (s *Screen) Progress() float64 { return s.progress }

// Message is the current boot message.
func (s *Screen) Message() string { return s.messages[s.msg] }

// Done reports whether the boot has run its full duration.
func (s *Screen) Done(now time.Time) bool {
	return now.Sub(s.start) >= s.duration
}

// Skip ends the boot at once.
func (s *Screen) Skip() {
	s.duration = 0
}

func (s *Screen) View() View {
	return View{OS: s.os, Progress: s.timeline.Get(barKey), Message: s.Message()}
}
