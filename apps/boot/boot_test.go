// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package boot

import (
	"math/rand/v2"
	"testing"
	"time"
)

func TestBootProgressesMonotonically(t *testing.T) {
	t0 := time.Unix(0, 0)
	s := New("TestOS", 4*time.Second, rand.New(rand.NewPCG(1, 2)), t0)
	if s.Message() != "Initializing system..." {
		t.Fatalf("first message = %q", s.Message())
	}

	prev, prevMsg := 0.0, 0
	for now := t0; now.Before(t0.Add(60 * time.Second)); now = now.Add(16 * time.Millisecond) {
		s.Update(now)
		if s.Progress() < prev || s.Progress() > 100 {
			t.Fatalf("progress went from %v to %v", prev, s.Progress())
		}
		if s.msg < prevMsg || s.msg-prevMsg > 1 {
			t.Fatalf("message index jumped from %d to %d", prevMsg, s.msg)
		}
		if v := s.View(); v.Progress > s.Progress()+1e-9 {
			t.Fatalf("eased bar %v ahead of target %v", v.Progress, s.Progress())
		}
		prev, prevMsg = s.Progress(), s.msg
	}
	if s.Progress() != 100 {
		t.Fatalf("boot never completed, progress=%v", s.Progress())
	}
	if s.View().Progress != 100 {
		t.Fatalf("bar did not settle at 100: %v", s.View().Progress)
	}
}

func TestBootStepsOnlyEveryInterval(t *testing.T) {
	t0 := time.Unix(0, 0)
	s := New("TestOS", time.Second, rand.New(rand.NewPCG(5, 5)), t0)
	s.Update(t0.Add(399 * time.Millisecond))
	if s.Progress() != 0 {
		t.Fatalf("progress moved before the first step: %v", s.Progress())
	}
	s.Update(t0.Add(400 * time.Millisecond))
	if s.Progress() <= 0 || s.Progress() > MaxStep {
		t.Fatalf("first step out of range: %v", s.Progress())
	}
}

func TestBootDoneAndSkip(t *testing.T) {
	t0 := time.Unix(0, 0)
	s := New("TestOS", 4*time.Second, nil, t0)
	if s.Done(t0.Add(3 * time.Second)) {
		t.Fatalf("done too early")
	}
	if !s.Done(t0.Add(4 * time.Second)) {
		t.Fatalf("not done after the full duration")
	}
	s2 := New("TestOS", time.Hour, nil, t0)
	s2.Skip()
	if !s2.Done(t0) {
		t.Fatalf("skip should finish immediately")
	}
	if got := Messages("TestOS"); got[len(got)-1] != "Welcome to TestOS" {
		t.Fatalf("welcome message = %q", got[len(got)-1])
	}
}
