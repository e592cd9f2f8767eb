// Copyright © 2025 Deskfolio contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

package notes

import (
	"math"
	"math/rand/v2"
)

// Physics constants for a falling note. Times are in milliseconds.
const (
	Gravity         = 0.0006
	AirResistance   = 0.99
	SpinResistance  = 0.997
	OscillationFreq = 0.002
	OscillationAmp  = 0.0008
	FallDuration    = 3000.0
	// RemoveAt is the fall progress at which a note leaves the scene.
	RemoveAt = 0.9
	// PositionScale damps positional integration relative to velocity.
	PositionScale = 0.6

	// PeelThreshold is the peel progress at which a note lets go.
	PeelThreshold = 0.8
	// SnapBackStep is how much peel progress a released note loses per frame.
	SnapBackStep = 0.1
	// DefaultMaxDrag is the drag distance, in pixels, for a full peel.
	DefaultMaxDrag = 350.0

	hoverEase  = 0.1
	hoverDecay = 0.9
	// HoverScale is the extra presentation scale at full hover.
	HoverScale = 0.03

	velocityFromDrag = 1e-4
	epsilon          = 1e-9
)

// PeelProgress maps a drag vector to peel progress. Upward drags peel.
func PeelProgress(dx, dy, maxDrag float64) float64 {
	dy = max(dy, -1.5*maxDrag)
	dx = clamp(dx, -maxDrag, maxDrag)
	return clamp(-(0.8*dy+0.2*math.Abs(dx))/maxDrag, 0, 1)
}

// dragVelocity is the initial fall velocity of a note pulled past the
// threshold while still held.
func dragVelocity(r *rand.Rand, dx, dy float64) Motion {
	return Motion{
		X:   dx*velocityFromDrag + uniform(r, -0.015, 0.015),
		Y:   min(dy*velocityFromDrag, 0),
		Rot: dx*velocityFromDrag + uniform(r, -0.01, 0.01),
	}
}

// releaseVelocity is the initial fall velocity of a note let go past the
// threshold.
func releaseVelocity(r *rand.Rand) Motion {
	return Motion{
		X:   uniform(r, -0.025, 0.025),
		Rot: uniform(r, -0.01, 0.01),
	}
}

// integrate advances a falling note by dt milliseconds and returns the new
// fall progress.
func integrate(n *Note, dt float64) float64 {
	n.fallElapsed += dt
	ft := n.fallElapsed * OscillationFreq

	v := &n.Velocity
	v.Y += Gravity * dt
	v.X += math.Sin(ft) * OscillationAmp * dt
	v.X *= AirResistance
	v.Y *= AirResistance
	v.Rot *= SpinResistance

	n.Position.X += v.X * dt * PositionScale
	n.Position.Y += v.Y * dt * PositionScale
	n.Position.Rot += v.Rot * dt * PositionScale

	n.Rotation.X += (math.Sin(ft*1.3)*0.001 + v.Rot*0.5) * dt
	n.Rotation.Y += math.Sin(ft*0.7) * 0.0005 * dt
	n.Rotation.Z += (v.Rot + math.Sin(ft*2)*0.001) * dt * PositionScale

	n.Fall = min(n.fallElapsed/FallDuration, 1)
	return n.Fall
}

// easeHover moves intensity toward 1 when over is true and decays it
// otherwise.
func easeHover(intensity float64, over bool) float64 {
	if over {
		intensity += (1 - intensity) * hoverEase
	} else {
		intensity *= hoverDecay
	}
	if intensity < epsilon {
		return 0
	}
	return min(intensity, 1)
}

func uniform(r *rand.Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

func clamp(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
