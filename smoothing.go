package main

import "math"

// smooth moves current toward target by factor per reference frame. dt is
// measured in reference frames (1 = one 60 Hz frame); a dt of exactly 1
// gives current + (target-current)*factor.
func smooth(current, target, factor, dt float64) float64 {
	if dt <= 0 {
		return current
	}
	k := factor
	if dt != 1 {
		k = 1 - math.Pow(1-factor, dt)
	}
	return current + (target-current)*k
}

// animState is the per-note visual state eased every frame. It is derived
// and never persisted.
type animState struct {
	Scale  float64
	Blur   float64
	Offset float64
}

var (
	restingAnim = animState{Scale: 1.0, Blur: 15, Offset: 8}
	hoverAnim   = animState{Scale: 1.15, Blur: 35, Offset: 20}
)

func (a animState) approach(target animState, factor, dt float64) animState {
	return animState{
		Scale:  smooth(a.Scale, target.Scale, factor, dt),
		Blur:   smooth(a.Blur, target.Blur, factor, dt),
		Offset: smooth(a.Offset, target.Offset, factor, dt),
	}
}
