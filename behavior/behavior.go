// Package behavior computes per-frame sprite offsets while a sprite is on stage
package behavior

import (
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/aquatype/grid"
)

// Sampling ranges for oscillation parameters
const (
	MinPeriod    = 2.0
	MaxPeriod    = 7.0
	MinAmplitude = 0.5
	MaxAmplitude = 0.6
)

// Behavior yields the sprite offset from its anchor for the next frame
type Behavior interface {
	Update() grid.Point
}

// Spec selects a behavior variant
type Spec interface {
	spec()
}

// NoneSpec keeps the sprite at its anchor
type NoneSpec struct{}

// OscillateSpec drifts the sprite along a sine path on both axes
type OscillateSpec struct{}

func (NoneSpec) spec()      {}
func (OscillateSpec) spec() {}

// None returns the stationary spec
func None() Spec { return NoneSpec{} }

// Oscillate returns the oscillating spec
func Oscillate() Spec { return OscillateSpec{} }

// Random returns a spec for easy sprites; oscillation is the only moving variant
func Random(*rand.Rand) Spec { return OscillateSpec{} }

// New instantiates the behavior selected by spec
// Oscillation parameters are sampled once here from rng
func New(spec Spec, framerate int, stage, sprite grid.Size, rng *rand.Rand) Behavior {
	switch spec.(type) {
	case OscillateSpec:
		return NewOscillator(framerate, stage, sprite, rng)
	default:
		return Nop{}
	}
}

// Nop always reports the anchor
type Nop struct{}

// Update returns the zero offset
func (Nop) Update() grid.Point { return grid.Point{} }

// axis holds the sampled sine parameters of one direction
type axis struct {
	period    float64 // seconds
	amplitude float64 // cells
}

func (a axis) at(t float64) int {
	return int(-a.amplitude * math.Sin(2*math.Pi*t/a.period))
}

// Oscillator moves the sprite independently on each axis with a random period and amplitude
type Oscillator struct {
	framerate int
	frame     int
	h, v      axis
}

// NewOscillator samples periods in [MinPeriod, MaxPeriod) and amplitude ratios in
// [MinAmplitude, MaxAmplitude) of the free space between stage and sprite
func NewOscillator(framerate int, stage, sprite grid.Size, rng *rand.Rand) *Oscillator {
	sample := func(lo, hi float64) float64 {
		return lo + rng.Float64()*(hi-lo)
	}
	// A sprite larger than the stage does not move on that axis
	gapW := float64(max(stage.Width-sprite.Width, 0))
	gapH := float64(max(stage.Height-sprite.Height, 0))

	return &Oscillator{
		framerate: max(framerate, 1),
		h: axis{
			period:    sample(MinPeriod, MaxPeriod),
			amplitude: gapW * sample(MinAmplitude, MaxAmplitude),
		},
		v: axis{
			period:    sample(MinPeriod, MaxPeriod),
			amplitude: gapH * sample(MinAmplitude, MaxAmplitude),
		},
	}
}

// Update returns the offset for the current frame and advances time
func (o *Oscillator) Update() grid.Point {
	t := float64(o.frame) / float64(o.framerate)
	o.frame++
	return grid.Point{X: o.h.at(t), Y: o.v.at(t)}
}
