// Package effect implements the frame-stepped transitions a sprite plays while
// appearing and disappearing. Every effector redraws a working grid from the
// untouched original on each call, so effectors never accumulate drift.
package effect

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/aquatype/grid"
)

// Status reports whether an effector still has frames to play
type Status int

const (
	Running Status = iota
	Completed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Completed:
		return "completed"
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Direction is the edge a fade travels from
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every direction, used for random selection
var Directions = [...]Direction{Up, Down, Left, Right}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// ParseDirection maps a config string to a Direction
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown fade direction %q", s)
}

// Effector redraws working from original for one frame
// working and original must have identical dimensions
type Effector interface {
	Update(working, original *grid.Grid) Status
}

// Spec selects an effector variant; the set is closed to this package
type Spec interface {
	spec()
}

// NoneSpec selects the no-op effector
type NoneSpec struct{}

// FadeSpec selects a directional fade
type FadeSpec struct {
	In        bool
	Direction Direction
}

func (NoneSpec) spec() {}
func (FadeSpec) spec() {}

// None returns the no-op spec
func None() Spec { return NoneSpec{} }

// FadeIn returns a fade-in spec revealing from the given direction
func FadeIn(d Direction) Spec { return FadeSpec{In: true, Direction: d} }

// FadeOut returns a fade-out spec hiding toward the given direction
func FadeOut(d Direction) Spec { return FadeSpec{In: false, Direction: d} }

// RandomFadeIn picks a uniformly random fade-in direction
func RandomFadeIn(rng *rand.Rand) Spec {
	return FadeIn(Directions[rng.IntN(len(Directions))])
}

// RandomFadeOut picks a uniformly random fade-out direction
func RandomFadeOut(rng *rand.Rand) Spec {
	return FadeOut(Directions[rng.IntN(len(Directions))])
}

// TotalFrames converts a duration to a frame count at the given framerate
func TotalFrames(duration time.Duration, framerate int) int {
	if duration <= 0 || framerate <= 0 {
		return 0
	}
	return int(duration.Milliseconds()) * framerate / 1000
}

// New instantiates the effector selected by spec
func New(spec Spec, duration time.Duration, framerate int) Effector {
	switch s := spec.(type) {
	case FadeSpec:
		return &Fade{
			in:        s.In,
			direction: s.Direction,
			total:     TotalFrames(duration, framerate),
		}
	default:
		return Nop{}
	}
}

// Nop copies the original and completes immediately
type Nop struct{}

// Update copies original into working
func (Nop) Update(working, original *grid.Grid) Status {
	working.CopyFrom(original)
	return Completed
}

// Fade reveals (in) or hides (out) the original one row or column band per frame
type Fade struct {
	in        bool
	direction Direction
	total     int
	current   int
}

// Update draws one frame and advances the frame counter
// Calls past completion keep producing the final frame
func (f *Fade) Update(working, original *grid.Grid) Status {
	working.CopyFrom(original)

	num, den := f.current, f.total
	if den == 0 || num > den {
		num, den = 1, 1
	}

	switch f.direction {
	case Down, Up:
		f.mask(working, working.Height(), num, den, func(x, y int) int { return y })
	case Left, Right:
		f.mask(working, working.Width(), num, den, func(x, y int) int { return x })
	}

	f.current++
	if f.current > f.total {
		return Completed
	}
	return Running
}

// mask blanks cells along one axis; extent is the axis length
func (f *Fade) mask(g *grid.Grid, extent, num, den int, axis func(x, y int) int) {
	shown := extent * num / den
	var hide func(v int) bool

	switch f.direction {
	case Down, Left:
		// Band grows from the leading edge
		if f.in {
			hide = func(v int) bool { return v >= shown }
		} else {
			hide = func(v int) bool { return v < shown }
		}
	case Up, Right:
		// Band grows from the trailing edge
		edge := extent - shown
		if f.in {
			hide = func(v int) bool { return v < edge }
		} else {
			hide = func(v int) bool { return v >= edge }
		}
	}

	g.OverwriteFunc(grid.Transparent, func(x, y int, _ rune) bool {
		return hide(axis(x, y))
	})
}
