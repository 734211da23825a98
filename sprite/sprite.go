// Package sprite owns a single rasterized image and sequences its lifecycle:
// Appear -> Move -> Disappear -> Disappeared.
package sprite

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/aquatype/behavior"
	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/grid"
)

// DefaultEffectDuration is the length of appear and disappear transitions
const DefaultEffectDuration = time.Second

// State is the lifecycle stage of a sprite
type State int

const (
	Appear State = iota
	Move
	Disappear
	Disappeared
)

func (s State) String() string {
	switch s {
	case Appear:
		return "appear"
	case Move:
		return "move"
	case Disappear:
		return "disappear"
	case Disappeared:
		return "disappeared"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Context carries the stage parameters strategies are sized against
type Context struct {
	Stage          grid.Size
	Framerate      int
	EffectDuration time.Duration
}

func (c Context) duration() time.Duration {
	if c.EffectDuration <= 0 {
		return DefaultEffectDuration
	}
	return c.EffectDuration
}

// Strategies selects the transition and motion variants of an explicit sprite
type Strategies struct {
	Appear    effect.Spec
	Disappear effect.Spec
	Behavior  behavior.Spec
}

// Static is the strategy set for title art: no transitions and no motion
func Static() Strategies {
	return Strategies{
		Appear:    effect.None(),
		Disappear: effect.None(),
		Behavior:  behavior.None(),
	}
}

// RandomStrategies picks random fade directions and the oscillating behavior
func RandomStrategies(rng *rand.Rand) Strategies {
	return Strategies{
		Appear:    effect.RandomFadeIn(rng),
		Disappear: effect.RandomFadeOut(rng),
		Behavior:  behavior.Random(rng),
	}
}

// Sprite is not safe for concurrent use; the stage owner drives it
type Sprite struct {
	original *grid.Grid
	working  *grid.Grid
	pos      grid.Point
	state    State
	frame    int

	appear    effect.Effector
	motion    behavior.Behavior
	disappear effect.Effector
}

// New builds a sprite with caller-chosen strategies
// rng is only consumed by random behaviors and may be nil for static sprites
func New(original *grid.Grid, ctx Context, st Strategies, rng *rand.Rand) *Sprite {
	if st.Appear == nil {
		st.Appear = effect.None()
	}
	if st.Disappear == nil {
		st.Disappear = effect.None()
	}
	if st.Behavior == nil {
		st.Behavior = behavior.None()
	}
	d := ctx.duration()
	return &Sprite{
		original:  original,
		working:   grid.New(original.Width(), original.Height()),
		state:     Appear,
		appear:    effect.New(st.Appear, d, ctx.Framerate),
		motion:    behavior.New(st.Behavior, ctx.Framerate, ctx.Stage, original.Size(), rng),
		disappear: effect.New(st.Disappear, d, ctx.Framerate),
	}
}

// Update advances one tick and returns the resulting state
func (s *Sprite) Update() State {
	switch s.state {
	case Appear:
		if s.appear.Update(s.working, s.original) == effect.Completed {
			s.state = Move
		}
	case Move:
		s.pos = s.motion.Update()
	case Disappear:
		if s.disappear.Update(s.working, s.original) == effect.Completed {
			s.state = Disappeared
		}
	case Disappeared:
		return s.state
	}
	s.frame++
	return s.state
}

// Hide starts the exit transition; a sprite already disappearing keeps its progress
func (s *Sprite) Hide() {
	if s.state == Appear || s.state == Move {
		s.state = Disappear
	}
}

// State returns the current lifecycle state
func (s *Sprite) State() State {
	return s.state
}

// Data returns the working grid as drawn by the last update
func (s *Sprite) Data() *grid.Grid {
	return s.working
}

// Original returns the reference raster
func (s *Sprite) Original() *grid.Grid {
	return s.original
}

// Position returns the offset from the anchor produced by the last motion update
func (s *Sprite) Position() grid.Point {
	return s.pos
}

// Frame returns the number of active ticks played
func (s *Sprite) Frame() int {
	return s.frame
}
