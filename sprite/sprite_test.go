package sprite

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/aquatype/behavior"
	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/grid"
)

func art() *grid.Grid {
	return grid.FromLines([]string{
		"/--\\",
		"|<>|",
		"\\--/",
	})
}

func ctx() Context {
	return Context{
		Stage:          grid.Size{Width: 40, Height: 20},
		Framerate:      10,
		EffectDuration: time.Second,
	}
}

func TestStaticSpriteSkipsTransitions(t *testing.T) {
	s := New(art(), ctx(), Static(), nil)
	require.Equal(t, Appear, s.State())

	assert.Equal(t, Move, s.Update())
	assert.True(t, s.Data().Equal(art()))

	for i := 0; i < 10; i++ {
		s.Update()
		assert.Equal(t, grid.Point{}, s.Position())
	}

	s.Hide()
	assert.Equal(t, Disappear, s.State())
	assert.Equal(t, Disappeared, s.Update())
	assert.True(t, s.Data().Equal(art()), "no-op exit keeps the last drawn frame")
}

func TestAppearCompletesOnEffectorCompletion(t *testing.T) {
	st := Strategies{Appear: effect.FadeIn(effect.Down), Disappear: effect.FadeOut(effect.Down), Behavior: behavior.None()}
	s := New(art(), ctx(), st, nil)

	// 10 frames of fade plus the completing call
	for i := 0; i < 10; i++ {
		require.Equal(t, Appear, s.Update(), "tick %d", i+1)
	}
	assert.Equal(t, Move, s.Update())
	assert.True(t, s.Data().Equal(art()))
}

func TestHideFromAnyActiveState(t *testing.T) {
	st := Strategies{Appear: effect.FadeIn(effect.Left), Disappear: effect.FadeOut(effect.Left), Behavior: behavior.None()}

	s := New(art(), ctx(), st, nil)
	s.Update()
	s.Hide()
	assert.Equal(t, Disappear, s.State(), "hide during appear")

	for i := 0; i < 10; i++ {
		require.Equal(t, Disappear, s.Update())
	}
	// Hide while already disappearing does not restart the transition
	s.Hide()
	assert.Equal(t, Disappeared, s.Update())

	s.Hide()
	assert.Equal(t, Disappeared, s.State(), "hide is ignored once disappeared")
}

func TestDisappearedRetainsLastFrame(t *testing.T) {
	st := Strategies{Appear: effect.None(), Disappear: effect.FadeOut(effect.Up), Behavior: behavior.None()}
	s := New(art(), ctx(), st, nil)
	s.Update()
	s.Hide()
	for s.State() != Disappeared {
		s.Update()
	}
	last := s.Data().String()
	frame := s.Frame()

	for i := 0; i < 5; i++ {
		assert.Equal(t, Disappeared, s.Update())
	}
	assert.Equal(t, last, s.Data().String())
	assert.Equal(t, frame, s.Frame(), "disappeared updates are no-ops")
}

func TestEasySpriteMoves(t *testing.T) {
	rng := rand.New(rand.NewPCG(21, 22))
	s := New(art(), Context{Stage: grid.Size{Width: 200, Height: 100}, Framerate: 10}, RandomStrategies(rng), rng)

	for s.State() == Appear {
		s.Update()
	}
	require.Equal(t, Move, s.State())

	moved := false
	for i := 0; i < 30; i++ {
		s.Update()
		if s.Position() != (grid.Point{}) {
			moved = true
		}
	}
	assert.True(t, moved, "oscillating sprite should leave its anchor")
}

func TestWorkingMatchesOriginalSize(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 1))
	s := New(art(), ctx(), RandomStrategies(rng), rng)
	assert.Equal(t, s.Original().Size(), s.Data().Size())
}
