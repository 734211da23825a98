package stage

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/aquatype/background"
	"github.com/lixenwraith/aquatype/behavior"
	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/grid"
	"github.com/lixenwraith/aquatype/raster"
	"github.com/lixenwraith/aquatype/sprite"
)

// stubRaster returns fixed art for images and solid blocks for text
type stubRaster struct {
	art      *grid.Grid
	imageErr error
	widths   []int
}

func (r *stubRaster) Image(path string, width int) (*grid.Grid, error) {
	r.widths = append(r.widths, width)
	if r.imageErr != nil {
		return nil, r.imageErr
	}
	return r.art.Clone(), nil
}

func (r *stubRaster) Text(text string, height int, fill rune, cursor raster.Cursor) (*grid.Grid, error) {
	if text == "" || height <= 0 {
		return nil, raster.ErrEmpty
	}
	n := len([]rune(text))
	g := grid.New(n, height)
	g.OverwriteFunc(fill, func(int, int, rune) bool { return true })
	g.OverwriteFunc(cursor.Fill, func(x, _ int, _ rune) bool { return x < cursor.Pos })
	return g, nil
}

func testArt() *grid.Grid {
	return grid.FromLines([]string{
		"ABCD",
		"EFGH",
		"IJKL",
		"MNOP",
	})
}

func newTestStage(r raster.Rasterizer) *Stage {
	return New(Config{
		Width:          20,
		Height:         12,
		SpriteWidth:    4,
		Framerate:      10,
		EffectDuration: time.Second,
	}, r, WithRand(rand.New(rand.NewPCG(1, 2))))
}

// spriteCells reads the 4x4 block centered in an 20x8 picture
func spriteCells(pict *grid.Grid) []string {
	lines := pict.Lines()[2:6]
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string([]rune(l)[8:12])
	}
	return out
}

func TestSplitHeights(t *testing.T) {
	cases := []struct{ h, p, c, s int }{
		{12, 8, 2, 2},
		{24, 16, 4, 4},
		{25, 16, 4, 5},
		{10, 6, 2, 2},
		{3, 2, 0, 1},
		{0, 0, 0, 0},
	}
	for _, tc := range cases {
		p, c, s := SplitHeights(tc.h)
		assert.Equal(t, []int{tc.p, tc.c, tc.s}, []int{p, c, s}, "height %d", tc.h)
		assert.Equal(t, tc.h, p+c+s)
	}
}

func TestRegionsAndOffsets(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	assert.Equal(t, grid.Size{Width: 20, Height: 8}, s.Pict().Size())
	assert.Equal(t, 2, s.Caption().Height())
	assert.Equal(t, 2, s.SubCaption().Height())
	assert.Equal(t, 8, s.CaptionOffset())
	assert.Equal(t, 10, s.SubCaptionOffset())
}

func TestFadeInScenario(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	st := sprite.Strategies{
		Appear:    effect.FadeIn(effect.Down),
		Disappear: effect.FadeOut(effect.Down),
		Behavior:  behavior.None(),
	}
	s.appearWith("fish.png", st, background.BlankSpec{})

	// 10 fade frames reveal floor(4*k/10) rows
	for k := 0; k < 10; k++ {
		cells := spriteCells(s.UpdatePict())
		shown := 4 * k / 10
		for y, row := range cells {
			if y < shown {
				assert.Equal(t, testArt().Lines()[y], row, "tick %d row %d", k+1, y)
			} else {
				assert.Equal(t, "    ", row, "tick %d row %d", k+1, y)
			}
		}
		require.Equal(t, sprite.Appear, s.Sprite().State())
	}

	// Completing call draws the full original and enters Move
	assert.Equal(t, testArt().Lines(), spriteCells(s.UpdatePict()))
	assert.Equal(t, sprite.Move, s.Sprite().State())

	s.Disappear()
	for k := 0; k < 11; k++ {
		s.UpdatePict()
	}
	require.Equal(t, sprite.Disappeared, s.Sprite().State())
	last := s.Sprite().Data().String()

	s.UpdatePict()
	assert.Equal(t, sprite.Disappeared, s.Sprite().State())
	assert.Equal(t, last, s.Sprite().Data().String())
}

func TestFixedFadeDirection(t *testing.T) {
	s := New(Config{
		Width:          20,
		Height:         12,
		SpriteWidth:    4,
		Framerate:      10,
		EffectDuration: time.Second,
	}, &stubRaster{art: testArt()}, WithRand(rand.New(rand.NewPCG(1, 2))), WithFadeDirection(effect.Up))
	s.Appear("fish.png")
	require.NotNil(t, s.Sprite())

	// Sixth call draws frame 5 of 10: the bottom half is revealed
	for i := 0; i < 6; i++ {
		s.UpdatePict()
	}
	assert.Equal(t, []string{"    ", "    ", "IJKL", "MNOP"}, s.Sprite().Data().Lines())
}

func TestAppearInstallsNoiseBackground(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	s.Appear("fish.png")
	require.NotNil(t, s.Sprite())

	pict := s.UpdatePict()
	for _, r := range pict.String() {
		assert.Contains(t, " `.\n", string(r))
	}
}

func TestAppearRasterFailure(t *testing.T) {
	r := &stubRaster{art: testArt()}
	s := newTestStage(r)
	s.Appear("fish.png")
	require.NotNil(t, s.Sprite())

	r.imageErr = errors.New("decode failed")
	s.Appear("broken.png")
	assert.Nil(t, s.Sprite())
	assert.NotPanics(t, func() { s.UpdatePict() })
}

func TestTitleIsStaticAndHalfWidth(t *testing.T) {
	r := &stubRaster{art: testArt()}
	s := newTestStage(r)
	s.Title("title.png")

	require.NotNil(t, s.Sprite())
	assert.Equal(t, []int{10}, r.widths)

	pict := s.UpdatePict()
	assert.Equal(t, testArt().Lines(), spriteCells(pict))
	assert.Equal(t, sprite.Move, s.Sprite().State())
	// No background: everything outside the art is blank
	assert.Equal(t, strings.Repeat(" ", 20), pict.Lines()[0])
}

func TestDisappearWithoutSprite(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	assert.NotPanics(t, s.Disappear)
}

func TestCaptions(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})

	c := s.UpdateCaption("SHARK", 2)
	assert.Equal(t, "--@@@"+strings.Repeat(" ", 15), c.Lines()[0])

	c = s.UpdateCaption("SHARK", 0)
	assert.Equal(t, "@@@@@"+strings.Repeat(" ", 15), c.Lines()[0])

	// Failing raster clears the region
	c = s.UpdateCaption("", 0)
	for _, line := range c.Lines() {
		assert.Equal(t, strings.Repeat(" ", 20), line)
	}

	sub := s.UpdateSubCaption("ok", 0)
	assert.Equal(t, "@@", sub.Lines()[1][:2])
}

func TestTypedCharacterLifetime(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	s.TypeCharacter('a')
	require.True(t, s.HasTypedChar())

	// 500ms at 10fps
	for i := 0; i < 5; i++ {
		s.UpdatePict()
		assert.True(t, s.HasTypedChar(), "tick %d", i+1)
	}
	s.UpdatePict()
	assert.False(t, s.HasTypedChar())
}

func TestTypedCharacterDrawn(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	s.TypeCharacter('a')
	pict := s.UpdatePict()
	assert.Regexp(t, `[@*+-]`, pict.String())
}

func TestSpriteFarOffStageDoesNotPanic(t *testing.T) {
	s := New(Config{Width: 6, Height: 6, SpriteWidth: 4, Framerate: 100}, &stubRaster{art: grid.New(200, 200)},
		WithRand(rand.New(rand.NewPCG(3, 3))))
	s.Appear("huge.png")
	assert.NotPanics(t, func() {
		for i := 0; i < 500; i++ {
			s.UpdatePict()
		}
	})
}

func TestFrameComposesRegions(t *testing.T) {
	s := newTestStage(&stubRaster{art: testArt()})
	s.Title("title.png")
	s.UpdatePict()
	s.UpdateCaption("AB", 1)
	s.UpdateSubCaption("XYZ", 0)

	f := s.Frame()
	require.Equal(t, grid.Size{Width: 20, Height: 12}, f.Size())
	lines := f.Lines()
	assert.Equal(t, "ABCD", lines[2][8:12])
	assert.Equal(t, "-@", lines[8][:2])
	assert.Equal(t, "@@@", lines[10][:3])
}
