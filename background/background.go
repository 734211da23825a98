// Package background fills the picture region before sprites are composited
package background

import (
	"math/rand/v2"
	"strings"

	"github.com/lixenwraith/aquatype/grid"
)

// NoiseGlyphs is the weighted glyph set of the noise background: mostly blank
// with sparse specks
var NoiseGlyphs = []rune(strings.Repeat(" ", 10) + "`.")

// Background redraws the whole area each frame
type Background interface {
	Update(area *grid.Grid)
}

// Spec selects a background variant
type Spec interface {
	spec()
}

// BlankSpec clears the area
type BlankSpec struct{}

// NoiseSpec scatters random glyphs
type NoiseSpec struct {
	Glyphs []rune
}

func (BlankSpec) spec() {}
func (NoiseSpec) spec() {}

// Random returns the variant used for easy pictures
func Random(*rand.Rand) Spec { return NoiseSpec{Glyphs: NoiseGlyphs} }

// New instantiates the background selected by spec
func New(spec Spec, rng *rand.Rand) Background {
	switch s := spec.(type) {
	case NoiseSpec:
		glyphs := s.Glyphs
		if len(glyphs) == 0 {
			glyphs = NoiseGlyphs
		}
		return &Noise{glyphs: glyphs, rng: rng}
	default:
		return Blank{}
	}
}

// Blank fills the area with the blank glyph
type Blank struct{}

// Update clears the area
func (Blank) Update(area *grid.Grid) {
	area.Fill(grid.Blank)
}

// Noise picks every cell uniformly from its glyph set on each frame
type Noise struct {
	glyphs []rune
	rng    *rand.Rand
}

// Update redraws the area with fresh noise
func (n *Noise) Update(area *grid.Grid) {
	for y := 0; y < area.Height(); y++ {
		for x := 0; x < area.Width(); x++ {
			area.Set(x, y, n.glyphs[n.rng.IntN(len(n.glyphs))])
		}
	}
}
