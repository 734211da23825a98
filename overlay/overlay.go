// Package overlay holds short-lived picture decorations that live beside the sprite,
// such as the glyph flashed for each correctly typed character.
package overlay

import (
	"math/rand/v2"
	"time"

	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/grid"
)

// Defaults for the typed character flash
const (
	DefaultLifetime = 500 * time.Millisecond
)

// FillGlyphs are the candidate ink characters of a typed character
var FillGlyphs = []rune{'@', '*', '+', '-'}

// Status of an overlay after an update
type Status int

const (
	Visible Status = iota
	Expired
)

// Character is a rasterized glyph shown at a fixed position for a fixed number of frames
type Character struct {
	data  *grid.Grid
	pos   grid.Point
	total int
	frame int
}

// NewCharacter places data at pos for lifetime at the given framerate
func NewCharacter(data *grid.Grid, pos grid.Point, lifetime time.Duration, framerate int) *Character {
	return &Character{
		data:  data,
		pos:   pos,
		total: effect.TotalFrames(lifetime, framerate),
	}
}

// Update advances the countdown
func (c *Character) Update() Status {
	c.frame++
	if c.frame > c.total {
		return Expired
	}
	return Visible
}

// Draw composites the glyph onto area, blank cells stay transparent
func (c *Character) Draw(area *grid.Grid) {
	area.OverwriteRect(c.data, c.pos, grid.Transparent)
}

// Data returns the glyph raster
func (c *Character) Data() *grid.Grid {
	return c.data
}

// Position returns the top-left placement
func (c *Character) Position() grid.Point {
	return c.pos
}

// RandomSize picks a glyph height in [area/3, area)
func RandomSize(rng *rand.Rand, areaHeight int) int {
	lo := areaHeight / 3
	if areaHeight-lo <= 1 {
		return max(lo, 1)
	}
	return lo + rng.IntN(areaHeight-lo)
}

// RandomFill picks an ink glyph
func RandomFill(rng *rand.Rand) rune {
	return FillGlyphs[rng.IntN(len(FillGlyphs))]
}

// RandomPosition picks a top-left corner keeping size inside area when it fits
func RandomPosition(rng *rand.Rand, area, size grid.Size) grid.Point {
	var p grid.Point
	if free := area.Width - size.Width; free > 0 {
		p.X = rng.IntN(free + 1)
	}
	if free := area.Height - size.Height; free > 0 {
		p.Y = rng.IntN(free + 1)
	}
	return p
}
