// Package stage composes the picture and caption regions of the screen.
//
// A Stage is owned by a single goroutine; none of its methods are safe for concurrent use.
// Commands mutate it through Appear, Title, Disappear, UpdateCaption, UpdateSubCaption
// and TypeCharacter, and the render tick advances it through UpdatePict.
package stage

import (
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/aquatype/background"
	"github.com/lixenwraith/aquatype/effect"
	"github.com/lixenwraith/aquatype/grid"
	"github.com/lixenwraith/aquatype/overlay"
	"github.com/lixenwraith/aquatype/raster"
	"github.com/lixenwraith/aquatype/sprite"
)

// Caption glyphs
const (
	CaptionFill = '@'
	CursorFill  = '-'
)

// Config fixes stage geometry and timing at construction
type Config struct {
	Width          int
	Height         int
	SpriteWidth    int
	Framerate      int
	EffectDuration time.Duration
	TypedLifetime  time.Duration
}

// Option customizes a Stage
type Option func(*Stage)

// WithRand injects the random source used by sprites, backgrounds and overlays
func WithRand(rng *rand.Rand) Option {
	return func(s *Stage) { s.rng = rng }
}

// WithFadeDirection fixes the direction of every sprite fade instead of picking one at random
func WithFadeDirection(d effect.Direction) Option {
	return func(s *Stage) { s.fade = &d }
}

// WithLogger sets the logger for non-fatal raster failures
func WithLogger(l *log.Logger) Option {
	return func(s *Stage) { s.log = l }
}

// Stage holds one picture region and two caption regions stacked vertically
type Stage struct {
	cfg        Config
	pict       *grid.Grid
	caption    *grid.Grid
	subCaption *grid.Grid

	sprite *sprite.Sprite
	bg     background.Background
	typed  *overlay.Character

	raster raster.Rasterizer
	rng    *rand.Rand
	fade   *effect.Direction
	log    *log.Logger
}

// SplitHeights divides a stage height into picture, caption and sub-caption rows
func SplitHeights(height int) (pict, caption, sub int) {
	height = max(height, 0)
	pict = height * 4 / 6
	caption = (height - pict) / 2
	sub = height - pict - caption
	return pict, caption, sub
}

// New allocates the regions; they are never resized afterwards
func New(cfg Config, r raster.Rasterizer, opts ...Option) *Stage {
	if cfg.TypedLifetime <= 0 {
		cfg.TypedLifetime = overlay.DefaultLifetime
	}
	if cfg.EffectDuration <= 0 {
		cfg.EffectDuration = sprite.DefaultEffectDuration
	}
	ph, ch, sh := SplitHeights(cfg.Height)
	s := &Stage{
		cfg:        cfg,
		pict:       grid.New(cfg.Width, ph),
		caption:    grid.New(cfg.Width, ch),
		subCaption: grid.New(cfg.Width, sh),
		raster:     r,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.log == nil {
		s.log = log.New(io.Discard)
	}
	return s
}

func (s *Stage) spriteContext() sprite.Context {
	return sprite.Context{
		Stage:          grid.Size{Width: s.cfg.Width, Height: s.cfg.Height},
		Framerate:      s.cfg.Framerate,
		EffectDuration: s.cfg.EffectDuration,
	}
}

// Appear replaces the sprite with a randomly animated one and installs a noise background
// A raster failure leaves the stage without a sprite
func (s *Stage) Appear(path string) {
	st := sprite.RandomStrategies(s.rng)
	if s.fade != nil {
		st.Appear = effect.FadeIn(*s.fade)
		st.Disappear = effect.FadeOut(*s.fade)
	}
	s.appearWith(path, st, background.Random(s.rng))
}

func (s *Stage) appearWith(path string, st sprite.Strategies, bg background.Spec) {
	s.sprite = nil
	if data, err := s.raster.Image(path, s.cfg.SpriteWidth); err != nil {
		s.log.Warn("sprite raster failed", "path", path, "err", err)
	} else {
		s.sprite = sprite.New(data, s.spriteContext(), st, s.rng)
	}
	s.bg = nil
	if bg != nil {
		s.bg = background.New(bg, s.rng)
	}
}

// Title shows static art at half the stage width with no background
func (s *Stage) Title(path string) {
	s.sprite = nil
	if data, err := s.raster.Image(path, s.cfg.Width/2); err != nil {
		s.log.Warn("title raster failed", "path", path, "err", err)
	} else {
		s.sprite = sprite.New(data, s.spriteContext(), sprite.Static(), s.rng)
	}
	s.bg = nil
}

// Disappear asks the active sprite to leave
func (s *Stage) Disappear() {
	if s.sprite != nil {
		s.sprite.Hide()
	}
}

// TypeCharacter flashes ch at a random size and position inside the picture region
func (s *Stage) TypeCharacter(ch rune) {
	h := overlay.RandomSize(s.rng, s.pict.Height())
	data, err := s.raster.Text(string(ch), h, overlay.RandomFill(s.rng), raster.Cursor{})
	if err != nil {
		s.log.Debug("typed character raster failed", "char", string(ch), "err", err)
		s.typed = nil
		return
	}
	pos := overlay.RandomPosition(s.rng, s.pict.Size(), data.Size())
	s.typed = overlay.NewCharacter(data, pos, s.cfg.TypedLifetime, s.cfg.Framerate)
}

// HasTypedChar reports an active typed character overlay
func (s *Stage) HasTypedChar() bool {
	return s.typed != nil
}

// UpdatePict advances every picture layer one tick and returns the picture region
func (s *Stage) UpdatePict() *grid.Grid {
	if s.bg != nil {
		s.bg.Update(s.pict)
	} else {
		s.pict.Fill(grid.Blank)
	}

	if s.sprite != nil {
		s.sprite.Update()
		center := grid.Point{X: s.pict.Width() / 2, Y: s.pict.Height() / 2}
		s.pict.OverwriteCenter(s.sprite.Data(), center.Add(s.sprite.Position()), grid.Transparent)
	}

	if s.typed != nil {
		if s.typed.Update() == overlay.Visible {
			s.typed.Draw(s.pict)
		} else {
			s.typed = nil
		}
	}
	return s.pict
}

// UpdateCaption redraws the primary caption with the first pos runes marked typed
func (s *Stage) UpdateCaption(text string, pos int) *grid.Grid {
	s.drawCaption(s.caption, text, pos)
	return s.caption
}

// UpdateSubCaption redraws the secondary caption
func (s *Stage) UpdateSubCaption(text string, pos int) *grid.Grid {
	s.drawCaption(s.subCaption, text, pos)
	return s.subCaption
}

func (s *Stage) drawCaption(area *grid.Grid, text string, pos int) {
	area.Fill(grid.Blank)
	g, err := s.raster.Text(text, area.Height(), CaptionFill, raster.Cursor{Pos: pos, Fill: CursorFill})
	if err != nil {
		// Empty captions are the normal way to clear a region
		if text != "" {
			s.log.Debug("caption raster failed", "text", text, "err", err)
		}
		return
	}
	area.OverwriteRect(g, grid.Point{}, grid.Opaque)
}

// Frame composes all three regions into one full-stage grid without advancing anything
func (s *Stage) Frame() *grid.Grid {
	out := grid.New(s.cfg.Width, s.pict.Height()+s.caption.Height()+s.subCaption.Height())
	out.OverwriteRect(s.pict, grid.Point{}, grid.Opaque)
	out.OverwriteRect(s.caption, grid.Point{Y: s.CaptionOffset()}, grid.Opaque)
	out.OverwriteRect(s.subCaption, grid.Point{Y: s.SubCaptionOffset()}, grid.Opaque)
	return out
}

// Pict returns the picture region
func (s *Stage) Pict() *grid.Grid { return s.pict }

// Caption returns the primary caption region
func (s *Stage) Caption() *grid.Grid { return s.caption }

// SubCaption returns the secondary caption region
func (s *Stage) SubCaption() *grid.Grid { return s.subCaption }

// CaptionOffset is the first row of the primary caption
func (s *Stage) CaptionOffset() int { return s.pict.Height() }

// SubCaptionOffset is the first row of the secondary caption
func (s *Stage) SubCaptionOffset() int { return s.pict.Height() + s.caption.Height() }

// Sprite returns the active sprite, nil when none
func (s *Stage) Sprite() *sprite.Sprite { return s.sprite }

// Config returns the construction parameters
func (s *Stage) Config() Config { return s.cfg }
