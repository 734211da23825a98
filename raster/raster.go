// Package raster converts images and text into character grids
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp"

	"github.com/lixenwraith/aquatype/grid"
)

// ErrEmpty is returned when the input has nothing visible to draw
var ErrEmpty = errors.New("raster: no visible content")

// DefaultRamp maps luminance to glyphs, lightest first
const DefaultRamp = " .:-=+*#%@"

// Terminal cells are roughly twice as tall as wide
const charAspect = 0.5

// Cursor marks the prefix of a text that is drawn with a different fill
// Pos counts runes; zero disables the marker
type Cursor struct {
	Pos  int
	Fill rune
}

// Rasterizer produces grids for the stage
type Rasterizer interface {
	Image(path string, width int) (*grid.Grid, error)
	Text(text string, height int, fill rune, cursor Cursor) (*grid.Grid, error)
}

// Options configures a Raster
type Options struct {
	// Ramp overrides DefaultRamp
	Ramp string
	// FontPath selects a TrueType/OpenType font, empty uses the built-in bitmap face
	FontPath string
	// FontSize is the point size of a loaded font at 72 DPI
	FontSize float64
	// Threshold is the minimum coverage (0-255) that counts as ink in text
	Threshold uint8
}

// Raster implements Rasterizer with golang.org/x/image
type Raster struct {
	ramp      []rune
	face      font.Face
	threshold uint8
}

// New builds a Raster, loading the configured font if any
func New(opts Options) (*Raster, error) {
	r := &Raster{
		ramp:      []rune(DefaultRamp),
		face:      basicfont.Face7x13,
		threshold: 96,
	}
	if opts.Ramp != "" {
		r.ramp = []rune(opts.Ramp)
	}
	if opts.Threshold != 0 {
		r.threshold = opts.Threshold
	}
	if opts.FontPath != "" {
		face, err := loadFace(opts.FontPath, opts.FontSize)
		if err != nil {
			return nil, err
		}
		r.face = face
	}
	return r, nil
}

func loadFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font %s: %w", path, err)
	}
	if size <= 0 {
		size = 32
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font face: %w", err)
	}
	return face, nil
}

// Image decodes the file at path and converts it to a grid of the given width
// Height follows the image aspect ratio corrected for cell proportions
func (r *Raster) Image(path string, width int) (*grid.Grid, error) {
	if width <= 0 {
		return nil, ErrEmpty
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return r.FromImage(img, width)
}

// FromImage converts an already decoded image
func (r *Raster) FromImage(img image.Image, width int) (*grid.Grid, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 || width <= 0 {
		return nil, ErrEmpty
	}
	outW := width
	outH := max(int(float64(width)*float64(b.Dy())/float64(b.Dx())*charAspect), 1)

	// Composite over white so transparent pixels read as blank
	canvas := image.NewRGBA(image.Rect(0, 0, outW, outH))
	xdraw.Draw(canvas, canvas.Bounds(), image.White, image.Point{}, xdraw.Src)
	xdraw.ApproxBiLinear.Scale(canvas, canvas.Bounds(), img, b, xdraw.Over, nil)

	g := grid.New(outW, outH)
	steps := len(r.ramp)
	for y := 0; y < outH; y++ {
		for x := 0; x < outW; x++ {
			lum := color.GrayModel.Convert(canvas.At(x, y)).(color.Gray).Y
			g.Set(x, y, r.ramp[(255-int(lum))*steps/256])
		}
	}
	return g, nil
}

// Text draws text as a banner exactly height rows tall
// Ink cells use fill, except those left of the cursor boundary which use cursor.Fill
func (r *Raster) Text(text string, height int, fill rune, cursor Cursor) (*grid.Grid, error) {
	if height <= 0 || strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}
	runes := []rune(text)

	d := &font.Drawer{Face: r.face}
	advance := d.MeasureString(text).Ceil()
	m := r.face.Metrics()
	ascent := m.Ascent.Ceil()
	lineH := ascent + m.Descent.Ceil()
	if advance <= 0 || lineH <= 0 {
		return nil, ErrEmpty
	}

	src := image.NewGray(image.Rect(0, 0, advance, lineH))
	d.Dst = src
	d.Src = image.White
	d.Dot = fixed.P(0, ascent)

	// Right pixel edge after each rune, for cursor placement
	edges := make([]int, len(runes))
	for i, ch := range runes {
		d.DrawString(string(ch))
		edges[i] = d.Dot.X.Ceil()
	}

	cols := max(int(float64(advance)*float64(height)/float64(lineH)/charAspect), 1)
	dst := image.NewGray(image.Rect(0, 0, cols, height))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	boundary := 0
	if cursor.Pos > 0 {
		p := min(cursor.Pos, len(runes))
		boundary = edges[p-1] * cols / advance
	}

	g := grid.New(cols, height)
	for y := 0; y < height; y++ {
		for x := 0; x < cols; x++ {
			if dst.GrayAt(x, y).Y < r.threshold {
				continue
			}
			ch := fill
			if x < boundary {
				ch = cursor.Fill
			}
			g.Set(x, y, ch)
		}
	}
	return g, nil
}
