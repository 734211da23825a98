package render

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"

	"github.com/lixenwraith/aquatype/grid"
)

// ANSIRenderer streams frames as escape sequences to a writer, for pipes and
// terminals without a tcell backend
type ANSIRenderer struct {
	mu sync.Mutex
	w  *bufio.Writer
}

// NewANSIRenderer writes to w
func NewANSIRenderer(w io.Writer) *ANSIRenderer {
	return &ANSIRenderer{w: bufio.NewWriter(w)}
}

// Render moves the cursor to offset and writes each row in the frame colors
func (r *ANSIRenderer) Render(fg, bg Color, g *grid.Grid, offset grid.Point) {
	r.mu.Lock()
	defer r.mu.Unlock()

	paint := stylize(fg, bg)
	for y, line := range g.Lines() {
		// CUP is 1-based
		fmt.Fprintf(r.w, "\x1b[%d;%dH", offset.Y+y+1, offset.X+1)
		r.w.WriteString(paint(line))
	}
}

// Flush writes the buffered frame
func (r *ANSIRenderer) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.w.Flush()
}

// stylize picks a gookit style for the pair; palette colors keep the 16-color codes
func stylize(fg, bg Color) func(string) string {
	if fg.IsDefault() && bg.IsDefault() {
		return func(s string) string { return s }
	}
	if fg.kind != kindRGB && bg.kind != kindRGB {
		st := color.Style{paletteCode(fg, color.FgBlack, color.FgDefault), paletteCode(bg, color.BgBlack, color.BgDefault)}
		return func(s string) string { return st.Sprint(s) }
	}

	fgRGB, ok := fg.RGB()
	if !ok {
		fgRGB = paletteRGB[7]
	}
	st := color.NewRGBStyle(color.RGB(fgRGB.R, fgRGB.G, fgRGB.B))
	if bgRGB, ok := bg.RGB(); ok {
		st.SetBg(color.RGB(bgRGB.R, bgRGB.G, bgRGB.B, true))
	}
	return func(s string) string { return st.Sprint(s) }
}

func paletteCode(c Color, base, def color.Color) color.Color {
	if c.kind == kindNamed {
		return base + color.Color(c.index)
	}
	return def
}
