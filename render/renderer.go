package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/aquatype/grid"
)

// Renderer draws composed grids; Flush presents everything drawn since the last flush
type Renderer interface {
	Render(fg, bg Color, g *grid.Grid, offset grid.Point)
	Flush() error
}

// ScreenRenderer draws onto a tcell screen
type ScreenRenderer struct {
	screen tcell.Screen
}

// NewScreenRenderer wraps an initialized screen
func NewScreenRenderer(screen tcell.Screen) *ScreenRenderer {
	return &ScreenRenderer{screen: screen}
}

// Render writes every cell of g at offset with a single style
func (r *ScreenRenderer) Render(fg, bg Color, g *grid.Grid, offset grid.Point) {
	style := tcell.StyleDefault.Foreground(fg.Tcell()).Background(bg.Tcell())
	for y := 0; y < g.Height(); y++ {
		for x, ch := range g.Row(y) {
			r.screen.SetContent(offset.X+x, offset.Y+y, ch, nil, style)
		}
	}
}

// Flush presents the frame
func (r *ScreenRenderer) Flush() error {
	r.screen.Show()
	return nil
}
