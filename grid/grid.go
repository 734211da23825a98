// Package grid provides the fixed-size character buffer every stage layer is built from.
package grid

import "strings"

const (
	// Blank is the fill character of a freshly allocated grid
	Blank = ' '
	// Transparent marks cells that leave the destination untouched during overlay copies
	Transparent = ' '
	// Opaque disables transparency: every source cell is copied
	Opaque rune = -1
)

// Point is a cell coordinate, X grows right and Y grows down
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Size is a width x height extent in cells
type Size struct {
	Width, Height int
}

// Grid is a rectangular buffer of runes; all rows have length Width
type Grid struct {
	width  int
	height int
	cells  [][]rune
}

// New allocates a width x height grid filled with Blank
// Negative dimensions are treated as zero
func New(width, height int) *Grid {
	width = max(width, 0)
	height = max(height, 0)
	cells := make([][]rune, height)
	for y := range cells {
		row := make([]rune, width)
		for x := range row {
			row[x] = Blank
		}
		cells[y] = row
	}
	return &Grid{width: width, height: height, cells: cells}
}

// FromLines builds a grid from text rows, padding short rows with Blank
func FromLines(lines []string) *Grid {
	width := 0
	for _, line := range lines {
		width = max(width, len([]rune(line)))
	}
	g := New(width, len(lines))
	for y, line := range lines {
		copy(g.cells[y], []rune(line))
	}
	return g
}

// Width returns the grid width
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height
func (g *Grid) Height() int {
	return g.height
}

// Size returns both dimensions
func (g *Grid) Size() Size {
	return Size{Width: g.width, Height: g.height}
}

func (g *Grid) inBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the rune at (x, y), false when out of bounds
func (g *Grid) At(x, y int) (rune, bool) {
	if !g.inBounds(x, y) {
		return 0, false
	}
	return g.cells[y][x], true
}

// Set writes a rune at (x, y), false when out of bounds
func (g *Grid) Set(x, y int, r rune) bool {
	if !g.inBounds(x, y) {
		return false
	}
	g.cells[y][x] = r
	return true
}

// Fill overwrites every cell with r
func (g *Grid) Fill(r rune) {
	for _, row := range g.cells {
		for x := range row {
			row[x] = r
		}
	}
}

// OverwriteRect copies src with its top-left corner at `at`
// Source cells equal to transparent are skipped; pass Opaque to copy everything
// Cells falling outside the destination are dropped
func (g *Grid) OverwriteRect(src *Grid, at Point, transparent rune) {
	if src == nil {
		return
	}
	// Clip the source rectangle against destination bounds
	x0 := max(0, -at.X)
	y0 := max(0, -at.Y)
	x1 := min(src.width, g.width-at.X)
	y1 := min(src.height, g.height-at.Y)
	for sy := y0; sy < y1; sy++ {
		srow := src.cells[sy]
		drow := g.cells[sy+at.Y]
		for sx := x0; sx < x1; sx++ {
			r := srow[sx]
			if transparent != Opaque && r == transparent {
				continue
			}
			drow[sx+at.X] = r
		}
	}
}

// OverwriteCenter copies src so that its center lands on `center`
// Same transparency and clipping rules as OverwriteRect
func (g *Grid) OverwriteCenter(src *Grid, center Point, transparent rune) {
	if src == nil {
		return
	}
	at := Point{X: center.X - src.width/2, Y: center.Y - src.height/2}
	g.OverwriteRect(src, at, transparent)
}

// OverwriteFunc sets r on every cell for which pred returns true
func (g *Grid) OverwriteFunc(r rune, pred func(x, y int, cur rune) bool) {
	for y, row := range g.cells {
		for x, cur := range row {
			if pred(x, y, cur) {
				row[x] = r
			}
		}
	}
}

// CopyFrom replaces contents with src over the overlapping area
// src may be larger; cells of g outside src keep their content
func (g *Grid) CopyFrom(src *Grid) {
	g.OverwriteRect(src, Point{}, Opaque)
}

// Clone returns an independent copy
func (g *Grid) Clone() *Grid {
	c := New(g.width, g.height)
	c.CopyFrom(g)
	return c
}

// Equal reports identical dimensions and content
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	if g.width != o.width || g.height != o.height {
		return false
	}
	for y := range g.cells {
		for x := range g.cells[y] {
			if g.cells[y][x] != o.cells[y][x] {
				return false
			}
		}
	}
	return true
}

// Row returns a copy of row y, nil when out of range
func (g *Grid) Row(y int) []rune {
	if y < 0 || y >= g.height {
		return nil
	}
	row := make([]rune, g.width)
	copy(row, g.cells[y])
	return row
}

// Lines returns every row as a string
func (g *Grid) Lines() []string {
	lines := make([]string, g.height)
	for y, row := range g.cells {
		lines[y] = string(row)
	}
	return lines
}

// String joins rows with newlines, for debugging and test failure output
func (g *Grid) String() string {
	return strings.Join(g.Lines(), "\n")
}
