package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from any backend
type RGB struct {
	R, G, B uint8
}

type colorKind uint8

const (
	kindDefault colorKind = iota
	kindNamed
	kindRGB
)

// Color is a terminal color: the terminal default, one of the eight ANSI colors, or 24-bit
// The zero value is the terminal default
type Color struct {
	kind  colorKind
	index uint8
	rgb   RGB
}

// ANSI palette colors
var (
	Default = Color{}
	Black   = Color{kind: kindNamed, index: 0}
	Red     = Color{kind: kindNamed, index: 1}
	Green   = Color{kind: kindNamed, index: 2}
	Yellow  = Color{kind: kindNamed, index: 3}
	Blue    = Color{kind: kindNamed, index: 4}
	Magenta = Color{kind: kindNamed, index: 5}
	Cyan    = Color{kind: kindNamed, index: 6}
	White   = Color{kind: kindNamed, index: 7}
)

var colorNames = [...]string{"black", "red", "green", "yellow", "blue", "magenta", "cyan", "white"}

// Approximate sRGB values of the ANSI palette, used where a backend needs explicit channels
var paletteRGB = [...]RGB{
	{0, 0, 0}, {205, 49, 49}, {13, 188, 121}, {229, 229, 16},
	{36, 114, 200}, {188, 63, 188}, {17, 168, 205}, {229, 229, 229},
}

// FromRGB builds a 24-bit color
func FromRGB(r, g, b uint8) Color {
	return Color{kind: kindRGB, rgb: RGB{r, g, b}}
}

// IsDefault reports the terminal default color
func (c Color) IsDefault() bool {
	return c.kind == kindDefault
}

// RGB returns explicit channels; ok is false for the terminal default
func (c Color) RGB() (RGB, bool) {
	switch c.kind {
	case kindNamed:
		return paletteRGB[c.index], true
	case kindRGB:
		return c.rgb, true
	}
	return RGB{}, false
}

// Tcell converts to a tcell color
func (c Color) Tcell() tcell.Color {
	switch c.kind {
	case kindNamed:
		return tcell.PaletteColor(int(c.index))
	case kindRGB:
		return tcell.NewRGBColor(int32(c.rgb.R), int32(c.rgb.G), int32(c.rgb.B))
	}
	return tcell.ColorDefault
}

func (c Color) String() string {
	switch c.kind {
	case kindNamed:
		return colorNames[c.index]
	case kindRGB:
		return fmt.Sprintf("#%02x%02x%02x", c.rgb.R, c.rgb.G, c.rgb.B)
	}
	return "default"
}

// ParseColor accepts an ANSI color name, "default", or #rrggbb
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "default" {
		return Default, nil
	}
	for i, name := range colorNames {
		if s == name {
			return Color{kind: kindNamed, index: uint8(i)}, nil
		}
	}
	if hex, ok := strings.CutPrefix(s, "#"); ok && len(hex) == 6 {
		v, err := strconv.ParseUint(hex, 16, 32)
		if err == nil {
			return FromRGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
		}
	}
	return Default, fmt.Errorf("invalid color %q", s)
}

// UnmarshalText lets config decoders read colors directly
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseColor(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalText renders the parseable form
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Pair is a foreground and background used for a whole frame
type Pair struct {
	Fg Color
	Bg Color
}
