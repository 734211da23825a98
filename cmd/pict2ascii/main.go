// Usage examples:
//
// # Preview one picture at 60 columns
// ./pict2ascii -w 60 picts/001_anago.png
//
// # Preview a caption the way the stage draws it, 3 letters typed
// ./pict2ascii -text "garden eel" -h 8 -cursor 3
//
// # Dump every catalog picture to a file
// ./pict2ascii -dir picts -o preview.txt

package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/lixenwraith/aquatype/catalog"
	"github.com/lixenwraith/aquatype/grid"
	"github.com/lixenwraith/aquatype/raster"
	"github.com/lixenwraith/aquatype/stage"
)

func main() {
	var (
		width  int
		height int
		cursor int
		text   string
		dir    string
		font   string
		ramp   string
		output string
	)

	flag.IntVar(&width, "w", 40, "Output width in columns for pictures")
	flag.IntVar(&height, "h", 8, "Output height in rows for -text")
	flag.IntVar(&cursor, "cursor", 0, "Typed prefix length for -text")
	flag.StringVar(&text, "text", "", "Rasterize a caption instead of a picture")
	flag.StringVar(&dir, "dir", "", "Render every picture listed in the catalog of this directory")
	flag.StringVar(&font, "font", "", "TTF/OTF font for -text")
	flag.StringVar(&ramp, "ramp", "", "Glyphs from light to dark")
	flag.StringVar(&output, "o", "-", "Output file ('-' for stdout)")
	flag.Parse()

	if text == "" && dir == "" && flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "Usage: pict2ascii [options] <image>")
		fmt.Fprintln(os.Stderr, "       pict2ascii [options] -text <caption>")
		fmt.Fprintln(os.Stderr, "       pict2ascii [options] -dir <catalog dir>")
		fmt.Fprintln(os.Stderr, "\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	r, err := raster.New(raster.Options{FontPath: font, Ramp: ramp})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var w *bufio.Writer
	if output == "-" {
		w = bufio.NewWriter(os.Stdout)
	} else {
		f, err := os.Create(output)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		w = bufio.NewWriter(f)
	}
	defer w.Flush()

	switch {
	case text != "":
		g, err := r.Text(text, height, stage.CaptionFill, raster.Cursor{Pos: cursor, Fill: stage.CursorFill})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error rasterizing %q: %v\n", text, err)
			os.Exit(1)
		}
		writeGrid(w, g)
	case dir != "":
		if err := writeCatalog(w, r, dir, width); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		g, err := r.Image(flag.Arg(0), width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading image: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Output: %dx%d cells\n", g.Width(), g.Height())
		writeGrid(w, g)
	}
}

// writeCatalog renders each target with its names; unreadable images are reported and skipped
func writeCatalog(w io.Writer, r raster.Rasterizer, dir string, width int) error {
	cat, err := catalog.Load(dir)
	if err != nil {
		return err
	}
	for _, p := range append(append([]catalog.Pict(nil), cat.Titles...), cat.Picts...) {
		fmt.Fprintf(w, "== %s  %s / %s / %s\n", p.ID, p.Ja, p.Romaji, p.En)
		g, err := r.Image(cat.Path(p), width)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", p.ID, err)
			continue
		}
		writeGrid(w, g)
	}
	return nil
}

func writeGrid(w io.Writer, g *grid.Grid) {
	for _, line := range g.Lines() {
		fmt.Fprintln(w, line)
	}
}
