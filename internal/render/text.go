package render

import (
	"strings"

	"conjam/internal/core"

	"github.com/logrusorgru/aurora"
)

// Glyphs are the strings printed for active and inactive cells.
type Glyphs struct {
	Live string
	Dead string
}

// PlainGlyphs prints without escape sequences.
var PlainGlyphs = Glyphs{Live: "#", Dead: "."}

// ColorGlyphs returns terminal glyphs colored with ANSI sequences.
func ColorGlyphs() Glyphs {
	return Glyphs{
		Live: aurora.Green("█").BgBrightGreen().String(),
		Dead: "░",
	}
}

// TextRows renders a frame as text, one line per grid row. The first line is
// the top row (y == height-1) so gravity points down on screen. Rows and
// columns beyond maxW/maxH are cropped when those are positive.
func TextRows(f core.Frame, g Glyphs, maxW, maxH int) []string {
	w, h := f.Size.W, f.Size.H
	if maxW > 0 && maxW < w {
		w = maxW
	}
	rows := h
	if maxH > 0 && maxH < rows {
		rows = maxH
	}
	out := make([]string, 0, rows)
	var b strings.Builder
	for i := 0; i < rows; i++ {
		y := f.Size.H - 1 - i
		b.Reset()
		for x := 0; x < w; x++ {
			if f.Cells[y*f.Size.W+x] != 0 {
				b.WriteString(g.Live)
			} else {
				b.WriteString(g.Dead)
			}
		}
		out = append(out, b.String())
	}
	return out
}
