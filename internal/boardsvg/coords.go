package boardsvg

import (
	"fmt"
	"strings"
)

// Coordinate glyphs live in an 8x12 unit box, centered at (4,6), and
// are stroked rather than filled (the rasterizer has no text support,
// so labels are plain vector strokes).
var coordGlyphs = map[rune]string{
	'1': "M2 3L4 1V11M2 11H6",
	'2': "M1 3L3 1H5L7 3V4L1 11H7",
	'3': "M1 1H7L4 5H5L7 7V9L5 11H2L1 10",
	'4': "M5 1L1 7H7M5 4V11",
	'5': "M7 1H1V6H5L7 8V9L5 11H2L1 10",
	'6': "M6 1H3L1 4V9L3 11H5L7 9V8L5 6H1",
	'7': "M1 1H7L3 11",
	'8': "M2 1H6V5H2ZM2 6H6V11H2Z",
	'a': "M1 4H6V11H1V8H6",
	'b': "M1 1V11H6V6H1",
	'c': "M6 6H1V11H6",
	'd': "M6 1V11H1V6H6",
	'e': "M6 11H1V6H6V8H1",
	'f': "M6 1H3V11M1 6H5",
	'g': "M6 6H1V11H6V8H4",
	'h': "M1 1V11M1 6H6V11",
}

func glyphMarkup(ch rune, cx, cy, scale float64, color string) string {
	d, ok := coordGlyphs[ch]
	if !ok {
		return ""
	}
	// Glyphs keep a fixed on-board size relative to the square grid.
	gs := scale * 0.8
	x := cx - 4*gs
	y := cy - 6*gs

	var b strings.Builder
	fmt.Fprintf(&b, `<g transform="translate(%s,%s) scale(%s)">`, num(x), num(y), num(gs))
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="1.4" stroke-linecap="round" stroke-linejoin="round"/>`, d, color)
	b.WriteString("</g>\n")
	return b.String()
}
