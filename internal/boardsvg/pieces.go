package boardsvg

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"
)

// Piece glyphs are authored in a 45x45 unit box (one square) and placed
// with a translate/scale transform. Stylized flat set; each entry is a
// list of path data strings painted with the piece's fill and stroke.
var piecePaths = map[nchess.PieceType][]string{
	nchess.Pawn: {
		"M17 14.5a5.5 5.5 0 1 1 11 0a5.5 5.5 0 1 1-11 0",
		"M19 19L16 33H29L26 19Z",
		"M13 34H32V38H13Z",
	},
	nchess.Rook: {
		"M14 11H18V15H21V11H24V15H27V11H31V18H14Z",
		"M16 18H29V33H16Z",
		"M13 33H32V38H13Z",
	},
	nchess.Knight: {
		"M15 38V34C15 26 18 24 19 20C17 21 15 22 14 20C13 18 16 15 19 12C22 9 26 9 28 12L31 17C33 22 31 28 30 34V38Z",
		"M13 36H32V39H13Z",
	},
	nchess.Bishop: {
		"M22.5 8C26 11 28 15 28 19C28 24 25 27 22.5 27C20 27 17 24 17 19C17 15 19 11 22.5 8Z",
		"M18 28H27V31H18Z",
		"M14 33H31V38H14Z",
	},
	nchess.Queen: {
		"M14 20L18 11L22.5 18L27 11L31 20L29 24H16Z",
		"M16 24H29L31 34H14Z",
		"M13 35H32V39H13Z",
	},
	nchess.King: {
		"M21 7H24V10H27V13H24V16H21V13H18V10H21Z",
		"M16 18H29L31 34H14Z",
		"M13 35H32V39H13Z",
	},
}

func pieceMarkup(piece nchess.Piece, x, y, scale float64) string {
	paths, ok := piecePaths[piece.Type()]
	if !ok {
		return ""
	}

	fill, stroke := "#ffffff", "#333333"
	if piece.Color() == nchess.Black {
		fill, stroke = "#3a3a3a", "#111111"
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<g transform="translate(%s,%s) scale(%s)">`, num(x), num(y), num(scale))
	for _, d := range paths {
		fmt.Fprintf(&b, `<path d="%s" fill="%s" stroke="%s" stroke-width="1.5" stroke-linejoin="round"/>`, d, fill, stroke)
	}
	b.WriteString("</g>\n")
	return b.String()
}
