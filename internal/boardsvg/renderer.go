// Package boardsvg renders chess board positions as SVG documents.
// Output uses presentation attributes only, so it stays within the
// subset the rasterizer understands.
package boardsvg

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

const (
	squareUnits = 45.0
	boardUnits  = 8 * squareUnits
	marginUnits = 15.0
)

// Options configure every frame of a render run uniformly.
type Options struct {
	// Orientation is the side facing the viewer.
	Orientation nchess.Color
	// Size is the edge length of the output in pixels. Must be > 0.
	Size int
	// Coordinates draws rank/file labels in a margin around the board.
	Coordinates bool
	// Style is raw stylesheet text overriding theme colors.
	Style string
	// Theme overrides the default board colors; applied before Style.
	Theme *Theme
}

type Renderer struct {
	opts   Options
	theme  Theme
	margin float64
	scale  float64
}

// New validates the options eagerly, before any rendering work.
func New(opts Options) (*Renderer, error) {
	if opts.Size <= 0 {
		return nil, giferr.New(giferr.KindInvalidArgument, fmt.Sprintf("size of the board must be a positive integer, got %d", opts.Size))
	}
	if opts.Orientation == nchess.NoColor {
		opts.Orientation = nchess.White
	}

	theme := DefaultTheme()
	if opts.Theme != nil {
		theme.merge(*opts.Theme)
	}
	if strings.TrimSpace(opts.Style) != "" {
		if err := theme.applyCSS(opts.Style); err != nil {
			return nil, err
		}
	}

	margin := 0.0
	if opts.Coordinates {
		margin = marginUnits
	}
	viewport := boardUnits + 2*margin

	return &Renderer{
		opts:   opts,
		theme:  theme,
		margin: margin,
		scale:  float64(opts.Size) / viewport,
	}, nil
}

// SVG renders one position. lastMove, when non-nil, emphasizes its
// origin and destination squares. Pure function of its inputs.
func (r *Renderer) SVG(pos *nchess.Position, lastMove *nchess.Move) (string, error) {
	if pos == nil {
		return "", giferr.New(giferr.KindInvalidArgument, "cannot render nil position")
	}

	var b strings.Builder
	size := r.opts.Size
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, size, size, size, size)
	b.WriteByte('\n')

	if r.margin > 0 {
		fmt.Fprintf(&b, `<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`, size, size, r.theme.Margin)
		b.WriteByte('\n')
	}

	r.writeSquares(&b, lastMove)
	if r.opts.Coordinates {
		r.writeCoordinates(&b)
	}
	r.writePieces(&b, pos.Board())

	b.WriteString("</svg>\n")
	return b.String(), nil
}

func (r *Renderer) writeSquares(b *strings.Builder, lastMove *nchess.Move) {
	for sq := nchess.A1; sq <= nchess.H8; sq++ {
		x, y := r.squareOrigin(sq)
		side := squareUnits * r.scale
		fmt.Fprintf(b, `<rect x="%s" y="%s" width="%s" height="%s" fill="%s"/>`,
			num(x), num(y), num(side), num(side), r.squareFill(sq, lastMove))
		b.WriteByte('\n')
	}
}

func (r *Renderer) squareFill(sq nchess.Square, lastMove *nchess.Move) string {
	light := (int(sq.File())+int(sq.Rank()))%2 == 1
	if lastMove != nil && (sq == lastMove.S1() || sq == lastMove.S2()) {
		if light {
			return r.theme.LightLastMove
		}
		return r.theme.DarkLastMove
	}
	if light {
		return r.theme.LightSquare
	}
	return r.theme.DarkSquare
}

// squareOrigin maps a square to the top-left pixel corner of its cell,
// honoring board orientation.
func (r *Renderer) squareOrigin(sq nchess.Square) (float64, float64) {
	col := int(sq.File())
	row := 7 - int(sq.Rank())
	if r.opts.Orientation == nchess.Black {
		col = 7 - col
		row = 7 - row
	}
	x := (r.margin + float64(col)*squareUnits) * r.scale
	y := (r.margin + float64(row)*squareUnits) * r.scale
	return x, y
}

func (r *Renderer) writePieces(b *strings.Builder, board *nchess.Board) {
	if board == nil {
		return
	}
	squareMap := board.SquareMap()
	for sq := nchess.A1; sq <= nchess.H8; sq++ {
		piece, ok := squareMap[sq]
		if !ok || piece == nchess.NoPiece {
			continue
		}
		x, y := r.squareOrigin(sq)
		b.WriteString(pieceMarkup(piece, x, y, r.scale))
	}
}

func (r *Renderer) writeCoordinates(b *strings.Builder) {
	files := "abcdefgh"
	// Rank labels down the left margin, file letters along the bottom.
	for i := 0; i < 8; i++ {
		col, row := i, i
		if r.opts.Orientation == nchess.Black {
			col = 7 - col
			row = 7 - row
		}

		rankCX := (r.margin / 2) * r.scale
		rankCY := (r.margin + float64(7-row)*squareUnits + squareUnits/2) * r.scale
		b.WriteString(glyphMarkup(rune('1'+i), rankCX, rankCY, r.scale, r.theme.Coord))

		fileCX := (r.margin + float64(col)*squareUnits + squareUnits/2) * r.scale
		fileCY := (r.margin + boardUnits + r.margin/2) * r.scale
		b.WriteString(glyphMarkup(rune(files[i]), fileCX, fileCY, r.scale, r.theme.Coord))
	}
}

func num(v float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", v), "0"), ".")
}
