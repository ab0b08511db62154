// Package gamestream parses PGN game records and walks their mainline
// as a lazy sequence of board positions.
package gamestream

import (
	"iter"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// Frame pairs a board position with the move that produced it. Move is
// nil only for the synthetic initial-position frame.
type Frame struct {
	Position *nchess.Position
	Move     *nchess.Move
}

// Parse reads a single game from PGN text.
func Parse(pgn string) (*nchess.Game, error) {
	if strings.TrimSpace(pgn) == "" {
		return nil, giferr.New(giferr.KindParse, "empty pgn")
	}
	opt, err := nchess.PGN(strings.NewReader(pgn))
	if err != nil {
		return nil, giferr.Wrap(giferr.KindParse, "parse pgn", err)
	}
	return nchess.NewGame(opt), nil
}

// Stream yields one frame per mainline move, in move order, preceded by
// the starting position when includeInitial is set. The sequence is
// single-pass; build a fresh one per consumer.
func Stream(game *nchess.Game, includeInitial bool) iter.Seq[Frame] {
	return func(yield func(Frame) bool) {
		if game == nil {
			return
		}
		positions := game.Positions()
		moves := game.Moves()
		if includeInitial && len(positions) > 0 {
			if !yield(Frame{Position: positions[0]}) {
				return
			}
		}
		for i, mv := range moves {
			if i+1 >= len(positions) {
				return
			}
			if !yield(Frame{Position: positions[i+1], Move: mv}) {
				return
			}
		}
	}
}

// FrameCount reports how many frames Stream will yield.
func FrameCount(game *nchess.Game, includeInitial bool) int {
	if game == nil {
		return 0
	}
	n := len(game.Moves())
	if includeInitial {
		n++
	}
	return n
}
