// Package convert wires the pipeline: PGN text to parsed game, game to
// a lazy position stream, positions to SVG, SVG to PNG, PNGs to an
// animated GIF artifact. Strictly sequential, all-or-nothing.
package convert

import (
	"iter"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/pgn2gif/internal/boardsvg"
	"github.com/kapu/pgn2gif/internal/gamestream"
	"github.com/kapu/pgn2gif/internal/gifenc"
	"github.com/kapu/pgn2gif/internal/raster"
	"github.com/kapu/pgn2gif/pkg/giferr"
)

type Converter struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Converter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Converter{log: log}
}

// Request bundles one conversion's inputs and options.
type Request struct {
	PGN                string
	AddInitialPosition bool
	HighlightLastMove  bool
	Render             boardsvg.Options
	Anim               gifenc.Options
}

// Convert renders the game to an animation artifact. The caller owns
// the artifact and must persist or Close it.
func (c *Converter) Convert(req Request) (*gifenc.Artifact, error) {
	started := time.Now()

	game, err := gamestream.Parse(req.PGN)
	if err != nil {
		return nil, err
	}
	renderer, err := boardsvg.New(req.Render)
	if err != nil {
		return nil, err
	}

	frameCount := gamestream.FrameCount(game, req.AddInitialPosition)
	c.log.Info("converting game",
		zap.Int("moves", len(game.Moves())),
		zap.Int("frames", frameCount),
		zap.Int("size", req.Render.Size),
		zap.Bool("highlight_last_move", req.HighlightLastMove),
	)

	frames := gamestream.Stream(game, req.AddInitialPosition)
	art, err := gifenc.Encode(c.pngStream(renderer, frames, req.HighlightLastMove), req.Anim, c.log)
	if err != nil {
		return nil, err
	}

	c.log.Info("animation ready",
		zap.String("artifact", art.ID()),
		zap.Int64("bytes", art.Size()),
		zap.Duration("elapsed", time.Since(started)),
	)
	return art, nil
}

// ConvertToFile renders the game and persists the result at gifPath.
// The final file is written only after the full encode succeeded.
func (c *Converter) ConvertToFile(req Request, gifPath string) error {
	art, err := c.Convert(req)
	if err != nil {
		return err
	}
	if err := art.SaveTo(gifPath); err != nil {
		return err
	}
	c.log.Info("gif saved", zap.String("path", gifPath))
	return nil
}

// svgStream renders each board frame to a vector document, lazily and
// in order. When highlight is off the renderer always receives a nil
// last move, whatever the generator produced.
func (c *Converter) svgStream(renderer *boardsvg.Renderer, frames iter.Seq[gamestream.Frame], highlight bool) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		for frame := range frames {
			move := frame.Move
			if !highlight {
				move = nil
			}
			svg, err := renderer.SVG(frame.Position, move)
			if !yield(svg, err) || err != nil {
				return
			}
		}
	}
}

// pngStream rasterizes the vector stream frame by frame.
func (c *Converter) pngStream(renderer *boardsvg.Renderer, frames iter.Seq[gamestream.Frame], highlight bool) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for svg, err := range c.svgStream(renderer, frames, highlight) {
			if err != nil {
				yield(nil, err)
				return
			}
			png, rerr := raster.PNG(svg)
			if !yield(png, rerr) || rerr != nil {
				return
			}
		}
	}
}

// ReadTextFile loads a file as text; pure I/O, no parsing.
func ReadTextFile(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", giferr.Wrap(giferr.KindIO, "read "+path, err)
	}
	return string(raw), nil
}
