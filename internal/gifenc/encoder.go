// Package gifenc assembles a stream of PNG frames into an animated GIF.
// The encoded animation lands in a temporary artifact; persisting it is
// a separate operation (see Artifact.SaveTo).
package gifenc

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/png"
	"iter"
	"math"

	"github.com/ericpauley/go-quantize/quantize"
	"go.uber.org/zap"
	xdraw "golang.org/x/image/draw"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// Options configure the animation container.
type Options struct {
	// Loop is the animation loop count; 0 loops forever.
	Loop int
	// Duration is seconds per frame; 0 means unset. When both Duration
	// and FPS are set, Duration wins.
	Duration float64
	// FPS is frames per second, used only when Duration is unset.
	FPS float64
	// PaletteSize is the color count per frame, rounded to the nearest
	// power of two, within [2, 256].
	PaletteSize int
	// Subrectangles stores only the changed region of each frame
	// relative to the previous one.
	Subrectangles bool
}

// Validate checks the options without touching any frame data.
func (o Options) Validate() error {
	if o.Duration <= 0 && o.FPS <= 0 {
		return giferr.New(giferr.KindInvalidArgument, "duration and fps cannot both be unset")
	}
	if o.Loop < 0 {
		return giferr.New(giferr.KindInvalidArgument, fmt.Sprintf("loop count must be >= 0, got %d", o.Loop))
	}
	if o.PaletteSize < 2 || o.PaletteSize > 256 {
		return giferr.New(giferr.KindInvalidArgument, fmt.Sprintf("palette size must be within [2, 256], got %d", o.PaletteSize))
	}
	return nil
}

// delayCS is the per-frame delay in hundredths of a second.
func (o Options) delayCS() int {
	if o.Duration > 0 {
		return int(math.Round(o.Duration * 100))
	}
	return int(math.Round(100 / o.FPS))
}

// roundPaletteSize rounds n to the nearest power of two in log2 space,
// clamped to [2, 256]. 23 rounds up to 32: the midpoint is geometric.
func roundPaletteSize(n int) int {
	if n < 2 {
		return 2
	}
	if n > 256 {
		return 256
	}
	p := 1 << int(math.Round(math.Log2(float64(n))))
	if p < 2 {
		p = 2
	}
	if p > 256 {
		p = 256
	}
	return p
}

// Encode consumes the frame stream exactly once and writes the encoded
// animation to a temporary artifact. Options are validated before any
// frame is processed; a stream yielding zero frames is rejected. The
// temporary sink is released on every failure path.
func Encode(frames iter.Seq2[[]byte, error], opts Options, log *zap.Logger) (*Artifact, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	delay := opts.delayCS()
	paletteSize := roundPaletteSize(opts.PaletteSize)
	quantizer := quantize.MedianCutQuantizer{}

	art, err := newArtifact()
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = art.Close()
		}
	}()

	anim := &gif.GIF{LoopCount: opts.Loop}
	var canvas image.Rectangle
	var prev *image.RGBA

	for data, ferr := range frames {
		if ferr != nil {
			return nil, ferr
		}
		// The container encoder works on pixel grids, so every frame
		// round-trips through a PNG decode.
		src, err := png.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, giferr.Wrap(giferr.KindRender, "decode frame png", err)
		}

		if len(anim.Image) == 0 {
			canvas = image.Rect(0, 0, src.Bounds().Dx(), src.Bounds().Dy())
		}
		rgba := normalize(src, canvas)

		rect := canvas
		if opts.Subrectangles && prev != nil {
			rect = diffRect(prev, rgba)
		}

		palette := quantizer.Quantize(make([]color.Color, 0, paletteSize), rgba.SubImage(rect))
		frame := image.NewPaletted(rect, palette)
		draw.FloydSteinberg.Draw(frame, rect, rgba, rect.Min)

		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
		anim.Disposal = append(anim.Disposal, gif.DisposalNone)
		prev = rgba

		log.Debug("frame appended",
			zap.Int("index", len(anim.Image)-1),
			zap.Int("width", rect.Dx()),
			zap.Int("height", rect.Dy()),
		)
	}

	if len(anim.Image) == 0 {
		return nil, giferr.New(giferr.KindInvalidArgument, "cannot encode an animation with zero frames")
	}

	if err := gif.EncodeAll(art.file, anim); err != nil {
		return nil, giferr.Wrap(giferr.KindIO, "encode gif", err)
	}
	if err := art.finalize(); err != nil {
		return nil, err
	}

	log.Debug("animation encoded",
		zap.String("artifact", art.ID()),
		zap.Int("frames", len(anim.Image)),
		zap.Int("delay_cs", delay),
		zap.Int("palette_size", paletteSize),
		zap.Int64("bytes", art.Size()),
	)

	committed = true
	return art, nil
}

// normalize draws src onto a fresh canvas-sized RGBA, scaling when the
// frame deviates from the canvas established by the first frame.
func normalize(src image.Image, canvas image.Rectangle) *image.RGBA {
	rgba := image.NewRGBA(canvas)
	if src.Bounds().Dx() == canvas.Dx() && src.Bounds().Dy() == canvas.Dy() {
		xdraw.Draw(rgba, canvas, src, src.Bounds().Min, xdraw.Src)
		return rgba
	}
	xdraw.BiLinear.Scale(rgba, canvas, src, src.Bounds(), xdraw.Src, nil)
	return rgba
}

// diffRect is the bounding rectangle of pixels that differ between two
// same-sized frames. Identical frames yield a single-pixel rectangle so
// the container always carries a frame.
func diffRect(a, b *image.RGBA) image.Rectangle {
	bounds := a.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X, bounds.Min.Y

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		rowA := a.Pix[a.PixOffset(bounds.Min.X, y):a.PixOffset(bounds.Max.X, y)]
		rowB := b.Pix[b.PixOffset(bounds.Min.X, y):b.PixOffset(bounds.Max.X, y)]
		if bytes.Equal(rowA, rowB) {
			continue
		}
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			o := a.PixOffset(x, y)
			if !bytes.Equal(a.Pix[o:o+4], b.Pix[o:o+4]) {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if minX > maxX || minY > maxY {
		return image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+1, bounds.Min.Y+1)
	}
	return image.Rect(minX, minY, maxX+1, maxY+1)
}
