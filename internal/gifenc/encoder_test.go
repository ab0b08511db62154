package gifenc

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"iter"
	"os"
	"path/filepath"
	"testing"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

func solidPNG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func pngSeq(frames ...[]byte) iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for _, f := range frames {
			if !yield(f, nil) {
				return
			}
		}
	}
}

func defaultOpts() Options {
	return Options{Duration: 1.0, FPS: 1.0, PaletteSize: 64, Subrectangles: true}
}

func decodeArtifact(t *testing.T, art *Artifact) *gif.GIF {
	t.Helper()
	raw, err := art.Bytes()
	if err != nil {
		t.Fatalf("artifact bytes: %v", err)
	}
	g, err := gif.DecodeAll(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decode gif: %v", err)
	}
	return g
}

func TestValidateRequiresTiming(t *testing.T) {
	consumed := false
	frames := func(yield func([]byte, error) bool) { consumed = true }

	_, err := Encode(frames, Options{PaletteSize: 64}, nil)
	if !giferr.IsKind(err, giferr.KindInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
	if consumed {
		t.Fatalf("frame stream consumed before option validation")
	}
}

func TestValidateRanges(t *testing.T) {
	bad := []Options{
		{Duration: 1, Loop: -1, PaletteSize: 64},
		{Duration: 1, PaletteSize: 1},
		{Duration: 1, PaletteSize: 300},
	}
	for i, opts := range bad {
		if err := opts.Validate(); !giferr.IsKind(err, giferr.KindInvalidArgument) {
			t.Fatalf("case %d err = %v, want invalid_argument", i, err)
		}
	}
}

func TestRejectsZeroFrames(t *testing.T) {
	_, err := Encode(pngSeq(), defaultOpts(), nil)
	if !giferr.IsKind(err, giferr.KindInvalidArgument) {
		t.Fatalf("err = %v, want invalid_argument", err)
	}
}

func TestRoundPaletteSize(t *testing.T) {
	cases := map[int]int{
		1: 2, 2: 2, 3: 4, 5: 4, 16: 16, 23: 32, 24: 32,
		64: 64, 100: 128, 256: 256, 1000: 256,
	}
	for in, want := range cases {
		if got := roundPaletteSize(in); got != want {
			t.Fatalf("roundPaletteSize(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestDurationWinsOverFPS(t *testing.T) {
	opts := defaultOpts()
	opts.Duration = 0.5
	opts.FPS = 10

	art, err := Encode(pngSeq(solidPNG(t, 8, 8, color.RGBA{255, 0, 0, 255})), opts, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g := decodeArtifact(t, art)
	if g.Delay[0] != 50 {
		t.Fatalf("delay = %d, want 50 (duration precedence)", g.Delay[0])
	}
	_ = art.Close()
}

func TestFPSUsedWhenDurationUnset(t *testing.T) {
	opts := Options{FPS: 4, PaletteSize: 64}
	art, err := Encode(pngSeq(solidPNG(t, 8, 8, color.RGBA{0, 255, 0, 255})), opts, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	g := decodeArtifact(t, art)
	if g.Delay[0] != 25 {
		t.Fatalf("delay = %d, want 25", g.Delay[0])
	}
	_ = art.Close()
}

func TestSingleFrameRoundTrip(t *testing.T) {
	want := color.RGBA{200, 40, 40, 255}
	art, err := Encode(pngSeq(solidPNG(t, 16, 12, want)), defaultOpts(), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer art.Close()

	g := decodeArtifact(t, art)
	if len(g.Image) != 1 {
		t.Fatalf("frames = %d, want 1", len(g.Image))
	}
	if g.LoopCount != 0 {
		t.Fatalf("loop = %d, want 0 (infinite)", g.LoopCount)
	}
	frame := g.Image[0]
	if frame.Bounds().Dx() != 16 || frame.Bounds().Dy() != 12 {
		t.Fatalf("frame bounds = %v, want 16x12", frame.Bounds())
	}
	// Solid input survives quantization exactly.
	r, gg, b, _ := frame.At(3, 3).RGBA()
	got := color.RGBA{uint8(r >> 8), uint8(gg >> 8), uint8(b >> 8), 255}
	if got != want {
		t.Fatalf("pixel = %v, want %v", got, want)
	}
}

func TestSubrectanglesShrinkLaterFrames(t *testing.T) {
	base := solidPNG(t, 32, 32, color.RGBA{10, 10, 10, 255})

	// Second frame differs only in a 4x4 block at (8,8).
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetRGBA(x, y, color.RGBA{10, 10, 10, 255})
		}
	}
	for y := 8; y < 12; y++ {
		for x := 8; x < 12; x++ {
			img.SetRGBA(x, y, color.RGBA{250, 250, 250, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	art, err := Encode(pngSeq(base, buf.Bytes()), defaultOpts(), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer art.Close()

	g := decodeArtifact(t, art)
	if len(g.Image) != 2 {
		t.Fatalf("frames = %d, want 2", len(g.Image))
	}
	if got := g.Image[1].Bounds(); got != image.Rect(8, 8, 12, 12) {
		t.Fatalf("second frame bounds = %v, want (8,8)-(12,12)", got)
	}
	if g.Disposal[1] != gif.DisposalNone {
		t.Fatalf("disposal = %d, want none", g.Disposal[1])
	}
}

func TestIdenticalFramesKeepMinimalRect(t *testing.T) {
	frame := solidPNG(t, 10, 10, color.RGBA{80, 80, 80, 255})
	art, err := Encode(pngSeq(frame, frame), defaultOpts(), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer art.Close()

	g := decodeArtifact(t, art)
	if got := g.Image[1].Bounds(); got.Dx() != 1 || got.Dy() != 1 {
		t.Fatalf("identical frame bounds = %v, want 1x1", got)
	}
}

func TestSubrectanglesDisabledKeepsFullFrames(t *testing.T) {
	opts := defaultOpts()
	opts.Subrectangles = false
	frame := solidPNG(t, 10, 10, color.RGBA{80, 80, 80, 255})
	art, err := Encode(pngSeq(frame, frame), opts, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer art.Close()

	g := decodeArtifact(t, art)
	if got := g.Image[1].Bounds(); got.Dx() != 10 || got.Dy() != 10 {
		t.Fatalf("frame bounds = %v, want 10x10", got)
	}
}

func TestLoopCountPassThrough(t *testing.T) {
	opts := defaultOpts()
	opts.Loop = 3
	art, err := Encode(pngSeq(solidPNG(t, 8, 8, color.RGBA{1, 2, 3, 255})), opts, nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	defer art.Close()

	if g := decodeArtifact(t, art); g.LoopCount != 3 {
		t.Fatalf("loop = %d, want 3", g.LoopCount)
	}
}

func TestFrameErrorPropagates(t *testing.T) {
	failing := func(yield func([]byte, error) bool) {
		yield(nil, giferr.New(giferr.KindRender, "boom"))
	}
	if _, err := Encode(failing, defaultOpts(), nil); !giferr.IsKind(err, giferr.KindRender) {
		t.Fatalf("err = %v, want render kind", err)
	}
}

func TestArtifactSaveTo(t *testing.T) {
	art, err := Encode(pngSeq(solidPNG(t, 8, 8, color.RGBA{9, 9, 9, 255})), defaultOpts(), nil)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	dest := filepath.Join(t.TempDir(), "nested", "dir", "out.gif")
	if err := art.SaveTo(dest); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	raw, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read saved gif: %v", err)
	}
	if _, err := gif.DecodeAll(bytes.NewReader(raw)); err != nil {
		t.Fatalf("saved gif does not decode: %v", err)
	}

	// The temporary resource is released after persisting.
	if _, err := art.WriteTo(&bytes.Buffer{}); !giferr.IsKind(err, giferr.KindIO) {
		t.Fatalf("WriteTo after SaveTo err = %v, want io kind", err)
	}
	if err := art.Close(); err != nil {
		t.Fatalf("Close after SaveTo: %v", err)
	}
}
