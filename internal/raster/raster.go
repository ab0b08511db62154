// Package raster converts one SVG document into PNG bytes. Stateless,
// one shot per frame.
package raster

import (
	"bytes"
	"image"
	"image/png"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/kapu/pgn2gif/pkg/giferr"
)

// PNG rasterizes svg at its viewBox dimensions and encodes the result
// as PNG. Malformed vector input is a render-kind error.
func PNG(svg string) ([]byte, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(sanitize([]byte(svg))))
	if err != nil {
		return nil, giferr.Wrap(giferr.KindRender, "parse svg", err)
	}

	w := int(icon.ViewBox.W + 0.5)
	h := int(icon.ViewBox.H + 0.5)
	if w <= 0 || h <= 0 {
		return nil, giferr.New(giferr.KindRender, "svg has an empty viewbox")
	}
	icon.SetTarget(0, 0, float64(w), float64(h))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, giferr.Wrap(giferr.KindRender, "encode png", err)
	}
	return buf.Bytes(), nil
}

// sanitize repairs style spellings the rasterizer trips over.
func sanitize(svg []byte) []byte {
	fixed := bytes.ReplaceAll(svg, []byte("fill:000000"), []byte("fill:#000000"))
	fixed = bytes.ReplaceAll(fixed, []byte("fill: 000000"), []byte("fill:#000000"))
	fixed = bytes.ReplaceAll(fixed, []byte("stroke: 000000"), []byte("stroke:#000000"))
	fixed = bytes.ReplaceAll(fixed, []byte("fill: #"), []byte("fill:#"))
	fixed = bytes.ReplaceAll(fixed, []byte("stroke: #"), []byte("stroke:#"))
	fixed = bytes.ReplaceAll(fixed, []byte("stop-color: #"), []byte("stop-color:#"))
	return fixed
}
