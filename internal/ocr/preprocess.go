// Package ocr implements the OCR engine contract (C2): image
// preprocessing followed by text recognition against an embedded raster
// image.
package ocr

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	maxDimension      = 1200
	minDimensionTiny  = 100
	minDimensionSmall = 200
)

// Preprocess normalizes a decoded raster per the engine's required
// pipeline: RGB normalization, then a bounded downscale, then a bounded
// upscale — applied in that order, never combining the up- and downscale
// steps.
func Preprocess(img image.Image) image.Image {
	rgb := normalizeToRGB(img)
	rgb = boundedDownscale(rgb)
	rgb = boundedUpscale(rgb)
	return rgb
}

// normalizeToRGB composites RGBA against white and expands grayscale,
// producing a plain image.RGBA with no alpha channel semantics left.
func normalizeToRGB(img image.Image) image.Image {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	white := image.NewUniform(color.White)
	draw.Draw(out, bounds, white, image.Point{}, draw.Src)
	draw.Draw(out, bounds, img, bounds.Min, draw.Over)
	return out
}

func boundedDownscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := w
	if h > m {
		m = h
	}
	if m <= maxDimension {
		return img
	}
	scale := float64(maxDimension) / float64(m)
	return resize(img, int(float64(w)*scale), int(float64(h)*scale), xdraw.CatmullRom)
}

func boundedUpscale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	m := w
	if h > m {
		m = h
	}
	switch {
	case m < minDimensionTiny:
		return resize(img, w*3, h*3, xdraw.CatmullRom)
	case m < minDimensionSmall:
		return resize(img, w*2, h*2, xdraw.CatmullRom)
	default:
		return img
	}
}

func resize(img image.Image, w, h int, kernel xdraw.Interpolator) image.Image {
	if w <= 0 || h <= 0 {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	kernel.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}

// EncodePNG re-encodes a preprocessed image for handoff to the recognition
// engine, which consumes raw image bytes rather than a decoded
// image.Image.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
