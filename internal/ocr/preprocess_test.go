package ocr

import (
	"image"
	"image/color"
	"testing"
)

func solidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNormalizeToRGBCompositesAgainstWhite(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	src.Set(0, 0, color.RGBA{R: 0, G: 0, B: 0, A: 0}) // fully transparent
	out := normalizeToRGB(src)
	r, g, b, a := out.At(0, 0).RGBA()
	if a>>8 != 255 {
		t.Fatalf("expected opaque output after compositing, got alpha %d", a>>8)
	}
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Fatalf("expected transparent pixel composited to white, got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestBoundedDownscaleAppliesAboveThreshold(t *testing.T) {
	src := solidImage(2400, 1200, color.White)
	out := boundedDownscale(src)
	b := out.Bounds()
	if b.Dx() > maxDimension || b.Dy() > maxDimension {
		t.Fatalf("expected downscaled image within %d, got %dx%d", maxDimension, b.Dx(), b.Dy())
	}
}

func TestBoundedDownscaleNoOpBelowThreshold(t *testing.T) {
	src := solidImage(800, 600, color.White)
	out := boundedDownscale(src)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("expected no resize below threshold, got %v", out.Bounds())
	}
}

func TestBoundedUpscaleTriplesTinyImages(t *testing.T) {
	src := solidImage(50, 40, color.White)
	out := boundedUpscale(src)
	b := out.Bounds()
	if b.Dx() != 150 || b.Dy() != 120 {
		t.Fatalf("expected a 3x upscale for dimension under %d, got %dx%d", minDimensionTiny, b.Dx(), b.Dy())
	}
}

func TestBoundedUpscaleDoublesSmallImages(t *testing.T) {
	src := solidImage(150, 100, color.White)
	out := boundedUpscale(src)
	b := out.Bounds()
	if b.Dx() != 300 || b.Dy() != 200 {
		t.Fatalf("expected a 2x upscale for dimension under %d, got %dx%d", minDimensionSmall, b.Dx(), b.Dy())
	}
}

func TestBoundedUpscaleNoOpAboveThreshold(t *testing.T) {
	src := solidImage(500, 400, color.White)
	out := boundedUpscale(src)
	if out.Bounds() != src.Bounds() {
		t.Fatalf("expected no upscale above threshold, got %v", out.Bounds())
	}
}

func TestPreprocessNeverAppliesBothUpAndDownscale(t *testing.T) {
	// A tiny image never exceeds maxDimension, so downscale is a no-op and
	// only the upscale path fires.
	src := solidImage(50, 50, color.White)
	out := Preprocess(src)
	b := out.Bounds()
	if b.Dx() != 150 || b.Dy() != 150 {
		t.Fatalf("expected only the upscale step to apply, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestEncodePNGRoundTrips(t *testing.T) {
	src := solidImage(4, 4, color.White)
	data, err := EncodePNG(src)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("expected non-empty PNG bytes")
	}
	decoded, err := DecodeBytes(data)
	if err != nil {
		t.Fatalf("failed to decode re-encoded image: %v", err)
	}
	if decoded.Bounds().Dx() != 4 || decoded.Bounds().Dy() != 4 {
		t.Fatalf("unexpected decoded bounds: %v", decoded.Bounds())
	}
}
