package ocr

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/adverant/nexus/pdf2md/internal/logging"
)

var log = logging.NewLogger("ocr")

// Recognizer is the engine contract: recognize text from a decoded raster.
// A single implementation (Tesseract) backs this repo; the interface exists
// so a second engine could be substituted without touching callers.
type Recognizer interface {
	Recognize(img image.Image) (string, error)
}

// TesseractRecognizer wraps otiai10/gosseract, the Go binding for the
// Tesseract OCR engine.
type TesseractRecognizer struct {
	tesseractPath string
}

// NewTesseractRecognizer constructs a recognizer. tesseractPath is
// currently informational (gosseract locates the tesseract library via
// cgo linkage, not a configurable binary path), kept for parity with the
// service's configuration surface.
func NewTesseractRecognizer(tesseractPath string) *TesseractRecognizer {
	if tesseractPath == "" {
		tesseractPath = "/usr/bin/tesseract"
	}
	return &TesseractRecognizer{tesseractPath: tesseractPath}
}

// Recognize preprocesses img per the engine's required pipeline and
// returns the concatenation of recognized lines, newline-joined and
// trimmed. Any engine-internal failure is returned as an error for the
// caller to degrade into a per-image failure marker; it never panics.
func (t *TesseractRecognizer) Recognize(img image.Image) (string, error) {
	processed := Preprocess(img)

	encoded, err := EncodePNG(processed)
	if err != nil {
		return "", fmt.Errorf("failed to encode preprocessed image: %w", err)
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(encoded); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("tesseract recognition failed: %w", err)
	}

	return joinNonEmptyLines(text), nil
}

func joinNonEmptyLines(text string) string {
	lines := strings.Split(text, "\n")
	var kept []string
	for _, l := range lines {
		l = strings.TrimSpace(l)
		if l != "" {
			kept = append(kept, l)
		}
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// DecodeBytes decodes a pixmap byte slice into an image.Image for
// Recognize, returning an error (never panicking) on unsupported or
// malformed formats.
func DecodeBytes(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
