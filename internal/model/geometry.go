// Package model holds the shared page-geometry and document types that flow
// between the reader, OCR, and layout-fusion stages of the conversion
// pipeline.
package model

// Rect is an axis-aligned rectangle in PDF user-space points, y increasing
// downward. Zero value is a degenerate rectangle with zero area.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// PosInf is used as Rect.Y0 for elements whose reader could not report a
// page-space position, so they sort after every positioned element.
const PosInf = 1e18

func (r Rect) width() float64  { return r.X1 - r.X0 }
func (r Rect) height() float64 { return r.Y1 - r.Y0 }

func (r Rect) area() float64 {
	w, h := r.width(), r.height()
	if w <= 0 || h <= 0 {
		return 0
	}
	return w * h
}

// Overlaps reports whether two rectangles intersect (touching edges do not
// count as overlap).
func Overlaps(a, b Rect) bool {
	if a.X1 <= b.X0 || a.X0 >= b.X1 {
		return false
	}
	if a.Y1 <= b.Y0 || a.Y0 >= b.Y1 {
		return false
	}
	return true
}

// OverlapRatio returns area(a ∩ b) / area(a), or 0 if area(a) is 0 or the
// rectangles do not overlap.
func OverlapRatio(a, b Rect) float64 {
	aArea := a.area()
	if aArea == 0 {
		return 0
	}
	if !Overlaps(a, b) {
		return 0
	}
	ix0 := max(a.X0, b.X0)
	iy0 := max(a.Y0, b.Y0)
	ix1 := min(a.X1, b.X1)
	iy1 := min(a.Y1, b.Y1)
	iw := ix1 - ix0
	ih := iy1 - iy0
	if iw <= 0 || ih <= 0 {
		return 0
	}
	return (iw * ih) / aArea
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

// TextSpan is a left-to-right run of text within a line, possibly with its
// own font size and bold flag.
type TextSpan struct {
	Text     string
	FontSize float64
	Bold     bool
	Bbox     Rect
}

// TextLine groups spans that sit on one visual baseline.
type TextLine struct {
	Spans []TextSpan
	Bbox  Rect
}

// TextBlock is a paragraph-level grouping of lines, as reported by the PDF
// reader's structured text extraction.
type TextBlock struct {
	Lines []TextLine
	Bbox  Rect
}

// TableRegion is a detected table with its rectangular cell matrix. Missing
// cells are the empty string; rows need not all be the same length.
type TableRegion struct {
	Index int
	Bbox  Rect
	Cells [][]string
}

// ImageRegion is an embedded raster image placement. Pixmap holds the
// decoded image bytes (already demuxed from the PDF's XObject stream) for
// the reader's declared format. If the reader could not resolve a
// page-space rectangle, Bbox.Y0 is model.PosInf so the image sorts after
// every positioned element.
type ImageRegion struct {
	Index  int
	Xref   int
	Bbox   Rect
	Pixmap []byte
}

// ElementKind identifies what an Element renders.
type ElementKind string

const (
	ElementText  ElementKind = "text"
	ElementTable ElementKind = "table"
	ElementImage ElementKind = "image"
)

// Element is one emitted unit of a page's Markdown, ordered by YAnchor.
type Element struct {
	Kind    ElementKind
	YAnchor float64
	Content string
}
