// Package reader implements the PDF reader adapter (C1): it opens a PDF and
// exposes per-page geometry — text blocks with lines/spans/font size/bbox,
// embedded image placements, and table regions with cell matrices — in
// document order.
package reader

import (
	"github.com/adverant/nexus/pdf2md/internal/model"
)

// Page exposes one page's independently-extracted streams. Each accessor
// returns the page's already-extracted slice (the same one on every call);
// callers do not mutate it.
type Page interface {
	Rect() model.Rect
	TextBlocks() []model.TextBlock
	Images() []model.ImageRegion
	Tables() []model.TableRegion
}

// Document is an open PDF. PageCount and Page(i) never change for the
// lifetime of the Document; i is 0-based.
type Document interface {
	PageCount() int
	Page(i int) (Page, error)
	Close() error
}
