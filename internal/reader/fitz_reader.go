package reader

import (
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/logging"
	"github.com/adverant/nexus/pdf2md/internal/model"
)

var log = logging.NewLogger("reader")

// fitzDocument adapts gen2brain/go-fitz's MuPDF binding to the Document
// contract. Every page is parsed once, eagerly, when Open runs, and the
// result is cached, since table detection runs against the same extracted
// text lines as the text blocks.
type fitzDocument struct {
	doc   *fitz.Document
	pages []*fitzPage
}

type fitzPage struct {
	rect   model.Rect
	blocks []model.TextBlock
	images []model.ImageRegion
	tables []model.TableRegion
}

func (p *fitzPage) Rect() model.Rect                 { return p.rect }
func (p *fitzPage) TextBlocks() []model.TextBlock     { return p.blocks }
func (p *fitzPage) Images() []model.ImageRegion       { return p.images }
func (p *fitzPage) Tables() []model.TableRegion       { return p.tables }

// Open opens a PDF by path, returning NotFound or Corrupt on failure per
// the reader's contract.
func Open(path string) (Document, error) {
	if err := probeFile(path); err != nil {
		return nil, err
	}

	doc, err := fitz.New(path)
	if err != nil {
		return nil, errors.NewCorruptError(path, err)
	}

	count := doc.NumPage()
	pages := make([]*fitzPage, count)

	for i := 0; i < count; i++ {
		page, perr := buildPage(doc, i)
		if perr != nil {
			log.Warn("failed to extract page geometry, page will render empty", "page", i+1, "error", perr.Error())
			page = &fitzPage{}
		}
		pages[i] = page
	}

	return &fitzDocument{doc: doc, pages: pages}, nil
}

func (d *fitzDocument) PageCount() int { return len(d.pages) }

func (d *fitzDocument) Page(i int) (Page, error) {
	if i < 0 || i >= len(d.pages) {
		return nil, fmt.Errorf("page index %d out of range [0,%d)", i, len(d.pages))
	}
	return d.pages[i], nil
}

func (d *fitzDocument) Close() error {
	return d.doc.Close()
}

// buildPage extracts text-block geometry from MuPDF's per-page HTML export
// (which mirrors the fz_stext_page structure: each span carries its
// position and font size as inline CSS, and embedded raster images appear
// as base64 <img> tags), plus a delimiter-based table pass over the same
// line stream.
func buildPage(doc *fitz.Document, index int) (*fitzPage, error) {
	htmlContent, err := doc.HTML(index, true)
	if err != nil {
		return nil, fmt.Errorf("HTML export failed: %w", err)
	}

	spans := parseSpans(htmlContent)
	images := parseImages(htmlContent, index)

	blocks, candidateLines := groupSpansIntoBlocks(spans)
	tables := detectTables(candidateLines, index)

	rect := pageBoundingRect(blocks, images)

	return &fitzPage{
		rect:   rect,
		blocks: blocks,
		images: images,
		tables: tables,
	}, nil
}

func pageBoundingRect(blocks []model.TextBlock, images []model.ImageRegion) model.Rect {
	r := model.Rect{}
	first := true
	extend := func(b model.Rect) {
		if b.Y0 >= model.PosInf {
			return
		}
		if first {
			r = b
			first = false
			return
		}
		if b.X0 < r.X0 {
			r.X0 = b.X0
		}
		if b.Y0 < r.Y0 {
			r.Y0 = b.Y0
		}
		if b.X1 > r.X1 {
			r.X1 = b.X1
		}
		if b.Y1 > r.Y1 {
			r.Y1 = b.Y1
		}
	}
	for _, b := range blocks {
		extend(b.Bbox)
	}
	for _, im := range images {
		extend(im.Bbox)
	}
	return r
}
