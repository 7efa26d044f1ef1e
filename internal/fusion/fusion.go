// Package fusion implements the layout fusion algorithm (C3): the per-page
// merge of independently extracted text, table, and image streams into a
// single ordered Markdown rendering, with placeholder substitution so
// table and image content slot back into the visual reading order anchored
// by their own geometry.
package fusion

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/logging"
	"github.com/adverant/nexus/pdf2md/internal/metrics"
	"github.com/adverant/nexus/pdf2md/internal/model"
	"github.com/adverant/nexus/pdf2md/internal/ocr"
	"github.com/adverant/nexus/pdf2md/internal/reader"
)

var log = logging.NewLogger("fusion")

// overlapThreshold is the fraction of a text block's area that must lie
// inside a table's bbox before the block is considered part of that table
// and dropped from the text stream.
const overlapThreshold = 0.7

// Options configures table rendering thresholds; all other behavior of the
// fusion algorithm is fixed by the conversion core's contract.
type Options struct {
	TableMinColumns int
}

// Result is one page's fused Markdown plus any non-fatal errors
// encountered while rendering it (per-page errors never abort the
// enclosing job).
type Result struct {
	Markdown string
	Errors   []error
}

// RenderPage fuses one page's text blocks, tables, and images into ordered
// Markdown, substituting table and image placeholders with their rendered
// content.
func RenderPage(page reader.Page, recognizer ocr.Recognizer, pageNum int, opts Options) Result {
	var result Result

	tables := page.Tables()
	tableByIndex := make(map[int]model.TableRegion, len(tables))
	for _, t := range tables {
		tableByIndex[t.Index] = t
	}
	textBlocks := append([]model.TextBlock(nil), page.TextBlocks()...)
	images := page.Images()

	sort.SliceStable(textBlocks, func(i, j int) bool {
		return textBlocks[i].Bbox.Y0 < textBlocks[j].Bbox.Y0
	})

	var elements []model.Element
	processedTables := map[int]bool{}

	// Step B — text block filtering and table placeholder emission.
	for _, block := range textBlocks {
		tIdx, ratio := bestTableOverlap(block.Bbox, tables)
		if tIdx >= 0 && ratio > overlapThreshold {
			if !processedTables[tIdx] {
				elements = append(elements, model.Element{
					Kind:    model.ElementTable,
					YAnchor: tableByIndex[tIdx].Bbox.Y0,
					Content: tablePlaceholder(tIdx),
				})
				processedTables[tIdx] = true
			}
			continue
		}
		elements = append(elements, model.Element{
			Kind:    model.ElementText,
			YAnchor: block.Bbox.Y0,
			Content: formatTextBlock(block),
		})
	}

	// Step C — image placeholders, discovery order.
	for i, img := range images {
		elements = append(elements, model.Element{
			Kind:    model.ElementImage,
			YAnchor: img.Bbox.Y0,
			Content: imagePlaceholder(i),
		})
	}

	// Step E — ordering and emission.
	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].YAnchor < elements[j].YAnchor
	})

	var sb strings.Builder
	for _, el := range elements {
		if el.Kind == model.ElementTable {
			sb.WriteString("\n")
		}
		sb.WriteString(el.Content)
		sb.WriteString("\n")
		if el.Kind == model.ElementTable {
			sb.WriteString("\n")
		}
	}
	pageMarkdown := sb.String()

	// Step F — placeholder resolution: tables.
	for tIdx := range processedTables {
		table := tableByIndex[tIdx]
		rendered := renderTable(table.Cells, opts.TableMinColumns)
		var substitution string
		if rendered != "" {
			substitution = "**表格:**\n\n" + rendered + "\n"
		}
		pageMarkdown = strings.ReplaceAll(pageMarkdown, tablePlaceholder(tIdx), substitution)
	}

	// Step F — placeholder resolution: images.
	for i, img := range images {
		block, err := renderImageBlock(recognizer, img, pageNum, i)
		if err != nil {
			result.Errors = append(result.Errors, errors.NewOCRError(i, err))
			metrics.OCRFailures.Inc()
			log.Warn("OCR failed for image, degrading to failure marker", "page", pageNum, "image", i, "error", err.Error())
		}
		pageMarkdown = strings.ReplaceAll(pageMarkdown, imagePlaceholder(i), block)
	}

	result.Markdown = pageMarkdown
	return result
}

func bestTableOverlap(blockBbox model.Rect, tables []model.TableRegion) (int, float64) {
	bestIdx, bestRatio := -1, 0.0
	for _, t := range tables {
		ratio := model.OverlapRatio(blockBbox, t.Bbox)
		if ratio > bestRatio {
			bestRatio = ratio
			bestIdx = t.Index
		}
	}
	return bestIdx, bestRatio
}

func tablePlaceholder(idx int) string {
	return fmt.Sprintf("<!-- TABLE_PLACEHOLDER_%d -->", idx)
}

func imagePlaceholder(idx int) string {
	return fmt.Sprintf("<!-- IMAGE_PLACEHOLDER_%d -->", idx)
}
