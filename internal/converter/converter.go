// Package converter implements the page-batched converter (C4): it drives
// the layout fusion algorithm across a page range in fixed-size batches,
// accumulates Markdown, reports coarse progress, and tolerates per-page
// failure without aborting the job.
package converter

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/fusion"
	"github.com/adverant/nexus/pdf2md/internal/logging"
	"github.com/adverant/nexus/pdf2md/internal/markdown"
	"github.com/adverant/nexus/pdf2md/internal/ocr"
	"github.com/adverant/nexus/pdf2md/internal/reader"
)

var log = logging.NewLogger("converter")

// Options configures one Convert call. BatchSize and TableMinColumns come
// from service configuration; StartPage/EndPage are 1-based and inclusive,
// zero meaning "unset" (defaults to the full document).
type Options struct {
	OutputPath      string
	StartPage       int
	EndPage         int
	BatchSize       int
	TableMinColumns int
	OnProgress      func(percent int)
}

// Result is the artifact produced by a successful (possibly
// partially-degraded) conversion. Per-page failures are recorded in Errors
// without flipping success.
type Result struct {
	MarkdownPath      string
	Markdown          string
	ProcessingSeconds float64
	PagesProcessed    int
	TablesFound       int
	Errors            []string
}

// Converter drives C1/C3 over a page range for one job.
type Converter struct {
	Recognizer ocr.Recognizer
}

// New constructs a Converter backed by the given OCR engine.
func New(recognizer ocr.Recognizer) *Converter {
	return &Converter{Recognizer: recognizer}
}

// Convert opens path, validates the requested range, and renders Markdown
// for every page in it, batch by batch.
func (c *Converter) Convert(path string, opts Options) (*Result, error) {
	start := time.Now()

	if _, err := os.Stat(path); err != nil {
		return nil, errors.NewNotFoundError(fmt.Sprintf("file not found: %s", path), err)
	}
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, errors.NewInvalidArgumentError("file is not a PDF")
	}

	startPage := opts.StartPage
	if startPage == 0 {
		startPage = 1
	} else if startPage < 1 {
		return nil, errors.NewInvalidArgumentError("startPage must be at least 1")
	}
	if opts.EndPage != 0 && opts.EndPage < startPage {
		return nil, errors.NewInvalidArgumentError("endPage must not be before startPage")
	}

	doc, err := reader.Open(path)
	if err != nil {
		return nil, err
	}
	defer doc.Close()

	total := doc.PageCount()
	endPage := opts.EndPage
	if endPage == 0 || endPage > total {
		endPage = total
	}
	if startPage > total {
		startPage = total + 1
	}

	batchSize := opts.BatchSize
	if batchSize < 1 {
		batchSize = 10
	}
	minCols := opts.TableMinColumns
	if minCols < 1 {
		minCols = 2
	}

	rangeSize := endPage - startPage + 1
	if rangeSize < 0 {
		rangeSize = 0
	}

	var sb strings.Builder
	var pageErrors []string
	pagesDone := 0
	tablesFound := 0

	for batchStart := startPage; batchStart <= endPage; batchStart += batchSize {
		batchEnd := batchStart + batchSize - 1
		if batchEnd > endPage {
			batchEnd = endPage
		}

		for p := batchStart; p <= batchEnd; p++ {
			sb.WriteString(fmt.Sprintf("## 第 %d 页\n\n", p))

			page, perr := doc.Page(p - 1)
			if perr != nil {
				sb.WriteString(fmt.Sprintf("<!-- page %d error: %s -->\n\n", p, perr.Error()))
				pageErrors = append(pageErrors, perr.Error())
				pagesDone++
				continue
			}

			tablesFound += len(page.Tables())

			rendered := fusion.RenderPage(page, c.Recognizer, p, fusion.Options{TableMinColumns: minCols})
			for _, rerr := range rendered.Errors {
				pageErrors = append(pageErrors, rerr.Error())
			}
			if rendered.Markdown == "" {
				sb.WriteString(fmt.Sprintf("<!-- page %d error: empty render -->\n\n", p))
			} else {
				sb.WriteString(rendered.Markdown)
				sb.WriteString("\n")
			}

			pagesDone++
		}

		if opts.OnProgress != nil && rangeSize > 0 {
			progress := int(math.Floor(100 * float64(pagesDone) / float64(rangeSize)))
			if progress > 99 {
				progress = 99
			}
			opts.OnProgress(progress)
		}
	}

	rendered := sb.String()
	outputPath := opts.OutputPath
	if outputPath == "" {
		outputPath = defaultOutputPath(path)
	}
	if err := writeArtifact(outputPath, rendered); err != nil {
		return nil, errors.NewIOError("failed to write Markdown artifact", err)
	}
	if !markdown.Validate([]byte(rendered)) {
		log.Warn("markdown artifact failed well-formedness validation", "path", outputPath)
	}

	log.Info("conversion finished", "path", path, "pagesProcessed", pagesDone, "tablesFound", tablesFound, "errors", len(pageErrors))

	return &Result{
		MarkdownPath:      outputPath,
		Markdown:          rendered,
		ProcessingSeconds: time.Since(start).Seconds(),
		PagesProcessed:    pagesDone,
		TablesFound:       tablesFound,
		Errors:            pageErrors,
	}, nil
}

func defaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return fmt.Sprintf("%s_converted_%d.md", stem, time.Now().Unix())
}

func writeArtifact(outputPath, content string) error {
	if dir := filepath.Dir(outputPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputPath, []byte(content), 0o644)
}
