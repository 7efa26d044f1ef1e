package reader

import (
	"math"
	"sort"
	"strings"

	"github.com/adverant/nexus/pdf2md/internal/model"
)

// textLineCandidate is an intermediate visual line, kept around after block
// grouping so the table detector (grounded on the delimiter-scan approach
// used elsewhere in this codebase's layout analysis) can run over the same
// geometry without re-parsing the page.
type textLineCandidate struct {
	text string
	bbox model.Rect
}

// groupSpansIntoBlocks buckets spans sharing a top coordinate into visual
// lines, then groups vertically-adjacent lines into paragraph blocks. A new
// block starts whenever the gap between two lines exceeds 1.5x the
// shorter line's height, mirroring the paragraph-break heuristic used for
// splitting extracted text into pages elsewhere in this codebase.
func groupSpansIntoBlocks(spans []rawSpan) ([]model.TextBlock, []textLineCandidate) {
	if len(spans) == 0 {
		return nil, nil
	}

	byLine := map[int][]rawSpan{}
	var lineKeys []int
	for _, s := range spans {
		key := int(math.Round(s.top))
		if _, ok := byLine[key]; !ok {
			lineKeys = append(lineKeys, key)
		}
		byLine[key] = append(byLine[key], s)
	}
	sort.Ints(lineKeys)

	var lines []model.TextLine
	var candidates []textLineCandidate
	for _, key := range lineKeys {
		lineSpans := byLine[key]
		sort.Slice(lineSpans, func(i, j int) bool { return lineSpans[i].left < lineSpans[j].left })

		spanModels := make([]model.TextSpan, 0, len(lineSpans))
		var texts []string
		minX, maxX := math.Inf(1), math.Inf(-1)
		top, bottom := math.Inf(1), math.Inf(-1)
		for _, s := range lineSpans {
			bbox := model.Rect{X0: s.left, Y0: s.top, X1: s.left + s.width, Y1: s.top + s.height}
			spanModels = append(spanModels, model.TextSpan{
				Text: s.text, FontSize: s.fontSize, Bold: s.bold, Bbox: bbox,
			})
			texts = append(texts, s.text)
			if bbox.X0 < minX {
				minX = bbox.X0
			}
			if bbox.X1 > maxX {
				maxX = bbox.X1
			}
			if bbox.Y0 < top {
				top = bbox.Y0
			}
			if bbox.Y1 > bottom {
				bottom = bbox.Y1
			}
		}

		lineBbox := model.Rect{X0: minX, Y0: top, X1: maxX, Y1: bottom}
		lines = append(lines, model.TextLine{Spans: spanModels, Bbox: lineBbox})
		candidates = append(candidates, textLineCandidate{text: strings.Join(texts, " "), bbox: lineBbox})
	}

	var blocks []model.TextBlock
	var current []model.TextLine
	flush := func() {
		if len(current) == 0 {
			return
		}
		blocks = append(blocks, model.TextBlock{Lines: current, Bbox: unionLineBbox(current)})
		current = nil
	}

	for i, line := range lines {
		if i == 0 {
			current = append(current, line)
			continue
		}
		prev := lines[i-1]
		gap := line.Bbox.Y0 - prev.Bbox.Y1
		threshold := 1.5 * math.Min(line.Bbox.Y1-line.Bbox.Y0, prev.Bbox.Y1-prev.Bbox.Y0)
		if threshold <= 0 {
			threshold = 6
		}
		if gap > threshold {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return blocks, candidates
}

func unionLineBbox(lines []model.TextLine) model.Rect {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, l := range lines {
		if l.Bbox.X0 < minX {
			minX = l.Bbox.X0
		}
		if l.Bbox.X1 > maxX {
			maxX = l.Bbox.X1
		}
		if l.Bbox.Y0 < minY {
			minY = l.Bbox.Y0
		}
		if l.Bbox.Y1 > maxY {
			maxY = l.Bbox.Y1
		}
	}
	return model.Rect{X0: minX, Y0: minY, X1: maxX, Y1: maxY}
}
