package reader

import (
	"strings"

	"github.com/adverant/nexus/pdf2md/internal/model"
)

// detectTables finds table-shaped runs of consecutive lines using the same
// delimiter-consistency heuristic used for text-mode layout analysis
// elsewhere in this codebase, then anchors each detected run with the
// union bbox of its member lines so it can participate in the
// overlap-ratio based fusion the conversion core requires.
func detectTables(lines []textLineCandidate, pageIndex int) []model.TableRegion {
	var tables []model.TableRegion

	i := 0
	for i < len(lines) {
		delim := detectDelimiter(lines[i].text)
		if delim == "" {
			i++
			continue
		}

		start := i
		expectedCols := countDelimiters(lines[i].text, delim)
		region := []textLineCandidate{lines[i]}
		i++

		for i < len(lines) {
			if detectDelimiter(lines[i].text) != delim {
				break
			}
			cols := countDelimiters(lines[i].text, delim)
			if absInt(cols-expectedCols) > 1 {
				break
			}
			region = append(region, lines[i])
			i++
		}

		if len(region) < 2 {
			continue
		}

		cells := make([][]string, 0, len(region))
		for _, l := range region {
			cells = append(cells, extractCellsFromLine(l.text, delim))
		}

		tables = append(tables, model.TableRegion{
			Index: len(tables),
			Bbox:  unionCandidateBbox(lines[start:i]),
			Cells: cells,
		})
	}

	return tables
}

func unionCandidateBbox(lines []textLineCandidate) model.Rect {
	r := lines[0].bbox
	for _, l := range lines[1:] {
		if l.bbox.X0 < r.X0 {
			r.X0 = l.bbox.X0
		}
		if l.bbox.Y0 < r.Y0 {
			r.Y0 = l.bbox.Y0
		}
		if l.bbox.X1 > r.X1 {
			r.X1 = l.bbox.X1
		}
		if l.bbox.Y1 > r.Y1 {
			r.Y1 = l.bbox.Y1
		}
	}
	return r
}

func detectDelimiter(line string) string {
	for _, delim := range []string{"|", "\t", ","} {
		if countDelimiters(line, delim) >= 2 {
			return delim
		}
	}
	return ""
}

func countDelimiters(line, delimiter string) int {
	return strings.Count(line, delimiter)
}

func extractCellsFromLine(line, delimiter string) []string {
	cells := strings.Split(line, delimiter)
	if delimiter == "|" {
		if len(cells) > 0 && strings.TrimSpace(cells[0]) == "" {
			cells = cells[1:]
		}
		if len(cells) > 0 && strings.TrimSpace(cells[len(cells)-1]) == "" {
			cells = cells[:len(cells)-1]
		}
	}
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
