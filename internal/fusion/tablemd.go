package fusion

import (
	"strings"
)

// normalizeCell coerces a cell to a string, folds internal newlines into
// the literal token "<br>", and collapses whitespace runs — Step G.
func normalizeCell(cell string) string {
	cell = strings.ReplaceAll(cell, "\r\n", "\n")
	cell = strings.ReplaceAll(cell, "\n", "<br>")
	cell = whitespaceRunPreservingBr(cell)
	return strings.TrimSpace(cell)
}

// whitespaceRunPreservingBr collapses runs of plain whitespace without
// touching the <br> tokens normalizeCell has already inserted.
func whitespaceRunPreservingBr(s string) string {
	parts := strings.Split(s, "<br>")
	for i, p := range parts {
		parts[i] = whitespaceRun.ReplaceAllString(p, " ")
	}
	return strings.Join(parts, "<br>")
}

// renderTable renders a cell matrix as a Markdown table — Step H. It
// rejects degenerate tables by returning the empty string: fewer than two
// rows, a maximum row length below minColumns, or every cell (header
// included) being whitespace before normalization.
func renderTable(cells [][]string, minColumns int) string {
	if minColumns < 1 {
		minColumns = 2
	}
	if len(cells) < 2 {
		return ""
	}

	maxCols := 0
	for _, row := range cells {
		if len(row) > maxCols {
			maxCols = len(row)
		}
	}
	if maxCols < minColumns {
		return ""
	}

	normalized := make([][]string, len(cells))
	allBlank := true
	for i, row := range cells {
		normRow := make([]string, len(row))
		for j, cell := range row {
			normRow[j] = normalizeCell(cell)
			if strings.TrimSpace(cell) != "" {
				allBlank = false
			}
		}
		normalized[i] = normRow
	}
	if allBlank {
		return ""
	}

	headerCols := len(normalized[0])

	var sb strings.Builder
	sb.WriteString("| ")
	sb.WriteString(strings.Join(normalized[0], " | "))
	sb.WriteString(" |\n")

	separators := make([]string, headerCols)
	for i := range separators {
		separators[i] = "---"
	}
	sb.WriteString("| ")
	sb.WriteString(strings.Join(separators, " | "))
	sb.WriteString(" |")

	for _, row := range normalized[1:] {
		padded := padOrTruncate(row, headerCols)
		sb.WriteString("\n| ")
		sb.WriteString(strings.Join(padded, " | "))
		sb.WriteString(" |")
	}

	return sb.String()
}

func padOrTruncate(row []string, n int) []string {
	if len(row) == n {
		return row
	}
	if len(row) > n {
		return row[:n]
	}
	padded := make([]string, n)
	copy(padded, row)
	return padded
}
