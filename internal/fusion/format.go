package fusion

import (
	"regexp"
	"strings"

	"github.com/adverant/nexus/pdf2md/internal/model"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

const boldFontSizeThreshold = 14.0
const paragraphHeightThreshold = 20.0

// formatTextBlock renders one surviving text block per Step D: each line's
// spans are joined left-to-right with collapsed whitespace, spans above
// the bold threshold (or carrying the reader's bold flag) are wrapped in
// "**", lines are joined top-to-bottom, and blocks taller than the
// paragraph threshold are padded with blank lines as a paragraph
// separator.
func formatTextBlock(block model.TextBlock) string {
	lines := make([]string, 0, len(block.Lines))
	for _, line := range block.Lines {
		lines = append(lines, formatLine(line))
	}
	text := strings.Join(lines, "\n")

	if block.Bbox.Y1-block.Bbox.Y0 > paragraphHeightThreshold {
		return "\n" + text + "\n"
	}
	return text
}

func formatLine(line model.TextLine) string {
	parts := make([]string, 0, len(line.Spans))
	for _, span := range line.Spans {
		text := whitespaceRun.ReplaceAllString(strings.TrimSpace(span.Text), " ")
		if text == "" {
			continue
		}
		if span.FontSize > boldFontSizeThreshold || span.Bold {
			text = "**" + text + "**"
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, " ")
}
