package fusion

import (
	"strings"
	"testing"

	"github.com/adverant/nexus/pdf2md/internal/model"
)

func span(text string, fontSize float64, bold bool) model.TextSpan {
	return model.TextSpan{Text: text, FontSize: fontSize, Bold: bold}
}

func TestFormatLineCollapsesWhitespaceAndJoinsWithSpace(t *testing.T) {
	line := model.TextLine{Spans: []model.TextSpan{
		span("hello   world", 10, false),
		span("foo", 10, false),
	}}
	got := formatLine(line)
	want := "hello world foo"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatLineBoldBySizeThreshold(t *testing.T) {
	line := model.TextLine{Spans: []model.TextSpan{span("Title", 18, false)}}
	got := formatLine(line)
	if got != "**Title**" {
		t.Fatalf("expected large-font span to be bolded, got %q", got)
	}
}

func TestFormatLineBoldByFlag(t *testing.T) {
	line := model.TextLine{Spans: []model.TextSpan{span("important", 10, true)}}
	got := formatLine(line)
	if got != "**important**" {
		t.Fatalf("expected bold-flagged span to be bolded, got %q", got)
	}
}

func TestFormatLineSkipsEmptySpans(t *testing.T) {
	line := model.TextLine{Spans: []model.TextSpan{span("   ", 10, false), span("text", 10, false)}}
	if got := formatLine(line); got != "text" {
		t.Fatalf("expected blank span dropped, got %q", got)
	}
}

func TestFormatTextBlockJoinsLinesTopToBottom(t *testing.T) {
	block := model.TextBlock{
		Bbox: model.Rect{Y0: 0, Y1: 10},
		Lines: []model.TextLine{
			{Spans: []model.TextSpan{span("line one", 10, false)}},
			{Spans: []model.TextSpan{span("line two", 10, false)}},
		},
	}
	got := formatTextBlock(block)
	if got != "line one\nline two" {
		t.Fatalf("got %q", got)
	}
}

func TestFormatTextBlockTallBlockGetsParagraphPadding(t *testing.T) {
	block := model.TextBlock{
		Bbox:  model.Rect{Y0: 0, Y1: 30},
		Lines: []model.TextLine{{Spans: []model.TextSpan{span("paragraph", 10, false)}}},
	}
	got := formatTextBlock(block)
	if !strings.HasPrefix(got, "\n") || !strings.HasSuffix(got, "\n") {
		t.Fatalf("expected blank-line padding around a tall block, got %q", got)
	}
}

func TestFormatTextBlockShortBlockNoPadding(t *testing.T) {
	block := model.TextBlock{
		Bbox:  model.Rect{Y0: 0, Y1: 8},
		Lines: []model.TextLine{{Spans: []model.TextSpan{span("short", 10, false)}}},
	}
	got := formatTextBlock(block)
	if got != "short" {
		t.Fatalf("expected no padding for a short block, got %q", got)
	}
}
