package reader

import "testing"

func TestParseSpansExtractsPositionAndFontSize(t *testing.T) {
	html := `<p style="top:10.0pt;left:20.0pt;line-height:12.0pt">` +
		`<span style="font-size:14.0pt">Hello</span>` +
		`<span style="font-size:18.0pt;font-weight:bold"> World</span>` +
		`</p>`

	spans := parseSpans(html)
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d: %+v", len(spans), spans)
	}
	if spans[0].text != "Hello" || spans[0].fontSize != 14.0 {
		t.Fatalf("unexpected first span: %+v", spans[0])
	}
	if spans[0].top != 10.0 {
		t.Fatalf("expected span to inherit paragraph top, got %v", spans[0].top)
	}
	if !spans[1].bold {
		t.Fatalf("expected second span to be marked bold")
	}
}

func TestParseSpansFallsBackToPlainParagraphText(t *testing.T) {
	html := `<p style="top:5.0pt;left:5.0pt">plain text, no spans</p>`
	spans := parseSpans(html)
	if len(spans) != 1 || spans[0].text != "plain text, no spans" {
		t.Fatalf("expected a single fallback span, got %+v", spans)
	}
}

func TestParseImagesDecodesBase64AndPosition(t *testing.T) {
	html := `<img style="left:1.0pt;top:2.0pt;width:10.0pt;height:10.0pt" src="data:image/png;base64,aGVsbG8="/>`
	images := parseImages(html, 0)
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0].Bbox.X0 != 1.0 || images[0].Bbox.Y0 != 2.0 {
		t.Fatalf("unexpected bbox: %+v", images[0].Bbox)
	}
	if string(images[0].Pixmap) != "hello" {
		t.Fatalf("expected decoded pixmap %q, got %q", "hello", images[0].Pixmap)
	}
}

func TestParseImagesWithoutPositionGetsPosInfPlaceholder(t *testing.T) {
	html := `<img style="width:10.0pt;height:10.0pt" src="data:image/png;base64,aGVsbG8="/>`
	images := parseImages(html, 0)
	if len(images) != 1 {
		t.Fatalf("expected 1 image, got %d", len(images))
	}
	if images[0].Bbox.Y0 < 1e17 {
		t.Fatalf("expected PosInf placeholder for unpositioned image, got %v", images[0].Bbox.Y0)
	}
}

func TestCleanTextDecodesEntitiesAndStripsTags(t *testing.T) {
	got := cleanText("a&nbsp;<b>b</b>&amp;c")
	if got != "a b&c" {
		t.Fatalf("got %q", got)
	}
}
