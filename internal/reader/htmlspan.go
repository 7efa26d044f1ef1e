package reader

import (
	"encoding/base64"
	"regexp"
	"strconv"
	"strings"

	"github.com/adverant/nexus/pdf2md/internal/model"
)

// rawSpan is one <span> inside a positioned MuPDF HTML export paragraph,
// with its position resolved from the enclosing <p style="..."> block.
type rawSpan struct {
	text     string
	fontSize float64
	bold     bool
	left     float64
	top      float64
	width    float64
	height   float64
}

var (
	paragraphRe = regexp.MustCompile(`(?is)<p\s+style="([^"]*)">(.*?)</p>`)
	spanRe      = regexp.MustCompile(`(?is)<span\s+style="([^"]*)">(.*?)</span>`)
	imgRe       = regexp.MustCompile(`(?is)<img\s+style="([^"]*)"[^>]*src="data:image/[a-zA-Z0-9.+-]+;base64,([A-Za-z0-9+/=\s]+)"[^>]*/?>`)
	tagRe       = regexp.MustCompile(`(?s)<[^>]+>`)
)

// parseSpans extracts position- and font-tagged text spans from one page's
// MuPDF HTML export. Each <p> is treated as one visual line (MuPDF emits
// one positioned paragraph per text line); its position comes from the
// paragraph's own "top"/"left" CSS, and each nested span inherits it while
// carrying its own font-size/weight.
func parseSpans(htmlContent string) []rawSpan {
	var spans []rawSpan

	for _, pMatch := range paragraphRe.FindAllStringSubmatch(htmlContent, -1) {
		pStyle := pMatch[1]
		pBody := pMatch[2]

		top, _ := styleFloat(pStyle, "top")
		left, _ := styleFloat(pStyle, "left")
		lineHeight, ok := styleFloat(pStyle, "line-height")
		if !ok {
			lineHeight = 12
		}

		spanMatches := spanRe.FindAllStringSubmatch(pBody, -1)
		if len(spanMatches) == 0 {
			text := cleanText(pBody)
			if text == "" {
				continue
			}
			spans = append(spans, rawSpan{
				text: text, fontSize: 10, left: left, top: top,
				width: float64(len(text)) * 5, height: lineHeight,
			})
			continue
		}

		cursor := left
		for _, sMatch := range spanMatches {
			sStyle := sMatch[1]
			text := cleanText(sMatch[2])
			if text == "" {
				continue
			}
			fontSize, ok := styleFloat(sStyle, "font-size")
			if !ok {
				fontSize = 10
			}
			bold := strings.Contains(sStyle, "font-weight:bold") || strings.Contains(sStyle, "font-weight: bold")
			width := float64(len(text)) * fontSize * 0.5

			spans = append(spans, rawSpan{
				text: text, fontSize: fontSize, bold: bold,
				left: cursor, top: top, width: width, height: lineHeight,
			})
			cursor += width
		}
	}

	return spans
}

// parseImages extracts embedded raster images from the same HTML export,
// decoding the inline base64 payload MuPDF embeds for each placement.
func parseImages(htmlContent string, pageIndex int) []model.ImageRegion {
	var images []model.ImageRegion
	for i, m := range imgRe.FindAllStringSubmatch(htmlContent, -1) {
		style := m[1]
		b64 := strings.Join(strings.Fields(m[2]), "")

		left, hasLeft := styleFloat(style, "left")
		top, hasTop := styleFloat(style, "top")
		width, _ := styleFloat(style, "width")
		height, _ := styleFloat(style, "height")

		bbox := model.Rect{X0: left, Y0: top, X1: left + width, Y1: top + height}
		if !hasLeft || !hasTop {
			bbox = model.Rect{Y0: model.PosInf}
		}

		images = append(images, model.ImageRegion{
			Index:  i,
			Xref:   pageIndex*100000 + i,
			Bbox:   bbox,
			Pixmap: decodeBase64Loose(b64),
		})
	}
	return images
}

func styleFloat(style, prop string) (float64, bool) {
	re := regexp.MustCompile(prop + `\s*:\s*([0-9.]+)pt`)
	m := re.FindStringSubmatch(style)
	if m == nil {
		return 0, false
	}
	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func cleanText(fragment string) string {
	text := tagRe.ReplaceAllString(fragment, "")
	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	return strings.TrimSpace(text)
}

func decodeBase64Loose(s string) []byte {
	padded := s
	if m := len(padded) % 4; m != 0 {
		padded += strings.Repeat("=", 4-m)
	}
	data, err := base64.StdEncoding.DecodeString(padded)
	if err != nil {
		return nil
	}
	return data
}
