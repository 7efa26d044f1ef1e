package fusion

import (
	"fmt"

	"github.com/adverant/nexus/pdf2md/internal/model"
	"github.com/adverant/nexus/pdf2md/internal/ocr"
)

// renderImageBlock runs OCR on one image's pixmap and renders the Markdown
// block for it — Step I. OCR failure never propagates past this function:
// it is reported back to the caller for the page's error list but always
// yields a renderable failure-marker block.
func renderImageBlock(recognizer ocr.Recognizer, img model.ImageRegion, pageNum, imageIndex int) (string, error) {
	heading := fmt.Sprintf("**[Page %d, Image %d]**", pageNum, imageIndex+1)

	if len(img.Pixmap) == 0 {
		return fmt.Sprintf("%s\n\n图片 %d 处理失败: %s", heading, imageIndex, "no pixmap data"), fmt.Errorf("no pixmap data")
	}

	decoded, err := ocr.DecodeBytes(img.Pixmap)
	if err != nil {
		return fmt.Sprintf("%s\n\n图片 %d 处理失败: %s", heading, imageIndex, err.Error()), err
	}

	text, err := recognizer.Recognize(decoded)
	if err != nil {
		return fmt.Sprintf("%s\n\n图片 %d 处理失败: %s", heading, imageIndex, err.Error()), err
	}

	block := fmt.Sprintf("%s\n\n```\nOCR 内容 [Page %d, Image %d]:\n%s\n```", heading, pageNum, imageIndex+1, text)
	return block, nil
}
