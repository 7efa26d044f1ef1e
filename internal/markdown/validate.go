// Package markdown provides a well-formedness check for produced
// conversion artifacts, parsing them with goldmark to catch structurally
// broken output before it is handed back to a caller.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"

	"github.com/adverant/nexus/pdf2md/internal/logging"
)

var log = logging.NewLogger("markdown")

// Validate renders content with goldmark and reports whether rendering
// succeeded with non-empty output (empty content is accepted as valid).
// It never mutates content; it exists purely as a sanity
// check invoked after Convert writes an artifact.
func Validate(content []byte) bool {
	var buf bytes.Buffer
	if err := goldmark.Convert(content, &buf); err != nil {
		log.Warn("markdown artifact failed goldmark validation", "error", err.Error())
		return false
	}
	return buf.Len() > 0 || len(content) == 0
}
