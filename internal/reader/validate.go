package reader

import (
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/adverant/nexus/pdf2md/internal/errors"
	"github.com/adverant/nexus/pdf2md/internal/logging"
)

var validateLog = logging.NewLogger("reader")

// probeFile distinguishes a missing path from a present-but-unparsable one
// before handing the file to go-fitz, so Open can report NotFound vs
// Corrupt per the reader's contract.
func probeFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return errors.NewNotFoundError("PDF file not found: "+path, err)
	}
	if info.IsDir() {
		return errors.NewNotFoundError("path is a directory, not a PDF: "+path, nil)
	}
	if info.Size() == 0 {
		return errors.NewCorruptError(path, nil)
	}
	// pdfcpu's validator is stricter than MuPDF's permissive parser, so a
	// validation failure here is only logged: it informs diagnostics, it
	// does not by itself reject a file go-fitz can still open.
	if err := api.ValidateFile(path, nil); err != nil {
		validateLog.Warn("pdfcpu validation flagged structural issues, deferring to MuPDF", "path", path, "error", err.Error())
	}
	return nil
}
