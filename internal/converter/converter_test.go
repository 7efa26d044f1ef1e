package converter

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	apperrors "github.com/adverant/nexus/pdf2md/internal/errors"
)

func TestConvertMissingFileIsNotFound(t *testing.T) {
	c := New(nil)
	_, err := c.Convert(filepath.Join(t.TempDir(), "missing.pdf"), Options{})
	if err == nil {
		t.Fatalf("expected an error for a missing file")
	}
	if code, ok := apperrors.Code(err); !ok || code != apperrors.NotFound {
		t.Fatalf("expected NotFound, got %v (ok=%v)", code, ok)
	}
}

func TestConvertNonPDFExtensionIsInvalidArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	c := New(nil)
	_, err := c.Convert(path, Options{})
	if err == nil {
		t.Fatalf("expected an error for a non-PDF extension")
	}
	if code, ok := apperrors.Code(err); !ok || code != apperrors.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v (ok=%v)", code, ok)
	}
}

func TestConvertEndPageBeforeStartPageIsInvalidArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	c := New(nil)
	_, err := c.Convert(path, Options{StartPage: 5, EndPage: 2})
	if err == nil {
		t.Fatalf("expected an error for endPage before startPage")
	}
	if code, ok := apperrors.Code(err); !ok || code != apperrors.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v (ok=%v)", code, ok)
	}
}

func TestConvertNegativeStartPageIsInvalidArgument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 placeholder"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	c := New(nil)
	_, err := c.Convert(path, Options{StartPage: -5})
	if err == nil {
		t.Fatalf("expected an error for a negative startPage")
	}
	if code, ok := apperrors.Code(err); !ok || code != apperrors.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v (ok=%v)", code, ok)
	}
}

func TestDefaultOutputPathUsesStemAndTimestampSuffix(t *testing.T) {
	out := defaultOutputPath("/tmp/docs/report.pdf")
	dir := filepath.Dir(out)
	base := filepath.Base(out)
	if dir != "/tmp/docs" {
		t.Fatalf("expected output alongside the source file, got dir %q", dir)
	}
	if filepath.Ext(base) != ".md" {
		t.Fatalf("expected a .md artifact, got %q", base)
	}
	if !strings.HasPrefix(base, "report_converted_") {
		t.Fatalf("expected stem-prefixed artifact name, got %q", base)
	}
}

func TestWriteArtifactCreatesParentDirectories(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "nested", "deep", "artifact.md")
	if err := writeArtifact(out, "# hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("failed to read written artifact: %v", err)
	}
	if string(content) != "# hello" {
		t.Fatalf("got %q", content)
	}
}
