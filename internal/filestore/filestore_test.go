package filestore

import (
	"strings"
	"testing"

	apperrors "github.com/adverant/nexus/pdf2md/internal/errors"
)

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err = store.Save(strings.NewReader("hi"), "image.png")
	if err == nil {
		t.Fatalf("expected an error for a disallowed extension")
	}
	if code, ok := apperrors.Code(err); !ok || code != apperrors.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v (ok=%v)", code, ok)
	}
}

func TestSaveAcceptsPDFAndTracksMetadata(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	meta, err := store.Save(strings.NewReader("%PDF-1.4 content"), "report.PDF")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.FileType != "pdf" {
		t.Fatalf("expected file type pdf regardless of extension case, got %q", meta.FileType)
	}
	if meta.OriginalFilename != "report.PDF" {
		t.Fatalf("expected original filename preserved, got %q", meta.OriginalFilename)
	}
	if meta.FileSize != int64(len("%PDF-1.4 content")) {
		t.Fatalf("unexpected file size: %d", meta.FileSize)
	}
}

func TestInfoUnknownFileIsNotFound(t *testing.T) {
	store, _ := New(t.TempDir())
	if _, err := store.Info("missing"); err == nil {
		t.Fatalf("expected an error for an unknown file id")
	}
}

func TestDeleteRemovesFileAndMetadata(t *testing.T) {
	store, _ := New(t.TempDir())
	meta, err := store.Save(strings.NewReader("data"), "a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Delete(meta.FileID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Info(meta.FileID); err == nil {
		t.Fatalf("expected Info to fail after Delete")
	}
	if err := store.Delete(meta.FileID); err == nil {
		t.Fatalf("expected a second Delete to fail with NotFound")
	}
}

func TestListReturnsAllTrackedFiles(t *testing.T) {
	store, _ := New(t.TempDir())
	if _, err := store.Save(strings.NewReader("a"), "a.pdf"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Save(strings.NewReader("b"), "b.txt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	files := store.List()
	if len(files) != 2 {
		t.Fatalf("expected 2 tracked files, got %d", len(files))
	}
}

func TestUniqueFileIDsAcrossSaves(t *testing.T) {
	store, _ := New(t.TempDir())
	a, err := store.Save(strings.NewReader("a"), "a.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := store.Save(strings.NewReader("b"), "b.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.FileID == b.FileID {
		t.Fatalf("expected distinct file ids for separate uploads")
	}
}
