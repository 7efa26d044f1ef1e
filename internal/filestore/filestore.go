// Package filestore implements the FileStore collaborator: upload
// persistence, metadata lookup, listing, and deletion for files the
// conversion API accepts.
package filestore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adverant/nexus/pdf2md/internal/errors"
)

// allowedExtensions is the upload allow-list; anything else is rejected at
// Save with InvalidArgument.
var allowedExtensions = map[string]string{
	".pdf": "pdf",
	".txt": "txt",
	".doc": "doc",
	".docx": "docx",
}

// FileMetadata describes one stored file.
type FileMetadata struct {
	FileID           string    `json:"file_id"`
	OriginalFilename string    `json:"original_filename"`
	StoredPath       string    `json:"stored_path"`
	FileSize         int64     `json:"file_size"`
	FileType         string    `json:"file_type"`
	UploadedAt       time.Time `json:"uploaded_at"`
}

// Store persists uploaded files under a root directory, keyed by a
// generated file id, and tracks their metadata in memory.
type Store struct {
	mu      sync.RWMutex
	rootDir string
	files   map[string]FileMetadata
}

// New constructs a Store rooted at dir, creating it if necessary.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to create upload dir: %s", dir), err)
	}
	return &Store{rootDir: dir, files: make(map[string]FileMetadata)}, nil
}

// Save validates the extension, persists the file under a generated id, and
// records its metadata. It never mutates originalName's extension case.
func (s *Store) Save(r io.Reader, originalName string) (FileMetadata, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	fileType, ok := allowedExtensions[ext]
	if !ok {
		return FileMetadata{}, errors.NewInvalidArgumentError("文件类型不允许")
	}

	fileID := uuid.NewString()
	storedName := fileID + ext
	storedPath := filepath.Join(s.rootDir, storedName)

	out, err := os.Create(storedPath)
	if err != nil {
		return FileMetadata{}, errors.NewIOError("failed to create stored file", err)
	}
	defer out.Close()

	written, err := io.Copy(out, r)
	if err != nil {
		return FileMetadata{}, errors.NewIOError("failed to write stored file", err)
	}

	meta := FileMetadata{
		FileID:           fileID,
		OriginalFilename: originalName,
		StoredPath:       storedPath,
		FileSize:         written,
		FileType:         fileType,
		UploadedAt:       time.Now(),
	}

	s.mu.Lock()
	s.files[fileID] = meta
	s.mu.Unlock()

	return meta, nil
}

// Info returns the metadata for fileID, or NotFound if unknown.
func (s *Store) Info(fileID string) (FileMetadata, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	meta, ok := s.files[fileID]
	if !ok {
		return FileMetadata{}, errors.NewNotFoundError(fmt.Sprintf("file not found: %s", fileID), nil)
	}
	return meta, nil
}

// Delete removes a stored file and its metadata.
func (s *Store) Delete(fileID string) error {
	s.mu.Lock()
	meta, ok := s.files[fileID]
	if ok {
		delete(s.files, fileID)
	}
	s.mu.Unlock()

	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("file not found: %s", fileID), nil)
	}
	if err := os.Remove(meta.StoredPath); err != nil && !os.IsNotExist(err) {
		return errors.NewIOError("failed to remove stored file", err)
	}
	return nil
}

// List returns all tracked files' metadata, newest first.
func (s *Store) List() []FileMetadata {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]FileMetadata, 0, len(s.files))
	for _, meta := range s.files {
		out = append(out, meta)
	}
	sortByUploadedAtDesc(out)
	return out
}

func sortByUploadedAtDesc(metas []FileMetadata) {
	for i := 1; i < len(metas); i++ {
		for j := i; j > 0 && metas[j].UploadedAt.After(metas[j-1].UploadedAt); j-- {
			metas[j], metas[j-1] = metas[j-1], metas[j]
		}
	}
}
