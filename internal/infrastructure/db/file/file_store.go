// Package file stores the state document as a JSON file on local disk, the
// closest analogue of browser local storage.
package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/kinshiplabs/tracker/internal/core/domain"
)

// DocumentStore keeps the document at <dir>/<key>.json.
type DocumentStore struct {
	dir  string
	path string
}

// NewDocumentStore creates dir if needed.
func NewDocumentStore(dir, key string) (*DocumentStore, error) {
	if key == "" {
		return nil, fmt.Errorf("file store: key required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("file store: create dir: %w", err)
	}
	return &DocumentStore{dir: dir, path: filepath.Join(dir, key+".json")}, nil
}

// Path is the location of the document.
func (s *DocumentStore) Path() string {
	return s.path
}

func (s *DocumentStore) Read(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.ErrDocumentMissing
	}
	if err != nil {
		return nil, fmt.Errorf("file store: read: %w", err)
	}
	return data, nil
}

// Write replaces the document through a temp file and rename so a crash never
// leaves a half-written document behind.
func (s *DocumentStore) Write(_ context.Context, doc []byte) error {
	tmp, err := os.CreateTemp(s.dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("file store: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(doc); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file store: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file store: close: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("file store: rename: %w", err)
	}
	return nil
}

// Ping checks the directory is still there.
func (s *DocumentStore) Ping(_ context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("file store: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("file store: %s is not a directory", s.dir)
	}
	return nil
}
