// Package storage provides the snapshot store adapters: a JSON file
// (the default) and a SQLite blob table.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"tally/internal/ledger"
)

// FileStore keeps the snapshot in a single JSON file named after the
// versioned snapshot key.
type FileStore struct {
	path string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{path: filepath.Join(dir, ledger.SnapshotKey+".json")}, nil
}

// Read returns the snapshot bytes, or nil when the file does not exist.
func (s *FileStore) Read(_ context.Context) ([]byte, error) {
	blob, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	return blob, nil
}

// Write replaces the snapshot atomically: written to a temp file in the
// same directory, then renamed over the old one.
func (s *FileStore) Write(_ context.Context, blob []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(s.path), "."+filepath.Base(s.path)+".*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(blob); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// Path reports where the snapshot lives on disk.
func (s *FileStore) Path() string {
	return s.path
}
