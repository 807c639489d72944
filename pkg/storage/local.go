package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore serves documents from a directory on disk. Used in development
// and in tests.
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	clean := filepath.Clean(name)
	if strings.Contains(clean, "..") {
		return nil, fmt.Errorf("invalid document name: %s", name)
	}
	f, err := os.Open(filepath.Join(s.baseDir, clean))
	if err != nil {
		return nil, fmt.Errorf("open document %s: %w", name, err)
	}
	return f, nil
}
