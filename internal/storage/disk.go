package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const chunkSize = 1024

// Store persists uploaded recordings. PathFor is called first so the
// destination path can be stored on the owning record before any byte is
// written.
type Store interface {
	PathFor(filename string) string
	Save(path string, r io.Reader) error
	Remove(path string) error
}

type diskStore struct {
	dir string
}

// NewDiskStore creates the storage directory if needed.
func NewDiskStore(dir string) (Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage dir: %w", err)
	}
	return &diskStore{dir: dir}, nil
}

// PathFor derives a unique destination path: a fresh uuid joined with the
// original filename, inside the storage directory.
func (s *diskStore) PathFor(filename string) string {
	return filepath.Join(s.dir, uuid.New().String()+"_"+filepath.Base(filename))
}

// Save streams r to path in fixed-size chunks, syncing before returning so
// the write is durable once acknowledged.
func (s *diskStore) Save(path string, r io.Reader) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(out, r, buf); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := out.Sync(); err != nil {
		return fmt.Errorf("failed to sync file: %w", err)
	}
	return nil
}

func (s *diskStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
