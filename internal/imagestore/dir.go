package imagestore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DirStore stores attachments as files in a single flat directory.
// Writes go to a temp file in the same directory and are renamed into place,
// so a crashed upload never leaves a half-written file servable.
type DirStore struct {
	dir string
}

// NewDirStore creates the directory if needed and returns a DirStore over it.
func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("imagestore.NewDirStore: %w", err)
	}
	return &DirStore{dir: dir}, nil
}

// Put writes the object to a temp file and renames it to name.
// The size and contentType arguments are ignored; the filesystem needs neither.
func (s *DirStore) Put(ctx context.Context, name string, r io.Reader, _ int64, _ string) error {
	// Names are caller-generated UUIDs, but flatten anyway so a hostile
	// name can never escape the directory.
	name = filepath.Base(name)

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("imagestore.DirStore.Put: create temp: %w", err)
	}
	defer os.Remove(tmp.Name()) // no-op after a successful rename

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("imagestore.DirStore.Put: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("imagestore.DirStore.Put: close: %w", err)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("imagestore.DirStore.Put: rename: %w", err)
	}
	return nil
}

// Get opens the file stored under name.
func (s *DirStore) Get(ctx context.Context, name string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotExist
		}
		return nil, fmt.Errorf("imagestore.DirStore.Get: %w", err)
	}
	return f, nil
}
