// Package imagestore persists record image attachments as opaque byte blobs
// keyed by generated filenames. Two backends exist: a flat local directory
// (the default) and an S3-compatible object store.
package imagestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotExist is returned by Get when no object with the given name exists.
// The service layer translates it to domain.ErrNotFound.
var ErrNotExist = errors.New("imagestore: object does not exist")

// Store is the persistence interface for image attachments.
// Names are generated by the caller and are flat — no directory structure.
type Store interface {
	// Put persists size bytes from r under name, replacing any existing
	// object. Implementations must never leave a partially written object
	// readable under name.
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) error

	// Get opens the object stored under name for reading.
	// Returns ErrNotExist if no such object is stored.
	Get(ctx context.Context, name string) (io.ReadCloser, error)
}
