package storage

import (
	"context"
	"io"
)

// Storage persists uploaded photo blobs under relative paths.
// Implementations own the mapping from path to physical location.
type Storage interface {
	// Save writes content at path, creating parent directories as needed.
	Save(ctx context.Context, path string, content io.Reader) error

	// Get opens the blob at path for reading. The caller closes it.
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes the blob at path. Deleting a missing blob is not
	// an error.
	Delete(ctx context.Context, path string) error
}
