package storage

import (
	"errors"
	"io"
)

var (
	// ErrNotFound is returned when no regular file exists under the requested name.
	ErrNotFound = errors.New("image not found")

	// ErrInvalidName is returned for names that are not local to the storage root.
	ErrInvalidName = errors.New("invalid image name")
)

// Storage defines the interface for image blob storage.
type Storage interface {
	// Store writes image data under name, replacing any existing file,
	// and returns the number of bytes written. name must be a bare filename.
	Store(name string, data io.Reader) (int64, error)

	// Retrieve returns a ReadCloser for the stored image data and its size.
	// name may contain '/' separated sub-paths below the root.
	Retrieve(name string) (io.ReadCloser, int64, error)

	// Exists checks whether a regular file is stored under name.
	Exists(name string) (bool, error)
}
