package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// Compile-time check that FileSystem implements Storage.
var _ Storage = (*FileSystem)(nil)

// FileSystem implements Storage using a single flat directory.
// Files are stored at <basePath>/<name>.
type FileSystem struct {
	basePath string
}

// NewFileSystem creates the directory at basePath if needed and returns
// a FileSystem storage rooted there.
func NewFileSystem(basePath string) (*FileSystem, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("creating storage directory %s: %w", basePath, err)
	}
	return &FileSystem{basePath: basePath}, nil
}

// Root returns the storage directory.
func (fs *FileSystem) Root() string {
	return fs.basePath
}

// localName validates a slash-separated name and converts it to a local
// OS path. Absolute paths, ".." elements, backslashes and NUL bytes are rejected.
func localName(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "\\\x00") {
		return "", ErrInvalidName
	}
	p := filepath.FromSlash(name)
	if !filepath.IsLocal(p) {
		return "", ErrInvalidName
	}
	if p = filepath.Clean(p); p == "." {
		return "", ErrInvalidName
	}
	return p, nil
}

// Store writes data from the reader to disk using atomic write (temp file + rename).
// It returns the number of bytes written.
func (fs *FileSystem) Store(name string, data io.Reader) (int64, error) {
	p, err := localName(name)
	if err != nil {
		return 0, err
	}
	if filepath.Base(p) != p {
		return 0, ErrInvalidName
	}

	// Write to a temp file in the same directory for atomic rename.
	tmp, err := os.CreateTemp(fs.basePath, ".upload-*")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	// Clean up the temp file on any error path.
	defer func() {
		if tmpPath != "" {
			os.Remove(tmpPath)
		}
	}()

	n, err := io.Copy(tmp, data)
	if err != nil {
		tmp.Close()
		return 0, fmt.Errorf("writing data: %w", err)
	}

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return 0, fmt.Errorf("setting permissions: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return 0, fmt.Errorf("closing temp file: %w", err)
	}

	dst := filepath.Join(fs.basePath, p)
	if err := os.Rename(tmpPath, dst); err != nil {
		return 0, fmt.Errorf("renaming temp file to %s: %w", dst, err)
	}

	// Rename succeeded; prevent deferred cleanup from removing the final file.
	tmpPath = ""

	return n, nil
}

// Retrieve opens the stored file and returns it with its size.
// Lookups go through os.Root so symlinks cannot lead outside basePath.
func (fs *FileSystem) Retrieve(name string) (io.ReadCloser, int64, error) {
	p, err := localName(name)
	if err != nil {
		return nil, 0, err
	}

	root, err := os.OpenRoot(fs.basePath)
	if err != nil {
		return nil, 0, fmt.Errorf("opening storage root %s: %w", fs.basePath, err)
	}
	defer root.Close()

	f, err := root.Open(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
			return nil, 0, ErrNotFound
		}
		return nil, 0, fmt.Errorf("opening file %s: %w", p, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("stat file %s: %w", p, err)
	}
	if !info.Mode().IsRegular() {
		f.Close()
		return nil, 0, ErrNotFound
	}
	return f, info.Size(), nil
}

// Exists checks whether a regular file is stored under name.
func (fs *FileSystem) Exists(name string) (bool, error) {
	p, err := localName(name)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(filepath.Join(fs.basePath, p))
	if err == nil {
		return info.Mode().IsRegular(), nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("checking file %s: %w", p, err)
}
