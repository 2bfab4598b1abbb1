package storage

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *FileSystem {
	t.Helper()
	fs, err := NewFileSystem(t.TempDir())
	require.NoError(t, err)
	return fs
}

func TestNewFileSystemCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")

	fs, err := NewFileSystem(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, fs.Root())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore(t *testing.T) {
	fs := newTestFS(t)
	data := []byte("hello, image data")

	n, err := fs.Store("photo.png", bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), n)

	// Verify the file exists on disk at the expected path.
	content, err := os.ReadFile(filepath.Join(fs.basePath, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, data, content)
}

func TestStoreOverwrites(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Store("photo.png", bytes.NewReader([]byte("first version, longer")))
	require.NoError(t, err)
	_, err = fs.Store("photo.png", bytes.NewReader([]byte("second")))
	require.NoError(t, err)

	content, err := os.ReadFile(filepath.Join(fs.basePath, "photo.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), content)
}

func TestStoreLeavesNoTempFiles(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Store("photo.png", bytes.NewReader([]byte("x")))
	require.NoError(t, err)

	entries, err := os.ReadDir(fs.basePath)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "photo.png", entries[0].Name())
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestStoreCleansUpOnWriteError(t *testing.T) {
	fs := newTestFS(t)

	_, err := fs.Store("photo.png", failingReader{})
	require.Error(t, err)

	entries, err := os.ReadDir(fs.basePath)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreRejectsNonBaseNames(t *testing.T) {
	fs := newTestFS(t)

	for _, name := range []string{"", "../escape.png", "sub/dir.png", "/abs.png", `a\b.png`, "."} {
		t.Run(name, func(t *testing.T) {
			_, err := fs.Store(name, bytes.NewReader([]byte("x")))
			assert.ErrorIs(t, err, ErrInvalidName)
		})
	}
}

func TestRetrieve(t *testing.T) {
	fs := newTestFS(t)
	data := []byte("retrieve me")

	_, err := fs.Store("cat.gif", bytes.NewReader(data))
	require.NoError(t, err)

	rc, size, err := fs.Retrieve("cat.gif")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(len(data)), size)
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRetrieveSubdirectory(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, os.MkdirAll(filepath.Join(fs.basePath, "albums"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(fs.basePath, "albums", "beach.jpg"), []byte("sand"), 0644))

	rc, _, err := fs.Retrieve("albums/beach.jpg")
	require.NoError(t, err)
	defer rc.Close()

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, []byte("sand"), got)
}

func TestRetrieveNotFound(t *testing.T) {
	fs := newTestFS(t)

	rc, _, err := fs.Retrieve("missing.png")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, rc)
}

func TestRetrieveDirectoryIsNotFound(t *testing.T) {
	fs := newTestFS(t)
	require.NoError(t, os.Mkdir(filepath.Join(fs.basePath, "folder.png"), 0755))

	_, _, err := fs.Retrieve("folder.png")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRetrieveRejectsTraversal(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.png"), []byte("secret"), 0644))

	fs, err := NewFileSystem(filepath.Join(parent, "images"))
	require.NoError(t, err)

	for _, name := range []string{"../secret.png", "a/../../secret.png", "/etc/passwd", `..\secret.png`} {
		t.Run(name, func(t *testing.T) {
			rc, _, err := fs.Retrieve(name)
			assert.ErrorIs(t, err, ErrInvalidName)
			assert.Nil(t, rc)
		})
	}
}

func TestRetrieveRefusesSymlinkEscape(t *testing.T) {
	parent := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(parent, "secret.png"), []byte("secret"), 0644))

	fs, err := NewFileSystem(filepath.Join(parent, "images"))
	require.NoError(t, err)
	if err := os.Symlink(filepath.Join(parent, "secret.png"), filepath.Join(fs.basePath, "link.png")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	rc, _, err := fs.Retrieve("link.png")
	assert.Error(t, err)
	assert.Nil(t, rc)
}

func TestExists(t *testing.T) {
	fs := newTestFS(t)

	// Should not exist yet.
	exists, err := fs.Exists("photo.bmp")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = fs.Store("photo.bmp", bytes.NewReader([]byte("exists")))
	require.NoError(t, err)

	// Should exist now.
	exists, err = fs.Exists("photo.bmp")
	require.NoError(t, err)
	assert.True(t, exists)
}
