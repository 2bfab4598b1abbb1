// Package images implements the upload and serve operations of the image store
// on top of a storage.Storage. Failures are reported as *Error values carrying a
// Kind, which the HTTP layer maps to a status code.
package images

import (
	"errors"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/leca/image-store/internal/imageproc"
	"github.com/leca/image-store/internal/model"
	"github.com/leca/image-store/internal/storage"
)

// Service validates and persists images in a flat directory.
type Service struct {
	store storage.Storage
}

// NewService creates a Service backed by store.
func NewService(store storage.Storage) *Service {
	return &Service{store: store}
}

// Image is an open stored image ready to be streamed.
type Image struct {
	model.StoredImage
	ContentType string
	Body        io.ReadCloser
}

// BaseName strips any directory component from a client supplied filename,
// treating both '/' and '\' as separators.
func BaseName(filename string) string {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	return filename
}

// Upload stores data under the base component of filename, replacing any
// previous image of the same name.
func (s *Service) Upload(filename string, data io.Reader) (model.StoredImage, error) {
	const op = "upload"

	if filename == "" {
		return model.StoredImage{}, invalid(op, "", "no selected file")
	}
	name := BaseName(filename)
	if name == "" || name == "." || name == ".." {
		return model.StoredImage{}, invalid(op, filename, "invalid file name")
	}
	if !imageproc.Allowed(name) {
		return model.StoredImage{}, invalid(op, name, "invalid file type")
	}

	if existed, err := s.store.Exists(name); err == nil && existed {
		slog.Debug("overwriting stored image", "filename", name)
	}

	n, err := s.store.Store(name, data)
	if err != nil {
		if errors.Is(err, storage.ErrInvalidName) {
			return model.StoredImage{}, invalid(op, name, "invalid file name")
		}
		return model.StoredImage{}, &Error{Kind: KindInternal, Op: op, Name: name, Message: "failed to store image", Err: err}
	}

	return model.StoredImage{Filename: name, Size: n}, nil
}

// Open looks up a stored image. Existence is checked before the extension, so
// a missing file is reported as KindNotFound whatever its name.
// The caller must close the returned Image's Body.
func (s *Service) Open(name string) (*Image, error) {
	const op = "serve"

	rc, size, err := s.store.Retrieve(name)
	switch {
	case errors.Is(err, storage.ErrInvalidName):
		return nil, invalid(op, name, "invalid image path")
	case errors.Is(err, storage.ErrNotFound):
		return nil, &Error{Kind: KindNotFound, Op: op, Name: name, Message: "image not found"}
	case err != nil:
		return nil, &Error{Kind: KindInternal, Op: op, Name: name, Message: "error serving image", Err: err}
	}

	if !imageproc.Allowed(name) {
		rc.Close()
		return nil, invalid(op, name, "invalid file type")
	}

	return &Image{
		StoredImage: model.StoredImage{Filename: path.Base(name), Size: size},
		ContentType: imageproc.ContentType(name),
		Body:        rc,
	}, nil
}
