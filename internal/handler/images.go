package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/leca/image-store/internal/api"
	"github.com/leca/image-store/internal/model"
)

// multipartMemory is how much of a multipart body is buffered in memory
// before parts spill to temporary files.
const multipartMemory = 10 << 20

// UploadImage handles POST /api/upload -- multipart upload under the "file" field.
func (h *Handler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) {
			api.TooLarge(w, "request body too large")
			return
		}
		api.BadRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		// A part sent with an empty filename arrives as a plain form value.
		if _, ok := r.MultipartForm.Value["file"]; ok {
			api.BadRequest(w, "no selected file")
			return
		}
		api.BadRequest(w, "no file part")
		return
	}
	defer file.Close()

	stored, err := h.Images.Upload(header.Filename, file)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	slog.Info("image uploaded", "filename", stored.Filename, "size", stored.Size)

	p := model.RetrievalPath(stored.Filename)
	w.Header().Set("Location", (&url.URL{Path: p}).EscapedPath())
	api.WriteJSON(w, http.StatusCreated, model.UploadResult{
		Message: "File uploaded successfully",
		Path:    p,
	})
}

// ServeImage handles GET /api/images/* -- streams the stored bytes inline with
// a content type inferred from the extension.
func (h *Handler) ServeImage(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "*")
	if r.URL.RawPath != "" {
		unescaped, err := url.PathUnescape(name)
		if err != nil {
			api.BadRequest(w, "invalid image path")
			return
		}
		name = unescaped
	}

	img, err := h.Images.Open(name)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	defer img.Body.Close()

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.FormatInt(img.Size, 10))
	cd := mime.FormatMediaType("inline", map[string]string{"filename": img.Filename})
	if cd == "" {
		cd = "inline"
	}
	w.Header().Set("Content-Disposition", cd)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)

	if _, err := io.Copy(w, img.Body); err != nil {
		slog.Warn("ServeImage: failed to stream response", "filename", name, "error", err)
	}
}
