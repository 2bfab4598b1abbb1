package handler

import (
	"errors"
	"net/http"

	"github.com/leca/image-store/internal/api"
	"github.com/leca/image-store/internal/images"
)

// Handler holds dependencies for HTTP handlers.
type Handler struct {
	Images *images.Service
}

// writeError translates a service error into the matching HTTP response.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var e *images.Error
	if !errors.As(err, &e) {
		api.InternalError(w, r, err)
		return
	}
	switch e.Kind {
	case images.KindInvalid:
		api.BadRequest(w, e.Message)
	case images.KindNotFound:
		api.NotFound(w, e.Message)
	default:
		api.InternalError(w, r, err)
	}
}
