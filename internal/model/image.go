package model

// StoredImage describes an image held in the storage directory.
// The filename is the storage key; the content type is derived from it on demand.
type StoredImage struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
}

// UploadResult is returned to clients after a successful upload.
type UploadResult struct {
	Message string `json:"message"`
	Path    string `json:"path"`
}

// RetrievalPath returns the canonical URL path that serves the named image.
func RetrievalPath(filename string) string {
	return "/api/images/" + filename
}
