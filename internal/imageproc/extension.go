package imageproc

import "strings"

// Extension is a recognised image file suffix, lower-case and without the dot.
type Extension string

const (
	PNG  Extension = "png"
	JPG  Extension = "jpg"
	JPEG Extension = "jpeg"
	GIF  Extension = "gif"
	BMP  Extension = "bmp"
)

// allowed is the fixed set of suffixes the service stores and serves.
var allowed = map[Extension]string{
	PNG:  "image/png",
	JPG:  "image/jpeg",
	JPEG: "image/jpeg",
	GIF:  "image/gif",
	BMP:  "image/bmp",
}

// ExtensionOf returns the lower-cased segment after the last '.' in filename.
// ok is false when the name contains no '.'.
func ExtensionOf(filename string) (ext Extension, ok bool) {
	i := strings.LastIndexByte(filename, '.')
	if i < 0 {
		return "", false
	}
	return Extension(strings.ToLower(filename[i+1:])), true
}

// Allowed reports whether filename carries a suffix from the allowed set.
func Allowed(filename string) bool {
	ext, ok := ExtensionOf(filename)
	if !ok {
		return false
	}
	_, ok = allowed[ext]
	return ok
}

// ContentType maps filename's suffix to its MIME type.
// Names outside the allowed set map to application/octet-stream.
func ContentType(filename string) string {
	ext, _ := ExtensionOf(filename)
	if ct, ok := allowed[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// AllowedExtensions lists the allowed suffixes in a stable order.
func AllowedExtensions() []Extension {
	return []Extension{PNG, JPG, JPEG, GIF, BMP}
}
