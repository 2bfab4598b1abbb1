package imageproc

import (
	"bytes"
	"fmt"
	"io"

	"github.com/disintegration/imaging"
)

// DetectFormat inspects the raw bytes and returns the image format:
// "jpeg", "png", "gif", "bmp", or "" if unknown.
func DetectFormat(data []byte) string {
	// JPEG: starts with FF D8 FF
	if len(data) >= 3 && data[0] == 0xFF && data[1] == 0xD8 && data[2] == 0xFF {
		return "jpeg"
	}
	// PNG: starts with 89 50 4E 47 0D 0A 1A 0A
	if len(data) >= 8 && bytes.Equal(data[:8], []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}) {
		return "png"
	}
	// GIF: starts with GIF87a or GIF89a
	if len(data) >= 6 && (bytes.HasPrefix(data, []byte("GIF87a")) || bytes.HasPrefix(data, []byte("GIF89a"))) {
		return "gif"
	}
	// BMP: starts with BM
	if len(data) >= 14 && data[0] == 'B' && data[1] == 'M' {
		return "bmp"
	}
	return ""
}

// FitWithin reads an image and shrinks it so that neither edge exceeds maxDim,
// preserving aspect ratio. It never enlarges. A maxDim of 0 returns the input
// unchanged. GIFs pass through as-is so animation is not lost.
func FitWithin(src io.Reader, maxDim int) ([]byte, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("reading source: %w", err)
	}
	if maxDim <= 0 {
		return data, nil
	}

	format := DetectFormat(data)
	switch format {
	case "gif":
		return data, nil
	case "":
		return nil, fmt.Errorf("unsupported or unrecognized image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		// Already fits; do not re-encode.
		return data, nil
	}
	img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)

	var out bytes.Buffer
	switch format {
	case "jpeg":
		err = imaging.Encode(&out, img, imaging.JPEG, imaging.JPEGQuality(85))
	case "png":
		err = imaging.Encode(&out, img, imaging.PNG)
	case "bmp":
		err = imaging.Encode(&out, img, imaging.BMP)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}
	return out.Bytes(), nil
}
