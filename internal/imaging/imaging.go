// Package imaging validates and conditionally re-encodes uploaded product
// images before they are written to object storage.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"strings"

	_ "image/png"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp"
)

const (
	// MaxUploadBytes is the hard upload ceiling. Anything larger is rejected.
	MaxUploadBytes = 5 << 20
	// CompressOverBytes is the threshold above which images are re-encoded
	// as JPEG. The result is not re-checked against any threshold.
	CompressOverBytes = 1 << 20

	jpegQuality = 85
)

var allowedTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// ValidationKind classifies why an image was refused.
type ValidationKind string

const (
	SizeExceeded    ValidationKind = "size_exceeded"
	UnsupportedType ValidationKind = "unsupported_type"
)

// ValidationError is recoverable: the operator fixes the file and resubmits.
type ValidationError struct {
	Kind     ValidationKind
	Filename string
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case SizeExceeded:
		return fmt.Sprintf("%s is too large (max 5MB)", e.Filename)
	case UnsupportedType:
		return fmt.Sprintf("%s has invalid type, only PNG/JPG/WEBP allowed", e.Filename)
	}
	return fmt.Sprintf("%s rejected", e.Filename)
}

// Processed is an image that passed validation and is ready for upload.
type Processed struct {
	Data        []byte
	Filename    string // original client filename
	ContentType string
	Path        string // {folder}/{uuid}.{ext}, globally unique
}

// Prepare validates the upload, re-encodes it as JPEG when it exceeds the
// compression threshold, and assigns a unique storage path under folder.
// declaredSize is the size reported by the upload, checked before any decode.
func Prepare(data []byte, contentType string, declaredSize int64, filename, folder string) (*Processed, error) {
	if declaredSize > MaxUploadBytes || int64(len(data)) > MaxUploadBytes {
		return nil, &ValidationError{Kind: SizeExceeded, Filename: filename}
	}
	if !allowedTypes[strings.ToLower(contentType)] {
		return nil, &ValidationError{Kind: UnsupportedType, Filename: filename}
	}

	out := data
	outType := contentType
	ext := extension(filename)

	if int64(len(data)) > CompressOverBytes {
		if compressed, err := reencodeJPEG(data); err != nil {
			// Compression is best-effort: a decode failure falls back to
			// uploading the original bytes untouched.
			log.Error().Err(err).Str("filename", filename).Msg("image re-encode failed, uploading original")
		} else {
			log.Info().
				Str("filename", filename).
				Int("from_kb", len(data)/1024).
				Int("to_kb", len(compressed)/1024).
				Msg("image compressed")
			out = compressed
			outType = "image/jpeg"
			ext = "jpg"
		}
	}

	return &Processed{
		Data:        out,
		Filename:    filename,
		ContentType: outType,
		Path:        fmt.Sprintf("%s/%s.%s", folder, uuid.New(), ext),
	}, nil
}

// reencodeJPEG decodes any supported format, flattens alpha/palette to plain
// RGB, and re-encodes at fixed quality.
func reencodeJPEG(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	rgb := image.NewRGBA(img.Bounds())
	draw.Draw(rgb, rgb.Bounds(), img, img.Bounds().Min, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, rgb, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	return buf.Bytes(), nil
}

func extension(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 && i < len(filename)-1 {
		return strings.ToLower(filename[i+1:])
	}
	return "bin"
}
