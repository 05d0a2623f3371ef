package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// noisyPNG encodes a random-noise RGBA image. Noise defeats PNG compression,
// so side controls the encoded size fairly directly (~4 bytes per pixel).
func noisyPNG(t *testing.T, side int) []byte {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.Intn(256))
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func smallPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 30, B: 30, A: 128})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPrepareRejectsOversizedUpload(t *testing.T) {
	data := smallPNG(t)

	// Declared size over the limit is enough to reject, regardless of type.
	_, err := Prepare(data, "image/png", 6<<20, "huge.png", "products/main")
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SizeExceeded, verr.Kind)
	assert.Contains(t, verr.Error(), "too large")

	// Actual payload over the limit as well.
	big := make([]byte, 6<<20)
	_, err = Prepare(big, "image/png", int64(len(big)), "huge.png", "products/main")
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, SizeExceeded, verr.Kind)
}

func TestPrepareRejectsUnsupportedType(t *testing.T) {
	data := smallPNG(t)

	for _, mime := range []string{"image/gif", "application/pdf", "text/plain", ""} {
		_, err := Prepare(data, mime, int64(len(data)), "file.gif", "products/gallery")
		var verr *ValidationError
		require.True(t, errors.As(err, &verr), "mime %q", mime)
		assert.Equal(t, UnsupportedType, verr.Kind)
	}
}

func TestPrepareSmallImagePassesThroughUntouched(t *testing.T) {
	data := smallPNG(t)

	proc, err := Prepare(data, "image/png", int64(len(data)), "bat.png", "products/main")
	require.NoError(t, err)

	assert.Equal(t, data, proc.Data)
	assert.Equal(t, "image/png", proc.ContentType)
	assert.Equal(t, "bat.png", proc.Filename)
	assert.True(t, strings.HasPrefix(proc.Path, "products/main/"))
	assert.True(t, strings.HasSuffix(proc.Path, ".png"))
}

func TestPrepareReencodesLargeImageAsJPEG(t *testing.T) {
	data := noisyPNG(t, 900)
	require.Greater(t, len(data), CompressOverBytes, "fixture must exceed the compression threshold")
	require.Less(t, len(data), MaxUploadBytes, "fixture must stay under the rejection limit")

	proc, err := Prepare(data, "image/png", int64(len(data)), "grain-shot.png", "products/edition")
	require.NoError(t, err)

	assert.Equal(t, "image/jpeg", proc.ContentType)
	assert.True(t, strings.HasSuffix(proc.Path, ".jpg"))

	// The output must decode as a plain JPEG.
	img, err := jpeg.Decode(bytes.NewReader(proc.Data))
	require.NoError(t, err)
	assert.Equal(t, 900, img.Bounds().Dx())
}

func TestPrepareFallsBackOnUndecodableBytes(t *testing.T) {
	// Correct MIME, over the threshold, but not an actual image: compression
	// fails and the original bytes are kept.
	garbage := bytes.Repeat([]byte{0xAB}, CompressOverBytes+1024)

	proc, err := Prepare(garbage, "image/png", int64(len(garbage)), "broken.png", "products/gallery")
	require.NoError(t, err)

	assert.Equal(t, garbage, proc.Data)
	assert.Equal(t, "image/png", proc.ContentType)
	assert.True(t, strings.HasSuffix(proc.Path, ".png"))
}

func TestPreparePathsAreUnique(t *testing.T) {
	data := smallPNG(t)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		proc, err := Prepare(data, "image/png", int64(len(data)), "bat.png", "products/gallery")
		require.NoError(t, err)
		assert.False(t, seen[proc.Path], "path %s repeated", proc.Path)
		seen[proc.Path] = true
	}
}

func TestExtensionFallback(t *testing.T) {
	data := smallPNG(t)
	proc, err := Prepare(data, "image/png", int64(len(data)), "noextension", "products/main")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(proc.Path, ".bin"))
}
