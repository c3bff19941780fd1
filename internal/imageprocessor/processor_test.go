package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solid(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 200, G: 20, B: 20, A: 255})
		}
	}
	return img
}

func TestProcessScalesDownKeepingRatio(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, png.Encode(&src, solid(1000, 500)))

	res, err := NewProcessor(80).Process(&src, SizeLogo)
	require.NoError(t, err)

	assert.Equal(t, 400, res.Width)
	assert.Equal(t, 200, res.Height)
	assert.Equal(t, "image/png", res.ContentType)

	decoded, format, err := image.Decode(res.Data)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 400, decoded.Bounds().Dx())
}

func TestProcessKeepsSmallJPEG(t *testing.T) {
	var src bytes.Buffer
	require.NoError(t, jpeg.Encode(&src, solid(120, 80), nil))

	res, err := NewProcessor(0).Process(&src, SizeLogo)
	require.NoError(t, err)

	assert.Equal(t, 120, res.Width)
	assert.Equal(t, 80, res.Height)
	assert.Equal(t, ".jpg", res.Extension)
	assert.Equal(t, "image/jpeg", res.ContentType)
}

func TestProcessRejectsGarbage(t *testing.T) {
	_, err := NewProcessor(85).Process(strings.NewReader("not an image"), SizeLogo)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}
