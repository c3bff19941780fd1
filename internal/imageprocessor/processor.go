package imageprocessor

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

// ImageSize is a bounding box; images are scaled down to fit, never up.
type ImageSize struct {
	Name   string
	Width  int
	Height int
}

// SizeLogo bounds brand logos.
var SizeLogo = ImageSize{Name: "logo", Width: 400, Height: 400}

// Result is an encoded image ready for storage.
type Result struct {
	Data        *bytes.Buffer
	Extension   string
	ContentType string
	Width       int
	Height      int
}

type Processor struct {
	quality int // JPEG quality (1-100)
}

func NewProcessor(quality int) *Processor {
	if quality <= 0 || quality > 100 {
		quality = 85
	}
	return &Processor{
		quality: quality,
	}
}

// Process decodes jpeg/png/gif/webp, fits it into size and re-encodes.
// JPEG input stays JPEG; everything else becomes PNG to keep transparency.
func (p *Processor) Process(reader io.Reader, size ImageSize) (*Result, error) {
	img, format, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	resized := fit(img, size.Width, size.Height)
	bounds := resized.Bounds()

	result := &Result{
		Data:   &bytes.Buffer{},
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}

	if format == "jpeg" {
		if err := jpeg.Encode(result.Data, resized, &jpeg.Options{Quality: p.quality}); err != nil {
			return nil, fmt.Errorf("failed to encode JPEG: %w", err)
		}
		result.Extension = ".jpg"
		result.ContentType = "image/jpeg"
		return result, nil
	}

	if err := png.Encode(result.Data, resized); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	result.Extension = ".png"
	result.ContentType = "image/png"
	return result, nil
}

// fit scales img into maxWidth x maxHeight keeping the aspect ratio.
func fit(img image.Image, maxWidth, maxHeight int) image.Image {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if width <= maxWidth && height <= maxHeight {
		return img
	}

	ratio := float64(width) / float64(height)
	newWidth := maxWidth
	newHeight := maxHeight

	if float64(maxWidth)/float64(maxHeight) > ratio {
		newWidth = int(float64(maxHeight) * ratio)
	} else {
		newHeight = int(float64(maxWidth) / ratio)
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	return dst
}
