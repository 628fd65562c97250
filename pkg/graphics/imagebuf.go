package graphics

import (
	"bytes"
	"fmt"
	"image"

	// Registered decoders for ImageBufFromBytes.
	_ "image/jpeg"
	_ "image/png"
)

// ImageBuf is an immutable, decoded image held by widgets and shipped
// across threads as a promise payload. The zero-size empty buffer is a
// valid value and paints nothing.
type ImageBuf struct {
	img image.Image
}

// EmptyImageBuf returns a buffer with no pixels.
func EmptyImageBuf() *ImageBuf {
	return &ImageBuf{}
}

// ImageBufFromImage wraps an already-decoded image.
func ImageBufFromImage(img image.Image) *ImageBuf {
	return &ImageBuf{img: img}
}

// ImageBufFromBytes decodes encoded image data (PNG or JPEG).
func ImageBufFromBytes(data []byte) (*ImageBuf, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	_ = format
	return &ImageBuf{img: img}, nil
}

// Image returns the decoded image, or nil for the empty buffer.
func (b *ImageBuf) Image() image.Image {
	if b == nil {
		return nil
	}
	return b.img
}

// Size returns the pixel dimensions of the buffer.
func (b *ImageBuf) Size() Size {
	if b == nil || b.img == nil {
		return Size{}
	}
	bounds := b.img.Bounds()
	return Size{Width: float64(bounds.Dx()), Height: float64(bounds.Dy())}
}

// IsEmpty reports whether the buffer holds no pixels.
func (b *ImageBuf) IsEmpty() bool {
	return b == nil || b.img == nil || b.Size().IsEmpty()
}
