package pixel

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrEmptyImage is wrapped by DecodeError when the container declares a
// zero width or height.
var ErrEmptyImage = errors.New("image has zero width or height")

// ErrNoData is wrapped by DecodeError when the input buffer is empty.
var ErrNoData = errors.New("empty input")

// ErrTooManyPixels is wrapped by DecodeError when the container declares more
// than MaxPixels pixels.
var ErrTooManyPixels = errors.New("image exceeds pixel limit")

// MaxPixels caps width*height accepted by Decode. At 4 bytes per pixel this
// bounds a decoded grid to 256 MiB.
const MaxPixels = 1 << 26

// DecodeError reports that a byte buffer could not be turned into a Grid.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "decode image: " + e.Err.Error() }

func (e *DecodeError) Unwrap() error { return e.Err }

// Decode parses data as any registered raster format and returns the grid and
// the format name reported by the image package ("png", "jpeg", ...).
// On failure the grid is nil and the error is a *DecodeError.
func Decode(data []byte) (*Grid, string, error) {
	if len(data) == 0 {
		return nil, "", &DecodeError{Err: ErrNoData}
	}

	// Check the header first so a zero-sized or oversized image never reaches
	// the decoder.
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", &DecodeError{Err: err}
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, format, &DecodeError{Err: fmt.Errorf("%w: %dx%d", ErrEmptyImage, cfg.Width, cfg.Height)}
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, format, &DecodeError{Err: fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)}
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, format, &DecodeError{Err: err}
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, format, &DecodeError{Err: fmt.Errorf("%w: %dx%d", ErrEmptyImage, b.Dx(), b.Dy())}
	}

	return FromImage(img), format, nil
}
