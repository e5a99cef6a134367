package encoder

import (
	"bytes"
	"fmt"
	"image/png"
	"strings"

	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

// PNGEncoder encodes grids to PNG using Go's standard library.
// The zero value uses png.DefaultCompression.
type PNGEncoder struct {
	CompressionLevel png.CompressionLevel
}

func (e *PNGEncoder) Format() string    { return "png" }
func (e *PNGEncoder) Extension() string { return "png" }
func (e *PNGEncoder) MIMEType() string  { return "image/png" }

func (e *PNGEncoder) Encode(g *pixel.Grid) ([]byte, error) {
	if err := g.Validate(); err != nil {
		return nil, &EncodeError{Format: "png", Err: err}
	}

	var buf bytes.Buffer
	// Half the raw size plus header room; the buffer grows past it if needed.
	buf.Grow(len(g.Pix)/2 + 1024)

	enc := &png.Encoder{CompressionLevel: e.CompressionLevel}
	if err := enc.Encode(&buf, g.Image()); err != nil {
		return nil, &EncodeError{Format: "png", Err: err}
	}
	return buf.Bytes(), nil
}

// ParseCompression maps a profile compression name to a png level.
func ParseCompression(name string) (png.CompressionLevel, error) {
	switch strings.ToLower(name) {
	case "", "default":
		return png.DefaultCompression, nil
	case "none", "no":
		return png.NoCompression, nil
	case "fast", "speed", "best-speed":
		return png.BestSpeed, nil
	case "best", "best-compression":
		return png.BestCompression, nil
	}
	return png.DefaultCompression, fmt.Errorf("unknown png compression %q", name)
}
