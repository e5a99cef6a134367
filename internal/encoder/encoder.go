package encoder

import (
	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

// Encoder serializes a pixel grid to an image container.
type Encoder interface {
	// Format returns the output format name (e.g. "png").
	Format() string

	// MIMEType returns the media type used in data URIs.
	MIMEType() string

	// Extension returns the file extension without dot.
	Extension() string

	// Encode converts the grid to bytes. Failures are *EncodeError.
	Encode(g *pixel.Grid) ([]byte, error)
}

// EncodeError wraps an unexpected serialization failure.
type EncodeError struct {
	Format string
	Err    error
}

func (e *EncodeError) Error() string {
	return "encode " + e.Format + ": " + e.Err.Error()
}

func (e *EncodeError) Unwrap() error { return e.Err }
