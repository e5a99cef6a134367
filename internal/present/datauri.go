// Package present turns encoded images and ASCII canvases into inline
// display material: base64 data URIs, an append-only display buffer, and an
// HTML page.
package present

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// ErrNotDataURI is returned by ParseDataURI for anything that is not a
// base64 data URI.
var ErrNotDataURI = errors.New("not a base64 data uri")

// DataURI returns data:<mime>;base64,<payload>.
func DataURI(mime string, data []byte) string {
	var sb strings.Builder
	sb.Grow(len("data:;base64,") + len(mime) + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString("data:")
	sb.WriteString(mime)
	sb.WriteString(";base64,")
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String()
}

// PNGDataURI is DataURI with the image/png media type.
func PNGDataURI(data []byte) string {
	return DataURI("image/png", data)
}

// ParseDataURI splits a base64 data URI into its media type and payload.
func ParseDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrNotDataURI
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode payload: %w", err)
	}
	return mime, data, nil
}

// MIMEForFormat maps an image package format name to its media type.
func MIMEForFormat(format string) string {
	switch format {
	case "":
		return "application/octet-stream"
	case "jpg":
		return "image/jpeg"
	}
	return "image/" + format
}
