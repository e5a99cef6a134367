package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File is something the user selected. Name is shown to the user and may
// repeat across files.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type diskFile struct {
	path string
	name string
}

// DiskFile returns a File backed by path. An empty name defaults to the
// base name of path.
func DiskFile(path, name string) File {
	if name == "" {
		name = filepath.Base(path)
	}
	return &diskFile{path: path, name: name}
}

func (f *diskFile) Name() string                 { return f.name }
func (f *diskFile) Open() (io.ReadCloser, error) { return os.Open(f.path) }

type memFile struct {
	name string
	data []byte
}

// MemFile returns a File that reads from data.
func MemFile(name string, data []byte) File {
	return &memFile{name: name, data: data}
}

func (f *memFile) Name() string { return f.name }
func (f *memFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(f.data)), nil
}

// ctxReader stops a copy once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}

// readAll reads f fully, honoring ctx and a byte cap (0 = unlimited).
func readAll(ctx context.Context, f File, maxBytes int64) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var r io.Reader = &ctxReader{ctx: ctx, r: rc}
	if maxBytes > 0 {
		r = io.LimitReader(r, maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrTooLarge, maxBytes)
	}
	return data, nil
}
