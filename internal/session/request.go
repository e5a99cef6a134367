package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/AnyUserName/invascii-cli/internal/ascii"
	"github.com/AnyUserName/invascii-cli/internal/encoder"
	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

// RequestID identifies one selected file for the lifetime of a session.
// IDs start at 1 and only ever grow.
type RequestID uint64

// State is the position of a request in its lifecycle.
type State int

const (
	StateReadPending State = iota + 1
	StateDecoded
	StateRendered
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateReadPending:
		return "read_pending"
	case StateDecoded:
		return "decoded"
	case StateRendered:
		return "rendered"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Settled reports whether the request will not change state again.
func (s State) Settled() bool { return s == StateRendered || s == StateFailed }

// ErrorKind classifies a request failure.
type ErrorKind string

const (
	KindNone   ErrorKind = ""
	KindRead   ErrorKind = "read"
	KindDecode ErrorKind = "decode"
	KindEncode ErrorKind = "encode"
	KindRender ErrorKind = "render"
)

// ErrTooLarge is wrapped by ReadError when a file exceeds Config.MaxBytes.
var ErrTooLarge = errors.New("file exceeds size limit")

// ReadError reports an I/O failure reading a selected file.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string { return "read " + e.Name + ": " + e.Err.Error() }

func (e *ReadError) Unwrap() error { return e.Err }

// Classify maps a pipeline error onto an ErrorKind. Errors that are not
// read, decode or encode failures come from the transform steps and count
// as render failures.
func Classify(err error) ErrorKind {
	var (
		re *ReadError
		de *pixel.DecodeError
		ee *encoder.EncodeError
	)
	switch {
	case err == nil:
		return KindNone
	case errors.As(err, &re):
		return KindRead
	case errors.As(err, &de):
		return KindDecode
	case errors.As(err, &ee):
		return KindEncode
	}
	return KindRender
}

// Request is the record kept for one selected file.
type Request struct {
	ID    RequestID
	Name  string // display only, never a key
	State State

	// Error slot, set when State is StateFailed.
	Err  error
	Kind ErrorKind

	// Filled once the bytes are read and decoded.
	Size   int
	Format string
	Width  int
	Height int

	// Filled when State is StateRendered.
	Original []byte // bytes as read
	Inverted []byte // PNG, nil unless the profile inverts
	ASCII    *ascii.Canvas

	// Pending-read handle. Non-nil only while State is StateReadPending.
	cancel context.CancelFunc
	held   bool // copy of cancel != nil in snapshots
}

// snapshot copies the request without its read handle.
func (r *Request) snapshot() Request {
	c := *r
	c.held = r.cancel != nil
	c.cancel = nil
	return c
}

// release drops the pending-read handle, stopping the read if it is still
// running. Safe to call more than once.
func (r *Request) release() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}

// Pending reports whether the read handle is still held.
func (r *Request) Pending() bool { return r.cancel != nil || r.held }
