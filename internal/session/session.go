// Package session is the viewer's orchestrator: a state machine over the
// files a user selected, driven by events processed one at a time on a
// single goroutine.
//
// Every selected file becomes a Request keyed by a monotonically increasing
// RequestID. Reads run concurrently and report back by enqueuing a
// completion event; decoding, transforming and presenting happen on the
// event goroutine, so session state has exactly one writer.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync/atomic"

	"github.com/AnyUserName/invascii-cli/internal/ascii"
	"github.com/AnyUserName/invascii-cli/internal/encoder"
	"github.com/AnyUserName/invascii-cli/internal/pixel"
	"github.com/AnyUserName/invascii-cli/internal/present"
	"github.com/AnyUserName/invascii-cli/internal/profile"
)

// ErrClosed is returned by calls made after Run has returned.
var ErrClosed = errors.New("session closed")

// ErrAlreadyRunning is returned by a second call to Run.
var ErrAlreadyRunning = errors.New("session already running")

// Config holds the parameters of a session.
type Config struct {
	Profile  profile.Profile
	Encoder  encoder.Encoder // nil = Profile.Encoder()
	MaxReads int             // concurrent reads (0 = NumCPU)
	MaxBytes int64           // per-file read cap (0 = unlimited)
	Logger   *slog.Logger    // nil = slog.Default()
}

// Session tracks selected files from read to display.
type Session struct {
	cfg     Config
	log     *slog.Logger
	enc     encoder.Encoder
	events  chan any
	done    chan struct{}
	readSem chan struct{}
	started atomic.Bool

	// Owned by the Run goroutine.
	ctx      context.Context
	nextID   RequestID
	requests map[RequestID]*Request
	order    []RequestID
	pending  int
	display  present.DisplayBuffer
	waiters  []chan View
}

// New creates a session. Call Run to start processing events.
func New(cfg Config) *Session {
	if cfg.MaxReads <= 0 {
		cfg.MaxReads = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	enc := cfg.Encoder
	if enc == nil {
		enc = cfg.Profile.Encoder()
	}
	return &Session{
		cfg:      cfg,
		log:      log,
		enc:      enc,
		events:   make(chan any, 16),
		done:     make(chan struct{}),
		readSem:  make(chan struct{}, cfg.MaxReads),
		requests: make(map[RequestID]*Request),
	}
}

// Events.
type (
	filesSelected struct {
		files []File
		reply chan []RequestID
	}
	bytesLoaded struct {
		id   RequestID
		data []byte
		err  error
	}
	cancelRead struct {
		id    RequestID
		reply chan bool
	}
	snapshotRequested struct {
		reply chan View
	}
	idleRequested struct {
		reply chan View
	}
)

// Run processes events until ctx is done. Pending reads are released on
// return. Run may be called once.
func (s *Session) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	s.ctx = ctx
	defer s.shutdown()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-s.events:
			s.update(ev)
		}
	}
}

func (s *Session) shutdown() {
	close(s.done)
	for _, id := range s.order {
		s.requests[id].release()
	}
}

// Select starts reading files and returns their request IDs in the same
// order. This is one change event: every file gets its own read.
func (s *Session) Select(ctx context.Context, files ...File) ([]RequestID, error) {
	reply := make(chan []RequestID, 1)
	if err := s.send(ctx, filesSelected{files: files, reply: reply}); err != nil {
		return nil, err
	}
	return await(ctx, s, reply)
}

// Cancel abandons a pending read. The request fails with a read error
// wrapping context.Canceled. It reports false if the read had already
// completed or the ID is unknown.
func (s *Session) Cancel(ctx context.Context, id RequestID) (bool, error) {
	reply := make(chan bool, 1)
	if err := s.send(ctx, cancelRead{id: id, reply: reply}); err != nil {
		return false, err
	}
	return await(ctx, s, reply)
}

// Snapshot returns the current view.
func (s *Session) Snapshot(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.send(ctx, snapshotRequested{reply: reply}); err != nil {
		return View{}, err
	}
	return await(ctx, s, reply)
}

// Wait blocks until no read is pending and returns the view at that point.
func (s *Session) Wait(ctx context.Context) (View, error) {
	reply := make(chan View, 1)
	if err := s.send(ctx, idleRequested{reply: reply}); err != nil {
		return View{}, err
	}
	return await(ctx, s, reply)
}

func (s *Session) send(ctx context.Context, ev any) error {
	select {
	case s.events <- ev:
		return nil
	case <-s.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

func await[T any](ctx context.Context, s *Session, reply chan T) (T, error) {
	var zero T
	select {
	case v := <-reply:
		return v, nil
	case <-s.done:
		// The loop may have answered just before stopping.
		select {
		case v := <-reply:
			return v, nil
		default:
			return zero, ErrClosed
		}
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// update is the only place session state changes.
func (s *Session) update(ev any) {
	switch ev := ev.(type) {
	case filesSelected:
		s.log.Info("files selected", slog.Int("count", len(ev.files)))
		ids := make([]RequestID, 0, len(ev.files))
		for _, f := range ev.files {
			ids = append(ids, s.startRead(f))
		}
		ev.reply <- ids

	case bytesLoaded:
		s.loaded(ev)

	case cancelRead:
		req, ok := s.requests[ev.id]
		if !ok || req.State != StateReadPending {
			ev.reply <- false
			break
		}
		s.pending--
		s.fail(req, &ReadError{Name: req.Name, Err: context.Canceled})
		ev.reply <- true

	case snapshotRequested:
		ev.reply <- s.view()

	case idleRequested:
		s.waiters = append(s.waiters, ev.reply)

	default:
		s.log.Error("unknown session event", slog.String("type", fmt.Sprintf("%T", ev)))
	}

	if s.pending == 0 && len(s.waiters) > 0 {
		v := s.view()
		for _, w := range s.waiters {
			w <- v
		}
		s.waiters = nil
	}
}

func (s *Session) startRead(f File) RequestID {
	s.nextID++
	id := s.nextID

	rctx, cancel := context.WithCancel(s.ctx)
	s.requests[id] = &Request{
		ID:     id,
		Name:   f.Name(),
		State:  StateReadPending,
		cancel: cancel,
	}
	s.order = append(s.order, id)
	s.pending++

	s.log.Debug("read started", slog.Uint64("id", uint64(id)), slog.String("name", f.Name()))
	go s.read(rctx, id, f)
	return id
}

// read runs off the event goroutine and reports back with bytesLoaded.
func (s *Session) read(ctx context.Context, id RequestID, f File) {
	ev := bytesLoaded{id: id}
	select {
	case s.readSem <- struct{}{}: // acquire
		ev.data, ev.err = readAll(ctx, f, s.cfg.MaxBytes)
		<-s.readSem // release
	case <-ctx.Done():
		ev.err = ctx.Err()
	}

	select {
	case s.events <- ev:
	case <-s.done:
	}
}

func (s *Session) loaded(ev bytesLoaded) {
	req, ok := s.requests[ev.id]
	if !ok || req.State != StateReadPending {
		// Cancelled requests still report back; their state is final.
		s.log.Debug("ignoring completion", slog.Uint64("id", uint64(ev.id)))
		return
	}
	req.release()
	s.pending--

	if ev.err != nil {
		s.fail(req, &ReadError{Name: req.Name, Err: ev.err})
		return
	}

	s.log.Info("processing", slog.Uint64("id", uint64(req.ID)), slog.String("name", req.Name))
	req.Size = len(ev.data)

	grid, format, err := pixel.Decode(ev.data)
	if err != nil {
		s.fail(req, err)
		return
	}
	req.State = StateDecoded
	req.Format = format
	req.Width, req.Height = grid.Width, grid.Height

	out, err := s.render(grid)
	if err != nil {
		s.fail(req, err)
		return
	}

	req.Original = ev.data
	req.Inverted = out.inverted
	req.ASCII = out.canvas
	req.State = StateRendered

	items := []present.Item{{
		RequestID: uint64(req.ID),
		Name:      req.Name,
		Role:      present.RoleOriginal,
		URI:       present.DataURI(present.MIMEForFormat(format), ev.data),
	}}
	if out.inverted != nil {
		items = append(items, present.Item{
			RequestID: uint64(req.ID),
			Name:      req.Name,
			Role:      present.RoleInverted,
			URI:       present.DataURI(s.enc.MIMEType(), out.inverted),
		})
	}
	s.display.Append(items...)
	if out.canvas != nil {
		s.display.AppendText(present.Text{
			RequestID: uint64(req.ID),
			Name:      req.Name,
			Body:      out.canvas.Text,
		})
	}

	s.log.Debug("rendered",
		slog.Uint64("id", uint64(req.ID)),
		slog.String("name", req.Name),
		slog.Int("width", req.Width),
		slog.Int("height", req.Height),
	)
}

type rendition struct {
	inverted []byte
	canvas   *ascii.Canvas
}

// render runs every transform the profile enables. Nothing is kept unless
// all of them succeed.
func (s *Session) render(g *pixel.Grid) (rendition, error) {
	var out rendition
	p := s.cfg.Profile

	if p.Invert {
		data, err := s.enc.Encode(pixel.Invert(g))
		if err != nil {
			return rendition{}, err
		}
		out.inverted = data
	}

	if p.ASCII {
		c, err := ascii.Render(g, p.Resolution)
		if err != nil {
			return rendition{}, fmt.Errorf("render ascii: %w", err)
		}
		out.canvas = &c
	}

	return out, nil
}

func (s *Session) fail(req *Request, err error) {
	req.release()
	req.State = StateFailed
	req.Err = err
	req.Kind = Classify(err)
	s.log.Warn("request failed",
		slog.Uint64("id", uint64(req.ID)),
		slog.String("name", req.Name),
		slog.String("kind", string(req.Kind)),
		slog.Any("error", err),
	)
}

func (s *Session) view() View {
	v := View{
		Requests: make([]Request, 0, len(s.order)),
		Display:  s.display.Items(),
		ASCII:    s.display.Texts(),
		Pending:  s.pending,
	}
	for _, id := range s.order {
		v.Requests = append(v.Requests, s.requests[id].snapshot())
	}
	return v
}
