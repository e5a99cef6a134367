package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/AnyUserName/invascii-cli/internal/profile"
	"github.com/AnyUserName/invascii-cli/internal/report"
	"github.com/AnyUserName/invascii-cli/internal/session"
)

// ErrAllFailed is returned (with a result) when no selected file rendered.
var ErrAllFailed = errors.New("all images failed to process")

// Config holds all parameters for a render run.
type Config struct {
	Inputs    []string
	OutputDir string // where derived files go; empty writes nothing
	Profile   profile.Profile
	Workers   int   // concurrent reads
	MaxBytes  int64 // per-file read cap
	Logger    *slog.Logger
}

// Result is what a run produced.
type Result struct {
	Report *report.Report
	View   session.View
}

// Pipeline selects the input files into a session, waits for every request
// to settle and records the outcome.
type Pipeline struct {
	cfg Config
	log *slog.Logger
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// Run executes the pipeline. When every file fails the result is still
// returned alongside ErrAllFailed so callers can report it.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if err := p.cfg.Profile.Validate(); err != nil {
		return nil, err
	}

	// Step 1: Resolve the selection.
	sources, err := ScanInputs(p.cfg.Inputs)
	if err != nil {
		return nil, fmt.Errorf("scan: %w", err)
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no png images found in %s", strings.Join(p.cfg.Inputs, ", "))
	}
	p.log.Debug("found images", slog.Int("count", len(sources)))

	// Step 2: Run every file through a session.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := session.New(session.Config{
		Profile:  p.cfg.Profile,
		MaxReads: p.cfg.Workers,
		MaxBytes: p.cfg.MaxBytes,
		Logger:   p.log,
	})
	errc := make(chan error, 1)
	go func() { errc <- sess.Run(ctx) }()

	view, bySource, err := p.drive(ctx, sess, sources)
	cancel()
	<-errc
	if err != nil {
		return nil, err
	}

	// Step 3: Write outputs and collect the report.
	rep := report.New(p.cfg.Profile.Name)
	if p.cfg.Profile.ASCII {
		rep.Resolution = p.cfg.Profile.Resolution
	}
	rep.RunInfo = &report.RunInfo{Workers: p.cfg.Workers, MaxBytes: p.cfg.MaxBytes}

	enc := p.cfg.Profile.Encoder()
	for _, req := range view.Requests {
		entry, err := collect(req, bySource[req.ID], p.cfg.OutputDir, enc.Extension())
		if err != nil {
			return nil, err
		}
		rep.Entries = append(rep.Entries, entry)
	}
	rep.ComputeStats()

	res := &Result{Report: rep, View: view}
	if rep.Stats.Rendered == 0 {
		return res, fmt.Errorf("%w (%d of %d)", ErrAllFailed, rep.Stats.Failed, len(sources))
	}
	if rep.Stats.Failed > 0 {
		p.log.Warn("some images had errors",
			slog.Int("failed", rep.Stats.Failed),
			slog.Int("total", len(sources)),
		)
	}
	return res, nil
}

func (p *Pipeline) drive(ctx context.Context, sess *session.Session, sources []Source) (session.View, map[session.RequestID]Source, error) {
	files := make([]session.File, len(sources))
	for i, src := range sources {
		files[i] = session.DiskFile(src.AbsPath, src.Name)
	}

	// One selection event for the whole batch, as a multi-file picker would send.
	ids, err := sess.Select(ctx, files...)
	if err != nil {
		return session.View{}, nil, fmt.Errorf("select: %w", err)
	}
	bySource := make(map[session.RequestID]Source, len(ids))
	for i, id := range ids {
		bySource[id] = sources[i]
	}

	view, err := sess.Wait(ctx)
	if err != nil {
		return session.View{}, nil, fmt.Errorf("wait: %w", err)
	}
	return view, bySource, nil
}
