package report

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// FileName is the report's name inside an output directory.
const FileName = "invascii.report.json"

// New creates an empty report with defaults.
func New(profileName string) *Report {
	return &Report{
		Version:     SupportedVersion,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		RunID:       uuid.NewString(),
		Profile:     profileName,
		BasePath:    "./",
		Entries:     []Entry{},
	}
}

// ComputeStats recalculates aggregate statistics from entries.
func (r *Report) ComputeStats() {
	var s Stats
	s.TotalFiles = len(r.Entries)
	for _, e := range r.Entries {
		s.TotalInputBytes += e.Original.Size
		switch e.State {
		case StateRendered:
			s.Rendered++
		case StateFailed:
			s.Failed++
		}
		s.TotalOutputs += len(e.Outputs)
		for _, o := range e.Outputs {
			s.TotalOutputBytes += o.Size
		}
	}
	r.Stats = s
}

// Failures returns the failed entries.
func (r *Report) Failures() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.State == StateFailed {
			out = append(out, e)
		}
	}
	return out
}

// WriteJSON serializes the report to a JSON file.
func WriteJSON(r *Report, path string) error {
	r.ComputeStats()

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o644)
}

// ReadJSON loads a report written by WriteJSON. Unknown fields are ignored.
func ReadJSON(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read report: %w", err)
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("parse report: %w", err)
	}
	return &r, nil
}
