package report

// Report is the JSON record of one render run.
type Report struct {
	Version     int      `json:"version"`
	GeneratedAt string   `json:"generated_at"`
	RunID       string   `json:"run_id"`
	Profile     string   `json:"profile"`
	Resolution  int      `json:"resolution,omitempty"`
	BasePath    string   `json:"base_path"`
	RunInfo     *RunInfo `json:"run_info,omitempty"`
	Entries     []Entry  `json:"entries"` // request ID order; names may repeat
	Stats       Stats    `json:"stats"`
}

// RunInfo captures run-time parameters for diagnostics.
type RunInfo struct {
	Workers  int   `json:"workers"`
	MaxBytes int64 `json:"max_bytes,omitempty"`
}

// Entry describes one selected file and what became of it.
type Entry struct {
	ID        uint64       `json:"id"`
	Name      string       `json:"name"`
	Source    string       `json:"source"`               // path relative to its input root
	State     string       `json:"state"`                // "rendered" or "failed"
	ErrorKind string       `json:"error_kind,omitempty"` // read, decode, encode, render
	Error     string       `json:"error,omitempty"`
	Original  OriginalInfo `json:"original"`
	Outputs   []Output     `json:"outputs"`
}

// OriginalInfo holds metadata about the source image.
type OriginalInfo struct {
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
	Format string `json:"format,omitempty"`
	Size   int64  `json:"size"`
}

// Output is one derived file written for an entry.
type Output struct {
	Kind   string `json:"kind"`            // "inverted" or "ascii"
	Path   string `json:"path"`            // relative to base_path
	Size   int64  `json:"size"`            // bytes on disk
	Hash   string `json:"hash"`            // first 16 hex chars of xxhash64
	Width  int    `json:"width,omitempty"` // inverted image width
	Height int    `json:"height,omitempty"`
	Rows   int    `json:"rows,omitempty"` // ascii canvas rows
	Cols   int    `json:"cols,omitempty"`
}

// Output kinds.
const (
	KindInverted = "inverted"
	KindASCII    = "ascii"
)

// Entry states.
const (
	StateRendered = "rendered"
	StateFailed   = "failed"
)

// Stats aggregates run metrics.
type Stats struct {
	TotalInputBytes  int64 `json:"total_input_bytes"`
	TotalOutputBytes int64 `json:"total_output_bytes"`
	TotalFiles       int   `json:"total_files"`
	Rendered         int   `json:"rendered"`
	Failed           int   `json:"failed"`
	TotalOutputs     int   `json:"total_outputs"`
}

// SupportedVersion is the current schema version.
const SupportedVersion = 1
