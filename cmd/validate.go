package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/invascii-cli/internal/hasher"
	"github.com/AnyUserName/invascii-cli/internal/report"
)

var validateCmd = &cobra.Command{
	Use:   "validate <report_path>",
	Short: "Validate a render report and check its output files",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, err := resolveReportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}

	errs := validateReport(r, filepath.Dir(path))
	w := cmd.OutOrStdout()

	if len(errs) == 0 {
		fmt.Fprintln(w, "  ✓ Report is valid")
		fmt.Fprintf(w, "  ✓ %d files, %d outputs — all present\n", r.Stats.TotalFiles, r.Stats.TotalOutputs)
		return nil
	}

	fmt.Fprintf(w, "  ✗ Report has %d error(s):\n", len(errs))
	for _, e := range errs {
		fmt.Fprintf(w, "    • %s\n", e)
	}
	return fmt.Errorf("validation failed with %d errors", len(errs))
}

func validateReport(r *report.Report, baseDir string) []string {
	var errs []string

	if r.Version != report.SupportedVersion {
		errs = append(errs, fmt.Sprintf("unsupported report version: %d", r.Version))
	}

	seenIDs := map[uint64]bool{}
	seenPaths := map[string]bool{}
	var lastID uint64
	for i, e := range r.Entries {
		label := fmt.Sprintf("entry[%d] #%d %q", i, e.ID, e.Name)

		if e.ID == 0 {
			errs = append(errs, label+": missing id")
		}
		if seenIDs[e.ID] {
			errs = append(errs, label+": duplicate id")
		}
		seenIDs[e.ID] = true
		if e.ID < lastID {
			errs = append(errs, label+": ids out of order")
		}
		lastID = e.ID

		switch e.State {
		case report.StateRendered:
			if e.Original.Width <= 0 || e.Original.Height <= 0 {
				errs = append(errs, fmt.Sprintf("%s: invalid original dimensions %dx%d",
					label, e.Original.Width, e.Original.Height))
			}
		case report.StateFailed:
			if e.ErrorKind == "" {
				errs = append(errs, label+": failed without error kind")
			}
			if len(e.Outputs) > 0 {
				errs = append(errs, label+": failed entry has outputs")
			}
		default:
			errs = append(errs, fmt.Sprintf("%s: unknown state %q", label, e.State))
		}

		for j, o := range e.Outputs {
			errs = append(errs, validateOutput(fmt.Sprintf("%s output[%d]", label, j), o, baseDir, seenPaths)...)
		}
	}

	// Verify stats consistency.
	outputs, rendered, failed := 0, 0, 0
	for _, e := range r.Entries {
		outputs += len(e.Outputs)
		switch e.State {
		case report.StateRendered:
			rendered++
		case report.StateFailed:
			failed++
		}
	}
	if r.Stats.TotalFiles != len(r.Entries) {
		errs = append(errs, fmt.Sprintf("stats.total_files mismatch: %d != %d", r.Stats.TotalFiles, len(r.Entries)))
	}
	if r.Stats.TotalOutputs != outputs {
		errs = append(errs, fmt.Sprintf("stats.total_outputs mismatch: %d != %d", r.Stats.TotalOutputs, outputs))
	}
	if r.Stats.Rendered != rendered || r.Stats.Failed != failed {
		errs = append(errs, fmt.Sprintf("stats rendered/failed mismatch: %d/%d != %d/%d",
			r.Stats.Rendered, r.Stats.Failed, rendered, failed))
	}

	return errs
}

func validateOutput(label string, o report.Output, baseDir string, seenPaths map[string]bool) []string {
	var errs []string

	switch o.Kind {
	case report.KindInverted:
		if o.Width <= 0 || o.Height <= 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid dimensions %dx%d", label, o.Width, o.Height))
		}
	case report.KindASCII:
		if o.Rows <= 0 || o.Cols <= 0 {
			errs = append(errs, fmt.Sprintf("%s: invalid canvas %dx%d", label, o.Cols, o.Rows))
		}
	default:
		errs = append(errs, fmt.Sprintf("%s: unknown kind %q", label, o.Kind))
	}
	if o.Hash == "" {
		errs = append(errs, label+": missing hash")
	}
	if o.Path == "" {
		return append(errs, label+": missing path")
	}

	if seenPaths[o.Path] {
		errs = append(errs, fmt.Sprintf("%s: duplicate path %q", label, o.Path))
	}
	seenPaths[o.Path] = true

	fullPath := filepath.Join(baseDir, o.Path)
	if o.Kind == report.KindASCII {
		data, err := os.ReadFile(fullPath)
		if err != nil {
			return append(errs, fmt.Sprintf("%s: file not found: %s", label, o.Path))
		}
		errs = append(errs, checkContent(label, o, int64(len(data)), hasher.ContentHash(data, len(o.Hash)))...)
		return append(errs, checkCanvas(label, o, string(data))...)
	}

	f, err := os.Open(fullPath)
	if err != nil {
		return append(errs, fmt.Sprintf("%s: file not found: %s", label, o.Path))
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return append(errs, fmt.Sprintf("%s: stat: %v", label, err))
	}
	h, err := hasher.ContentHashReader(f, len(o.Hash))
	if err != nil {
		return append(errs, fmt.Sprintf("%s: hash: %v", label, err))
	}
	return append(errs, checkContent(label, o, info.Size(), h)...)
}

func checkContent(label string, o report.Output, size int64, hash string) []string {
	var errs []string
	if size != o.Size {
		errs = append(errs, fmt.Sprintf("%s: size mismatch: report=%d, disk=%d", label, o.Size, size))
	}
	if o.Hash != "" && hash != o.Hash {
		errs = append(errs, fmt.Sprintf("%s: hash mismatch: report=%s, disk=%s", label, o.Hash, hash))
	}
	return errs
}

// checkCanvas compares an ASCII file against its recorded shape.
func checkCanvas(label string, o report.Output, text string) []string {
	var errs []string
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	if len(lines) != o.Rows {
		errs = append(errs, fmt.Sprintf("%s: %d rows on disk, report says %d", label, len(lines), o.Rows))
	}
	for k, line := range lines {
		if len(line) != o.Cols {
			errs = append(errs, fmt.Sprintf("%s: row %d has %d columns, report says %d", label, k, len(line), o.Cols))
			break
		}
	}
	return errs
}
