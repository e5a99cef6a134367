package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/AnyUserName/invascii-cli/internal/report"
)

var statsCmd = &cobra.Command{
	Use:   "stats <out_dir_or_report>",
	Short: "Display statistics for a render output directory",
	Args:  cobra.ExactArgs(1),
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	path, err := resolveReportPath(args[0])
	if err != nil {
		return err
	}
	r, err := report.ReadJSON(path)
	if err != nil {
		return err
	}
	printStats(cmd.OutOrStdout(), r)
	return nil
}

// resolveReportPath accepts either a report file or the directory holding one.
func resolveReportPath(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return filepath.Join(path, report.FileName), nil
	}
	return path, nil
}

func printStats(w io.Writer, r *report.Report) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report version:   %d\n", r.Version)
	fmt.Fprintf(w, "  Generated:        %s\n", r.GeneratedAt)
	fmt.Fprintf(w, "  Run:              %s\n", r.RunID)
	fmt.Fprintf(w, "  Profile:          %s\n", r.Profile)
	if r.Resolution > 0 {
		fmt.Fprintf(w, "  ASCII resolution: %d\n", r.Resolution)
	}
	if r.RunInfo != nil {
		fmt.Fprintf(w, "  Workers:          %d\n", r.RunInfo.Workers)
	}
	fmt.Fprintln(w)

	s := r.Stats
	fmt.Fprintf(w, "  Total files:      %d\n", s.TotalFiles)
	fmt.Fprintf(w, "  Rendered:         %d\n", s.Rendered)
	fmt.Fprintf(w, "  Failed:           %d\n", s.Failed)
	fmt.Fprintf(w, "  Outputs:          %d\n", s.TotalOutputs)
	fmt.Fprintf(w, "  Input size:       %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Output size:      %s\n", formatBytes(s.TotalOutputBytes))
	fmt.Fprintln(w)

	// Per-kind breakdown.
	kindStats := map[string]struct {
		count int
		bytes int64
	}{}
	for _, e := range r.Entries {
		for _, o := range e.Outputs {
			ks := kindStats[o.Kind]
			ks.count++
			ks.bytes += o.Size
			kindStats[o.Kind] = ks
		}
	}
	fmt.Fprintln(w, "  Output breakdown:")
	for _, k := range []string{report.KindInverted, report.KindASCII} {
		if ks, ok := kindStats[k]; ok {
			fmt.Fprintf(w, "    %-9s %4d files  %s\n", k, ks.count, formatBytes(ks.bytes))
		}
	}
	fmt.Fprintln(w)

	// Failures by kind.
	failStats := map[string]int{}
	for _, e := range r.Failures() {
		failStats[e.ErrorKind]++
	}
	if len(failStats) > 0 {
		var kinds []string
		for k := range failStats {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		fmt.Fprintln(w, "  Failures:")
		for _, k := range kinds {
			fmt.Fprintf(w, "    %-9s %4d\n", k, failStats[k])
		}
		fmt.Fprintln(w)
	}

	// Names selected more than once.
	names := map[string]int{}
	for _, e := range r.Entries {
		names[e.Name]++
	}
	var dups []string
	for n, c := range names {
		if c > 1 {
			dups = append(dups, fmt.Sprintf("%s (x%d)", n, c))
		}
	}
	if len(dups) > 0 {
		sort.Strings(dups)
		fmt.Fprintf(w, "  Repeated names:   %d\n", len(dups))
		for _, d := range dups {
			fmt.Fprintf(w, "    %s\n", d)
		}
		fmt.Fprintln(w)
	}
}
