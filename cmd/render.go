package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AnyUserName/invascii-cli/internal/pipeline"
	"github.com/AnyUserName/invascii-cli/internal/present"
	"github.com/AnyUserName/invascii-cli/internal/profile"
	"github.com/AnyUserName/invascii-cli/internal/report"
)

var (
	renderOutDir     string
	renderProfile    string
	renderWorkers    int
	renderResolution int
	renderMaxBytes   int64
	renderHTML       string
)

var renderCmd = &cobra.Command{
	Use:   "render <file_or_dir>...",
	Short: "Invert and ASCII-render the selected images",
	Long: `Selects every file given on the command line and every .png file found
under the given directories (hidden directories are skipped), then produces
the renditions enabled by the profile:

  original  the decoded original only
  invert    original + inverted PNG
  ascii     original + ASCII rendition
  full      original + inverted PNG + ASCII rendition (default)

Output filenames are content-addressed: <key>.<id>.<hash>.ext`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutDir, "out", "o", "./invascii_out", "output directory")
	renderCmd.Flags().StringVarP(&renderProfile, "profile", "p", profile.DefaultName,
		"processing profile ("+strings.Join(profile.Names(), ", ")+")")
	renderCmd.Flags().IntVarP(&renderWorkers, "workers", "w", 0, "concurrent reads (0 = NumCPU)")
	renderCmd.Flags().IntVarP(&renderResolution, "resolution", "r", 0, "ascii downsampling divisor (0 = profile default)")
	renderCmd.Flags().Int64Var(&renderMaxBytes, "max-bytes", 32<<20, "largest file to read (0 = unlimited)")
	renderCmd.Flags().StringVar(&renderHTML, "html", "index.html", "html page name inside the output directory (empty = none)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	start := time.Now()

	absOutput, err := filepath.Abs(renderOutDir)
	if err != nil {
		return fmt.Errorf("resolve output path: %w", err)
	}

	// Load profile.
	prof := profile.Get(renderProfile)
	if _, ok := profile.Lookup(renderProfile); !ok {
		slog.Warn("unknown profile, using defaults", slog.String("profile", renderProfile))
	}
	if renderResolution > 0 {
		prof.Resolution = renderResolution
	}
	if err := prof.Validate(); err != nil {
		return err
	}

	slog.Debug("render",
		slog.Any("inputs", args),
		slog.String("output", absOutput),
		slog.String("profile", prof.Name),
		slog.Bool("invert", prof.Invert),
		slog.Bool("ascii", prof.ASCII),
		slog.Int("resolution", prof.Resolution),
	)

	if err := os.MkdirAll(absOutput, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p := pipeline.New(pipeline.Config{
		Inputs:    args,
		OutputDir: absOutput,
		Profile:   prof,
		Workers:   renderWorkers,
		MaxBytes:  renderMaxBytes,
		Logger:    slog.Default(),
	})

	res, runErr := p.Run(cmd.Context())
	if runErr != nil && !errors.Is(runErr, pipeline.ErrAllFailed) {
		return fmt.Errorf("pipeline: %w", runErr)
	}

	reportPath := filepath.Join(absOutput, report.FileName)
	if err := report.WriteJSON(res.Report, reportPath); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if renderHTML != "" {
		if err := writePage(filepath.Join(absOutput, renderHTML), res.View.Page("invascii")); err != nil {
			return err
		}
	}

	printRenderReport(cmd, res.Report, time.Since(start))
	return runErr
}

func writePage(path string, page present.Page) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create page: %w", err)
	}
	if err := present.WritePage(f, page); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	okBadge   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2")).Padding(0, 1)
	failBadge = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Padding(0, 1)
	dimStyle  = lipgloss.NewStyle().Faint(true)
	boxStyle  = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).Padding(0, 4)
)

// statusBadge renders the per-file status shown in the summary.
func statusBadge(e report.Entry) string {
	if e.State == report.StateRendered {
		return okBadge.Render("OK")
	}
	return failBadge.Render("FAILED")
}

func printRenderReport(cmd *cobra.Command, r *report.Report, elapsed time.Duration) {
	w := cmd.OutOrStdout()
	fmt.Fprintln(w)
	fmt.Fprintln(w, boxStyle.Render("invascii render complete"))
	fmt.Fprintln(w)

	s := r.Stats
	fmt.Fprintf(w, "  Files:       %d\n", s.TotalFiles)
	fmt.Fprintf(w, "  Rendered:    %d\n", s.Rendered)
	if s.Failed > 0 {
		fmt.Fprintf(w, "  Failed:      %d\n", s.Failed)
	}
	fmt.Fprintf(w, "  Outputs:     %d (%s)\n", s.TotalOutputs, formatBytes(s.TotalOutputBytes))
	fmt.Fprintf(w, "  Input size:  %s\n", formatBytes(s.TotalInputBytes))
	fmt.Fprintf(w, "  Profile:     %s\n", r.Profile)
	fmt.Fprintf(w, "  Time:        %s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintln(w)

	for _, e := range r.Entries {
		line := fmt.Sprintf("  %s #%-4d %-40s", statusBadge(e), e.ID, truncKey(e.Source, 40))
		if e.State == report.StateRendered {
			line += dimStyle.Render(fmt.Sprintf(" %dx%d", e.Original.Width, e.Original.Height))
		} else {
			line += " failed to load image: " + e.Error
		}
		fmt.Fprintln(w, line)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  Report:      %s\n", report.FileName)
	fmt.Fprintln(w)
}

func formatBytes(b int64) string {
	switch {
	case b >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(b)/(1<<20))
	case b >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(b)/(1<<10))
	default:
		return fmt.Sprintf("%d B", b)
	}
}

func truncKey(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "..." + s[len(s)-max+3:]
}
