package cmd

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/AnyUserName/invascii-cli/internal/ascii"
	"github.com/AnyUserName/invascii-cli/internal/report"
)

func writePNG(t *testing.T, path string, w, h int, c color.NRGBA) {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRenderASCII(t *testing.T) {
	var img bytes.Buffer
	src := image.NewNRGBA(image.Rect(0, 0, 8, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 8; x++ {
			if x < 4 {
				src.SetNRGBA(x, y, color.NRGBA{A: 255})
			} else {
				src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
			}
		}
	}
	if err := png.Encode(&img, src); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := renderASCII(&out, img.Bytes(), 4, false); err != nil {
		t.Fatalf("render: %v", err)
	}
	if out.String() != "@ \n" {
		t.Errorf("got %q", out.String())
	}

	out.Reset()
	if err := renderASCII(&out, img.Bytes(), 4, true); err != nil {
		t.Fatalf("render inverted: %v", err)
	}
	if out.String() != " @\n" {
		t.Errorf("inverted: got %q", out.String())
	}

	if err := renderASCII(&out, img.Bytes(), 16, false); !errors.Is(err, ascii.ErrInvalidResolution) {
		t.Errorf("oversized resolution: got %v", err)
	}
}

func TestRenderValidateStats(t *testing.T) {
	in := t.TempDir()
	writePNG(t, filepath.Join(in, "one", "pic.png"), 40, 20, color.NRGBA{R: 30, G: 60, B: 90, A: 255})
	writePNG(t, filepath.Join(in, "two", "pic.png"), 40, 20, color.NRGBA{R: 200, G: 60, B: 9, A: 128})
	if err := os.WriteFile(filepath.Join(in, "bad.png"), []byte("junk"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := t.TempDir()

	stdout, err := execute(t, "render", in, "--out", out, "--profile", "full")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(stdout, "failed to load image") {
		t.Errorf("summary lacks failure line:\n%s", stdout)
	}

	reportPath := filepath.Join(out, report.FileName)
	r, err := report.ReadJSON(reportPath)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if r.Stats.TotalFiles != 3 || r.Stats.Rendered != 2 {
		t.Fatalf("stats: %+v", r.Stats)
	}
	if errs := validateReport(r, out); len(errs) != 0 {
		t.Fatalf("fresh output invalid: %v", errs)
	}

	page, err := os.ReadFile(filepath.Join(out, "index.html"))
	if err != nil {
		t.Fatalf("page: %v", err)
	}
	if strings.Count(string(page), "data:image/png;base64,") != 4 {
		t.Errorf("page should embed 4 images")
	}

	if _, err := execute(t, "validate", out); err != nil {
		t.Errorf("validate command: %v", err)
	}
	stats, err := execute(t, "stats", out)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if !strings.Contains(stats, "pic.png (x2)") {
		t.Errorf("stats lacks repeated name:\n%s", stats)
	}

	// Tamper with one output.
	var target string
	for _, e := range r.Entries {
		if len(e.Outputs) > 0 {
			target = filepath.Join(out, e.Outputs[0].Path)
			break
		}
	}
	if err := os.WriteFile(target, []byte("tampered"), 0o644); err != nil {
		t.Fatal(err)
	}
	errs := validateReport(r, out)
	if len(errs) == 0 {
		t.Fatal("tampered output passed validation")
	}
	joined := strings.Join(errs, "\n")
	if !strings.Contains(joined, "hash mismatch") || !strings.Contains(joined, "size mismatch") {
		t.Errorf("errors: %s", joined)
	}
}

func TestValidateReport_Stats(t *testing.T) {
	r := report.New("full")
	r.Entries = append(r.Entries, report.Entry{ID: 1, Name: "a.png", State: report.StateFailed, ErrorKind: "read"})
	r.Stats.TotalFiles = 5

	errs := validateReport(r, t.TempDir())
	if len(errs) == 0 {
		t.Fatal("stats mismatch not detected")
	}
	if !strings.Contains(strings.Join(errs, "\n"), "total_files") {
		t.Errorf("errors: %v", errs)
	}
}
