package pipeline

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AnyUserName/invascii-cli/internal/hasher"
	"github.com/AnyUserName/invascii-cli/internal/report"
	"github.com/AnyUserName/invascii-cli/internal/session"
)

// collect turns a settled request into a report entry, writing its derived
// files under outDir when outDir is set.
func collect(req session.Request, src Source, outDir, imgExt string) (report.Entry, error) {
	entry := report.Entry{
		ID:      uint64(req.ID),
		Name:    req.Name,
		Source:  src.RelPath,
		Outputs: []report.Output{},
		Original: report.OriginalInfo{
			Width:  req.Width,
			Height: req.Height,
			Format: req.Format,
			Size:   int64(req.Size),
		},
	}
	if req.Size == 0 {
		entry.Original.Size = src.Size
	}

	if req.State != session.StateRendered {
		entry.State = report.StateFailed
		entry.ErrorKind = string(req.Kind)
		if req.Err != nil {
			entry.Error = req.Err.Error()
		}
		return entry, nil
	}
	entry.State = report.StateRendered

	if req.Inverted != nil {
		out, err := writeOutput(outDir, src, req.ID, imgExt, req.Inverted)
		if err != nil {
			return entry, err
		}
		out.Kind = report.KindInverted
		out.Width, out.Height = req.Width, req.Height
		entry.Outputs = append(entry.Outputs, out)
	}

	if req.ASCII != nil {
		out, err := writeOutput(outDir, src, req.ID, "txt", []byte(req.ASCII.Text))
		if err != nil {
			return entry, err
		}
		out.Kind = report.KindASCII
		out.Rows, out.Cols = req.ASCII.Rows, req.ASCII.Cols
		entry.Outputs = append(entry.Outputs, out)
	}

	return entry, nil
}

// writeOutput stores data as <key>.<id>.<hash8>.<ext>. The request ID keeps
// same-named sources from overwriting each other.
func writeOutput(outDir string, src Source, id session.RequestID, ext string, data []byte) (report.Output, error) {
	contentHash := hasher.ContentHash(data, hasher.DefaultHexLen)
	out := report.Output{
		Size: int64(len(data)),
		Hash: contentHash,
	}
	if outDir == "" {
		return out, nil
	}

	keyDir := filepath.Dir(src.Key)
	fileName := fmt.Sprintf("%s.%d.%s.%s",
		filepath.Base(src.Key), id, hasher.Short(contentHash, 8), ext)
	relPath := filepath.ToSlash(filepath.Join(keyDir, fileName))

	if keyDir != "." {
		if err := os.MkdirAll(filepath.Join(outDir, keyDir), 0o755); err != nil {
			return out, fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(filepath.Join(outDir, relPath), data, 0o644); err != nil {
		return out, fmt.Errorf("write %s: %w", relPath, err)
	}
	out.Path = relPath
	return out, nil
}
