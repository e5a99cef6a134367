package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Source represents a selected image file.
type Source struct {
	// AbsPath is the absolute path to the file on disk.
	AbsPath string
	// RelPath is the path relative to the input it was found under.
	RelPath string
	// Key is RelPath without its extension, using forward slashes.
	// Keys are not unique across inputs.
	Key string
	// Name is the display name (base name of the file).
	Name string
	// Size is the file size in bytes.
	Size int64
}

// imageExtensions lists the extensions picked up when scanning directories.
// The picker only offers PNG; explicitly named files are taken as-is.
var imageExtensions = map[string]bool{
	".png": true,
}

// ScanInputs resolves each input to sources. Files are selected directly;
// directories are walked for PNG files, skipping hidden directories.
// Order follows inputs, then walk order.
func ScanInputs(inputs []string) ([]Source, error) {
	var sources []Source
	for _, in := range inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", in, err)
		}
		info, err := os.Stat(abs)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", in, err)
		}
		if !info.IsDir() {
			sources = append(sources, newSource(abs, filepath.Base(abs), info.Size()))
			continue
		}
		found, err := ScanImages(abs)
		if err != nil {
			return nil, err
		}
		sources = append(sources, found...)
	}
	return sources, nil
}

// ScanImages walks the input directory and returns all PNG sources.
func ScanImages(inputDir string) ([]Source, error) {
	var sources []Source

	err := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			// Skip hidden directories.
			if path != inputDir && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !imageExtensions[ext] {
			return nil
		}

		relPath, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		sources = append(sources, newSource(path, relPath, info.Size()))
		return nil
	})

	return sources, err
}

func newSource(abs, rel string, size int64) Source {
	rel = filepath.ToSlash(rel)
	return Source{
		AbsPath: abs,
		RelPath: rel,
		Key:     strings.TrimSuffix(rel, filepath.Ext(rel)),
		Name:    filepath.Base(abs),
		Size:    size,
	}
}
