package profile

import (
	"fmt"
	"image/png"
	"sort"

	"github.com/AnyUserName/invascii-cli/internal/ascii"
	"github.com/AnyUserName/invascii-cli/internal/encoder"
)

// DefaultName is used when no profile is requested.
const DefaultName = "full"

// Profile selects which derived renditions are produced for each file.
type Profile struct {
	Name        string
	Invert      bool   // produce an inverted PNG
	ASCII       bool   // produce an ASCII rendition
	Resolution  int    // ASCII downsampling divisor
	Compression string // png compression: default, none, fast, best
}

// Built-in profiles, one per feature set the viewer has shipped with.
var profiles = map[string]Profile{
	"original": {
		Name:        "original",
		Resolution:  ascii.DefaultResolution,
		Compression: "default",
	},
	"invert": {
		Name:        "invert",
		Invert:      true,
		Resolution:  ascii.DefaultResolution,
		Compression: "default",
	},
	"ascii": {
		Name:        "ascii",
		ASCII:       true,
		Resolution:  ascii.DefaultResolution,
		Compression: "default",
	},
	"full": {
		Name:        "full",
		Invert:      true,
		ASCII:       true,
		Resolution:  ascii.DefaultResolution,
		Compression: "default",
	},
}

// Get returns a profile by name. Falls back to full if unknown.
func Get(name string) Profile {
	if p, ok := profiles[name]; ok {
		return p
	}
	p := profiles[DefaultName]
	p.Name = name // preserve requested name
	return p
}

// Lookup is Get without the fallback.
func Lookup(name string) (Profile, bool) {
	p, ok := profiles[name]
	return p, ok
}

// Names returns the built-in profile names, sorted.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for n := range profiles {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks that the profile can drive a session.
func (p Profile) Validate() error {
	if p.ASCII && p.Resolution < 1 {
		return fmt.Errorf("profile %q: resolution must be >= 1, got %d", p.Name, p.Resolution)
	}
	if _, err := encoder.ParseCompression(p.Compression); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	return nil
}

// PNGLevel returns the png compression level. Call Validate first.
func (p Profile) PNGLevel() png.CompressionLevel {
	lvl, _ := encoder.ParseCompression(p.Compression)
	return lvl
}

// Encoder returns the output encoder configured for this profile.
func (p Profile) Encoder() encoder.Encoder {
	return &encoder.PNGEncoder{CompressionLevel: p.PNGLevel()}
}
