// Package ascii renders pixel grids as text by mapping BT.709 luminance
// onto a fixed 12-character ramp.
package ascii

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

// Ramp orders characters from lightest-appearing to darkest-appearing.
const Ramp = " .,:;ox9$%#@"

// DefaultResolution is the downsampling divisor used when none is configured.
const DefaultResolution = 4

// ErrInvalidResolution is returned when the resolution is below 1 or larger
// than either image dimension.
var ErrInvalidResolution = errors.New("invalid ascii resolution")

// Canvas is a rendered ASCII image. Text holds Rows lines of Cols characters,
// each terminated by '\n'.
type Canvas struct {
	Text string
	Rows int
	Cols int
}

func (c Canvas) String() string { return c.Text }

// Lines returns the rows without their line terminators.
func (c Canvas) Lines() []string {
	if c.Text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(c.Text, "\n"), "\n")
}

// TargetSize returns the canvas size for a grid of width x height.
func TargetSize(width, height, resolution int) (cols, rows int, err error) {
	if resolution < 1 {
		return 0, 0, fmt.Errorf("%w: %d", ErrInvalidResolution, resolution)
	}
	cols, rows = width/resolution, height/resolution
	if cols == 0 || rows == 0 {
		return 0, 0, fmt.Errorf("%w: %d exceeds %dx%d image", ErrInvalidResolution, resolution, width, height)
	}
	return cols, rows, nil
}

// Render downsamples g by resolution with nearest-neighbor sampling and
// maps each sample to a Ramp character.
func Render(g *pixel.Grid, resolution int) (Canvas, error) {
	cols, rows, err := TargetSize(g.Width, g.Height, resolution)
	if err != nil {
		return Canvas{}, err
	}

	small := Resample(g, cols, rows)

	var sb strings.Builder
	sb.Grow(rows * (cols + 1))
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			sb.WriteByte(CharFor(pixel.LuminanceOf(small.At(x, y))))
		}
		sb.WriteByte('\n')
	}

	return Canvas{Text: sb.String(), Rows: rows, Cols: cols}, nil
}

// Resample scales g to cols x rows without interpolation. Each target pixel
// is a byte-for-byte copy of the source pixel nearest its center, alpha and
// all, so fully transparent pixels keep their colour.
func Resample(g *pixel.Grid, cols, rows int) *pixel.Grid {
	if cols == g.Width && rows == g.Height {
		return g
	}
	dst := imaging.Resize(g.Image(), cols, rows, imaging.NearestNeighbor)
	return &pixel.Grid{Width: cols, Height: rows, Pix: dst.Pix}
}

// CharFor maps a 0-255 luminance to its ramp character.
func CharFor(k float64) byte {
	return Ramp[Index(k)]
}

// Index maps a 0-255 luminance to a ramp position. Dark values land at the
// dense end. Rounding is half away from zero on (k/255)*11.
func Index(k float64) int {
	return indexForScaled(k / 255 * float64(len(Ramp)-1))
}

func indexForScaled(s float64) int {
	last := len(Ramp) - 1
	idx := last - int(math.Round(s))
	if idx < 0 {
		return 0
	}
	if idx > last {
		return last
	}
	return idx
}
