// Package pixel holds the decoded pixel grid every transform works on,
// together with the decoder, the inverter and the luminance weighting.
package pixel

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Grid is a row-major RGBA pixel grid with 8-bit, non-premultiplied channels.
// Pixel (x, y) starts at Pix[4*(y*Width+x)].
type Grid struct {
	Width  int
	Height int
	Pix    []uint8
}

// New allocates a zeroed (transparent black) grid.
func New(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, 4*width*height),
	}
}

// FromImage copies any image.Image into a grid anchored at (0, 0).
func FromImage(img image.Image) *Grid {
	// imaging.Clone always returns a tightly packed NRGBA with Min at the origin.
	dst := imaging.Clone(img)
	return &Grid{
		Width:  dst.Rect.Dx(),
		Height: dst.Rect.Dy(),
		Pix:    dst.Pix,
	}
}

// Image returns an *image.NRGBA view sharing the grid's pixel memory.
func (g *Grid) Image() *image.NRGBA {
	return &image.NRGBA{
		Pix:    g.Pix,
		Stride: 4 * g.Width,
		Rect:   image.Rect(0, 0, g.Width, g.Height),
	}
}

// Validate checks the length invariant of Pix.
func (g *Grid) Validate() error {
	if g.Width < 0 || g.Height < 0 {
		return fmt.Errorf("negative dimensions %dx%d", g.Width, g.Height)
	}
	if want := 4 * g.Width * g.Height; len(g.Pix) != want {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d for %dx%d",
			len(g.Pix), want, g.Width, g.Height)
	}
	return nil
}

// Len returns the number of pixels.
func (g *Grid) Len() int { return g.Width * g.Height }

func (g *Grid) offset(x, y int) int { return 4 * (y*g.Width + x) }

// At returns the pixel at (x, y). Out-of-range coordinates yield transparent black.
func (g *Grid) At(x, y int) color.NRGBA {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return color.NRGBA{}
	}
	i := g.offset(x, y)
	return color.NRGBA{R: g.Pix[i], G: g.Pix[i+1], B: g.Pix[i+2], A: g.Pix[i+3]}
}

// Set stores c at (x, y); out-of-range writes are ignored.
func (g *Grid) Set(x, y int, c color.NRGBA) {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return
	}
	i := g.offset(x, y)
	g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3] = c.R, c.G, c.B, c.A
}

// Fill paints every pixel with c.
func (g *Grid) Fill(c color.NRGBA) {
	for i := 0; i+3 < len(g.Pix); i += 4 {
		g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3] = c.R, c.G, c.B, c.A
	}
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	pix := make([]uint8, len(g.Pix))
	copy(pix, g.Pix)
	return &Grid{Width: g.Width, Height: g.Height, Pix: pix}
}

// Equal reports whether both grids have the same dimensions and pixels.
func (g *Grid) Equal(o *Grid) bool {
	if g == nil || o == nil {
		return g == o
	}
	return g.Width == o.Width && g.Height == o.Height && bytes.Equal(g.Pix, o.Pix)
}

// HasAlpha reports whether any pixel is not fully opaque.
func (g *Grid) HasAlpha() bool {
	for i := 3; i < len(g.Pix); i += 4 {
		if g.Pix[i] != 0xff {
			return true
		}
	}
	return false
}
