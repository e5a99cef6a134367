package pixel

import "github.com/disintegration/imaging"

// Invert returns a new grid with R, G and B replaced by 255-channel.
// Alpha is copied unchanged.
func Invert(g *Grid) *Grid {
	if g.Len() == 0 {
		return g.Clone()
	}
	dst := imaging.Invert(g.Image())
	return &Grid{Width: g.Width, Height: g.Height, Pix: dst.Pix}
}

// InvertInPlace applies the same transform as Invert without allocating.
func (g *Grid) InvertInPlace() {
	for i := 0; i+3 < len(g.Pix); i += 4 {
		g.Pix[i] = 255 - g.Pix[i]
		g.Pix[i+1] = 255 - g.Pix[i+1]
		g.Pix[i+2] = 255 - g.Pix[i+2]
	}
}
