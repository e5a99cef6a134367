package pixel

import "image/color"

// ITU-R BT.709 luma coefficients.
const (
	WeightR = 0.2126
	WeightG = 0.7152
	WeightB = 0.0722
)

// Luminance returns the BT.709 weighted brightness of an 8-bit RGB triple
// on a 0-255 scale. Gamma is not linearized.
func Luminance(r, g, b uint8) float64 {
	return WeightR*float64(r) + WeightG*float64(g) + WeightB*float64(b)
}

// LuminanceOf is Luminance for a color.NRGBA; alpha is ignored.
func LuminanceOf(c color.NRGBA) float64 {
	return Luminance(c.R, c.G, c.B)
}
