//go:build ignore

// gen_fixtures creates small test images for a manual render smoke test.
// Usage: go run gen_fixtures.go <output_dir>
//
// Then: invascii render <output_dir> -o /tmp/invascii_out && invascii validate /tmp/invascii_out
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]

	// Same file name in two directories: both must render.
	for i, sub := range []string{"left", "right"} {
		os.MkdirAll(filepath.Join(dir, sub), 0o755)
		writeImage(filepath.Join(dir, sub, "card.png"), framed(80, 40, uint8(40+i*150)))
	}

	// Gradient wide enough for a readable ramp.
	writeImage(filepath.Join(dir, "ramp.png"), ramp(96, 16))

	// Translucent image: alpha must survive inversion.
	writeImage(filepath.Join(dir, "ghost.png"), alphaGradient(64, 32))

	// Smaller than the default resolution: fails to render.
	writeImage(filepath.Join(dir, "dot.png"), framed(1, 1, 0))

	// Not an image at all: fails to decode.
	os.WriteFile(filepath.Join(dir, "broken.png"), []byte("\x89PNG\r\n\x1a\ntruncated"), 0o644)

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 6 fixtures in %s\n", dir)
}

// ramp runs from black on the left to white on the right.
func ramp(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(x * 255 / (w - 1))
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

func framed(w, h int, base uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBA{R: base, G: base / 2, B: 255 - base, A: 255}
			if x < 4 || x >= w-4 || y < 4 || y >= h-4 {
				c = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func alphaGradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: 220, G: 60, B: 30,
				A: uint8(x * 255 / w),
			})
		}
	}
	return img
}

func writeImage(path string, img *image.NRGBA) {
	f, err := os.Create(path)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		panic(err)
	}
}
