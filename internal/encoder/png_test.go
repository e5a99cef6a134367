package encoder

import (
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

func testGrid(w, h int, alpha bool) *pixel.Grid {
	g := pixel.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			a := uint8(255)
			if alpha {
				a = uint8(x * 255 / w)
			}
			g.Set(x, y, color.NRGBA{R: uint8(x * 7), G: uint8(y * 13), B: uint8(x ^ y), A: a})
		}
	}
	return g
}

func TestPNGEncoder_RoundTrip(t *testing.T) {
	for _, alpha := range []bool{false, true} {
		g := testGrid(31, 17, alpha)

		data, err := (&PNGEncoder{}).Encode(g)
		if err != nil {
			t.Fatalf("encode (alpha=%v): %v", alpha, err)
		}
		back, format, err := pixel.Decode(data)
		if err != nil {
			t.Fatalf("decode (alpha=%v): %v", alpha, err)
		}
		if format != "png" {
			t.Errorf("format: got %q", format)
		}
		if !back.Equal(g) {
			t.Errorf("round trip changed pixels (alpha=%v)", alpha)
		}
	}
}

func TestPNGEncoder_DecodeEncodeDecode(t *testing.T) {
	first, err := (&PNGEncoder{CompressionLevel: png.BestSpeed}).Encode(testGrid(9, 9, true))
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	g1, _, err := pixel.Decode(first)
	if err != nil {
		t.Fatalf("decode 1: %v", err)
	}
	second, err := (&PNGEncoder{CompressionLevel: png.BestCompression}).Encode(g1)
	if err != nil {
		t.Fatalf("encode 2: %v", err)
	}
	g2, _, err := pixel.Decode(second)
	if err != nil {
		t.Fatalf("decode 2: %v", err)
	}
	if !g2.Equal(g1) {
		t.Error("grid changed across compression levels")
	}
}

func TestPNGEncoder_InvalidGrid(t *testing.T) {
	bad := &pixel.Grid{Width: 4, Height: 4, Pix: make([]uint8, 3)}
	_, err := (&PNGEncoder{}).Encode(bad)
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EncodeError", err)
	}
	if ee.Format != "png" {
		t.Errorf("format: got %q", ee.Format)
	}
}

func TestPNGEncoder_ZeroSize(t *testing.T) {
	_, err := (&PNGEncoder{}).Encode(pixel.New(0, 0))
	var ee *EncodeError
	if !errors.As(err, &ee) {
		t.Fatalf("got %v, want *EncodeError", err)
	}
}

func TestParseCompression(t *testing.T) {
	cases := map[string]png.CompressionLevel{
		"":        png.DefaultCompression,
		"default": png.DefaultCompression,
		"none":    png.NoCompression,
		"fast":    png.BestSpeed,
		"best":    png.BestCompression,
	}
	for name, want := range cases {
		got, err := ParseCompression(name)
		if err != nil || got != want {
			t.Errorf("ParseCompression(%q): got %v, %v", name, got, err)
		}
	}
	if _, err := ParseCompression("ultra"); err == nil {
		t.Error("unknown level accepted")
	}
}
