package ascii

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/AnyUserName/invascii-cli/internal/pixel"
)

func solid(w, h int, c color.NRGBA) *pixel.Grid {
	g := pixel.New(w, h)
	g.Fill(c)
	return g
}

// blocks builds a grid of bw x bh blocks, each block size x size pixels,
// filled with the gray level from levels[row][col].
func blocks(levels [][]uint8, size int) *pixel.Grid {
	bh, bw := len(levels), len(levels[0])
	g := pixel.New(bw*size, bh*size)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			v := levels[y/size][x/size]
			g.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return g
}

func TestRender_AllBlack(t *testing.T) {
	c, err := Render(solid(40, 20, color.NRGBA{A: 255}), 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range c.Lines() {
		if strings.Trim(line, "@") != "" {
			t.Fatalf("non-@ character in %q", line)
		}
	}
}

func TestRender_AllWhite(t *testing.T) {
	c, err := Render(solid(40, 20, color.NRGBA{R: 255, G: 255, B: 255, A: 255}), 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, line := range c.Lines() {
		if strings.Trim(line, " ") != "" {
			t.Fatalf("non-space character in %q", line)
		}
	}
}

func TestRender_Dimensions(t *testing.T) {
	c, err := Render(solid(40, 20, color.NRGBA{R: 90, G: 90, B: 90, A: 255}), 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Rows != 5 || c.Cols != 10 {
		t.Errorf("size: got %dx%d rows/cols, want 5x10", c.Rows, c.Cols)
	}
	if !strings.HasSuffix(c.Text, "\n") {
		t.Error("missing trailing newline")
	}
	if n := strings.Count(c.Text, "\n"); n != 5 {
		t.Errorf("newlines: got %d, want 5", n)
	}
	if len(c.Text) != 5*(10+1) {
		t.Errorf("length: got %d, want 55", len(c.Text))
	}
	for i, line := range c.Lines() {
		if len(line) != 10 {
			t.Errorf("row %d: got %d columns", i, len(line))
		}
	}
}

func TestRender_FloorsPartialBlocks(t *testing.T) {
	c, err := Render(solid(43, 23, color.NRGBA{A: 255}), 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Rows != 5 || c.Cols != 10 {
		t.Errorf("size: got %dx%d, want 5x10", c.Rows, c.Cols)
	}
}

func TestRender_InvalidResolution(t *testing.T) {
	cases := []struct {
		name      string
		w, h, res int
	}{
		{"1x1_at_4", 1, 1, 4},
		{"too_wide", 3, 10, 4},
		{"too_tall", 10, 3, 4},
		{"zero", 10, 10, 0},
		{"negative", 10, 10, -2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Render(solid(tc.w, tc.h, color.NRGBA{A: 255}), tc.res)
			if !errors.Is(err, ErrInvalidResolution) {
				t.Errorf("got %v, want ErrInvalidResolution", err)
			}
		})
	}
}

func TestRender_ResolutionOne(t *testing.T) {
	c, err := Render(solid(1, 1, color.NRGBA{A: 255}), 1)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if c.Text != "@\n" {
		t.Errorf("got %q", c.Text)
	}
}

func TestRender_TransparentKeepsColour(t *testing.T) {
	seeThrough := color.NRGBA{R: 255, G: 255, B: 255, A: 0}
	g := solid(8, 8, seeThrough)

	for _, tc := range []struct {
		res  int
		want string
	}{
		{1, strings.Repeat(strings.Repeat(" ", 8)+"\n", 8)},
		{4, "  \n  \n"},
	} {
		c, err := Render(g, tc.res)
		if err != nil {
			t.Fatalf("res %d: render: %v", tc.res, err)
		}
		if c.Text != tc.want {
			t.Errorf("res %d: got %q, want %q", tc.res, c.Text, tc.want)
		}
	}
}

func TestResample_CopiesSourcePixels(t *testing.T) {
	g := pixel.New(8, 8)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			g.Set(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 30), B: 200, A: uint8(x * y)})
		}
	}

	small := Resample(g, 2, 2)
	if small.Width != 2 || small.Height != 2 {
		t.Fatalf("size %dx%d, want 2x2", small.Width, small.Height)
	}
	// Each target pixel samples the source at its center: 8/2 blocks, offset 2.
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			want := g.At(x*4+2, y*4+2)
			if got := small.At(x, y); got != want {
				t.Errorf("(%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := Resample(g, 2, 2).At(0, 0); got.A != 4 || got.R != 60 {
		t.Errorf("transparent-ish pixel changed: %v", got)
	}
}

func TestRender_Deterministic(t *testing.T) {
	g := pixel.New(64, 48)
	for y := 0; y < 48; y++ {
		for x := 0; x < 64; x++ {
			g.Set(x, y, color.NRGBA{R: uint8(x * 4), G: uint8(y * 5), B: uint8((x + y) * 2), A: 255})
		}
	}
	a, err := Render(g, 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	b, _ := Render(g, 4)
	if a != b {
		t.Error("two renders of the same grid differ")
	}
}

func TestRender_Snapshot(t *testing.T) {
	g := blocks([][]uint8{
		{0, 64, 128, 255},
		{255, 192, 32, 0},
	}, 4)
	c, err := Render(g, 4)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	// 64  -> 2.76 -> 3 -> 8 ('$')
	// 128 -> 5.52 -> 6 -> 5 ('o')
	// 192 -> 8.28 -> 8 -> 3 (':')
	// 32  -> 1.38 -> 1 -> 10 ('#')
	want := "@$o \n :#@\n"
	if c.Text != want {
		t.Errorf("snapshot:\n got %q\nwant %q", c.Text, want)
	}
}

func TestIndex_Midpoints(t *testing.T) {
	cases := []struct {
		scaled float64
		want   int
	}{
		{0, 11},
		{0.49, 11},
		{0.5, 10},
		{1.5, 9},
		{5.5, 5},
		{10.5, 0},
		{11, 0},
		{12.7, 0},
		{-3, 11},
	}
	for _, tc := range cases {
		if got := indexForScaled(tc.scaled); got != tc.want {
			t.Errorf("indexForScaled(%v): got %d, want %d", tc.scaled, got, tc.want)
		}
	}
}

func TestCharFor_Ends(t *testing.T) {
	if c := CharFor(0); c != '@' {
		t.Errorf("black: got %q", c)
	}
	if c := CharFor(pixel.Luminance(255, 255, 255)); c != ' ' {
		t.Errorf("white: got %q", c)
	}
}

func TestTargetSize(t *testing.T) {
	cols, rows, err := TargetSize(40, 20, 4)
	if err != nil || cols != 10 || rows != 5 {
		t.Errorf("got %d, %d, %v", cols, rows, err)
	}
}
