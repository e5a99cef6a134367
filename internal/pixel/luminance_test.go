package pixel

import (
	"math"
	"testing"
)

func TestLuminance(t *testing.T) {
	cases := []struct {
		r, g, b uint8
		want    float64
	}{
		{0, 0, 0, 0},
		{255, 0, 0, 0.2126 * 255},
		{0, 255, 0, 0.7152 * 255},
		{0, 0, 255, 0.0722 * 255},
		{255, 255, 255, 255},
	}
	for _, tc := range cases {
		got := Luminance(tc.r, tc.g, tc.b)
		if math.Abs(got-tc.want) > 1e-9 {
			t.Errorf("Luminance(%d,%d,%d): got %f, want %f", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestLuminance_WeightsSumToOne(t *testing.T) {
	if s := WeightR + WeightG + WeightB; math.Abs(s-1) > 1e-12 {
		t.Errorf("weights sum to %f", s)
	}
}
