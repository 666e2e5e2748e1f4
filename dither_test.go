package pixelart

import (
	"errors"
	"testing"
)

func TestBayerThreshold_Values(t *testing.T) {
	tests := []struct {
		x, y int
		want float64
	}{
		{0, 0, 0},
		{1, 0, 8.0 / 16},
		{0, 1, 12.0 / 16},
		{2, 2, 1.0 / 16},
		{0, 3, 15.0 / 16},
		{3, 3, 5.0 / 16},
	}
	for _, tt := range tests {
		if got := BayerThreshold(tt.x, tt.y); got != tt.want {
			t.Errorf("BayerThreshold(%d, %d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestBayerThreshold_Periodic(t *testing.T) {
	for y := -12; y <= 12; y++ {
		for x := -12; x <= 12; x++ {
			v := BayerThreshold(x, y)
			if BayerThreshold(x+4, y) != v || BayerThreshold(x, y+4) != v {
				t.Fatalf("pattern not 4-periodic at (%d, %d)", x, y)
			}
		}
	}
	// Negative coordinates continue the tiling rather than mirroring it.
	if BayerThreshold(-1, -1) != BayerThreshold(3, 3) {
		t.Error("BayerThreshold(-1, -1) should equal BayerThreshold(3, 3)")
	}
}

func TestBayerThreshold_CoversAllLevels(t *testing.T) {
	seen := make(map[float64]bool)
	for y := range 4 {
		for x := range 4 {
			v := BayerThreshold(x, y)
			if v < 0 || v >= 1 {
				t.Errorf("threshold %v out of [0,1)", v)
			}
			seen[v] = true
		}
	}
	if len(seen) != 16 {
		t.Errorf("got %d distinct thresholds, want 16", len(seen))
	}
}

func TestDitherThreshold_Floors(t *testing.T) {
	if got, want := DitherThreshold(Vec2{X: 1.9, Y: 0.2}), BayerThreshold(1, 0); got != want {
		t.Errorf("DitherThreshold(1.9, 0.2) = %v, want %v", got, want)
	}
	if got, want := DitherThreshold(Vec2{X: -0.5, Y: -0.5}), BayerThreshold(-1, -1); got != want {
		t.Errorf("DitherThreshold(-0.5, -0.5) = %v, want %v", got, want)
	}
}

func TestParseDitherSpace(t *testing.T) {
	for _, s := range []DitherSpace{DitherWorld, DitherScreen} {
		got, err := ParseDitherSpace(s.String())
		if err != nil || got != s {
			t.Errorf("ParseDitherSpace(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseDitherSpace("view"); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("ParseDitherSpace(view) error = %v, want ErrInvalidParams", err)
	}
}
