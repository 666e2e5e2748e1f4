package pixelart

import (
	"math"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func floatNear(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func rgbNear(a, b RGBA, eps float64) bool {
	return floatNear(a.R, b.R, eps) && floatNear(a.G, b.G, eps) &&
		floatNear(a.B, b.B, eps) && floatNear(a.A, b.A, eps)
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want RGBA
	}{
		{"#000000", Black},
		{"#ffffff", White},
		{"#ff0000", RGB(1, 0, 0)},
		{"#fff", White},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Hex(tt.in)
			if err != nil {
				t.Fatalf("Hex(%q) error = %v", tt.in, err)
			}
			if !rgbNear(got, tt.want, 1e-9) {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := Hex("not a color"); err == nil {
		t.Error("Hex(invalid) should fail")
	}
}

func TestRGBA_HexRoundTrip(t *testing.T) {
	for _, e := range DefaultPaletteEntries() {
		c := SRGB8(e.R, e.G, e.B)
		back, err := Hex(c.Hex())
		if err != nil {
			t.Fatalf("%s: %v", e.Name, err)
		}
		if !rgbNear(c, back, 1e-6) {
			t.Errorf("%s: %+v -> %s -> %+v", e.Name, c, c.Hex(), back)
		}
	}
}

func TestSRGB8(t *testing.T) {
	if got := SRGB8(255, 255, 255); !rgbNear(got, White, 1e-6) {
		t.Errorf("SRGB8(white) = %+v", got)
	}
	// sRGB 128 is about 21.6% linear.
	if got := SRGB8(128, 128, 128); !floatNear(got.R, 0.2158605, 1e-5) {
		t.Errorf("SRGB8(128).R = %v, want ~0.21586", got.R)
	}
}

func TestRGBA_ClampAndMix(t *testing.T) {
	c := RGBA{R: -1, G: 0.5, B: 2, A: 0.3}.Clamp()
	if c != (RGBA{R: 0, G: 0.5, B: 1, A: 0.3}) {
		t.Errorf("Clamp() = %+v", c)
	}
	if got := (RGBA{R: math.NaN(), A: 1}).Clamp(); got.R != 0 {
		t.Errorf("Clamp(NaN).R = %v, want 0", got.R)
	}

	m := RGBA{R: 0, G: 0, B: 0, A: 0.5}.MixRGB(RGBA{R: 1, G: 1, B: 1, A: 1}, 0.25)
	want := RGBA{R: 0.25, G: 0.25, B: 0.25, A: 0.5}
	if !rgbNear(m, want, 1e-12) {
		t.Errorf("MixRGB() = %+v, want %+v", m, want)
	}
}

func TestRGBA_Luminance(t *testing.T) {
	if got := White.Luminance(); !floatNear(got, 1, 1e-12) {
		t.Errorf("White.Luminance() = %v, want 1", got)
	}
	if got := RGB(0, 1, 0).Luminance(); got != 0.7152 {
		t.Errorf("green luminance = %v, want 0.7152", got)
	}
}

func TestRGBA_LabMatchesColorful(t *testing.T) {
	// go-colorful reports L, a and b scaled by 1/100.
	for _, c := range []RGBA{
		Black, White,
		RGB(1, 0, 0), RGB(0, 1, 0), RGB(0, 0, 1),
		RGB(0.2, 0.5, 0.8), RGB(0.9, 0.7, 0.1),
	} {
		got := c.Lab()
		l, a, b := colorful.LinearRgb(c.R, c.G, c.B).Lab()
		if !floatNear(got.L, l*100, 0.2) || !floatNear(got.A, a*100, 0.2) || !floatNear(got.B, b*100, 0.2) {
			t.Errorf("%+v.Lab() = %+v, colorful = (%v, %v, %v)", c, got, l*100, a*100, b*100)
		}
	}
}

func TestFromLabRoundTrip(t *testing.T) {
	for _, c := range []RGBA{RGB(0.2, 0.5, 0.8), RGB(1, 1, 1), RGB(0.01, 0.3, 0)} {
		if got := FromLab(c.Lab()); !rgbNear(got, c, 1e-4) {
			t.Errorf("FromLab(%+v.Lab()) = %+v", c, got)
		}
	}
}
