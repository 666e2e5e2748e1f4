package pixelart

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	icolor "github.com/gogpu/pixelart/internal/color"
)

// RGBA is a linear-light color. RGB components are in [0,1] for display
// colors and may exceed 1 for HDR lighting results; A is straight (not
// premultiplied) alpha.
type RGBA struct {
	R, G, B, A float64
}

// Common colors.
var (
	Black       = RGBA{0, 0, 0, 1}
	White       = RGBA{1, 1, 1, 1}
	Transparent = RGBA{0, 0, 0, 0}
)

// RGB creates an opaque linear color.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1}
}

// SRGB8 creates an opaque color from 8-bit sRGB components,
// converting them to linear light.
func SRGB8(r, g, b uint8) RGBA {
	lr, lg, lb := icolor.SRGB8ToLinear(r, g, b)
	return RGBA{R: lr, G: lg, B: lb, A: 1}
}

// Hex parses an sRGB hex string ("#rrggbb" or "#rgb") into an opaque
// linear color.
func Hex(s string) (RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return RGBA{}, fmt.Errorf("pixelart: parse color %q: %w", s, err)
	}
	r, g, b := c.LinearRgb()
	return RGBA{R: r, G: g, B: b, A: 1}, nil
}

// Hex formats the color as an sRGB "#rrggbb" string. Alpha is dropped and
// components are clamped to [0,1].
func (c RGBA) Hex() string {
	s := c.Clamp()
	return colorful.LinearRgb(s.R, s.G, s.B).Clamped().Hex()
}

// Lab is a CIELAB color relative to the D65 white point.
type Lab = icolor.Lab

// Lab converts the RGB components to CIELAB. Alpha is ignored.
func (c RGBA) Lab() Lab {
	return icolor.LinearRGBToLab(c.R, c.G, c.B)
}

// FromLab converts a CIELAB color to opaque linear RGB. Out-of-gamut
// colors are not clamped.
func FromLab(l Lab) RGBA {
	r, g, b := icolor.LabToLinearRGB(l)
	return RGBA{R: r, G: g, B: b, A: 1}
}

// Luminance returns the Rec. 709 relative luminance of the RGB components.
func (c RGBA) Luminance() float64 {
	return 0.2126*c.R + 0.7152*c.G + 0.0722*c.B
}

// Scale multiplies the RGB components by s, leaving alpha untouched.
func (c RGBA) Scale(s float64) RGBA {
	return RGBA{R: c.R * s, G: c.G * s, B: c.B * s, A: c.A}
}

// Clamp limits the RGB components to [0,1], leaving alpha untouched.
func (c RGBA) Clamp() RGBA {
	return RGBA{R: clamp01(c.R), G: clamp01(c.G), B: clamp01(c.B), A: c.A}
}

// MixRGB linearly interpolates the RGB components toward d by t and keeps
// the alpha of c.
func (c RGBA) MixRGB(d RGBA, t float64) RGBA {
	return RGBA{
		R: mix(c.R, d.R, t),
		G: mix(c.G, d.G, t),
		B: mix(c.B, d.B, t),
		A: c.A,
	}
}

// WithAlpha returns c with its alpha replaced.
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = a
	return c
}

func clamp01(x float64) float64 {
	if !(x > 0) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

func mix(a, b, t float64) float64 {
	return a + (b-a)*t
}
