// Package color provides the color-space math used by the pixel-art pipeline.
//
// Three families of conversions live here:
//   - sRGB transfer functions (exact, float64) for palette authoring
//   - 8-bit sRGB lookup tables for frame I/O
//   - linear RGB ↔ CIELAB (D65) for perceptual palette matching
//
// All functions are pure and safe for concurrent use.
package color

// Lab is a color in CIE L*a*b* space relative to the D65 white point.
// L is in [0,100] for in-gamut colors; a and b are unbounded chromaticity axes.
type Lab struct {
	L, A, B float64
}
