package color

import "math"

// SRGBToLinear converts an sRGB component to linear (EOTF).
// Formula: if s <= 0.04045: s/12.92; else: pow((s+0.055)/1.055, 2.4)
func SRGBToLinear(s float64) float64 {
	if s <= 0.04045 {
		return s / 12.92
	}
	return math.Pow((s+0.055)/1.055, 2.4)
}

// LinearToSRGB converts a linear component to sRGB (OETF).
// Formula: if l <= 0.0031308: l*12.92; else: 1.055*pow(l, 1/2.4)-0.055
func LinearToSRGB(l float64) float64 {
	if l <= 0.0031308 {
		return l * 12.92
	}
	return 1.055*math.Pow(l, 1.0/2.4) - 0.055
}

// SRGB8ToLinear converts an 8-bit sRGB triplet to linear RGB in [0,1].
func SRGB8ToLinear(r, g, b uint8) (lr, lg, lb float64) {
	return SRGBToLinear(float64(r) / 255), SRGBToLinear(float64(g) / 255), SRGBToLinear(float64(b) / 255)
}

// LinearToSRGB8 converts a linear component to an 8-bit sRGB value.
// Input is clamped to [0,1] and the result is rounded to nearest.
func LinearToSRGB8(l float64) uint8 {
	if l <= 0 {
		return 0
	}
	if l >= 1 {
		return 255
	}
	return uint8(LinearToSRGB(l)*255 + 0.5)
}
