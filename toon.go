package pixelart

import "math"

// hardEdgeEpsilon is the softness below which toon bands use a hard step.
const hardEdgeEpsilon = 1e-4

// shadowLuminance is the luminance at or below which a lit color is treated
// as unlit. Rescaling such a color by target/luminance is numerically unsafe.
const shadowLuminance = 0.001

// Smoothstep performs Hermite interpolation between 0 and 1 as x moves
// from edge0 to edge1, matching the WGSL builtin. When the edges coincide
// it degrades to a step at edge0.
func Smoothstep(edge0, edge1, x float64) float64 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := clamp01((x - edge0) / (edge1 - edge0))
	return t * t * (3 - 2*t)
}

// QuantizeToon maps a luminance value onto bands+1 evenly spaced levels
// 0, 1/bands, ..., 1 (values above 1 continue the same spacing).
//
// With softness below 1e-4 the result snaps to the nearest level; exact
// midpoints resolve to the lower level, so QuantizeToon(0.15, 10, 0) is 0.1.
// Otherwise every step whose midpoint lies within softness of v is replaced
// by a smoothstep spanning midpoint±softness and the overlapping ramps are
// summed, so wide softness blends neighbouring bands instead of jumping at
// band floors. The result is continuous and non-decreasing in v for any
// softness.
func QuantizeToon(v, bands, softness float64) float64 {
	scaled := v * bands
	if softness < hardEdgeEpsilon {
		return math.Ceil(scaled-0.5) / bands
	}
	// Midpoints sit at (k+0.5)/bands; those below first are fully passed.
	first := math.Ceil((v-softness)*bands - 0.5)
	last := math.Floor((v+softness)*bands - 0.5)
	level := first
	for k := first; k <= last; k++ {
		boundary := (k + 0.5) / bands
		level += Smoothstep(boundary-softness, boundary+softness, v)
	}
	return level / bands
}

// applyToon quantizes the luminance of a lit color and rescales the color
// to the banded luminance, lifted by the shadow floor. RGB is clamped to
// [0,1]; alpha is carried through.
func applyToon(lit RGBA, p *Params) RGBA {
	lum := lit.Luminance()
	if lum <= shadowLuminance {
		return p.BaseTint.Scale(p.ToonShadowFloor).WithAlpha(lit.A).Clamp()
	}
	q := QuantizeToon(lum, p.ToonBands, p.ToonSoftness)
	target := mix(p.ToonShadowFloor, 1, q)
	return lit.Scale(target / lum).Clamp()
}
