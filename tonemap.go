package pixelart

import (
	"fmt"
	"math"
)

// Tonemap maps scene-referred linear color to display range.
type Tonemap uint8

const (
	// TonemapNone passes color through.
	TonemapNone Tonemap = iota

	// TonemapClamp clamps RGB to [0,1].
	TonemapClamp

	// TonemapReinhard applies c/(1+c) per channel.
	TonemapReinhard
)

var tonemapNames = [...]string{"none", "clamp", "reinhard"}

// String returns the config name of the operator.
func (t Tonemap) String() string {
	if int(t) < len(tonemapNames) {
		return tonemapNames[t]
	}
	return fmt.Sprintf("Tonemap(%d)", t)
}

// ParseTonemap parses "none", "clamp" or "reinhard".
func ParseTonemap(s string) (Tonemap, error) {
	if s == "" {
		return TonemapNone, nil
	}
	for i, name := range tonemapNames {
		if s == name {
			return Tonemap(i), nil
		}
	}
	return TonemapNone, fmt.Errorf("%w: unknown tonemap %q", ErrInvalidParams, s)
}

// Apply scales c by 2^exposure and maps it. Alpha is preserved.
func (t Tonemap) Apply(c RGBA, exposure float64) RGBA {
	if exposure != 0 {
		k := math.Exp2(exposure)
		c.R, c.G, c.B = c.R*k, c.G*k, c.B*k
	}
	switch t {
	case TonemapClamp:
		return c.Clamp()
	case TonemapReinhard:
		return RGBA{R: reinhard(c.R), G: reinhard(c.G), B: reinhard(c.B), A: c.A}
	default:
		return c
	}
}

func reinhard(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return x / (1 + x)
}

// PrelitLighting adapts an already lit frame to the Lighting interface.
// The renderer that produced the frame has already applied the base color,
// so Shade ignores the tint. Finish applies exposure and the tonemap.
type PrelitLighting struct {
	Frame    *Frame
	Tonemap  Tonemap
	Exposure float64
}

// Shade returns the stored lit color under the fragment.
func (l PrelitLighting) Shade(frag Fragment, _ RGBA) RGBA {
	return l.Frame.At(int(math.Floor(frag.Screen.X)), int(math.Floor(frag.Screen.Y)))
}

// Finish applies exposure and the tonemap.
func (l PrelitLighting) Finish(_ Fragment, c RGBA) RGBA {
	return l.Tonemap.Apply(c, l.Exposure)
}
