package pixelart

import (
	"errors"
	"fmt"
	"math"
)

// Stage selects where the per-fragment pipeline stops, for inspecting
// intermediate results.
type Stage uint8

const (
	// StageFull runs toon, palette and dither.
	StageFull Stage = iota

	// StagePBR returns the lit color untouched by stylization.
	StagePBR

	// StageToon stops after toon quantization.
	StageToon

	// StagePalette stops after palette matching, without dither.
	StagePalette

	// StageDither runs palette matching with dither. Output equals StageFull.
	StageDither
)

// maxStage is the highest valid debug stage.
const maxStage = StageDither

var stageNames = [...]string{"full", "pbr", "toon", "palette", "dither"}

// String returns the lowercase name of the stage.
func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", s)
}

// ParseStage accepts a stage name or its number (0-4).
func ParseStage(s string) (Stage, error) {
	for i, name := range stageNames {
		if s == name || s == fmt.Sprint(i) {
			return Stage(i), nil
		}
	}
	return StageFull, fmt.Errorf("%w: unknown debug stage %q", ErrInvalidParams, s)
}

// Params holds the stylization parameters for one material. A Params value
// is treated as immutable while a frame is processed.
type Params struct {
	// BaseTint replaces the material base color before lighting and is the
	// color of fully unlit areas (scaled by ToonShadowFloor).
	BaseTint RGBA

	// ToonBands is the number of luminance bands. Must be positive.
	ToonBands float64

	// ToonSoftness is the half-width of the smooth transition at each band
	// boundary. 0 gives hard bands.
	ToonSoftness float64

	// ToonShadowFloor is the minimum brightness of quantized output, in [0,1].
	ToonShadowFloor float64

	// DitherDensity scales dither coordinates. Larger values give a finer
	// pattern. Must be positive.
	DitherDensity float64

	// PaletteCount is the number of leading Palette entries used for
	// matching. 0 disables the palette and dither stages.
	PaletteCount int

	// PaletteStrength mixes the toon color toward the matched palette
	// color, in [0,1].
	PaletteStrength float64

	// DitherStrength scales dithering between the two nearest palette
	// colors, in [0,1].
	DitherStrength float64

	// DebugStage stops the pipeline early.
	DebugStage Stage

	// Palette is the ordered palette to match against.
	Palette Palette

	// DitherSpace selects the coordinates that index the dither pattern.
	DitherSpace DitherSpace
}

// DefaultParams returns the default material: a white tint, 10 hard bands
// with a 0.1 shadow floor, the full 64-color default palette at strength
// 0.25, and dither strength 0.3 in world space.
func DefaultParams() Params {
	return Params{
		BaseTint:        White,
		ToonBands:       10,
		ToonSoftness:    0,
		ToonShadowFloor: 0.1,
		DitherDensity:   1,
		PaletteCount:    PaletteCapacity,
		PaletteStrength: 0.25,
		DitherStrength:  0.3,
		DebugStage:      StageFull,
		Palette:         DefaultPalette(),
		DitherSpace:     DitherWorld,
	}
}

// Normalize clamps PaletteCount to [0, Palette.Len()] and DebugStage to a
// valid stage, logging a warning for each adjustment.
func (p *Params) Normalize() {
	if n := p.Palette.Len(); p.PaletteCount > n || p.PaletteCount < 0 {
		clamped := max(0, min(p.PaletteCount, n))
		Logger().Warn("pixelart: palette count clamped",
			"count", p.PaletteCount, "clamped", clamped, "palette", n)
		p.PaletteCount = clamped
	}
	if p.DebugStage > maxStage {
		Logger().Warn("pixelart: debug stage clamped",
			"stage", int(p.DebugStage), "clamped", int(maxStage))
		p.DebugStage = maxStage
	}
}

// Validate reports every parameter outside its documented range. The
// returned error wraps ErrInvalidParams.
func (p *Params) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidParams}, args...)...))
		}
	}

	check(finite(p.BaseTint.R) && finite(p.BaseTint.G) && finite(p.BaseTint.B) &&
		p.BaseTint.R >= 0 && p.BaseTint.G >= 0 && p.BaseTint.B >= 0,
		"base tint %v must be non-negative", p.BaseTint)
	check(finite(p.ToonBands) && p.ToonBands > 0, "toon bands %g must be positive", p.ToonBands)
	check(finite(p.ToonSoftness) && p.ToonSoftness >= 0, "toon softness %g must be non-negative", p.ToonSoftness)
	check(inUnit(p.ToonShadowFloor), "shadow floor %g must be in [0,1]", p.ToonShadowFloor)
	check(finite(p.DitherDensity) && p.DitherDensity > 0, "dither density %g must be positive", p.DitherDensity)
	check(p.PaletteCount >= 0 && p.PaletteCount <= p.Palette.Len(),
		"palette count %d must be in [0,%d]", p.PaletteCount, p.Palette.Len())
	check(inUnit(p.PaletteStrength), "palette strength %g must be in [0,1]", p.PaletteStrength)
	check(inUnit(p.DitherStrength), "dither strength %g must be in [0,1]", p.DitherStrength)
	check(p.DebugStage <= maxStage, "debug stage %d must be in [0,%d]", p.DebugStage, maxStage)
	check(p.DitherSpace <= DitherScreen, "unknown dither space %d", p.DitherSpace)

	return errors.Join(errs...)
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

func inUnit(x float64) bool {
	return x >= 0 && x <= 1
}
