package pixelart

// GeometryClass tags geometry for the stylized pass.
type GeometryClass uint8

const (
	// ClassStylized geometry runs the full stylization pipeline.
	ClassStylized GeometryClass = iota

	// ClassHoldout geometry writes depth but no color in the stylized
	// layer, so the realistic layer shows through while still occluding
	// stylized geometry behind it.
	ClassHoldout
)

// String returns the lowercase class name.
func (c GeometryClass) String() string {
	switch c {
	case ClassStylized:
		return "stylized"
	case ClassHoldout:
		return "holdout"
	default:
		return "unknown"
	}
}

// Fragment is the per-pixel context passed through the pipeline.
type Fragment struct {
	// Screen is the pixel position in the target.
	Screen Vec2

	// World is the world-space position of the surface.
	World Vec3

	// FrontFacing reports whether the surface faces the camera.
	FrontFacing bool

	// Class is the geometry class of the surface.
	Class GeometryClass
}

// Lighting is the external lighting model. Shade computes the lit color of
// a fragment whose base color is replaced by baseColor. Finish applies any
// post-lighting processing (fog, tonemapping) to the final color.
//
// Implementations must be safe for concurrent use when passed to a
// Renderer.
type Lighting interface {
	Shade(frag Fragment, baseColor RGBA) RGBA
	Finish(frag Fragment, c RGBA) RGBA
}

// Stylize runs the per-fragment pipeline: lighting, toon quantization,
// palette matching and ordered dither, stopping early at p.DebugStage.
// Post-lighting is applied once to whichever color the pipeline ends on.
//
// Holdout fragments return Transparent without invoking the lighting.
// Stylize never fails; p is expected to be normalized.
func Stylize(p *Params, frag Fragment, light Lighting) RGBA {
	if frag.Class == ClassHoldout {
		return HoldoutColor()
	}

	lit := light.Shade(frag, p.BaseTint)
	if p.DebugStage == StagePBR {
		return light.Finish(frag, lit)
	}

	toon := applyToon(lit, p)
	if p.DebugStage == StageToon || p.PaletteCount <= 0 {
		return light.Finish(frag, toon)
	}

	m := p.Palette.Match(toon, p.PaletteCount)
	chosen := m.Nearest
	if p.DebugStage != StagePalette && selectSecond(p, frag, m) {
		chosen = m.Second
	}
	return light.Finish(frag, toon.MixRGB(chosen, p.PaletteStrength))
}

// selectSecond reports whether the dither picks the runner-up palette color.
// Dither is confined to palette boundaries, where the blend ratio is high.
func selectSecond(p *Params, frag Fragment, m PaletteMatch) bool {
	eff := Smoothstep(0.1, 0.35, m.Blend) * p.DitherStrength
	if eff <= 0 {
		return false
	}
	return m.Blend*eff > DitherThreshold(ditherCoord(p, frag))
}

// ditherCoord returns the lattice position indexing the dither pattern.
func ditherCoord(p *Params, frag Fragment) Vec2 {
	pos := frag.World.XZ()
	if p.DitherSpace == DitherScreen {
		pos = frag.Screen
	}
	return pos.Mul(p.DitherDensity).Floor()
}
