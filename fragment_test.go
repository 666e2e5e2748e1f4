package pixelart

import "testing"

// flatLight returns a fixed lit color modulated by the tint and counts
// calls. Finish optionally tags the output so tests can see it ran.
type flatLight struct {
	lit      RGBA
	finishG  float64
	shades   int
	finishes int
}

func (l *flatLight) Shade(_ Fragment, tint RGBA) RGBA {
	l.shades++
	return RGBA{R: l.lit.R * tint.R, G: l.lit.G * tint.G, B: l.lit.B * tint.B, A: l.lit.A}
}

func (l *flatLight) Finish(_ Fragment, c RGBA) RGBA {
	l.finishes++
	c.G += l.finishG
	return c
}

func bwParams(t *testing.T) Params {
	t.Helper()
	p := DefaultParams()
	pal, err := NewPalette(Black, White)
	if err != nil {
		t.Fatal(err)
	}
	p.Palette = pal
	p.PaletteCount = 2
	p.PaletteStrength = 1
	p.DitherStrength = 1
	p.DitherSpace = DitherScreen
	return p
}

func TestStylize_StageGating(t *testing.T) {
	p := DefaultParams()
	lit := RGBA{R: 0.3, G: 0.2, B: 0.1, A: 1}
	frag := Fragment{Screen: Vec2{X: 3.5, Y: 7.5}, World: Vec3{X: 1.2, Z: -4.3}}

	p.DebugStage = StagePBR
	if got := Stylize(&p, frag, &flatLight{lit: lit}); got != lit {
		t.Errorf("StagePBR = %+v, want lit color %+v", got, lit)
	}

	p.DebugStage = StageToon
	toon := applyToon(lit, &p)
	if got := Stylize(&p, frag, &flatLight{lit: lit}); got != toon {
		t.Errorf("StageToon = %+v, want %+v", got, toon)
	}

	p.DebugStage = StagePalette
	m := p.Palette.Match(toon, p.PaletteCount)
	want := toon.MixRGB(m.Nearest, p.PaletteStrength)
	if got := Stylize(&p, frag, &flatLight{lit: lit}); got != want {
		t.Errorf("StagePalette = %+v, want %+v", got, want)
	}

	p.DebugStage = StageDither
	dither := Stylize(&p, frag, &flatLight{lit: lit})
	p.DebugStage = StageFull
	if full := Stylize(&p, frag, &flatLight{lit: lit}); full != dither {
		t.Errorf("StageFull = %+v, StageDither = %+v, want equal", full, dither)
	}
}

func TestStylize_PaletteDisabled(t *testing.T) {
	p := DefaultParams()
	p.PaletteCount = 0
	lit := RGBA{R: 0.6, G: 0.3, B: 0.2, A: 1}
	frag := Fragment{World: Vec3{X: 0.5, Z: 0.5}}

	results := make(map[Stage]RGBA)
	for _, s := range []Stage{StageFull, StageToon, StagePalette, StageDither} {
		p.DebugStage = s
		results[s] = Stylize(&p, frag, &flatLight{lit: lit})
	}
	for s, got := range results {
		if got != results[StageToon] {
			t.Errorf("stage %v = %+v, want toon output %+v", s, got, results[StageToon])
		}
	}
}

func TestStylize_FinishRunsOnce(t *testing.T) {
	p := DefaultParams()
	lit := RGBA{R: 0.4, G: 0.4, B: 0.4, A: 1}
	for _, s := range []Stage{StageFull, StagePBR, StageToon, StagePalette, StageDither} {
		p.DebugStage = s
		l := &flatLight{lit: lit}
		Stylize(&p, Fragment{}, l)
		if l.shades != 1 || l.finishes != 1 {
			t.Errorf("stage %v: Shade x%d Finish x%d, want 1 each", s, l.shades, l.finishes)
		}
	}
}

func TestStylize_PostLightingApplied(t *testing.T) {
	p := DefaultParams()
	p.PaletteCount = 0
	l := &flatLight{lit: RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}, finishG: 0.25}
	got := Stylize(&p, Fragment{}, l)
	// toon gray is 0.55; Finish adds 0.25 to green after clamping.
	if !floatNear(got.G, 0.8, 1e-9) || !floatNear(got.R, 0.55, 1e-9) {
		t.Errorf("Stylize() = %+v, want Finish applied to toon color", got)
	}
}

func TestStylize_Holdout(t *testing.T) {
	p := DefaultParams()
	l := &flatLight{lit: White}
	got := Stylize(&p, Fragment{Class: ClassHoldout}, l)
	if got != Transparent {
		t.Errorf("holdout = %+v, want transparent", got)
	}
	if l.shades != 0 || l.finishes != 0 {
		t.Errorf("holdout invoked lighting (Shade x%d, Finish x%d)", l.shades, l.finishes)
	}
}

func TestStylize_TintReplacesBaseColor(t *testing.T) {
	p := DefaultParams()
	p.DebugStage = StagePBR
	p.BaseTint = RGB(1, 0, 0)
	got := Stylize(&p, Fragment{}, &flatLight{lit: RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}})
	if got != (RGBA{R: 0.5, A: 1}) {
		t.Errorf("Stylize() = %+v, want red-tinted lit color", got)
	}
}

func TestStylize_DitherSelectsSecondAtLowThreshold(t *testing.T) {
	p := bwParams(t)
	// Lit gray 0.5 becomes toon gray 0.55: nearest white, second black,
	// blend ~0.21.
	lit := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}

	low := Fragment{Screen: Vec2{X: 0.5, Y: 0.5}}  // threshold 0
	high := Fragment{Screen: Vec2{X: 0.5, Y: 3.5}} // threshold 15/16

	if got := Stylize(&p, low, &flatLight{lit: lit}); got != Black {
		t.Errorf("low threshold = %+v, want second-nearest black", got)
	}
	if got := Stylize(&p, high, &flatLight{lit: lit}); got != White {
		t.Errorf("high threshold = %+v, want nearest white", got)
	}

	p.DitherStrength = 0
	if got := Stylize(&p, low, &flatLight{lit: lit}); got != White {
		t.Errorf("dither disabled = %+v, want nearest white", got)
	}

	p.DitherStrength = 1
	p.DebugStage = StagePalette
	if got := Stylize(&p, low, &flatLight{lit: lit}); got != White {
		t.Errorf("StagePalette = %+v, want nearest white without dither", got)
	}
}

func TestStylize_DitherSpaceCameraMotion(t *testing.T) {
	lit := RGBA{R: 0.5, G: 0.5, B: 0.5, A: 1}
	world := Vec3{X: 2.25, Y: 1, Z: 5.75}

	t.Run("world pattern follows geometry", func(t *testing.T) {
		p := bwParams(t)
		p.DitherSpace = DitherWorld
		want := Stylize(&p, Fragment{Screen: Vec2{X: 0.5, Y: 0.5}, World: world}, &flatLight{lit: lit})
		for _, s := range []Vec2{{X: 1.5, Y: 0.5}, {X: 17.5, Y: 3.5}, {X: 2.5, Y: 9.5}} {
			got := Stylize(&p, Fragment{Screen: s, World: world}, &flatLight{lit: lit})
			if got != want {
				t.Errorf("screen %v: %+v, want %+v", s, got, want)
			}
		}
	})

	t.Run("screen pattern follows pixels", func(t *testing.T) {
		p := bwParams(t)
		p.DitherSpace = DitherScreen
		screen := Vec2{X: 6.5, Y: 2.5}
		want := Stylize(&p, Fragment{Screen: screen, World: world}, &flatLight{lit: lit})
		for _, w := range []Vec3{{X: 0.1, Z: 0.1}, {X: -30, Z: 12.6}, {X: 7.7, Y: 3, Z: -1}} {
			got := Stylize(&p, Fragment{Screen: screen, World: w}, &flatLight{lit: lit})
			if got != want {
				t.Errorf("world %v: %+v, want %+v", w, got, want)
			}
		}
	})
}

func TestPrepassNormalAlpha(t *testing.T) {
	if got := PrepassNormalAlpha(ClassStylized); got != 1 {
		t.Errorf("stylized prepass alpha = %v, want 1", got)
	}
	if got := PrepassNormalAlpha(ClassHoldout); got != 0 {
		t.Errorf("holdout prepass alpha = %v, want 0", got)
	}
	if HoldoutColor() != (RGBA{}) {
		t.Errorf("HoldoutColor() = %+v, want all zero", HoldoutColor())
	}
}

func BenchmarkStylize(b *testing.B) {
	p := DefaultParams()
	l := &flatLight{lit: RGBA{R: 0.42, G: 0.3, B: 0.2, A: 1}}
	frag := Fragment{World: Vec3{X: 1, Z: 2}}
	for b.Loop() {
		_ = Stylize(&p, frag, l)
	}
}
