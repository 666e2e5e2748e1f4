// Package config loads stylization settings from TOML files.
//
// A file has three optional tables:
//
//	[stylize]
//	base_tint = "#ffffff"          # or a linear [r, g, b] / [r, g, b, a] array
//	toon_bands = 10.0
//	toon_softness = 0.0
//	toon_shadow_floor = 0.1
//	dither_density = 1.0
//	dither_space = "world"
//	palette_count = 64
//	palette_strength = 0.25
//	dither_strength = 0.3
//	debug_stage = "full"
//	tonemap = "clamp"
//	exposure = 0.0
//
//	[compositor]
//	depth_bias = 0.1
//
//	[palette]
//	colors = ["#000000", "#1d2b53", "#7e2553"]
//
// Missing keys keep their defaults. An empty palette table selects the
// built-in 64-color palette.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/gogpu/pixelart"
)

// File is the on-disk layout of a configuration file.
type File struct {
	Stylize    Stylize    `toml:"stylize"`
	Compositor Compositor `toml:"compositor"`
	Palette    Palette    `toml:"palette"`
}

// Stylize is the [stylize] table.
type Stylize struct {
	BaseTint        Tint    `toml:"base_tint"`
	ToonBands       float64 `toml:"toon_bands"`
	ToonSoftness    float64 `toml:"toon_softness"`
	ToonShadowFloor float64 `toml:"toon_shadow_floor"`
	DitherDensity   float64 `toml:"dither_density"`
	DitherSpace     string  `toml:"dither_space"`
	PaletteCount    int     `toml:"palette_count"`
	PaletteStrength float64 `toml:"palette_strength"`
	DitherStrength  float64 `toml:"dither_strength"`
	DebugStage      string  `toml:"debug_stage"`
	Tonemap         string  `toml:"tonemap"`
	Exposure        float64 `toml:"exposure"`
}

// Compositor is the [compositor] table.
type Compositor struct {
	DepthBias float64 `toml:"depth_bias"`
}

// Palette is the [palette] table. Colors are sRGB hex strings.
type Palette struct {
	Colors []string `toml:"colors,omitempty"`
}

// Config is a resolved configuration, ready for the renderer.
type Config struct {
	Params     pixelart.Params
	Compositor pixelart.CompositorSettings
	Tonemap    pixelart.Tonemap
	Exposure   float64
}

// Default returns the file layout of the built-in defaults.
func Default() File {
	p := pixelart.DefaultParams()
	return File{
		Stylize: Stylize{
			BaseTint:        HexTint(p.BaseTint.Hex()),
			ToonBands:       p.ToonBands,
			ToonSoftness:    p.ToonSoftness,
			ToonShadowFloor: p.ToonShadowFloor,
			DitherDensity:   p.DitherDensity,
			DitherSpace:     p.DitherSpace.String(),
			PaletteCount:    p.PaletteCount,
			PaletteStrength: p.PaletteStrength,
			DitherStrength:  p.DitherStrength,
			DebugStage:      p.DebugStage.String(),
			Tonemap:         pixelart.TonemapClamp.String(),
		},
		Compositor: Compositor{
			DepthBias: pixelart.DefaultCompositorSettings().DepthBias,
		},
	}
}

// Load reads and resolves the configuration file at path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	pixelart.Logger().Debug("config: loaded", "path", path,
		"palette", cfg.Params.Palette.Len(), "stage", cfg.Params.DebugStage)
	return cfg, nil
}

// Decode parses TOML from r over the defaults and resolves it. Unknown
// keys are logged and ignored.
func Decode(r io.Reader) (*Config, error) {
	file := Default()
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, err
	}
	for _, key := range md.Undecoded() {
		pixelart.Logger().Warn("config: unknown key", "key", key.String())
	}
	return file.Resolve()
}

// Resolve converts the file layout into library types. Parameters are
// normalized (palette count and debug stage clamped) and then validated.
func (f File) Resolve() (*Config, error) {
	var errs []error
	s := f.Stylize

	tint, err := s.BaseTint.RGBA()
	if err != nil {
		errs = append(errs, fmt.Errorf("base_tint: %w", err))
	}
	space, err := pixelart.ParseDitherSpace(s.DitherSpace)
	if err != nil {
		errs = append(errs, err)
	}
	stage, err := pixelart.ParseStage(s.DebugStage)
	if err != nil {
		errs = append(errs, err)
	}
	tm, err := pixelart.ParseTonemap(s.Tonemap)
	if err != nil {
		errs = append(errs, err)
	}

	palette := pixelart.DefaultPalette()
	if len(f.Palette.Colors) > 0 {
		palette, err = pixelart.ParseHexPalette(f.Palette.Colors)
		if err != nil {
			errs = append(errs, err)
		}
	}
	if f.Compositor.DepthBias < 0 {
		errs = append(errs, fmt.Errorf("%w: depth bias %g must be non-negative",
			pixelart.ErrInvalidParams, f.Compositor.DepthBias))
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	p := pixelart.Params{
		BaseTint:        tint,
		ToonBands:       s.ToonBands,
		ToonSoftness:    s.ToonSoftness,
		ToonShadowFloor: s.ToonShadowFloor,
		DitherDensity:   s.DitherDensity,
		PaletteCount:    s.PaletteCount,
		PaletteStrength: s.PaletteStrength,
		DitherStrength:  s.DitherStrength,
		DebugStage:      stage,
		Palette:         palette,
		DitherSpace:     space,
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Config{
		Params:     p,
		Compositor: pixelart.CompositorSettings{DepthBias: f.Compositor.DepthBias},
		Tonemap:    tm,
		Exposure:   s.Exposure,
	}, nil
}

// Encode writes f as TOML.
func Encode(w io.Writer, f File) error {
	return toml.NewEncoder(w).Encode(f)
}
