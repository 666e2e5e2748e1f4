package config

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gogpu/pixelart"
)

func TestDecodeEmptyUsesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(""))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Params != pixelart.DefaultParams() {
		t.Errorf("Params = %+v, want defaults", cfg.Params)
	}
	if cfg.Compositor != pixelart.DefaultCompositorSettings() {
		t.Errorf("Compositor = %+v, want defaults", cfg.Compositor)
	}
	if cfg.Tonemap != pixelart.TonemapClamp || cfg.Exposure != 0 {
		t.Errorf("Tonemap = %v exposure %v, want clamp 0", cfg.Tonemap, cfg.Exposure)
	}
}

func TestDecodeOverrides(t *testing.T) {
	const src = `
[stylize]
base_tint = "#ff0000"
toon_bands = 4.0
toon_softness = 0.05
dither_space = "screen"
palette_count = 10
debug_stage = "toon"
tonemap = "reinhard"
exposure = -1.5

[compositor]
depth_bias = 0.2

[palette]
colors = ["#000000", "#ffffff", "#ff004d"]
`
	cfg, err := Decode(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	p := cfg.Params
	tests := []struct {
		name string
		got  any
		want any
	}{
		{"tint", p.BaseTint, pixelart.RGBA{R: 1, G: 0, B: 0, A: 1}},
		{"bands", p.ToonBands, 4.0},
		{"softness", p.ToonSoftness, 0.05},
		{"floor kept", p.ToonShadowFloor, 0.1},
		{"dither space", p.DitherSpace, pixelart.DitherScreen},
		{"palette len", p.Palette.Len(), 3},
		{"palette count clamped", p.PaletteCount, 3},
		{"stage", p.DebugStage, pixelart.StageToon},
		{"tonemap", cfg.Tonemap, pixelart.TonemapReinhard},
		{"exposure", cfg.Exposure, -1.5},
		{"depth bias", cfg.Compositor.DepthBias, 0.2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestDecodeLinearTint(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want pixelart.RGBA
	}{
		{"rgb above one", "[stylize]\nbase_tint = [2.0, 0.5, 0]\n", pixelart.RGBA{R: 2, G: 0.5, B: 0, A: 1}},
		{"rgba", "[stylize]\nbase_tint = [0.25, 1, 1.5, 0.5]\n", pixelart.RGBA{R: 0.25, G: 1, B: 1.5, A: 0.5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Decode(strings.NewReader(tt.src))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if cfg.Params.BaseTint != tt.want {
				t.Errorf("BaseTint = %+v, want %+v", cfg.Params.BaseTint, tt.want)
			}
		})
	}
}

func TestEncodeLinearTintRoundTrip(t *testing.T) {
	want := pixelart.RGBA{R: 1.75, G: 0.5, B: 0.125, A: 0.8}
	f := Default()
	f.Stylize.BaseTint = LinearTint(want)

	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "base_tint = [1.75, 0.5, 0.125, 0.8]") {
		t.Errorf("encoded tint not an array:\n%s", buf.String())
	}
	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if cfg.Params.BaseTint != want {
		t.Errorf("BaseTint = %+v, want %+v", cfg.Params.BaseTint, want)
	}
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool
	}{
		{"zero bands", "[stylize]\ntoon_bands = 0.0\n", true},
		{"strength above one", "[stylize]\npalette_strength = 1.5\n", true},
		{"unknown stage", "[stylize]\ndebug_stage = \"edges\"\n", true},
		{"unknown dither space", "[stylize]\ndither_space = \"uv\"\n", true},
		{"unknown tonemap", "[stylize]\ntonemap = \"aces\"\n", true},
		{"negative bias", "[compositor]\ndepth_bias = -0.1\n", true},
		{"bad tint", "[stylize]\nbase_tint = \"red\"\n", false},
		{"short tint array", "[stylize]\nbase_tint = [1.0, 0.5]\n", true},
		{"negative tint", "[stylize]\nbase_tint = [1.0, -0.5, 0.0]\n", true},
		{"tint of wrong type", "[stylize]\nbase_tint = true\n", false},
		{"tint array of strings", "[stylize]\nbase_tint = [\"a\", \"b\", \"c\"]\n", false},
		{"bad palette entry", "[palette]\ncolors = [\"#000000\", \"#zzzzzz\"]\n", false},
		{"syntax", "[stylize\n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("Decode() error = nil")
			}
			if tt.invalid && !errors.Is(err, pixelart.ErrInvalidParams) {
				t.Errorf("Decode() error = %v, want ErrInvalidParams", err)
			}
		})
	}
}

func TestDecodeWarnsUnknownKeys(t *testing.T) {
	orig := pixelart.Logger()
	t.Cleanup(func() { pixelart.SetLogger(orig) })

	var buf bytes.Buffer
	pixelart.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))

	if _, err := Decode(strings.NewReader("[stylize]\nbloom = 2.0\n")); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !strings.Contains(buf.String(), "stylize.bloom") {
		t.Errorf("log output missing unknown key: %s", buf.String())
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pixelart.toml")
	if err := os.WriteFile(path, []byte("[stylize]\ntoon_bands = 6.0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Params.ToonBands != 6 {
		t.Errorf("ToonBands = %v, want 6", cfg.Params.ToonBands)
	}

	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want os.ErrNotExist", err)
	}
}

func TestEncodeDefaultRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Encode(&buf, Default()); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	for _, key := range []string{"[stylize]", "toon_bands", "[compositor]", "depth_bias"} {
		if !strings.Contains(buf.String(), key) {
			t.Errorf("encoded config missing %q:\n%s", key, buf.String())
		}
	}

	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode(Encode(Default())) error = %v", err)
	}
	if cfg.Params != pixelart.DefaultParams() {
		t.Errorf("round-tripped params differ from defaults")
	}
}
