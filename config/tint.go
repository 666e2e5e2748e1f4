package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gogpu/pixelart"
)

// Tint is the base_tint value. It is either an sRGB hex string or a
// linear [r, g, b] or [r, g, b, a] array; array components may exceed 1.
type Tint struct {
	hex    string
	linear []float64
}

// HexTint returns a tint given as an sRGB hex string.
func HexTint(s string) Tint {
	return Tint{hex: s}
}

// LinearTint returns a tint given as linear RGBA components.
func LinearTint(c pixelart.RGBA) Tint {
	return Tint{linear: []float64{c.R, c.G, c.B, c.A}}
}

// UnmarshalTOML implements toml.Unmarshaler.
func (t *Tint) UnmarshalTOML(v any) error {
	switch v := v.(type) {
	case string:
		*t = Tint{hex: v}
		return nil
	case []any:
		linear := make([]float64, len(v))
		for i, e := range v {
			switch n := e.(type) {
			case float64:
				linear[i] = n
			case int64:
				linear[i] = float64(n)
			default:
				return fmt.Errorf("base_tint: component %d is %T, want a number", i, e)
			}
		}
		*t = Tint{linear: linear}
		return nil
	default:
		return fmt.Errorf("base_tint: %T is neither a hex string nor an array", v)
	}
}

// MarshalTOML implements toml.Marshaler.
func (t Tint) MarshalTOML() ([]byte, error) {
	if t.linear == nil {
		return []byte(strconv.Quote(t.hex)), nil
	}
	parts := make([]string, len(t.linear))
	for i, v := range t.linear {
		parts[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return []byte("[" + strings.Join(parts, ", ") + "]"), nil
}

// RGBA resolves the tint to a linear color. A three-element array is opaque.
func (t Tint) RGBA() (pixelart.RGBA, error) {
	if t.linear == nil {
		return pixelart.Hex(t.hex)
	}
	switch len(t.linear) {
	case 3:
		return pixelart.RGBA{R: t.linear[0], G: t.linear[1], B: t.linear[2], A: 1}, nil
	case 4:
		return pixelart.RGBA{R: t.linear[0], G: t.linear[1], B: t.linear[2], A: t.linear[3]}, nil
	default:
		return pixelart.RGBA{}, fmt.Errorf("%w: tint array has %d components, want 3 or 4",
			pixelart.ErrInvalidParams, len(t.linear))
	}
}
