package pixelart

import "fmt"

// ParseHexPalette builds a palette from sRGB hex strings such as "#ff004d"
// or "#f04". Colors are converted to linear RGB.
func ParseHexPalette(hexes []string) (Palette, error) {
	colors := make([]RGBA, 0, len(hexes))
	for i, h := range hexes {
		c, err := Hex(h)
		if err != nil {
			return Palette{}, fmt.Errorf("palette entry %d: %w", i, err)
		}
		colors = append(colors, c)
	}
	return NewPalette(colors...)
}

// HexColors returns the palette as sRGB hex strings in palette order.
func (p *Palette) HexColors() []string {
	out := make([]string, p.n)
	for i := range out {
		out[i] = p.colors[i].Hex()
	}
	return out
}
