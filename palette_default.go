package pixelart

// PaletteEntry names one color of the built-in palette in 8-bit sRGB.
type PaletteEntry struct {
	Name    string
	R, G, B uint8
}

// defaultPaletteEntries is the built-in 64-color palette: the 16 PICO-8
// base colors, the 16 PICO-8 extended colors, and 32 DB32-inspired earth,
// skin, sky, foliage and metal tones.
var defaultPaletteEntries = [PaletteCapacity]PaletteEntry{
	// PICO-8 base
	{"black", 0, 0, 0},
	{"dark blue", 29, 43, 83},
	{"dark purple", 126, 37, 83},
	{"dark green", 0, 135, 81},
	{"brown", 171, 82, 54},
	{"dark grey", 95, 87, 79},
	{"light grey", 194, 195, 199},
	{"white", 255, 241, 232},
	{"red", 255, 0, 77},
	{"orange", 255, 163, 0},
	{"yellow", 255, 236, 39},
	{"green", 0, 228, 54},
	{"blue", 41, 173, 255},
	{"lavender", 131, 118, 156},
	{"pink", 255, 119, 168},
	{"peach", 255, 204, 170},

	// PICO-8 extended
	{"dark brown", 41, 24, 20},
	{"darker blue", 17, 29, 53},
	{"dark magenta", 66, 33, 54},
	{"dark teal", 18, 83, 89},
	{"rust", 116, 47, 41},
	{"mauve grey", 73, 51, 59},
	{"tan", 162, 136, 121},
	{"light yellow", 243, 239, 125},
	{"crimson", 190, 18, 80},
	{"bright orange", 255, 108, 36},
	{"lime", 168, 231, 46},
	{"forest green", 0, 181, 67},
	{"royal blue", 6, 90, 181},
	{"plum", 117, 70, 101},
	{"salmon", 255, 110, 89},
	{"light salmon", 255, 157, 129},

	// Earth, skin, sky, foliage, metal
	{"void purple", 34, 32, 52},
	{"wine", 69, 40, 60},
	{"sienna", 102, 57, 49},
	{"copper", 143, 86, 59},
	{"tangerine", 223, 113, 38},
	{"sand", 217, 160, 102},
	{"skin light", 238, 195, 154},
	{"lemon", 251, 242, 54},
	{"grass", 153, 229, 80},
	{"leaf", 106, 190, 48},
	{"jade", 55, 148, 110},
	{"moss", 75, 105, 47},
	{"olive", 82, 75, 36},
	{"slate green", 50, 60, 57},
	{"storm blue", 63, 63, 116},
	{"steel blue", 48, 96, 130},
	{"cornflower", 91, 110, 225},
	{"sky", 99, 155, 255},
	{"cyan", 95, 205, 228},
	{"ice", 203, 219, 252},
	{"silver", 155, 173, 183},
	{"pewter", 132, 126, 135},
	{"iron", 105, 106, 106},
	{"graphite", 89, 86, 82},
	{"amethyst", 118, 66, 138},
	{"brick red", 172, 50, 50},
	{"rose", 217, 87, 99},
	{"bubblegum", 215, 123, 186},
	{"khaki", 143, 151, 74},
	{"bronze", 138, 111, 48},
	{"maroon", 75, 47, 55},
	{"charcoal", 45, 45, 45},
}

var defaultPalette = func() Palette {
	colors := make([]RGBA, len(defaultPaletteEntries))
	for i, e := range defaultPaletteEntries {
		colors[i] = SRGB8(e.R, e.G, e.B)
	}
	p, err := NewPalette(colors...)
	if err != nil {
		panic(err)
	}
	return p
}()

// DefaultPalette returns the built-in 64-color palette in linear RGB.
func DefaultPalette() Palette {
	return defaultPalette
}

// DefaultPaletteEntries returns the names and sRGB values of the built-in
// palette, in palette order.
func DefaultPaletteEntries() []PaletteEntry {
	out := make([]PaletteEntry, len(defaultPaletteEntries))
	copy(out, defaultPaletteEntries[:])
	return out
}
