package pixelart

import (
	"fmt"
	"math"
)

// bayer4x4 is the 4x4 ordered-dither index matrix, row-major by y.
// Thresholds are the entries divided by 16.
var bayer4x4 = [4][4]uint8{
	{0, 8, 2, 10},
	{12, 4, 14, 6},
	{3, 11, 1, 9},
	{15, 7, 13, 5},
}

// BayerThreshold returns the ordered-dither threshold in [0, 15/16] for an
// integer lattice position. The pattern tiles with period 4 on both axes,
// including negative coordinates.
func BayerThreshold(x, y int) float64 {
	return float64(bayer4x4[y&3][x&3]) / 16
}

// DitherThreshold floors a continuous position onto the lattice and returns
// its Bayer threshold.
func DitherThreshold(p Vec2) float64 {
	return BayerThreshold(int(math.Floor(p.X)), int(math.Floor(p.Y)))
}

// DitherSpace selects the coordinates that index the dither pattern.
type DitherSpace uint8

const (
	// DitherWorld indexes by world-space XZ, so the pattern sticks to
	// geometry and is unaffected by camera motion.
	DitherWorld DitherSpace = iota

	// DitherScreen indexes by pixel coordinates, so the pattern stays
	// aligned to the screen grid as the camera moves.
	DitherScreen
)

// String returns the config name of the dither space.
func (d DitherSpace) String() string {
	switch d {
	case DitherWorld:
		return "world"
	case DitherScreen:
		return "screen"
	default:
		return fmt.Sprintf("DitherSpace(%d)", d)
	}
}

// ParseDitherSpace parses "world" or "screen".
func ParseDitherSpace(s string) (DitherSpace, error) {
	switch s {
	case "world", "":
		return DitherWorld, nil
	case "screen":
		return DitherScreen, nil
	default:
		return DitherWorld, fmt.Errorf("%w: unknown dither space %q", ErrInvalidParams, s)
	}
}
