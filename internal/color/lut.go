package color

// The frame I/O path converts every pixel of 8-bit images, so the
// transfer functions are tabulated once at init:
//   - 256 entries for sRGB byte → linear float32
//   - 4096 entries (12-bit) for linear float32 → sRGB byte
var (
	decodeLUT [256]float32
	encodeLUT [4096]uint8
)

func init() {
	for i := range decodeLUT {
		decodeLUT[i] = float32(SRGBToLinear(float64(i) / 255))
	}
	for i := range encodeLUT {
		encodeLUT[i] = LinearToSRGB8(float64(i) / 4095)
	}
}

// DecodeSRGB8 converts an sRGB byte to linear float32 using the lookup table.
//
// Example:
//
//	r := DecodeSRGB8(128) // ~0.2159 (not 0.5!)
func DecodeSRGB8(s uint8) float32 {
	return decodeLUT[s]
}

// EncodeSRGB8 converts a linear float32 to an sRGB byte using the lookup table.
// Input is clamped to [0,1]; NaN maps to 0.
//
// Example:
//
//	s := EncodeSRGB8(0.5) // 188 (not 128!)
func EncodeSRGB8(l float32) uint8 {
	if !(l > 0) {
		return 0
	}
	if l > 1 {
		l = 1
	}
	return encodeLUT[int(l*4095+0.5)]
}
