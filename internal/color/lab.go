package color

import "math"

// D65 reference white in XYZ.
const (
	whiteX = 0.95047
	whiteY = 1.00000
	whiteZ = 1.08883
)

// labEpsilon is (6/29)^3, the knee of the L*a*b* response curve.
const (
	labDelta   = 6.0 / 29.0
	labEpsilon = labDelta * labDelta * labDelta
)

// linearRGBToXYZ holds the sRGB-primaries matrix (rows X, Y, Z).
var linearRGBToXYZ = [3][3]float64{
	{0.4124564, 0.3575761, 0.1804375},
	{0.2126729, 0.7151522, 0.0721750},
	{0.0193339, 0.1191920, 0.9503041},
}

// xyzToLinearRGB is the inverse of linearRGBToXYZ.
var xyzToLinearRGB = [3][3]float64{
	{3.2404542, -1.5371385, -0.4985314},
	{-0.9692660, 1.8760108, 0.0415560},
	{0.0556434, -0.2040259, 1.0572252},
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return t/(3*labDelta*labDelta) + 4.0/29.0
}

func labFInv(ft float64) float64 {
	if ft > labDelta {
		return ft * ft * ft
	}
	return 3 * labDelta * labDelta * (ft - 4.0/29.0)
}

// LinearRGBToLab converts a linear-light sRGB color to CIE L*a*b* (D65).
// Callers clamp inputs to finite non-negative values.
func LinearRGBToLab(r, g, b float64) Lab {
	m := &linearRGBToXYZ
	x := m[0][0]*r + m[0][1]*g + m[0][2]*b
	y := m[1][0]*r + m[1][1]*g + m[1][2]*b
	z := m[2][0]*r + m[2][1]*g + m[2][2]*b

	fx := labF(x / whiteX)
	fy := labF(y / whiteY)
	fz := labF(z / whiteZ)

	return Lab{
		L: 116*fy - 16,
		A: 500 * (fx - fy),
		B: 200 * (fy - fz),
	}
}

// LabToLinearRGB converts CIE L*a*b* (D65) back to linear-light sRGB.
// Out-of-gamut Lab values produce components outside [0,1]; no clamping is applied.
func LabToLinearRGB(c Lab) (r, g, b float64) {
	fy := (c.L + 16) / 116
	fx := fy + c.A/500
	fz := fy - c.B/200

	x := labFInv(fx) * whiteX
	y := labFInv(fy) * whiteY
	z := labFInv(fz) * whiteZ

	m := &xyzToLinearRGB
	r = m[0][0]*x + m[0][1]*y + m[0][2]*z
	g = m[1][0]*x + m[1][1]*y + m[1][2]*z
	b = m[2][0]*x + m[2][1]*y + m[2][2]*z
	return r, g, b
}

// DistanceLab returns the Euclidean (CIE76 ΔE) distance between two Lab colors.
func DistanceLab(p, q Lab) float64 {
	dl := p.L - q.L
	da := p.A - q.A
	db := p.B - q.B
	return math.Sqrt(dl*dl + da*da + db*db)
}
