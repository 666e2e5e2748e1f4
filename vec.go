package pixelart

import "math"

// Vec2 is a 2D position, used for screen coordinates and dither indices.
type Vec2 struct {
	X, Y float64
}

// Vec3 is a 3D world-space position.
type Vec3 struct {
	X, Y, Z float64
}

// Mul returns the vector scaled by a scalar.
func (v Vec2) Mul(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Floor returns the component-wise floor of v.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// XZ projects a world position onto the ground plane.
func (v Vec3) XZ() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}
