package pixelart

// PrepassNormalAlpha returns the alpha written alongside the normal in the
// depth/normal prepass. Edge detection reads it to tell stylized geometry
// (1) from holdout geometry (0).
func PrepassNormalAlpha(class GeometryClass) float64 {
	if class == ClassHoldout {
		return 0
	}
	return 1
}

// HoldoutColor is the stylized-layer color of holdout geometry: fully
// transparent, so the compositor falls back to the realistic layer.
func HoldoutColor() RGBA {
	return Transparent
}
