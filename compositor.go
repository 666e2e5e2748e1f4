package pixelart

// compositeAlphaCutoff is the low-res alpha at or below which a pixel is
// treated as empty.
const compositeAlphaCutoff = 0.01

// CompositorSettings configures the two-layer depth compositor.
type CompositorSettings struct {
	// DepthBias is the relative tolerance that lets the stylized layer win
	// when it is slightly behind the realistic layer. The absolute bias is
	// DepthBias*fullDepth, so it shrinks with distance under reversed-Z.
	DepthBias float64
}

// DefaultCompositorSettings returns a depth bias of 0.1.
func DefaultCompositorSettings() CompositorSettings {
	return CompositorSettings{DepthBias: 0.1}
}

// CompositePixel picks between a full-resolution realistic sample and a
// low-resolution stylized sample. Depth is reversed-Z: larger is closer,
// 0 is the far plane.
//
// The stylized sample wins when it has content (alpha above 0.01) and is
// not behind the realistic sample by more than the biased tolerance.
// The winning color is returned as-is.
func CompositePixel(full RGBA, fullDepth float64, low RGBA, lowDepth float64, s CompositorSettings) RGBA {
	if lowWins(fullDepth, low.A, lowDepth, s) {
		return low
	}
	return full
}

func lowWins(fullDepth, lowAlpha, lowDepth float64, s CompositorSettings) bool {
	bias := s.DepthBias * fullDepth
	return lowAlpha > compositeAlphaCutoff && lowDepth >= fullDepth-bias
}

// nearestIndex maps a destination pixel index onto a source axis of size
// srcSize using pixel centers.
func nearestIndex(dst, dstSize, srcSize int) int {
	i := int((float64(dst) + 0.5) * float64(srcSize) / float64(dstSize))
	return min(i, srcSize-1)
}
