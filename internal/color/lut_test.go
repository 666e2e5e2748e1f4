package color

import (
	"math"
	"testing"
)

// TestDecodeSRGB8Accuracy tests that the LUT matches the exact transfer function.
func TestDecodeSRGB8Accuracy(t *testing.T) {
	for i := 0; i < 256; i++ {
		fast := float64(DecodeSRGB8(uint8(i)))
		exact := SRGBToLinear(float64(i) / 255)
		if diff := math.Abs(fast - exact); diff > 1e-6 {
			t.Errorf("sRGB %d: lut=%f, exact=%f, error=%g", i, fast, exact, diff)
		}
	}
}

// TestEncodeSRGB8Accuracy allows a 1-byte error from the 12-bit table.
func TestEncodeSRGB8Accuracy(t *testing.T) {
	maxError := 0
	for i := 0; i <= 1000; i++ {
		l := float32(i) / 1000
		fast := int(EncodeSRGB8(l))
		exact := int(LinearToSRGB8(float64(l)))
		diff := fast - exact
		if diff < 0 {
			diff = -diff
		}
		if diff > maxError {
			maxError = diff
		}
	}
	t.Logf("Max Linear→sRGB error: %d bytes (out of 255)", maxError)
	if maxError > 1 {
		t.Errorf("Maximum error %d exceeds threshold of 1", maxError)
	}
}

// TestSRGB8RoundTrip tests that sRGB → Linear → sRGB preserves values.
func TestSRGB8RoundTrip(t *testing.T) {
	for i := 0; i < 256; i++ {
		result := int(EncodeSRGB8(DecodeSRGB8(uint8(i))))
		if diff := result - i; diff > 1 || diff < -1 {
			t.Errorf("Round trip %d → %d (error=%d)", i, result, diff)
		}
	}
}

func TestEncodeSRGB8Clamps(t *testing.T) {
	if got := EncodeSRGB8(-0.5); got != 0 {
		t.Errorf("EncodeSRGB8(-0.5) = %d, want 0", got)
	}
	if got := EncodeSRGB8(12); got != 255 {
		t.Errorf("EncodeSRGB8(12) = %d, want 255", got)
	}
	if got := EncodeSRGB8(float32(math.NaN())); got != 0 {
		t.Errorf("EncodeSRGB8(NaN) = %d, want 0", got)
	}
}

func BenchmarkDecodeSRGB8(b *testing.B) {
	var sum float32
	for i := 0; i < b.N; i++ {
		sum += DecodeSRGB8(uint8(i))
	}
	_ = sum
}

func BenchmarkLinearRGBToLab(b *testing.B) {
	var l float64
	for i := 0; i < b.N; i++ {
		l += LinearRGBToLab(0.3, 0.5, 0.7).L
	}
	_ = l
}
