package pixelart

import "errors"

// Errors returned at the configuration and frame boundaries.
// The per-pixel pipeline itself never fails.
var (
	// ErrInvalidParams is wrapped by every Params.Validate failure.
	ErrInvalidParams = errors.New("pixelart: invalid params")

	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("pixelart: invalid dimensions")

	// ErrSizeMismatch is returned when frame buffers that must agree in size do not.
	ErrSizeMismatch = errors.New("pixelart: frame size mismatch")
)
