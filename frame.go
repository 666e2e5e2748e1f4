package pixelart

import "fmt"

// Frame is a linear-light render target with optional per-pixel depth,
// world position and geometry class. Color is stored as interleaved
// float32 RGBA, row-major from the top-left.
//
// Depth is reversed-Z (1 near, 0 far) and is always present; a new frame
// starts at the far plane. Positions and classes are allocated on demand.
type Frame struct {
	width  int
	height int
	pix    []float32 // RGBA, 4 per pixel
	depth  []float32
	pos    []float32 // XYZ, 3 per pixel; nil when absent
	class  []GeometryClass
}

// NewFrame allocates a transparent frame at the far plane.
func NewFrame(width, height int) (*Frame, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	n := width * height
	return &Frame{
		width:  width,
		height: height,
		pix:    make([]float32, n*4),
		depth:  make([]float32, n),
	}, nil
}

// Width returns the frame width in pixels.
func (f *Frame) Width() int { return f.width }

// Height returns the frame height in pixels.
func (f *Frame) Height() int { return f.height }

// Pix returns the interleaved RGBA samples.
func (f *Frame) Pix() []float32 { return f.pix }

// Depth returns the reversed-Z depth samples.
func (f *Frame) Depth() []float32 { return f.depth }

// Positions returns the interleaved world XYZ samples, or nil.
func (f *Frame) Positions() []float32 { return f.pos }

// Classes returns the per-pixel geometry classes, or nil when every pixel
// is stylized.
func (f *Frame) Classes() []GeometryClass { return f.class }

// HasPositions reports whether world positions are stored.
func (f *Frame) HasPositions() bool { return f.pos != nil }

// EnablePositions allocates the world position channel if needed.
func (f *Frame) EnablePositions() {
	if f.pos == nil {
		f.pos = make([]float32, f.width*f.height*3)
	}
}

// EnableClasses allocates the geometry class channel if needed.
func (f *Frame) EnableClasses() {
	if f.class == nil {
		f.class = make([]GeometryClass, f.width*f.height)
	}
}

func (f *Frame) inBounds(x, y int) bool {
	return x >= 0 && x < f.width && y >= 0 && y < f.height
}

// At returns the color at (x, y), or Transparent outside the frame.
func (f *Frame) At(x, y int) RGBA {
	if !f.inBounds(x, y) {
		return Transparent
	}
	i := (y*f.width + x) * 4
	return RGBA{
		R: float64(f.pix[i+0]),
		G: float64(f.pix[i+1]),
		B: float64(f.pix[i+2]),
		A: float64(f.pix[i+3]),
	}
}

// Set stores the color at (x, y). Out-of-bounds writes are ignored.
func (f *Frame) Set(x, y int, c RGBA) {
	if !f.inBounds(x, y) {
		return
	}
	i := (y*f.width + x) * 4
	f.pix[i+0] = float32(c.R)
	f.pix[i+1] = float32(c.G)
	f.pix[i+2] = float32(c.B)
	f.pix[i+3] = float32(c.A)
}

// DepthAt returns the depth at (x, y), or 0 (far) outside the frame.
func (f *Frame) DepthAt(x, y int) float64 {
	if !f.inBounds(x, y) {
		return 0
	}
	return float64(f.depth[y*f.width+x])
}

// SetDepth stores the depth at (x, y).
func (f *Frame) SetDepth(x, y int, d float64) {
	if f.inBounds(x, y) {
		f.depth[y*f.width+x] = float32(d)
	}
}

// PositionAt returns the world position at (x, y). Frames without a
// position channel report the origin.
func (f *Frame) PositionAt(x, y int) Vec3 {
	if f.pos == nil || !f.inBounds(x, y) {
		return Vec3{}
	}
	i := (y*f.width + x) * 3
	return Vec3{X: float64(f.pos[i]), Y: float64(f.pos[i+1]), Z: float64(f.pos[i+2])}
}

// SetPosition stores the world position at (x, y), allocating the
// position channel on first use.
func (f *Frame) SetPosition(x, y int, p Vec3) {
	if !f.inBounds(x, y) {
		return
	}
	f.EnablePositions()
	i := (y*f.width + x) * 3
	f.pos[i+0] = float32(p.X)
	f.pos[i+1] = float32(p.Y)
	f.pos[i+2] = float32(p.Z)
}

// ClassAt returns the geometry class at (x, y).
func (f *Frame) ClassAt(x, y int) GeometryClass {
	if f.class == nil || !f.inBounds(x, y) {
		return ClassStylized
	}
	return f.class[y*f.width+x]
}

// SetClass stores the geometry class at (x, y).
func (f *Frame) SetClass(x, y int, c GeometryClass) {
	if !f.inBounds(x, y) {
		return
	}
	if c != ClassStylized {
		f.EnableClasses()
	}
	if f.class != nil {
		f.class[y*f.width+x] = c
	}
}

// PrepassAlpha returns the prepass normal alpha of the pixel at (x, y).
func (f *Frame) PrepassAlpha(x, y int) float64 {
	return PrepassNormalAlpha(f.ClassAt(x, y))
}

// Fragment builds the pipeline context for the pixel at (x, y). The
// screen position is the pixel center.
func (f *Frame) Fragment(x, y int) Fragment {
	return Fragment{
		Screen:      Vec2{X: float64(x) + 0.5, Y: float64(y) + 0.5},
		World:       f.PositionAt(x, y),
		FrontFacing: true,
		Class:       f.ClassAt(x, y),
	}
}

// Clone returns a deep copy of the frame.
func (f *Frame) Clone() *Frame {
	c := &Frame{
		width:  f.width,
		height: f.height,
		pix:    append([]float32(nil), f.pix...),
		depth:  append([]float32(nil), f.depth...),
	}
	if f.pos != nil {
		c.pos = append([]float32(nil), f.pos...)
	}
	if f.class != nil {
		c.class = append([]GeometryClass(nil), f.class...)
	}
	return c
}

// sameSize reports an error unless both frames have equal dimensions.
func sameSize(a, b *Frame) error {
	if a.width != b.width || a.height != b.height {
		return fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.width, a.height, b.width, b.height)
	}
	return nil
}
