package pixelart

import (
	"errors"
	"testing"
)

func TestNewFrame(t *testing.T) {
	f, err := NewFrame(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	if f.Width() != 3 || f.Height() != 2 {
		t.Errorf("size = %dx%d, want 3x2", f.Width(), f.Height())
	}
	if len(f.Pix()) != 24 || len(f.Depth()) != 6 {
		t.Errorf("buffers = %d/%d, want 24/6", len(f.Pix()), len(f.Depth()))
	}
	if f.HasPositions() || f.Classes() != nil {
		t.Error("new frame should have no positions or classes")
	}

	for _, dims := range [][2]int{{0, 1}, {1, 0}, {-2, 4}} {
		if _, err := NewFrame(dims[0], dims[1]); !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("NewFrame(%d, %d) error = %v, want ErrInvalidDimensions", dims[0], dims[1], err)
		}
	}
}

func TestFrame_Accessors(t *testing.T) {
	f, _ := NewFrame(4, 4)
	c := RGBA{R: 0.25, G: 0.5, B: 0.75, A: 1}
	f.Set(2, 1, c)
	f.SetDepth(2, 1, 0.5)
	f.SetPosition(2, 1, Vec3{X: 1, Y: 2, Z: 3})
	f.SetClass(3, 3, ClassHoldout)

	if got := f.At(2, 1); got != c {
		t.Errorf("At() = %+v, want %+v", got, c)
	}
	if got := f.DepthAt(2, 1); got != 0.5 {
		t.Errorf("DepthAt() = %v, want 0.5", got)
	}
	if got := f.PositionAt(2, 1); got != (Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("PositionAt() = %+v", got)
	}
	if f.ClassAt(3, 3) != ClassHoldout || f.ClassAt(0, 0) != ClassStylized {
		t.Error("ClassAt() mismatch")
	}
	if f.PrepassAlpha(3, 3) != 0 || f.PrepassAlpha(0, 0) != 1 {
		t.Error("PrepassAlpha() mismatch")
	}

	// Out of bounds reads are transparent/far and writes are dropped.
	f.Set(-1, 0, White)
	f.Set(4, 0, White)
	if got := f.At(-1, 0); got != Transparent {
		t.Errorf("At(-1, 0) = %+v, want transparent", got)
	}
	if got := f.DepthAt(9, 9); got != 0 {
		t.Errorf("DepthAt(9, 9) = %v, want 0", got)
	}
}

func TestFrame_Fragment(t *testing.T) {
	f, _ := NewFrame(2, 2)
	f.SetPosition(1, 0, Vec3{X: 4, Y: 5, Z: 6})
	f.SetClass(1, 0, ClassHoldout)

	frag := f.Fragment(1, 0)
	want := Fragment{
		Screen:      Vec2{X: 1.5, Y: 0.5},
		World:       Vec3{X: 4, Y: 5, Z: 6},
		FrontFacing: true,
		Class:       ClassHoldout,
	}
	if frag != want {
		t.Errorf("Fragment() = %+v, want %+v", frag, want)
	}
}

func TestFrame_Clone(t *testing.T) {
	f, _ := NewFrame(2, 2)
	f.Set(0, 0, White)
	f.SetPosition(0, 0, Vec3{X: 1})
	f.SetClass(1, 1, ClassHoldout)

	c := f.Clone()
	c.Set(0, 0, Black)
	c.SetPosition(0, 0, Vec3{X: 9})
	c.SetClass(1, 1, ClassStylized)

	if f.At(0, 0) != White || f.PositionAt(0, 0).X != 1 || f.ClassAt(1, 1) != ClassHoldout {
		t.Error("Clone() shares storage with the original")
	}
}
