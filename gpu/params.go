package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/pixelart"
)

// StylizeParamsSize is the byte size of the stylize kernel uniform block:
// 80 bytes of scalars followed by 64 vec4 palette entries.
const StylizeParamsSize = 80 + pixelart.PaletteCapacity*16

// CompositeParamsSize is the byte size of the composite kernel uniform block.
const CompositeParamsSize = 32

// StylizeParams is the GPU-aligned uniform block of the stylize kernel.
// It mirrors the WGSL Params struct in shaders/stylize.wgsl.
type StylizeParams struct {
	BaseTint        [4]float32 // offset  0
	ToonBands       float32    // offset 16
	ToonSoftness    float32    // offset 20
	ShadowFloor     float32    // offset 24
	DitherDensity   float32    // offset 28
	PaletteCount    uint32     // offset 32
	PaletteStrength float32    // offset 36
	DitherStrength  float32    // offset 40
	DebugStage      uint32     // offset 44
	Width           uint32     // offset 48
	Height          uint32     // offset 52
	DitherSpace     uint32     // offset 56
	Tonemap         uint32     // offset 60
	ExposureScale   float32    // offset 64, then 12 bytes padding
	Palette         [pixelart.PaletteCapacity][4]float32 // offset 80
}

// NewStylizeParams converts material parameters for a width x height
// frame. p should already be normalized.
func NewStylizeParams(p *pixelart.Params, tm pixelart.Tonemap, exposure float64, width, height int) StylizeParams {
	g := StylizeParams{
		BaseTint:        vec4(p.BaseTint),
		ToonBands:       float32(p.ToonBands),
		ToonSoftness:    float32(p.ToonSoftness),
		ShadowFloor:     float32(p.ToonShadowFloor),
		DitherDensity:   float32(p.DitherDensity),
		PaletteCount:    uint32(max(0, min(p.PaletteCount, p.Palette.Len()))), //nolint:gosec // clamped to capacity
		PaletteStrength: float32(p.PaletteStrength),
		DitherStrength:  float32(p.DitherStrength),
		DebugStage:      uint32(p.DebugStage),
		Width:           uint32(width),  //nolint:gosec // frame dimensions fit uint32
		Height:          uint32(height), //nolint:gosec // frame dimensions fit uint32
		DitherSpace:     uint32(p.DitherSpace),
		Tonemap:         uint32(tm),
		ExposureScale:   float32(math.Exp2(exposure)),
	}
	for i := range p.Palette.Len() {
		g.Palette[i] = vec4(p.Palette.At(i))
	}
	return g
}

// Marshal serializes the block into a buffer ready for upload.
func (g *StylizeParams) Marshal() []byte {
	buf := make([]byte, StylizeParamsSize)
	putVec4(buf[0:], g.BaseTint)
	putF32(buf[16:], g.ToonBands)
	putF32(buf[20:], g.ToonSoftness)
	putF32(buf[24:], g.ShadowFloor)
	putF32(buf[28:], g.DitherDensity)
	binary.LittleEndian.PutUint32(buf[32:], g.PaletteCount)
	putF32(buf[36:], g.PaletteStrength)
	putF32(buf[40:], g.DitherStrength)
	binary.LittleEndian.PutUint32(buf[44:], g.DebugStage)
	binary.LittleEndian.PutUint32(buf[48:], g.Width)
	binary.LittleEndian.PutUint32(buf[52:], g.Height)
	binary.LittleEndian.PutUint32(buf[56:], g.DitherSpace)
	binary.LittleEndian.PutUint32(buf[60:], g.Tonemap)
	putF32(buf[64:], g.ExposureScale)
	for i, c := range g.Palette {
		putVec4(buf[80+i*16:], c)
	}
	return buf
}

// CompositeParams is the uniform block of the composite kernel.
type CompositeParams struct {
	FullWidth, FullHeight uint32  // offset 0, 4
	LowWidth, LowHeight   uint32  // offset 8, 12
	DepthBias             float32 // offset 16
	AlphaCutoff           float32 // offset 20, then 8 bytes padding
}

// Marshal serializes the block into a buffer ready for upload.
func (g *CompositeParams) Marshal() []byte {
	buf := make([]byte, CompositeParamsSize)
	binary.LittleEndian.PutUint32(buf[0:], g.FullWidth)
	binary.LittleEndian.PutUint32(buf[4:], g.FullHeight)
	binary.LittleEndian.PutUint32(buf[8:], g.LowWidth)
	binary.LittleEndian.PutUint32(buf[12:], g.LowHeight)
	putF32(buf[16:], g.DepthBias)
	putF32(buf[20:], g.AlphaCutoff)
	return buf
}

// EncodeParams returns the stylize uniform block for p as bytes.
func EncodeParams(p *pixelart.Params, tm pixelart.Tonemap, exposure float64, width, height int) []byte {
	g := NewStylizeParams(p, tm, exposure, width, height)
	return g.Marshal()
}

func vec4(c pixelart.RGBA) [4]float32 {
	return [4]float32{float32(c.R), float32(c.G), float32(c.B), float32(c.A)}
}

func putF32(b []byte, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}

func putVec4(b []byte, v [4]float32) {
	for i, f := range v {
		putF32(b[i*4:], f)
	}
}

// packColor flattens frame colors as vec4<f32>.
func packColor(f *pixelart.Frame) []byte {
	pix := f.Pix()
	buf := make([]byte, len(pix)*4)
	for i, v := range pix {
		putF32(buf[i*4:], v)
	}
	return buf
}

// packGeometry packs world position and holdout flag as vec4<f32> per pixel.
func packGeometry(f *pixelart.Frame) []byte {
	w, h := f.Width(), f.Height()
	buf := make([]byte, w*h*16)
	for y := range h {
		for x := range w {
			p := f.PositionAt(x, y)
			var holdout float32
			if f.ClassAt(x, y) == pixelart.ClassHoldout {
				holdout = 1
			}
			putVec4(buf[(y*w+x)*16:], [4]float32{float32(p.X), float32(p.Y), float32(p.Z), holdout})
		}
	}
	return buf
}

// packDepth concatenates the depth channels of the given frames.
func packDepth(frames ...*pixelart.Frame) []byte {
	n := 0
	for _, f := range frames {
		n += len(f.Depth())
	}
	buf := make([]byte, 0, n*4)
	for _, f := range frames {
		for _, d := range f.Depth() {
			buf = binary.LittleEndian.AppendUint32(buf, math.Float32bits(d))
		}
	}
	return buf
}

// unpackColor copies vec4<f32> readback into the frame colors.
func unpackColor(b []byte, f *pixelart.Frame) {
	pix := f.Pix()
	for i := range pix {
		pix[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
}

// unpackDepth copies f32 readback into the frame depth.
func unpackDepth(b []byte, f *pixelart.Frame) {
	d := f.Depth()
	for i := range d {
		d[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
}
