// Package frameio reads and writes pixelart frames as OpenEXR and PNG.
//
// OpenEXR files carry the full frame: linear RGBA, reversed-Z depth in
// "Z", world position in "P.X", "P.Y", "P.Z" and the holdout mask in
// "holdout". PNG files carry 8-bit sRGB color only.
package frameio

import (
	"errors"
	"fmt"
	"os"

	"github.com/gogpu/pixelart"
	"github.com/mrjoshuak/go-openexr/exr"
)

// EXR channel names.
const (
	ChannelR       = "R"
	ChannelG       = "G"
	ChannelB       = "B"
	ChannelA       = "A"
	ChannelDepth   = "Z"
	ChannelPosX    = "P.X"
	ChannelPosY    = "P.Y"
	ChannelPosZ    = "P.Z"
	ChannelHoldout = "holdout"
)

// ErrUnsupportedLayout is returned for EXR files this package cannot map
// onto a frame.
var ErrUnsupportedLayout = errors.New("frameio: unsupported EXR layout")

// ReadEXR loads a scanline OpenEXR file. Missing channels take defaults:
// color 0, alpha 1, depth 0 (far plane). Position and holdout channels
// are loaded only when all of them are present.
func ReadEXR(path string) (*pixelart.Frame, error) {
	f, err := exr.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("frameio: open %s: %w", path, err)
	}
	defer f.Close()

	h := f.Header(0)
	if h == nil {
		return nil, fmt.Errorf("%w: %s has no header", ErrUnsupportedLayout, path)
	}
	if h.IsTiled() {
		return nil, fmt.Errorf("%w: %s is tiled", ErrUnsupportedLayout, path)
	}
	dw := h.DataWindow()
	if dw.Min.X != 0 || dw.Min.Y != 0 {
		return nil, fmt.Errorf("%w: data window %v does not start at the origin", ErrUnsupportedLayout, dw)
	}
	width := int(dw.Max.X-dw.Min.X) + 1
	height := int(dw.Max.Y-dw.Min.Y) + 1

	frame, err := pixelart.NewFrame(width, height)
	if err != nil {
		return nil, fmt.Errorf("frameio: %s: %w", path, err)
	}

	cl := h.Channels()
	has := func(name string) bool { return cl != nil && cl.Get(name) != nil }
	hasPos := has(ChannelPosX) && has(ChannelPosY) && has(ChannelPosZ)

	n := width * height
	planes := make(map[string][]float32)
	fb := exr.NewFrameBuffer()
	for _, name := range []string{ChannelR, ChannelG, ChannelB, ChannelA, ChannelDepth, ChannelPosX, ChannelPosY, ChannelPosZ, ChannelHoldout} {
		if !has(name) {
			continue
		}
		plane := make([]float32, n)
		planes[name] = plane
		fb.Set(name, exr.NewSliceFromFloat32(plane, width, height))
	}
	if fb.Len() == 0 {
		return nil, fmt.Errorf("%w: %s has no known channels", ErrUnsupportedLayout, path)
	}

	sr, err := exr.NewScanlineReader(f)
	if err != nil {
		return nil, fmt.Errorf("frameio: %s: %w", path, err)
	}
	sr.SetFrameBuffer(fb)
	if err := sr.ReadPixels(int(dw.Min.Y), int(dw.Max.Y)); err != nil {
		return nil, fmt.Errorf("frameio: read %s: %w", path, err)
	}

	pix := frame.Pix()
	for i := range n {
		pix[i*4+0] = sample(planes[ChannelR], i, 0)
		pix[i*4+1] = sample(planes[ChannelG], i, 0)
		pix[i*4+2] = sample(planes[ChannelB], i, 0)
		pix[i*4+3] = sample(planes[ChannelA], i, 1)
	}
	if z := planes[ChannelDepth]; z != nil {
		copy(frame.Depth(), z)
	}
	if hasPos {
		frame.EnablePositions()
		pos := frame.Positions()
		px, py, pz := planes[ChannelPosX], planes[ChannelPosY], planes[ChannelPosZ]
		for i := range n {
			pos[i*3+0], pos[i*3+1], pos[i*3+2] = px[i], py[i], pz[i]
		}
	}
	if mask := planes[ChannelHoldout]; mask != nil {
		for i, v := range mask {
			if v > 0.5 {
				frame.SetClass(i%width, i/width, pixelart.ClassHoldout)
			}
		}
	}

	pixelart.Logger().Debug("frameio: read exr",
		"path", path, "width", width, "height", height,
		"channels", fb.Len(), "positions", hasPos)
	return frame, nil
}

func sample(plane []float32, i int, def float32) float32 {
	if plane == nil {
		return def
	}
	return plane[i]
}

// WriteEXR stores a frame as a ZIP-compressed scanline OpenEXR file with
// 32-bit float channels. Position and holdout channels are written only
// when the frame has them.
func WriteEXR(path string, frame *pixelart.Frame) error {
	width, height := frame.Width(), frame.Height()
	n := width * height

	planes := map[string][]float32{
		ChannelR: make([]float32, n),
		ChannelG: make([]float32, n),
		ChannelB: make([]float32, n),
		ChannelA: make([]float32, n),
	}
	names := []string{ChannelR, ChannelG, ChannelB, ChannelA, ChannelDepth}

	pix := frame.Pix()
	for i := range n {
		planes[ChannelR][i] = pix[i*4+0]
		planes[ChannelG][i] = pix[i*4+1]
		planes[ChannelB][i] = pix[i*4+2]
		planes[ChannelA][i] = pix[i*4+3]
	}
	planes[ChannelDepth] = append([]float32(nil), frame.Depth()...)

	if pos := frame.Positions(); pos != nil {
		px, py, pz := make([]float32, n), make([]float32, n), make([]float32, n)
		for i := range n {
			px[i], py[i], pz[i] = pos[i*3+0], pos[i*3+1], pos[i*3+2]
		}
		planes[ChannelPosX], planes[ChannelPosY], planes[ChannelPosZ] = px, py, pz
		names = append(names, ChannelPosX, ChannelPosY, ChannelPosZ)
	}
	if classes := frame.Classes(); classes != nil {
		mask := make([]float32, n)
		for i, c := range classes {
			if c == pixelart.ClassHoldout {
				mask[i] = 1
			}
		}
		planes[ChannelHoldout] = mask
		names = append(names, ChannelHoldout)
	}

	h := exr.NewScanlineHeader(width, height)
	h.SetCompression(exr.CompressionZIP)
	channels := exr.NewChannelList()
	fb := exr.NewFrameBuffer()
	for _, name := range names {
		channels.Add(exr.Channel{Name: name, Type: exr.PixelTypeFloat, XSampling: 1, YSampling: 1})
		fb.Set(name, exr.NewSliceFromFloat32(planes[name], width, height))
	}
	h.SetChannels(channels)

	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	defer func() {
		_ = out.Close()
	}()

	sw, err := exr.NewScanlineWriter(out, h)
	if err != nil {
		return fmt.Errorf("frameio: %s: %w", path, err)
	}
	sw.SetFrameBuffer(fb)
	if err := sw.WritePixels(0, height-1); err != nil {
		return fmt.Errorf("frameio: write %s: %w", path, err)
	}
	if err := sw.Close(); err != nil {
		return fmt.Errorf("frameio: finish %s: %w", path, err)
	}

	pixelart.Logger().Debug("frameio: wrote exr",
		"path", path, "width", width, "height", height, "channels", len(names))
	return out.Close()
}
