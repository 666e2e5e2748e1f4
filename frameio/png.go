package frameio

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/gogpu/pixelart"
	icolor "github.com/gogpu/pixelart/internal/color"
	"golang.org/x/image/draw"
)

// ToImage encodes a frame's linear color as 8-bit sRGB with straight
// alpha. Depth and geometry are dropped.
func ToImage(f *pixelart.Frame) *image.NRGBA {
	w, h := f.Width(), f.Height()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	pix := f.Pix()
	for y := range h {
		row := img.Pix[y*img.Stride:]
		for x := range w {
			src := pix[(y*w+x)*4:]
			dst := row[x*4:]
			dst[0] = icolor.EncodeSRGB8(src[0])
			dst[1] = icolor.EncodeSRGB8(src[1])
			dst[2] = icolor.EncodeSRGB8(src[2])
			dst[3] = alpha8(src[3])
		}
	}
	return img
}

func alpha8(a float32) uint8 {
	if !(a > 0) {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(float64(a) * 255))
}

// FromImage decodes an sRGB image into a frame with linear color. Depth
// is left at the far plane.
func FromImage(img image.Image) (*pixelart.Frame, error) {
	b := img.Bounds()
	f, err := pixelart.NewFrame(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	w := b.Dx()
	pix := f.Pix()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA) //nolint:errcheck // NRGBAModel always returns NRGBA
			i := ((y-b.Min.Y)*w + (x - b.Min.X)) * 4
			pix[i+0] = icolor.DecodeSRGB8(c.R)
			pix[i+1] = icolor.DecodeSRGB8(c.G)
			pix[i+2] = icolor.DecodeSRGB8(c.B)
			pix[i+3] = float32(c.A) / 255
		}
	}
	return f, nil
}

// Upscale enlarges img by an integer factor with nearest-neighbour
// sampling so pixel-art edges stay hard. Factors below 2 return a copy.
func Upscale(img image.Image, factor int) *image.NRGBA {
	if factor < 1 {
		factor = 1
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// EncodePNG writes a frame as an sRGB PNG, upscaled by scale.
func EncodePNG(w io.Writer, f *pixelart.Frame, scale int) error {
	var img image.Image = ToImage(f)
	if scale > 1 {
		img = Upscale(img, scale)
	}
	return png.Encode(w, img)
}

// WritePNG stores a frame as an sRGB PNG file, upscaled by scale.
func WritePNG(path string, f *pixelart.Frame, scale int) error {
	out, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return fmt.Errorf("frameio: create %s: %w", path, err)
	}
	bw := bufio.NewWriter(out)
	if err := EncodePNG(bw, f, scale); err != nil {
		_ = out.Close()
		return fmt.Errorf("frameio: encode %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		_ = out.Close()
		return fmt.Errorf("frameio: write %s: %w", path, err)
	}
	pixelart.Logger().Debug("frameio: wrote png",
		"path", path, "width", f.Width()*max(scale, 1), "height", f.Height()*max(scale, 1))
	return out.Close()
}

// ReadPNG loads an sRGB PNG file as a frame.
func ReadPNG(path string) (*pixelart.Frame, error) {
	in, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, fmt.Errorf("frameio: open %s: %w", path, err)
	}
	defer in.Close()

	img, err := png.Decode(bufio.NewReader(in))
	if err != nil {
		return nil, fmt.Errorf("frameio: decode %s: %w", path, err)
	}
	return FromImage(img)
}
