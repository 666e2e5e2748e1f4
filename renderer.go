package pixelart

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/pixelart/internal/parallel"
)

// Renderer applies the per-pixel operations to whole frames, splitting
// each frame into row bands run on a worker pool.
//
// A Renderer is safe for concurrent use. Close releases its workers.
type Renderer struct {
	pool       *parallel.WorkerPool
	bandHeight int
}

// NewRenderer starts a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	o := defaultRendererOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{
		pool:       parallel.NewWorkerPool(o.workers),
		bandHeight: o.bandHeight,
	}
}

// Close stops the worker pool. Later calls run on the calling goroutine.
func (r *Renderer) Close() {
	r.pool.Close()
}

// Workers returns the number of worker goroutines.
func (r *Renderer) Workers() int {
	return r.pool.Workers()
}

// Stylize runs the per-fragment pipeline over every pixel of geom.
// Fragments come from geom: pixel-center screen position, world position
// and geometry class. The result keeps geom's depth, positions and classes
// and replaces its color.
//
// p is normalized on a copy and then validated; validation errors wrap
// ErrInvalidParams.
func (r *Renderer) Stylize(ctx context.Context, geom *Frame, p Params, light Lighting) (*Frame, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	out := geom.Clone()
	w := geom.Width()
	err := r.pool.ForEachBand(ctx, geom.Height(), r.bandHeight, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			for x := range w {
				out.Set(x, y, Stylize(&p, geom.Fragment(x, y), light))
			}
		}
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("pixelart: stylized frame",
		"width", w, "height", geom.Height(),
		"stage", p.DebugStage, "palette", p.PaletteCount,
		"elapsed", time.Since(start))
	return out, nil
}

// StylizeFrame stylizes a pre-lit frame, using its colors as the lighting
// result and applying exposure and tm as post-lighting.
func (r *Renderer) StylizeFrame(ctx context.Context, lit *Frame, p Params, tm Tonemap, exposure float64) (*Frame, error) {
	return r.StylizeLit(ctx, lit, lit, p, tm, exposure)
}

// StylizeLit is StylizeFrame with lighting and geometry split across two
// frames of equal size: colors come from lit, fragments and depth from geom.
func (r *Renderer) StylizeLit(ctx context.Context, lit, geom *Frame, p Params, tm Tonemap, exposure float64) (*Frame, error) {
	if err := sameSize(lit, geom); err != nil {
		return nil, err
	}
	return r.Stylize(ctx, geom, p, PrelitLighting{Frame: lit, Tonemap: tm, Exposure: exposure})
}

// Composite merges a low-resolution stylized layer over a full-resolution
// realistic layer. Each output pixel samples the low layer at the nearest
// pixel center and applies CompositePixel. The output has full's size and
// takes the depth of the winning layer.
func (r *Renderer) Composite(ctx context.Context, full, low *Frame, s CompositorSettings) (*Frame, error) {
	if s.DepthBias < 0 {
		return nil, fmt.Errorf("%w: depth bias %g must be non-negative", ErrInvalidParams, s.DepthBias)
	}

	start := time.Now()
	w, h := full.Width(), full.Height()
	lw, lh := low.Width(), low.Height()
	out, err := NewFrame(w, h)
	if err != nil {
		return nil, err
	}

	err = r.pool.ForEachBand(ctx, h, r.bandHeight, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			ly := nearestIndex(y, h, lh)
			for x := range w {
				lx := nearestIndex(x, w, lw)
				fc, fd := full.At(x, y), full.DepthAt(x, y)
				lc, ld := low.At(lx, ly), low.DepthAt(lx, ly)

				if lowWins(fd, lc.A, ld, s) {
					out.Set(x, y, lc)
					out.SetDepth(x, y, ld)
				} else {
					out.Set(x, y, fc)
					out.SetDepth(x, y, fd)
				}
			}
		}
	})
	if err != nil {
		return nil, err
	}

	Logger().Debug("pixelart: composited frame",
		"width", w, "height", h, "lowWidth", lw, "lowHeight", lh,
		"depthBias", s.DepthBias, "elapsed", time.Since(start))
	return out, nil
}

// Downsample resamples src to width x height with nearest-neighbor
// sampling, carrying depth, positions and classes along. It produces the
// low-resolution layer from a full-resolution render.
func (r *Renderer) Downsample(ctx context.Context, src *Frame, width, height int) (*Frame, error) {
	out, err := NewFrame(width, height)
	if err != nil {
		return nil, err
	}
	if src.HasPositions() {
		out.EnablePositions()
	}
	if src.Classes() != nil {
		out.EnableClasses()
	}

	sw, sh := src.Width(), src.Height()
	err = r.pool.ForEachBand(ctx, height, r.bandHeight, func(b parallel.Band) {
		for y := b.Y0; y < b.Y1; y++ {
			sy := nearestIndex(y, height, sh)
			for x := range width {
				sx := nearestIndex(x, width, sw)
				out.Set(x, y, src.At(sx, sy))
				out.SetDepth(x, y, src.DepthAt(sx, sy))
				if out.HasPositions() {
					out.SetPosition(x, y, src.PositionAt(sx, sy))
				}
				out.SetClass(x, y, src.ClassAt(sx, sy))
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
