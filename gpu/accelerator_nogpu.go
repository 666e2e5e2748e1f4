//go:build nogpu

package gpu

import (
	"context"
	"errors"

	"github.com/gogpu/pixelart"
)

// ErrFallbackToCPU reports that the GPU path cannot serve a request.
var ErrFallbackToCPU = errors.New("gpu: falling back to CPU")

// Accelerator runs every operation on the CPU in nogpu builds.
type Accelerator struct {
	cpu *pixelart.Renderer
}

// New creates a CPU-only accelerator.
func New(opts ...pixelart.RendererOption) *Accelerator {
	return &Accelerator{cpu: pixelart.NewRenderer(opts...)}
}

// Name identifies the accelerator in logs.
func (a *Accelerator) Name() string { return "pixelart-cpu" }

// Init is a no-op in nogpu builds.
func (a *Accelerator) Init() error { return nil }

// InitWithDevice refuses a caller-owned device in nogpu builds. The
// arguments are untyped so these builds do not link the hal package.
func (a *Accelerator) InitWithDevice(device, queue any) error {
	return ErrFallbackToCPU
}

// Ready always reports false in nogpu builds.
func (a *Accelerator) Ready() bool { return false }

// Close releases the CPU renderer.
func (a *Accelerator) Close() { a.cpu.Close() }

// StylizeFrame runs pixelart.Renderer.StylizeFrame.
func (a *Accelerator) StylizeFrame(ctx context.Context, lit *pixelart.Frame, p pixelart.Params, tm pixelart.Tonemap, exposure float64) (*pixelart.Frame, error) {
	return a.cpu.StylizeFrame(ctx, lit, p, tm, exposure)
}

// Composite runs pixelart.Renderer.Composite.
func (a *Accelerator) Composite(ctx context.Context, full, low *pixelart.Frame, s pixelart.CompositorSettings) (*pixelart.Frame, error) {
	return a.cpu.Composite(ctx, full, low, s)
}

// Downsample runs pixelart.Renderer.Downsample.
func (a *Accelerator) Downsample(ctx context.Context, src *pixelart.Frame, width, height int) (*pixelart.Frame, error) {
	return a.cpu.Downsample(ctx, src, width, height)
}
