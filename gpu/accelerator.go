//go:build !nogpu

// Package gpu runs the stylize and composite kernels as wgpu/hal compute
// shaders.
//
// An Accelerator owns a Vulkan device by default, or borrows one through
// InitWithDevice. When no device is available, or a dispatch fails, every
// operation falls back to the CPU Renderer and produces the same result.
package gpu

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/pixelart"
	"github.com/gogpu/wgpu/hal"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

// ErrFallbackToCPU reports that the GPU path cannot serve a request and
// the CPU renderer should be used instead.
var ErrFallbackToCPU = errors.New("gpu: falling back to CPU")

// fenceTimeout bounds the wait for a single dispatch.
const fenceTimeout = 5 * time.Second

// kernel holds the pipeline objects of one compute kernel.
type kernel struct {
	name       string
	inputs     int // read-only storage bindings after the uniform
	outputs    int // read-write storage bindings after the inputs
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline
}

// Accelerator dispatches frame operations to the GPU.
//
// Thread safety: Accelerator is safe for concurrent use; dispatches are
// serialized.
type Accelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	stylize   kernel
	composite kernel

	cpu            *pixelart.Renderer
	gpuReady       bool
	externalDevice bool // shared device is not destroyed on Close
}

// New creates an accelerator. The options configure the CPU fallback
// renderer. Call Init or InitWithDevice before use.
func New(opts ...pixelart.RendererOption) *Accelerator {
	return &Accelerator{
		stylize:   kernel{name: "stylize", inputs: 2, outputs: 1},
		composite: kernel{name: "composite", inputs: 3, outputs: 2},
		cpu:       pixelart.NewRenderer(opts...),
	}
}

// Name identifies the accelerator in logs.
func (a *Accelerator) Name() string { return "pixelart-gpu" }

// Init opens a Vulkan device and builds the pipelines. A missing GPU is
// not an error: the failure is logged and the accelerator runs on the CPU.
func (a *Accelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if err := a.initGPU(); err != nil {
		pixelart.Logger().Warn("gpu: init failed, using CPU fallback", "err", err)
	}
	return nil
}

// InitWithDevice builds the pipelines on a device owned by the caller.
// The device is not destroyed by Close.
func (a *Accelerator) InitWithDevice(device hal.Device, queue hal.Queue) error {
	if device == nil || queue == nil {
		return fmt.Errorf("gpu: nil device or queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipelines(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("gpu: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	return nil
}

// Ready reports whether dispatches run on the GPU.
func (a *Accelerator) Ready() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gpuReady
}

// Close releases GPU resources and the CPU renderer.
func (a *Accelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
	a.cpu.Close()
}

func (a *Accelerator) releaseLocked() {
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.queue = nil
	a.instance = nil
	a.gpuReady = false
	a.externalDevice = false
}

// StylizeFrame is the GPU counterpart of pixelart.Renderer.StylizeFrame.
func (a *Accelerator) StylizeFrame(ctx context.Context, lit *pixelart.Frame, p pixelart.Params, tm pixelart.Tonemap, exposure float64) (*pixelart.Frame, error) {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := a.stylizeGPU(lit, &p, tm, exposure)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrFallbackToCPU) {
		pixelart.Logger().Warn("gpu: stylize dispatch failed, using CPU", "err", err)
	}
	return a.cpu.StylizeFrame(ctx, lit, p, tm, exposure)
}

// Downsample runs pixelart.Renderer.Downsample on the CPU.
func (a *Accelerator) Downsample(ctx context.Context, src *pixelart.Frame, width, height int) (*pixelart.Frame, error) {
	return a.cpu.Downsample(ctx, src, width, height)
}

// Composite is the GPU counterpart of pixelart.Renderer.Composite.
func (a *Accelerator) Composite(ctx context.Context, full, low *pixelart.Frame, s pixelart.CompositorSettings) (*pixelart.Frame, error) {
	if s.DepthBias < 0 {
		return nil, fmt.Errorf("%w: depth bias %g must be non-negative", pixelart.ErrInvalidParams, s.DepthBias)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := a.compositeGPU(full, low, s)
	if err == nil {
		return out, nil
	}
	if !errors.Is(err, ErrFallbackToCPU) {
		pixelart.Logger().Warn("gpu: composite dispatch failed, using CPU", "err", err)
	}
	return a.cpu.Composite(ctx, full, low, s)
}

func (a *Accelerator) stylizeGPU(lit *pixelart.Frame, p *pixelart.Params, tm pixelart.Tonemap, exposure float64) (*pixelart.Frame, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return nil, ErrFallbackToCPU
	}

	start := time.Now()
	w, h := lit.Width(), lit.Height()
	uniform := EncodeParams(p, tm, exposure, w, h)
	colorSize := uint64(w * h * 16) //nolint:gosec // frame size is positive

	results, err := a.dispatch(&a.stylize, uniform,
		[][]byte{packColor(lit), packGeometry(lit)},
		[]uint64{colorSize}, w, h)
	if err != nil {
		return nil, err
	}

	out := lit.Clone()
	unpackColor(results[0], out)
	pixelart.Logger().Debug("gpu: stylized frame",
		"width", w, "height", h, "elapsed", time.Since(start))
	return out, nil
}

func (a *Accelerator) compositeGPU(full, low *pixelart.Frame, s pixelart.CompositorSettings) (*pixelart.Frame, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return nil, ErrFallbackToCPU
	}

	start := time.Now()
	w, h := full.Width(), full.Height()
	params := CompositeParams{
		FullWidth: uint32(w), FullHeight: uint32(h), //nolint:gosec // frame dimensions fit uint32
		LowWidth: uint32(low.Width()), LowHeight: uint32(low.Height()), //nolint:gosec // frame dimensions fit uint32
		DepthBias:   float32(s.DepthBias),
		AlphaCutoff: 0.01,
	}
	n := uint64(w * h) //nolint:gosec // frame size is positive

	results, err := a.dispatch(&a.composite, params.Marshal(),
		[][]byte{packColor(full), packColor(low), packDepth(full, low)},
		[]uint64{n * 16, n * 4}, w, h)
	if err != nil {
		return nil, err
	}

	out, err := pixelart.NewFrame(w, h)
	if err != nil {
		return nil, err
	}
	unpackColor(results[0], out)
	unpackDepth(results[1], out)
	pixelart.Logger().Debug("gpu: composited frame",
		"width", w, "height", h, "elapsed", time.Since(start))
	return out, nil
}

// dispatch uploads the uniform block and inputs, runs one 8x8-workgroup
// pass over a w x h grid and reads back every output buffer.
func (a *Accelerator) dispatch(k *kernel, uniform []byte, inputs [][]byte, outputSizes []uint64, w, h int) ([][]byte, error) {
	var buffers []hal.Buffer
	defer func() {
		for _, b := range buffers {
			a.device.DestroyBuffer(b)
		}
	}()
	newBuffer := func(label string, size uint64, usage gputypes.BufferUsage) (hal.Buffer, error) {
		b, err := a.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: size, Usage: usage})
		if err != nil {
			return nil, fmt.Errorf("create %s buffer: %w", label, err)
		}
		buffers = append(buffers, b)
		return b, nil
	}

	entries := make([]gputypes.BindGroupEntry, 0, 1+len(inputs)+len(outputSizes))

	ub, err := newBuffer(k.name+"_params", uint64(len(uniform)), gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	a.queue.WriteBuffer(ub, 0, uniform)
	entries = append(entries, gputypes.BindGroupEntry{
		Binding: 0, Resource: gputypes.BufferBinding{Buffer: ub.NativeHandle(), Offset: 0, Size: uint64(len(uniform))},
	})

	for i, data := range inputs {
		b, err := newBuffer(fmt.Sprintf("%s_in%d", k.name, i), uint64(len(data)), gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
		if err != nil {
			return nil, err
		}
		a.queue.WriteBuffer(b, 0, data)
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: uint32(len(entries)), Resource: gputypes.BufferBinding{Buffer: b.NativeHandle(), Offset: 0, Size: uint64(len(data))}, //nolint:gosec // small binding index
		})
	}

	storage := make([]hal.Buffer, len(outputSizes))
	staging := make([]hal.Buffer, len(outputSizes))
	for i, size := range outputSizes {
		if storage[i], err = newBuffer(fmt.Sprintf("%s_out%d", k.name, i), size,
			gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst); err != nil {
			return nil, err
		}
		if staging[i], err = newBuffer(fmt.Sprintf("%s_staging%d", k.name, i), size,
			gputypes.BufferUsageMapRead|gputypes.BufferUsageCopyDst); err != nil {
			return nil, err
		}
		entries = append(entries, gputypes.BindGroupEntry{
			Binding: uint32(len(entries)), Resource: gputypes.BufferBinding{Buffer: storage[i].NativeHandle(), Offset: 0, Size: size}, //nolint:gosec // small binding index
		})
	}

	bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: k.name + "_bind", Layout: k.bindLayout, Entries: entries,
	})
	if err != nil {
		return nil, fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bg)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: k.name + "_encoder"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(k.name); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: k.name + "_pass"})
	pass.SetPipeline(k.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(uint32((w+7)/8), uint32((h+7)/8), 1) //nolint:gosec // workgroup counts fit uint32
	pass.End()

	for i, size := range outputSizes {
		encoder.CopyBufferToBuffer(storage[i], staging[i], []hal.BufferCopy{
			{SrcOffset: 0, DstOffset: 0, Size: size},
		})
	}
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return nil, fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return nil, fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, fenceTimeout)
	if err != nil || !fenceOK {
		return nil, fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	results := make([][]byte, len(outputSizes))
	for i, size := range outputSizes {
		results[i] = make([]byte, size)
		if err := a.queue.ReadBuffer(staging[i], 0, results[i]); err != nil {
			return nil, fmt.Errorf("readback %d: %w", i, err)
		}
	}
	return results, nil
}

func (a *Accelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		a.device.Destroy()
		a.device = nil
		a.queue = nil
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	pixelart.Logger().Info("gpu: accelerator initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *Accelerator) createPipelines() error {
	if err := a.createKernel(&a.stylize, stylizeShaderSource); err != nil {
		return err
	}
	return a.createKernel(&a.composite, compositeShaderSource)
}

func (a *Accelerator) createKernel(k *kernel, source string) error {
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  k.name,
		Source: hal.ShaderSource{WGSL: source},
	})
	if err != nil {
		return fmt.Errorf("compile %s shader: %w", k.name, err)
	}
	k.shader = shader

	layoutEntries := []gputypes.BindGroupLayoutEntry{
		{Binding: 0, Visibility: gputypes.ShaderStageCompute, Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}},
	}
	for range k.inputs {
		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding: uint32(len(layoutEntries)), Visibility: gputypes.ShaderStageCompute, //nolint:gosec // small binding index
			Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeReadOnlyStorage},
		})
	}
	for range k.outputs {
		layoutEntries = append(layoutEntries, gputypes.BindGroupLayoutEntry{
			Binding: uint32(len(layoutEntries)), Visibility: gputypes.ShaderStageCompute, //nolint:gosec // small binding index
			Buffer: &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeStorage},
		})
	}

	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: k.name + "_bind_layout", Entries: layoutEntries,
	})
	if err != nil {
		return fmt.Errorf("create %s bind group layout: %w", k.name, err)
	}
	k.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: k.name + "_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{k.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create %s pipeline layout: %w", k.name, err)
	}
	k.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: k.name + "_pipeline", Layout: k.pipeLayout,
		Compute: hal.ComputeState{Module: k.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create %s compute pipeline: %w", k.name, err)
	}
	k.pipeline = pipeline
	return nil
}

func (a *Accelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	for _, k := range []*kernel{&a.stylize, &a.composite} {
		if k.pipeline != nil {
			a.device.DestroyComputePipeline(k.pipeline)
		}
		if k.pipeLayout != nil {
			a.device.DestroyPipelineLayout(k.pipeLayout)
		}
		if k.bindLayout != nil {
			a.device.DestroyBindGroupLayout(k.bindLayout)
		}
		if k.shader != nil {
			a.device.DestroyShaderModule(k.shader)
		}
		k.pipeline, k.pipeLayout, k.bindLayout, k.shader = nil, nil, nil, nil
	}
}
