package gpu

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/naga"
)

//go:embed shaders/stylize.wgsl
var stylizeShaderSource string

//go:embed shaders/composite.wgsl
var compositeShaderSource string

// Kernel is a named WGSL compute kernel with entry point "main".
type Kernel struct {
	Name   string
	Source string
}

// Kernels returns the WGSL sources of all compute kernels.
func Kernels() []Kernel {
	return []Kernel{
		{Name: "stylize", Source: stylizeShaderSource},
		{Name: "composite", Source: compositeShaderSource},
	}
}

// CompiledKernel is a kernel translated to SPIR-V.
type CompiledKernel struct {
	Name  string
	SPIRV []byte
}

// CompileKernels translates every kernel to SPIR-V with naga.
func CompileKernels() ([]CompiledKernel, error) {
	kernels := Kernels()
	out := make([]CompiledKernel, 0, len(kernels))
	for _, k := range kernels {
		spirv, err := naga.Compile(k.Source)
		if err != nil {
			return nil, fmt.Errorf("gpu: compile %s kernel: %w", k.Name, err)
		}
		out = append(out, CompiledKernel{Name: k.Name, SPIRV: spirv})
	}
	return out, nil
}
