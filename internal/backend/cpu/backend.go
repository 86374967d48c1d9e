// Package cpu implements the float32 CPU backend on top of gonum BLAS.
package cpu

import (
	"github.com/born-ml/ganlab/internal/parallel"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/klauspost/cpuid/v2"
)

// CPUBackend implements tensor operations on the CPU.
//
// Matrix products go through gonum's blas32 Sgemm. Element-wise kernels
// are split across a worker pool sized from the detected core count.
type CPUBackend struct {
	device tensor.Device
	par    parallel.Config
}

var _ tensor.Backend = (*CPUBackend)(nil)

// New creates a new CPU backend.
func New() *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    parallel.DefaultConfig(),
	}
}

// NewWithConfig creates a CPU backend with an explicit worker configuration.
func NewWithConfig(cfg parallel.Config) *CPUBackend {
	return &CPUBackend{
		device: tensor.CPU,
		par:    cfg,
	}
}

// Name returns the backend name.
func (cpu *CPUBackend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *CPUBackend) Device() tensor.Device {
	return cpu.device
}

// Description reports the processor and SIMD level the backend runs on.
func (cpu *CPUBackend) Description() string {
	level := "generic"
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512F):
		level = "avx512"
	case cpuid.CPU.Supports(cpuid.AVX2):
		level = "avx2"
	case cpuid.CPU.Supports(cpuid.ASIMD):
		level = "neon"
	}
	return cpuid.CPU.BrandName + " (" + level + ")"
}

// newResult allocates an output tensor or panics with a shape error.
func (cpu *CPUBackend) newResult(op string, shape tensor.Shape) *tensor.RawTensor {
	result, err := tensor.NewRaw(shape, cpu.device)
	if err != nil {
		panic(tensor.NewShapeError(op, err.Error(), shape))
	}
	return result
}
