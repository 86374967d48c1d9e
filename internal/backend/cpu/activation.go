package cpu

import (
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/chewxy/math32"
)

// ReLU applies max(0, x) element-wise.
func (cpu *CPUBackend) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("relu", x, func(v float32) float32 {
		if v > 0 {
			return v
		}
		return 0
	})
}

// Sigmoid applies 1 / (1 + e^-x) element-wise.
func (cpu *CPUBackend) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sigmoid", x, sigmoid)
}

// Tanh applies the hyperbolic tangent element-wise.
func (cpu *CPUBackend) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("tanh", x, math32.Tanh)
}

// sigmoid is split by sign so that large |v| never overflows exp.
func sigmoid(v float32) float32 {
	if v >= 0 {
		return 1 / (1 + math32.Exp(-v))
	}
	e := math32.Exp(v)
	return e / (1 + e)
}
