package cpu

import (
	"github.com/born-ml/ganlab/internal/parallel"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/chewxy/math32"
)

// Log computes the natural logarithm element-wise. log(0) is -Inf and
// negative inputs give NaN; both propagate.
func (cpu *CPUBackend) Log(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("log", x, math32.Log)
}

// Exp computes e^x element-wise.
func (cpu *CPUBackend) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("exp", x, math32.Exp)
}

// Sqrt computes the square root element-wise.
func (cpu *CPUBackend) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	return cpu.unary("sqrt", x, math32.Sqrt)
}

func (cpu *CPUBackend) parallelRange(n int, f func(start, end int)) {
	parallel.ForRange(n, f, cpu.par)
}
