package cpu

import (
	"github.com/born-ml/ganlab/internal/tensor"
)

// Add performs element-wise addition with NumPy-style broadcasting.
func (cpu *CPUBackend) Add(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("add", a, b, func(x, y float32) float32 { return x + y })
}

// Sub performs element-wise subtraction with broadcasting.
func (cpu *CPUBackend) Sub(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("sub", a, b, func(x, y float32) float32 { return x - y })
}

// Mul performs element-wise multiplication with broadcasting.
func (cpu *CPUBackend) Mul(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("mul", a, b, func(x, y float32) float32 { return x * y })
}

// Div performs element-wise division with broadcasting.
func (cpu *CPUBackend) Div(a, b *tensor.RawTensor) *tensor.RawTensor {
	return cpu.binary("div", a, b, func(x, y float32) float32 { return x / y })
}

// binary applies f element-wise over the broadcast of a and b.
func (cpu *CPUBackend) binary(op string, a, b *tensor.RawTensor, f func(x, y float32) float32) *tensor.RawTensor {
	outShape, needsBroadcast, err := tensor.BroadcastShapes(a.Shape(), b.Shape())
	if err != nil {
		panic(tensor.NewShapeError(op, "operands cannot be broadcast", a.Shape(), b.Shape()))
	}

	result := cpu.newResult(op, outShape)
	dst := result.AsFloat32()
	aData, bData := a.AsFloat32(), b.AsFloat32()

	if !needsBroadcast {
		cpu.parallelRange(len(dst), func(s, e int) {
			for i := s; i < e; i++ {
				dst[i] = f(aData[i], bData[i])
			}
		})
		return result
	}

	aShape, bShape := a.Shape(), b.Shape()
	aStrides, bStrides := a.Strides(), b.Strides()
	cpu.parallelRange(len(dst), func(s, e int) {
		for i := s; i < e; i++ {
			ai := tensor.BroadcastIndex(i, outShape, aShape, aStrides)
			bi := tensor.BroadcastIndex(i, outShape, bShape, bStrides)
			dst[i] = f(aData[ai], bData[bi])
		}
	})
	return result
}

// unary applies f element-wise.
func (cpu *CPUBackend) unary(op string, x *tensor.RawTensor, f func(v float32) float32) *tensor.RawTensor {
	result := cpu.newResult(op, x.Shape())
	dst, src := result.AsFloat32(), x.AsFloat32()
	cpu.parallelRange(len(dst), func(s, e int) {
		for i := s; i < e; i++ {
			dst[i] = f(src[i])
		}
	})
	return result
}
