package cpu

import (
	"fmt"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Reshape returns a copy of t with a new shape holding the same number of elements.
func (cpu *CPUBackend) Reshape(t *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	if newShape.NumElements() != t.NumElements() {
		panic(tensor.NewShapeError("reshape",
			fmt.Sprintf("cannot reshape %d elements into %d", t.NumElements(), newShape.NumElements()),
			t.Shape(), newShape))
	}
	result := cpu.newResult("reshape", newShape)
	copy(result.AsFloat32(), t.AsFloat32())
	return result
}

// Transpose permutes the dimensions of t. With no axes, the last two
// dimensions are swapped.
func (cpu *CPUBackend) Transpose(t *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	shape := t.Shape()
	ndim := len(shape)
	if len(axes) == 0 {
		if ndim < 2 {
			panic(tensor.NewShapeError("transpose", "need at least 2 dimensions", shape))
		}
		axes = make([]int, ndim)
		for i := range axes {
			axes[i] = i
		}
		axes[ndim-1], axes[ndim-2] = axes[ndim-2], axes[ndim-1]
	}
	if len(axes) != ndim {
		panic(tensor.NewShapeError("transpose", fmt.Sprintf("got %d axes for %dD tensor", len(axes), ndim), shape))
	}

	outShape := make(tensor.Shape, ndim)
	seen := make([]bool, ndim)
	for i, ax := range axes {
		if ax < 0 || ax >= ndim || seen[ax] {
			panic(tensor.NewShapeError("transpose", fmt.Sprintf("invalid permutation %v", axes), shape))
		}
		seen[ax] = true
		outShape[i] = shape[ax]
	}

	result := cpu.newResult("transpose", outShape)
	src, dst := t.AsFloat32(), result.AsFloat32()
	inStrides := t.Strides()
	outStrides := outShape.ComputeStrides()

	for outIdx := range dst {
		inIdx := 0
		rem := outIdx
		for d := 0; d < ndim; d++ {
			coord := rem / outStrides[d]
			rem %= outStrides[d]
			inIdx += coord * inStrides[axes[d]]
		}
		dst[outIdx] = src[inIdx]
	}
	return result
}
