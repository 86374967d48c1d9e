package cpu

import (
	"fmt"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Sum reduces all elements to a 0-D tensor. Accumulation is done in float64.
func (cpu *CPUBackend) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.newResult("sum", tensor.Shape{})
	var acc float64
	for _, v := range x.AsFloat32() {
		acc += float64(v)
	}
	result.AsFloat32()[0] = float32(acc)
	return result
}

// Mean reduces all elements to their arithmetic mean.
func (cpu *CPUBackend) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	result := cpu.Sum(x)
	result.AsFloat32()[0] /= float32(x.NumElements())
	return result
}

// SumDim sums tensor elements along the specified dimension.
//
// Parameters:
//   - dim: dimension to reduce (supports negative indexing: -1 = last dim)
//   - keepDim: if true, keep the reduced dimension with size 1; if false, remove it
//
// Example:
//
//	y := backend.SumDim(x, 0, false) // [150, 16] -> [16]
func (cpu *CPUBackend) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	shape := x.Shape()
	ndim := len(shape)

	if dim < 0 {
		dim = ndim + dim
	}
	if dim < 0 || dim >= ndim {
		panic(tensor.NewShapeError("sumdim", fmt.Sprintf("dimension %d out of range for %dD tensor", dim, ndim), shape))
	}

	var outShape tensor.Shape
	if keepDim {
		outShape = shape.Clone()
		outShape[dim] = 1
	} else {
		outShape = make(tensor.Shape, 0, ndim-1)
		for i := 0; i < ndim; i++ {
			if i != dim {
				outShape = append(outShape, shape[i])
			}
		}
	}

	result := cpu.newResult("sumdim", outShape)
	sumDim(x.AsFloat32(), result.AsFloat32(), shape, dim)
	return result
}

// sumDim accumulates data into result, collapsing dimension dim.
func sumDim(data, result []float32, shape tensor.Shape, dim int) {
	strides := shape.ComputeStrides()

	outShape := shape.Clone()
	outShape[dim] = 1
	outStrides := outShape.ComputeStrides()

	for i := range data {
		outIdx := 0
		temp := i
		for d := 0; d < len(shape); d++ {
			coord := temp / strides[d]
			temp %= strides[d]
			if d != dim {
				outIdx += coord * outStrides[d]
			}
		}
		result[outIdx] += data[i]
	}
}
