package cpu

import (
	"github.com/born-ml/ganlab/internal/tensor"
	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/blas32"
)

// MatMul performs matrix multiplication with gonum's Sgemm.
// For 2D tensors: (M, K) @ (K, N) -> (M, N)
func (cpu *CPUBackend) MatMul(a, b *tensor.RawTensor) *tensor.RawTensor {
	aShape := a.Shape()
	bShape := b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		panic(tensor.NewShapeError("matmul", "only 2D tensors supported", aShape, bShape))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		panic(tensor.NewShapeError("matmul", "inner dimensions differ", aShape, bShape))
	}

	result := cpu.newResult("matmul", tensor.Shape{m, n})

	blas32.Gemm(blas.NoTrans, blas.NoTrans, 1,
		general(a.AsFloat32(), m, k),
		general(b.AsFloat32(), k, n),
		0,
		general(result.AsFloat32(), m, n))

	return result
}

func general(data []float32, rows, cols int) blas32.General {
	return blas32.General{Rows: rows, Cols: cols, Stride: cols, Data: data}
}
