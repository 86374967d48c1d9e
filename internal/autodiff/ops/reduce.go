package ops

import "github.com/born-ml/ganlab/internal/tensor"

// SumOp represents output = sum(x). Every input element receives outputGrad.
type SumOp struct{ unary }

// NewSumOp creates a new SumOp.
func NewSumOp(x, output *tensor.RawTensor) *SumOp {
	return &SumOp{unary{x, output}}
}

// Backward broadcasts the scalar gradient to the input shape.
func (op *SumOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{broadcastTo(outputGrad, op.input.Shape(), backend)}
}

// MeanOp represents output = mean(x). Every input element receives outputGrad / N.
type MeanOp struct{ unary }

// NewMeanOp creates a new MeanOp.
func NewMeanOp(x, output *tensor.RawTensor) *MeanOp {
	return &MeanOp{unary{x, output}}
}

// Backward broadcasts outputGrad / N to the input shape.
func (op *MeanOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	scaled := backend.MulScalar(outputGrad, 1/float32(op.input.NumElements()))
	return []*tensor.RawTensor{broadcastTo(scaled, op.input.Shape(), backend)}
}

// SumDimOp represents a sum along one dimension.
type SumDimOp struct {
	unary
	dim     int
	keepDim bool
}

// NewSumDimOp creates a new SumDimOp.
func NewSumDimOp(x *tensor.RawTensor, dim int, keepDim bool, output *tensor.RawTensor) *SumDimOp {
	if dim < 0 {
		dim += len(x.Shape())
	}
	return &SumDimOp{unary: unary{x, output}, dim: dim, keepDim: keepDim}
}

// Backward restores the reduced axis and broadcasts along it.
func (op *SumDimOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := outputGrad
	if !op.keepDim {
		kept := op.input.Shape().Clone()
		kept[op.dim] = 1
		grad = backend.Reshape(grad, kept)
	}
	return []*tensor.RawTensor{broadcastTo(grad, op.input.Shape(), backend)}
}
