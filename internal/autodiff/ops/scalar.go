package ops

import "github.com/born-ml/ganlab/internal/tensor"

// MulScalarOp represents output = x * s.
type MulScalarOp struct {
	unary
	scalar float32
}

// NewMulScalarOp creates a new MulScalarOp.
func NewMulScalarOp(x *tensor.RawTensor, scalar float32, output *tensor.RawTensor) *MulScalarOp {
	return &MulScalarOp{unary: unary{x, output}, scalar: scalar}
}

// Backward computes outputGrad * s.
func (op *MulScalarOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.MulScalar(outputGrad, op.scalar)}
}

// AddScalarOp represents output = x + s. The gradient passes unchanged.
type AddScalarOp struct{ unary }

// NewAddScalarOp creates a new AddScalarOp.
func NewAddScalarOp(x, output *tensor.RawTensor) *AddScalarOp {
	return &AddScalarOp{unary{x, output}}
}

// Backward returns a copy of outputGrad.
func (op *AddScalarOp) Backward(outputGrad *tensor.RawTensor, _ tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{outputGrad.Clone()}
}
