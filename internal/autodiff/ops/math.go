package ops

import "github.com/born-ml/ganlab/internal/tensor"

// LogOp represents output = ln(x). d(ln x)/dx = 1/x.
type LogOp struct{ unary }

// NewLogOp creates a new LogOp.
func NewLogOp(x, output *tensor.RawTensor) *LogOp {
	return &LogOp{unary{x, output}}
}

// Backward computes outputGrad / x.
func (op *LogOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, op.input)}
}

// ExpOp represents output = e^x. d(e^x)/dx = e^x.
type ExpOp struct{ unary }

// NewExpOp creates a new ExpOp.
func NewExpOp(x, output *tensor.RawTensor) *ExpOp {
	return &ExpOp{unary{x, output}}
}

// Backward computes outputGrad * output.
func (op *ExpOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Mul(outputGrad, op.output)}
}

// SqrtOp represents output = sqrt(x). d(sqrt x)/dx = 1 / (2 sqrt x).
type SqrtOp struct{ unary }

// NewSqrtOp creates a new SqrtOp.
func NewSqrtOp(x, output *tensor.RawTensor) *SqrtOp {
	return &SqrtOp{unary{x, output}}
}

// Backward computes outputGrad / (2 * output).
func (op *SqrtOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	return []*tensor.RawTensor{backend.Div(outputGrad, backend.MulScalar(op.output, 2))}
}
