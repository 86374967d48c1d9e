package ops

import "github.com/born-ml/ganlab/internal/tensor"

// ReLUOp represents output = max(0, x).
// The gradient passes where x > 0 and is zero elsewhere.
type ReLUOp struct{ unary }

// NewReLUOp creates a new ReLUOp.
func NewReLUOp(x, output *tensor.RawTensor) *ReLUOp {
	return &ReLUOp{unary{x, output}}
}

// Backward masks outputGrad by x > 0.
func (op *ReLUOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := mapPair(outputGrad, op.input, backend.Device(), func(g, x float32) float32 {
		if x > 0 {
			return g
		}
		return 0
	})
	return []*tensor.RawTensor{grad}
}

// SigmoidOp represents output = 1 / (1 + e^-x).
// d(sigmoid)/dx = output * (1 - output).
type SigmoidOp struct{ unary }

// NewSigmoidOp creates a new SigmoidOp.
func NewSigmoidOp(x, output *tensor.RawTensor) *SigmoidOp {
	return &SigmoidOp{unary{x, output}}
}

// Backward computes outputGrad * s * (1 - s).
func (op *SigmoidOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := mapPair(outputGrad, op.output, backend.Device(), func(g, s float32) float32 {
		return g * s * (1 - s)
	})
	return []*tensor.RawTensor{grad}
}

// TanhOp represents output = tanh(x).
// d(tanh)/dx = 1 - output².
type TanhOp struct{ unary }

// NewTanhOp creates a new TanhOp.
func NewTanhOp(x, output *tensor.RawTensor) *TanhOp {
	return &TanhOp{unary{x, output}}
}

// Backward computes outputGrad * (1 - t²).
func (op *TanhOp) Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor {
	grad := mapPair(outputGrad, op.output, backend.Device(), func(g, t float32) float32 {
		return g * (1 - t*t)
	})
	return []*tensor.RawTensor{grad}
}
