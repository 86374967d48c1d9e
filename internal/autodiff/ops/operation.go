// Package ops defines the differentiable operations recorded on a gradient tape.
//
// Each operation implements the Operation interface, which provides:
//   - Forward pass: computed by the backend
//   - Backward pass: computes gradients for inputs given output gradient
//
// Supported operations:
//   - AddOp, SubOp, MulOp, DivOp: element-wise arithmetic with broadcasting
//   - MatMulOp: matrix multiplication (d(A@B)/dA = grad@B^T, d(A@B)/dB = A^T@grad)
//   - ReLUOp, SigmoidOp, TanhOp: activations
//   - LogOp, ExpOp, SqrtOp: element-wise math
//   - ReshapeOp, TransposeOp: shape changes
//   - MulScalarOp, AddScalarOp: scalar arithmetic
//   - SumOp, MeanOp, SumDimOp: reductions
package ops

import "github.com/born-ml/ganlab/internal/tensor"

// Operation represents a differentiable operation in the computation graph.
// Each operation records its inputs and output during the forward pass,
// and computes input gradients during the backward pass.
type Operation interface {
	// Backward computes gradients for inputs given the output gradient.
	// Returns a slice of gradients corresponding to each input tensor.
	Backward(outputGrad *tensor.RawTensor, backend tensor.Backend) []*tensor.RawTensor

	// Inputs returns the input tensors for this operation.
	Inputs() []*tensor.RawTensor

	// Output returns the output tensor produced by this operation.
	Output() *tensor.RawTensor
}

// unary holds the single input and output of a one-operand op.
type unary struct {
	input  *tensor.RawTensor
	output *tensor.RawTensor
}

// Inputs returns [x].
func (u *unary) Inputs() []*tensor.RawTensor {
	return []*tensor.RawTensor{u.input}
}

// Output returns the op's result.
func (u *unary) Output() *tensor.RawTensor {
	return u.output
}

// binary holds both operands and the output of a two-operand op.
type binary struct {
	inputs []*tensor.RawTensor
	output *tensor.RawTensor
}

func newBinary(a, b, output *tensor.RawTensor) binary {
	return binary{inputs: []*tensor.RawTensor{a, b}, output: output}
}

// Inputs returns [a, b].
func (op *binary) Inputs() []*tensor.RawTensor {
	return op.inputs
}

// Output returns the op's result.
func (op *binary) Output() *tensor.RawTensor {
	return op.output
}
