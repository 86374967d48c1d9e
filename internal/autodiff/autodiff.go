// Package autodiff adds reverse-mode differentiation to any tensor.Backend.
//
// AutodiffBackend decorates an inner backend: every operation is computed by
// the inner backend and, while the tape is recording, appended to a
// GradientTape as an ops.Operation that knows its own backward rule.
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x, _ := tensor.FromSlice([]float32{2.0}, tensor.Shape{1}, backend)
//	y := x.Mul(x)
//	grads := autodiff.Backward(y, backend)
//	fmt.Println(grads[x.Raw()].AsFloat32()) // [4]
package autodiff

import (
	"github.com/born-ml/ganlab/internal/autodiff/ops"
	"github.com/born-ml/ganlab/internal/tensor"
)

// AutodiffBackend is a tensor.Backend that records what it computes.
type AutodiffBackend[B tensor.Backend] struct {
	inner B
	tape  *GradientTape
}

var _ tensor.Backend = (*AutodiffBackend[tensor.Backend])(nil)

// New wraps backend. The tape starts out idle.
func New[B tensor.Backend](backend B) *AutodiffBackend[B] {
	return &AutodiffBackend[B]{inner: backend, tape: NewGradientTape()}
}

// Tape exposes the tape for manual recording control.
func (b *AutodiffBackend[B]) Tape() *GradientTape { return b.tape }

// Inner returns the wrapped backend.
func (b *AutodiffBackend[B]) Inner() B { return b.inner }

func (b *AutodiffBackend[B]) Name() string { return "Autodiff(" + b.inner.Name() + ")" }

func (b *AutodiffBackend[B]) Device() tensor.Device { return b.inner.Device() }

// track records the operation built by op when the tape is live and
// returns out unchanged.
func (b *AutodiffBackend[B]) track(out *tensor.RawTensor, op func() ops.Operation) *tensor.RawTensor {
	if b.tape.IsRecording() {
		b.tape.Record(op())
	}
	return out
}

func (b *AutodiffBackend[B]) Add(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Add(x, y)
	return b.track(out, func() ops.Operation { return ops.NewAddOp(x, y, out) })
}

func (b *AutodiffBackend[B]) Sub(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sub(x, y)
	return b.track(out, func() ops.Operation { return ops.NewSubOp(x, y, out) })
}

func (b *AutodiffBackend[B]) Mul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Mul(x, y)
	return b.track(out, func() ops.Operation { return ops.NewMulOp(x, y, out) })
}

func (b *AutodiffBackend[B]) Div(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Div(x, y)
	return b.track(out, func() ops.Operation { return ops.NewDivOp(x, y, out) })
}

func (b *AutodiffBackend[B]) MatMul(x, y *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.MatMul(x, y)
	return b.track(out, func() ops.Operation { return ops.NewMatMulOp(x, y, out) })
}

func (b *AutodiffBackend[B]) Reshape(x *tensor.RawTensor, newShape tensor.Shape) *tensor.RawTensor {
	out := b.inner.Reshape(x, newShape)
	return b.track(out, func() ops.Operation { return ops.NewReshapeOp(x, out) })
}

func (b *AutodiffBackend[B]) Transpose(x *tensor.RawTensor, axes ...int) *tensor.RawTensor {
	out := b.inner.Transpose(x, axes...)
	return b.track(out, func() ops.Operation { return ops.NewTransposeOp(x, axes, out) })
}

func (b *AutodiffBackend[B]) MulScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	out := b.inner.MulScalar(x, scalar)
	return b.track(out, func() ops.Operation { return ops.NewMulScalarOp(x, scalar, out) })
}

func (b *AutodiffBackend[B]) AddScalar(x *tensor.RawTensor, scalar float32) *tensor.RawTensor {
	out := b.inner.AddScalar(x, scalar)
	return b.track(out, func() ops.Operation { return ops.NewAddScalarOp(x, out) })
}

func (b *AutodiffBackend[B]) Log(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Log(x)
	return b.track(out, func() ops.Operation { return ops.NewLogOp(x, out) })
}

func (b *AutodiffBackend[B]) Exp(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Exp(x)
	return b.track(out, func() ops.Operation { return ops.NewExpOp(x, out) })
}

func (b *AutodiffBackend[B]) Sqrt(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sqrt(x)
	return b.track(out, func() ops.Operation { return ops.NewSqrtOp(x, out) })
}

func (b *AutodiffBackend[B]) ReLU(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.ReLU(x)
	return b.track(out, func() ops.Operation { return ops.NewReLUOp(x, out) })
}

func (b *AutodiffBackend[B]) Sigmoid(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sigmoid(x)
	return b.track(out, func() ops.Operation { return ops.NewSigmoidOp(x, out) })
}

func (b *AutodiffBackend[B]) Tanh(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Tanh(x)
	return b.track(out, func() ops.Operation { return ops.NewTanhOp(x, out) })
}

func (b *AutodiffBackend[B]) Sum(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Sum(x)
	return b.track(out, func() ops.Operation { return ops.NewSumOp(x, out) })
}

func (b *AutodiffBackend[B]) Mean(x *tensor.RawTensor) *tensor.RawTensor {
	out := b.inner.Mean(x)
	return b.track(out, func() ops.Operation { return ops.NewMeanOp(x, out) })
}

func (b *AutodiffBackend[B]) SumDim(x *tensor.RawTensor, dim int, keepDim bool) *tensor.RawTensor {
	out := b.inner.SumDim(x, dim, keepDim)
	return b.track(out, func() ops.Operation { return ops.NewSumDimOp(x, dim, keepDim, out) })
}
