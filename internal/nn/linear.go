package nn

import (
	"fmt"
	"math/rand/v2"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Linear is a dense layer y = xW + b on row-major batches: x is
// [batch, in], W is [in, out] and b is [out].
//
// W starts as N(0, std²) and b as zeros.
//
//	layer := nn.NewLinear(2, 16, math.Sqrt(0.5), src, backend)
//	h := layer.Forward(x) // [150, 2] -> [150, 16]
type Linear[B tensor.Backend] struct {
	in, out int
	w, b    *Parameter[B]
}

func NewLinear[B tensor.Backend](in, out int, std float64, src rand.Source, backend B) *Linear[B] {
	return &Linear[B]{
		in:  in,
		out: out,
		w:   NewParameter("weight", Normal(tensor.Shape{in, out}, 0, std, src, backend)),
		b:   NewParameter("bias", Zeros(tensor.Shape{out}, backend)),
	}
}

// Forward panics with a *tensor.ShapeError unless x is [batch, in].
func (l *Linear[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	if s := x.Shape(); len(s) != 2 || s[1] != l.in {
		panic(tensor.NewShapeError("linear",
			fmt.Sprintf("expected input [batch, %d]", l.in), s, l.w.Shape()))
	}
	return x.MatMul(l.w.Tensor()).Add(l.b.Tensor())
}

// Parameters returns weight then bias.
func (l *Linear[B]) Parameters() []*Parameter[B] { return []*Parameter[B]{l.w, l.b} }

func (l *Linear[B]) Weight() *Parameter[B] { return l.w }
func (l *Linear[B]) Bias() *Parameter[B]   { return l.b }
func (l *Linear[B]) InFeatures() int       { return l.in }
func (l *Linear[B]) OutFeatures() int      { return l.out }
