package nn

import (
	"github.com/born-ml/ganlab/internal/tensor"
)

// Sequential feeds each module's output into the next.
//
//	disc := nn.NewSequential[Backend](
//	    nn.NewLinear(2, 16, std, src, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(16, 1, std, src, backend),
//	    nn.NewSigmoid[Backend](),
//	)
type Sequential[B tensor.Backend] struct {
	modules []Module[B]
}

func NewSequential[B tensor.Backend](modules ...Module[B]) *Sequential[B] {
	return &Sequential[B]{modules: modules}
}

func (s *Sequential[B]) Forward(x *tensor.Tensor[B]) *tensor.Tensor[B] {
	for _, m := range s.modules {
		x = m.Forward(x)
	}
	return x
}

// Parameters concatenates the modules' parameters in module order.
func (s *Sequential[B]) Parameters() []*Parameter[B] {
	var out []*Parameter[B]
	for _, m := range s.modules {
		out = append(out, m.Parameters()...)
	}
	return out
}

// Add appends m to the chain.
func (s *Sequential[B]) Add(m Module[B]) { s.modules = append(s.modules, m) }

// Len is the number of chained modules.
func (s *Sequential[B]) Len() int { return len(s.modules) }
