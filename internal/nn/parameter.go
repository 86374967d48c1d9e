package nn

import (
	"fmt"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Parameter represents a trainable parameter in a neural network.
//
// The parameter's RawTensor identity is stable for its whole life:
// optimizers update the values in place, so gradients recorded on the tape
// can be matched back to the parameter by pointer.
//
// Example:
//
//	weight := nn.NewParameter("weight", weightTensor)
//	w := weight.Tensor()
type Parameter[B tensor.Backend] struct {
	name   string            // Parameter name (e.g., "weight", "bias")
	tensor *tensor.Tensor[B] // The parameter tensor
}

// NewParameter creates a new trainable parameter.
func NewParameter[B tensor.Backend](name string, t *tensor.Tensor[B]) *Parameter[B] {
	return &Parameter[B]{
		name:   name,
		tensor: t,
	}
}

// Name returns the parameter name.
func (p *Parameter[B]) Name() string {
	return p.name
}

// Tensor returns the parameter tensor.
func (p *Parameter[B]) Tensor() *tensor.Tensor[B] {
	return p.tensor
}

// Shape returns the parameter's shape.
func (p *Parameter[B]) Shape() tensor.Shape {
	return p.tensor.Shape()
}

// Assign overwrites the parameter's values with those of src.
// The shapes must match exactly.
func (p *Parameter[B]) Assign(src *tensor.RawTensor) error {
	if !src.Shape().Equal(p.Shape()) {
		return fmt.Errorf("parameter %s: shape mismatch: expected %v, got %v", p.name, p.Shape(), src.Shape())
	}
	copy(p.tensor.Data(), src.AsFloat32())
	return nil
}
