// Package nn implements the neural network building blocks of the GAN engine.
//
// This package provides:
//   - Module interface: Base interface for all NN components
//   - Parameter: Trainable parameters owned by a network
//   - Linear: Fully connected layer
//   - Activations: ReLU, Sigmoid, Tanh
//   - Sequential: Container for stacking layers
//   - GAN losses: log loss and least-squares loss
//
// Design inspired by PyTorch's nn.Module but adapted for Go generics.
package nn

import (
	"github.com/born-ml/ganlab/internal/tensor"
)

// Module is the base interface for all neural network components.
//
// Every NN module must implement:
//   - Forward: Compute output from input
//   - Parameters: Return all trainable parameters
//
// Modules can be composed to build complex architectures:
//
//	model := nn.NewSequential[Backend](
//	    nn.NewLinear(2, 16, 0.7071, src, backend),
//	    nn.NewReLU[Backend](),
//	    nn.NewLinear(16, 2, 0.25, src, backend),
//	)
//
// Type parameter B must satisfy the tensor.Backend interface.
type Module[B tensor.Backend] interface {
	// Forward computes the output of the module given an input tensor.
	// Shape mismatches panic with *tensor.ShapeError.
	Forward(input *tensor.Tensor[B]) *tensor.Tensor[B]

	// Parameters returns all trainable parameters of this module in a
	// stable order. Modules without parameters return nil.
	Parameters() []*Parameter[B]
}
