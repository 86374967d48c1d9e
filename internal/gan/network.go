package gan

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/born-ml/ganlab/internal/autodiff"
	"github.com/born-ml/ganlab/internal/backend/cpu"
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/tensor"
)

// Backend is the differentiable CPU backend every network runs on.
type Backend = *autodiff.AutodiffBackend[*cpu.CPUBackend]

// Role identifies one of the two networks.
type Role int

// Network roles.
const (
	RoleGenerator Role = iota
	RoleDiscriminator
)

// String returns "generator" or "discriminator".
func (r Role) String() string {
	if r == RoleGenerator {
		return "generator"
	}
	return "discriminator"
}

// prefix is the weight-file name prefix of the role's parameters.
func (r Role) prefix() string {
	if r == RoleGenerator {
		return "g"
	}
	return "d"
}

// Network is a fully connected feed-forward net: an input layer, hidden
// layers of equal width, and an output layer. Every layer but the last is
// followed by ReLU.
//
// The generator maps [batch, noiseSize] to [batch, 2] through tanh. The
// discriminator maps [batch, 2] to [batch] probabilities through sigmoid.
type Network struct {
	role   Role
	layers []*nn.Linear[Backend]
	model  *nn.Sequential[Backend]
}

// NewGenerator builds a generator with hiddenLayers hidden layers of the given width.
func NewGenerator(noiseSize, hiddenLayers, neurons int, src rand.Source, backend Backend) *Network {
	return newNetwork(RoleGenerator, noiseSize, 2, hiddenLayers, neurons, src, backend)
}

// NewDiscriminator builds a discriminator with hiddenLayers hidden layers of the given width.
func NewDiscriminator(hiddenLayers, neurons int, src rand.Source, backend Backend) *Network {
	return newNetwork(RoleDiscriminator, 2, 1, hiddenLayers, neurons, src, backend)
}

// newNetwork draws weights layer by layer from src. The input layer uses
// std 1/sqrt(2) whatever its fan-in; later layers use 1/sqrt(fanIn).
func newNetwork(role Role, in, out, hiddenLayers, neurons int, src rand.Source, backend Backend) *Network {
	n := &Network{role: role, model: nn.NewSequential[Backend]()}

	addLinear := func(fanIn, fanOut int, std float64) {
		layer := nn.NewLinear(fanIn, fanOut, std, src, backend)
		n.layers = append(n.layers, layer)
		n.model.Add(layer)
	}

	addLinear(in, neurons, 1/math.Sqrt2)
	n.model.Add(nn.NewReLU[Backend]())
	for range hiddenLayers {
		addLinear(neurons, neurons, 1/math.Sqrt(float64(neurons)))
		n.model.Add(nn.NewReLU[Backend]())
	}
	addLinear(neurons, out, 1/math.Sqrt(float64(neurons)))

	if role == RoleGenerator {
		n.model.Add(nn.NewTanh[Backend]())
	} else {
		n.model.Add(nn.NewSigmoid[Backend]())
		n.model.Add(nn.NewSqueeze[Backend]())
	}
	return n
}

// Role returns the network's role.
func (n *Network) Role() Role {
	return n.role
}

// NumLayers returns the number of affine layers, input and output included.
func (n *Network) NumLayers() int {
	return len(n.layers)
}

// Forward runs the network on a batch.
func (n *Network) Forward(input *tensor.Tensor[Backend]) *tensor.Tensor[Backend] {
	return n.model.Forward(input)
}

// Parameters returns W0, b0, W1, b1, ... in layer order.
func (n *Network) Parameters() []*nn.Parameter[Backend] {
	return n.model.Parameters()
}

// ParameterName returns the weight-file name of the i-th parameter, "g-i" or "d-i".
func (n *Network) ParameterName(i int) string {
	return fmt.Sprintf("%s-%d", n.role.prefix(), i)
}
