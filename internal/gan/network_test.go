package gan_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/born-ml/ganlab/internal/autodiff"
	"github.com/born-ml/ganlab/internal/backend/cpu"
	"github.com/born-ml/ganlab/internal/gan"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillParameters(n *gan.Network, weight float32) {
	for i, p := range n.Parameters() {
		v := weight
		if i%2 == 1 {
			v = 0
		}
		data := p.Tensor().Data()
		for j := range data {
			data[j] = v
		}
	}
}

func TestParameterLayout(t *testing.T) {
	backend := autodiff.New(cpu.New())
	src := rand.NewPCG(1, 2)

	for _, hidden := range []int{0, 1, 3} {
		g := gan.NewGenerator(1, hidden, 8, src, backend)
		d := gan.NewDiscriminator(hidden, 6, src, backend)

		require.Len(t, g.Parameters(), 2*(hidden+2))
		require.Len(t, d.Parameters(), 2*(hidden+2))
		assert.Equal(t, hidden+2, g.NumLayers())

		assert.Equal(t, tensor.Shape{1, 8}, g.Parameters()[0].Shape())
		assert.Equal(t, tensor.Shape{8, 2}, g.Parameters()[2*(hidden+1)].Shape())
		assert.Equal(t, tensor.Shape{2, 6}, d.Parameters()[0].Shape())
		assert.Equal(t, tensor.Shape{1}, d.Parameters()[2*(hidden+1)+1].Shape())

		assert.Equal(t, "g-0", g.ParameterName(0))
		assert.Equal(t, "d-3", d.ParameterName(3))
	}
}

func TestInitialisationScale(t *testing.T) {
	backend := autodiff.New(cpu.New())
	g := gan.NewGenerator(2, 1, 400, rand.NewPCG(3, 4), backend)
	params := g.Parameters()

	std := func(v []float32) float64 {
		var sum, sq float64
		for _, x := range v {
			sum += float64(x)
			sq += float64(x) * float64(x)
		}
		n := float64(len(v))
		return math.Sqrt(sq/n - (sum/n)*(sum/n))
	}

	assert.InDelta(t, 1/math.Sqrt2, std(params[0].Tensor().Data()), 0.05)
	assert.InDelta(t, 1/math.Sqrt(400), std(params[2].Tensor().Data()), 0.005)
	for _, b := range []int{1, 3, 5} {
		for _, v := range params[b].Tensor().Data() {
			assert.Zero(t, v)
		}
	}
}

func TestGeneratorForwardByHand(t *testing.T) {
	backend := autodiff.New(cpu.New())
	g := gan.NewGenerator(2, 0, 4, rand.NewPCG(1, 1), backend)
	fillParameters(g, 0.1)

	input, err := tensor.FromSlice([]float32{0.5, 0.5}, tensor.Shape{1, 2}, backend)
	require.NoError(t, err)
	out := g.Forward(input)

	// hidden = relu(0.5*0.1 + 0.5*0.1) = 0.1; output = tanh(4 * 0.1 * 0.1)
	require.Equal(t, tensor.Shape{1, 2}, out.Shape())
	want := math.Tanh(0.04)
	assert.InDelta(t, want, out.Data()[0], 1e-6)
	assert.InDelta(t, want, out.Data()[1], 1e-6)
}

func TestDiscriminatorForwardByHand(t *testing.T) {
	backend := autodiff.New(cpu.New())
	d := gan.NewDiscriminator(0, 4, rand.NewPCG(1, 1), backend)
	fillParameters(d, 0.1)

	input, err := tensor.FromSlice([]float32{0.5, 0.5, 0, 0}, tensor.Shape{2, 2}, backend)
	require.NoError(t, err)
	out := d.Forward(input)

	require.Equal(t, tensor.Shape{2}, out.Shape())
	assert.InDelta(t, 1/(1+math.Exp(-0.04)), out.Data()[0], 1e-6)
	assert.InDelta(t, 0.5, out.Data()[1], 1e-6)
}

func TestNetworkRejectsWrongWidth(t *testing.T) {
	backend := autodiff.New(cpu.New())
	g := gan.NewGenerator(2, 0, 4, rand.NewPCG(1, 1), backend)
	input := tensor.Zeros(tensor.Shape{3, 1}, backend)

	assert.PanicsWithError(t, tensor.NewShapeError("linear", "expected input [batch, 2]", tensor.Shape{3, 1}, tensor.Shape{2, 4}).Error(), func() {
		g.Forward(input)
	})
}
