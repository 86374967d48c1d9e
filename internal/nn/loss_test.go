package nn_test

import (
	"math"
	"testing"

	"github.com/born-ml/ganlab/internal/autodiff"
	"github.com/born-ml/ganlab/internal/backend/cpu"
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/stretchr/testify/assert"
)

func preds(t *testing.T, b Backend, v ...float32) *tensor.Tensor[Backend] {
	t.Helper()
	out, err := tensor.FromSlice(v, tensor.Shape{len(v)}, b)
	if err != nil {
		t.Fatal(err)
	}
	return out
}

func TestLogLoss(t *testing.T) {
	b := autodiff.New(cpu.New())
	loss := nn.NewLogLoss[Backend]()

	tp := preds(t, b, 0.9, 0.8)
	gp := preds(t, b, 0.1, 0.3)

	wantD := -((math.Log(0.9)+math.Log(0.8))/2*0.95 + (math.Log(0.9)+math.Log(0.7))/2)
	assert.InDelta(t, wantD, loss.DiscriminatorLoss(tp, gp).Item(), 1e-5)

	wantG := -(math.Log(0.1) + math.Log(0.3)) / 2
	assert.InDelta(t, wantG, loss.GeneratorLoss(gp).Item(), 1e-5)
}

func TestLogLossSaturatedPredictionIsInfinite(t *testing.T) {
	b := autodiff.New(cpu.New())
	loss := nn.NewLogLoss[Backend]()

	v := loss.GeneratorLoss(preds(t, b, 0, 0.5)).Item()
	assert.True(t, math.IsInf(float64(v), 1))
}

func TestLeastSquaresLoss(t *testing.T) {
	b := autodiff.New(cpu.New())
	loss := nn.NewLeastSquaresLoss[Backend]()

	tp := preds(t, b, 0.5, 1)
	gp := preds(t, b, 0.5, 0)

	// mean(0.25, 0) + mean(0.25, 0)
	assert.InDelta(t, 0.25, loss.DiscriminatorLoss(tp, gp).Item(), 1e-6)
	// mean(0.25, 1)
	assert.InDelta(t, 0.625, loss.GeneratorLoss(gp).Item(), 1e-6)
}

func TestLossesSatisfyInterface(t *testing.T) {
	var _ nn.GANLoss[Backend] = nn.NewLogLoss[Backend]()
	var _ nn.GANLoss[Backend] = nn.NewLeastSquaresLoss[Backend]()
}
