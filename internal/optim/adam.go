package optim

import (
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/chewxy/math32"
)

// Adam keeps bias-corrected running means of the gradient (m) and of its
// square (v) per parameter and steps by lr * m̂ / (√v̂ + eps).
//
// The bias-correction timestep counts Step calls on this optimizer, so a
// replaced optimizer starts from t = 0 again.
type Adam[B tensor.Backend] struct {
	lr           float32
	beta1, beta2 float32
	eps          float32
	t            int
	moments      map[*nn.Parameter[B]]*adamMoments
}

type adamMoments struct {
	m, v []float32
}

// AdamConfig configures NewAdam. Zero fields take the usual defaults:
// LR 0.001, Betas {0.9, 0.999}, Eps 1e-8.
type AdamConfig struct {
	LR    float32
	Betas [2]float32
	Eps   float32
}

// NewAdam returns an Adam optimizer with empty moment buffers.
func NewAdam[B tensor.Backend](config AdamConfig) *Adam[B] {
	a := &Adam[B]{
		lr:      orDefault(config.LR, 0.001),
		beta1:   orDefault(config.Betas[0], 0.9),
		beta2:   orDefault(config.Betas[1], 0.999),
		eps:     orDefault(config.Eps, 1e-8),
		moments: make(map[*nn.Parameter[B]]*adamMoments),
	}
	return a
}

// Step applies one update to every parameter that has a gradient.
func (a *Adam[B]) Step(params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	a.t++
	step := float32(a.t)
	c1 := 1 - math32.Pow(a.beta1, step)
	c2 := 1 - math32.Pow(a.beta2, step)

	for _, p := range params {
		grad := getGradient(p, grads)
		if grad == nil {
			continue
		}
		w := p.Tensor().Data()
		mo := a.moments[p]
		if mo == nil {
			mo = &adamMoments{m: make([]float32, len(w)), v: make([]float32, len(w))}
			a.moments[p] = mo
		}

		for i, g := range grad.AsFloat32() {
			mo.m[i] = a.beta1*mo.m[i] + (1-a.beta1)*g
			mo.v[i] = a.beta2*mo.v[i] + (1-a.beta2)*g*g
			w[i] -= a.lr * (mo.m[i] / c1) / (math32.Sqrt(mo.v[i]/c2) + a.eps)
		}
	}
}

func (a *Adam[B]) GetLR() float32 { return a.lr }

// SetLR changes the learning rate and keeps the moments.
func (a *Adam[B]) SetLR(lr float32) { a.lr = lr }

// Timestep is the number of Step calls so far.
func (a *Adam[B]) Timestep() int { return a.t }

func orDefault(v, def float32) float32 {
	if v == 0 {
		return def
	}
	return v
}
