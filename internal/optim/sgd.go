package optim

import (
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/tensor"
)

// SGD is plain gradient descent, w -= lr * g. With a non-zero momentum it
// keeps a velocity per parameter: vel = momentum*vel + g; w -= lr * vel.
type SGD[B tensor.Backend] struct {
	lr         float32
	momentum   float32
	velocities map[*nn.Parameter[B]][]float32
}

// SGDConfig configures NewSGD. LR defaults to 0.01.
type SGDConfig struct {
	LR       float32
	Momentum float32 // in [0, 1)
}

func NewSGD[B tensor.Backend](config SGDConfig) *SGD[B] {
	return &SGD[B]{
		lr:         orDefault(config.LR, 0.01),
		momentum:   config.Momentum,
		velocities: make(map[*nn.Parameter[B]][]float32),
	}
}

// Step applies one update to every parameter that has a gradient.
func (s *SGD[B]) Step(params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) {
	for _, p := range params {
		grad := getGradient(p, grads)
		if grad == nil {
			continue
		}
		g := grad.AsFloat32()
		w := p.Tensor().Data()

		if s.momentum == 0 {
			for i := range w {
				w[i] -= s.lr * g[i]
			}
			continue
		}

		vel, ok := s.velocities[p]
		if !ok {
			vel = make([]float32, len(w))
			s.velocities[p] = vel
		}
		for i := range w {
			vel[i] = s.momentum*vel[i] + g[i]
			w[i] -= s.lr * vel[i]
		}
	}
}

func (s *SGD[B]) GetLR() float32 { return s.lr }

func (s *SGD[B]) SetLR(lr float32) { s.lr = lr }
