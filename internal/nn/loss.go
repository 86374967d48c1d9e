package nn

import (
	"github.com/born-ml/ganlab/internal/tensor"
)

// GANLoss scores discriminator predictions for both players of a GAN.
//
// Predictions are probabilities in (0, 1) with shape [batch]. Both methods
// return scalar tensors so they can be differentiated on the tape.
type GANLoss[B tensor.Backend] interface {
	// DiscriminatorLoss is minimised when truePred -> 1 and generatedPred -> 0.
	DiscriminatorLoss(truePred, generatedPred *tensor.Tensor[B]) *tensor.Tensor[B]

	// GeneratorLoss is minimised when generatedPred -> 1.
	GeneratorLoss(generatedPred *tensor.Tensor[B]) *tensor.Tensor[B]
}

// LogLoss is the classic minimax GAN objective with the non-saturating
// generator loss.
//
//	D: -(mean(log tp) * trueWeight + mean(log(1 - gp)))
//	G: -mean(log gp)
//
// The true term is down-weighted (0.95 by default) as a form of one-sided
// label smoothing. Predictions of exactly 0 or 1 yield infinite loss; the
// value is propagated, not clamped.
type LogLoss[B tensor.Backend] struct {
	trueWeight float32
}

// NewLogLoss creates a LogLoss with the default true-term weight of 0.95.
func NewLogLoss[B tensor.Backend]() *LogLoss[B] {
	return &LogLoss[B]{trueWeight: 0.95}
}

// DiscriminatorLoss implements GANLoss.
func (l *LogLoss[B]) DiscriminatorLoss(truePred, generatedPred *tensor.Tensor[B]) *tensor.Tensor[B] {
	trueTerm := truePred.Log().Mean().MulScalar(l.trueWeight)
	generatedTerm := generatedPred.RSubScalar(1).Log().Mean()
	return trueTerm.Add(generatedTerm).Neg()
}

// GeneratorLoss implements GANLoss.
func (l *LogLoss[B]) GeneratorLoss(generatedPred *tensor.Tensor[B]) *tensor.Tensor[B] {
	return generatedPred.Log().Mean().Neg()
}

// LeastSquaresLoss is the LSGAN objective.
//
//	D: mean((tp - 1)²) + mean(gp²)
//	G: mean((gp - 1)²)
type LeastSquaresLoss[B tensor.Backend] struct{}

// NewLeastSquaresLoss creates a LeastSquaresLoss.
func NewLeastSquaresLoss[B tensor.Backend]() *LeastSquaresLoss[B] {
	return &LeastSquaresLoss[B]{}
}

// DiscriminatorLoss implements GANLoss.
func (l *LeastSquaresLoss[B]) DiscriminatorLoss(truePred, generatedPred *tensor.Tensor[B]) *tensor.Tensor[B] {
	return truePred.AddScalar(-1).Square().Mean().Add(generatedPred.Square().Mean())
}

// GeneratorLoss implements GANLoss.
func (l *LeastSquaresLoss[B]) GeneratorLoss(generatedPred *tensor.Tensor[B]) *tensor.Tensor[B] {
	return generatedPred.AddScalar(-1).Square().Mean()
}
