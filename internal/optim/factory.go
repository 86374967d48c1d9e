package optim

import (
	"fmt"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Family names accepted by New.
const (
	FamilySGD  = "SGD"
	FamilyAdam = "Adam"
)

// New constructs an optimizer of the named family with learning rate lr.
// Adam uses beta1 = 0.9 and beta2 = 0.999.
func New[B tensor.Backend](family string, lr float32) (Optimizer[B], error) {
	if lr <= 0 {
		return nil, fmt.Errorf("optim: learning rate must be positive, got %v", lr)
	}
	switch family {
	case FamilySGD:
		return NewSGD[B](SGDConfig{LR: lr}), nil
	case FamilyAdam:
		return NewAdam[B](AdamConfig{LR: lr, Betas: [2]float32{0.9, 0.999}}), nil
	default:
		return nil, fmt.Errorf("optim: unknown optimizer %q", family)
	}
}
