// Package optim implements the optimizers that train the generator and
// discriminator.
//
// SGD and Adam are the two families; New builds either by name and
// Minimize runs one record/differentiate/update cycle.
//
// An optimizer is not bound to a parameter list. Per-parameter state is
// created lazily the first time a parameter is updated, so an optimizer can
// be replaced at any time without touching the network it trains.
//
//	opt := optim.NewAdam[Backend](optim.AdamConfig{LR: 0.001})
//	loss := optim.Minimize(opt, backend, model.Parameters(), func() *tensor.Tensor[Backend] {
//	    return lossFn.GeneratorLoss(model.Forward(input))
//	})
package optim

import (
	"fmt"

	"github.com/born-ml/ganlab/internal/autodiff"
	"github.com/born-ml/ganlab/internal/nn"
	"github.com/born-ml/ganlab/internal/tensor"
)

// Optimizer updates parameters in place from their gradients.
type Optimizer[B tensor.Backend] interface {
	// Step applies gradient updates to params in place.
	//
	// grads maps each parameter's RawTensor to its gradient, as returned
	// by autodiff.Backward. Parameters without a gradient are skipped.
	Step(params []*nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor)

	// GetLR returns the current learning rate.
	GetLR() float32
}

// Minimize evaluates lossFn on a fresh tape, differentiates the scalar
// result with respect to params and applies one optimizer step to params
// only. Other tensors reachable from the loss are left untouched.
//
// Returns the loss value computed before the update.
func Minimize[B autodiff.BackwardCapable](opt Optimizer[B], backend B, params []*nn.Parameter[B], lossFn func() *tensor.Tensor[B]) float32 {
	wrt := make([]*tensor.Tensor[B], len(params))
	for i, p := range params {
		wrt[i] = p.Tensor()
	}

	loss, grads := autodiff.Gradients(backend, lossFn, wrt...)
	if loss.NumElements() != 1 {
		panic(tensor.NewShapeError("minimize", fmt.Sprintf("loss must be scalar, got %d elements", loss.NumElements()), loss.Shape()))
	}

	gradMap := make(map[*tensor.RawTensor]*tensor.RawTensor, len(params))
	for i, p := range params {
		gradMap[p.Tensor().Raw()] = grads[i]
	}
	opt.Step(params, gradMap)

	return loss.Item()
}

// getGradient returns nil when param took no part in the loss.
func getGradient[B tensor.Backend](param *nn.Parameter[B], grads map[*tensor.RawTensor]*tensor.RawTensor) *tensor.RawTensor {
	if param == nil {
		return nil
	}
	return grads[param.Tensor().Raw()]
}
