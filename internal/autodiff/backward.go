package autodiff

import (
	"github.com/born-ml/ganlab/internal/tensor"
)

// BackwardCapable is a backend that owns a gradient tape.
type BackwardCapable interface {
	tensor.Backend
	Tape() *GradientTape
}

// Backward computes gradients of t using the backend's tape, seeding t with ones.
// For a non-scalar t this yields the gradient of sum(t).
//
// Example:
//
//	backend := autodiff.New(cpu.New())
//	backend.Tape().StartRecording()
//	x := tensor.Ones(tensor.Shape{2}, backend)
//	y := x.Mul(x) // y = x²
//	gradients := autodiff.Backward(y, backend)
//	grad := gradients[x.Raw()] // Get gradient for x
func Backward[B BackwardCapable](t *tensor.Tensor[B], backend B) map[*tensor.RawTensor]*tensor.RawTensor {
	outputGrad := tensor.MustRaw(t.Shape(), backend.Device())
	data := outputGrad.AsFloat32()
	for i := range data {
		data[i] = 1.0
	}
	return backend.Tape().Backward(t.Raw(), outputGrad, backend)
}

// Gradients records fn on a clean tape and returns the gradient of its
// scalar result with respect to wrt. The tape is cleared afterwards and
// its recording state restored.
func Gradients[B BackwardCapable](backend B, fn func() *tensor.Tensor[B], wrt ...*tensor.Tensor[B]) (*tensor.Tensor[B], []*tensor.RawTensor) {
	tape := backend.Tape()
	wasRecording := tape.IsRecording()
	tape.Clear()
	tape.StartRecording()
	defer func() {
		tape.Clear()
		if wasRecording {
			tape.StartRecording()
		}
	}()

	out := fn()
	tape.StopRecording()
	grads := Backward(out, backend)

	result := make([]*tensor.RawTensor, len(wrt))
	for i, w := range wrt {
		if g, ok := grads[w.Raw()]; ok {
			result[i] = g
		} else {
			result[i] = tensor.MustRaw(w.Shape(), backend.Device())
		}
	}
	return out, result
}
