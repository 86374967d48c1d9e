package autodiff

import (
	"github.com/born-ml/ganlab/internal/autodiff/ops"
	"github.com/born-ml/ganlab/internal/tensor"
)

// GradientTape is the ordered log of operations seen while recording.
type GradientTape struct {
	log       []ops.Operation
	recording bool
}

// NewGradientTape returns an idle, empty tape.
func NewGradientTape() *GradientTape {
	return &GradientTape{log: make([]ops.Operation, 0, 64)}
}

func (t *GradientTape) StartRecording()   { t.recording = true }
func (t *GradientTape) StopRecording()    { t.recording = false }
func (t *GradientTape) IsRecording() bool { return t.recording }

// Record appends op; it is a no-op while the tape is idle.
func (t *GradientTape) Record(op ops.Operation) {
	if t.recording {
		t.log = append(t.log, op)
	}
}

// Clear drops the log but leaves the recording flag alone.
func (t *GradientTape) Clear() {
	clear(t.log)
	t.log = t.log[:0]
}

// NumOps is the number of logged operations.
func (t *GradientTape) NumOps() int { return len(t.log) }

// Backward seeds output with outputGrad and replays the log newest first,
// summing the contributions of tensors that feed several operations. The
// returned map holds a gradient for every tensor output depends on.
func (t *GradientTape) Backward(output, outputGrad *tensor.RawTensor, backend tensor.Backend) map[*tensor.RawTensor]*tensor.RawTensor {
	grads := map[*tensor.RawTensor]*tensor.RawTensor{output: outputGrad}

	// Gradient arithmetic must not land on the tape.
	prev := t.recording
	t.recording = false
	defer func() { t.recording = prev }()

	for i := len(t.log) - 1; i >= 0; i-- {
		op := t.log[i]
		upstream, ok := grads[op.Output()]
		if !ok {
			continue
		}
		local := op.Backward(upstream, backend)
		for j, in := range op.Inputs() {
			if j >= len(local) || local[j] == nil {
				continue
			}
			if acc, seen := grads[in]; seen {
				grads[in] = backend.Add(acc, local[j])
			} else {
				grads[in] = local[j]
			}
		}
	}
	return grads
}
