package ops

import "github.com/born-ml/ganlab/internal/tensor"

// reduceBroadcast reduces a gradient tensor to match the target shape.
// This is necessary when broadcasting was used in the forward pass.
//
// Example:
//
//	Forward: x[150,16] + b[16] -> y[150,16]  (b was broadcast along dim 0)
//	Backward: grad_y[150,16] -> grad_b[16]   (sum along dim 0)
func reduceBroadcast(grad *tensor.RawTensor, targetShape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	gradShape := grad.Shape()

	// Clone on exact match so gradients never alias each other.
	if gradShape.Equal(targetShape) {
		return grad.Clone()
	}

	if len(targetShape) == 0 {
		return backend.Sum(grad)
	}

	// Leading dimensions absent from the target are summed away.
	result := grad
	for len(result.Shape()) > len(targetShape) {
		result = backend.SumDim(result, 0, false)
	}

	// Dimensions that were 1 in the target were stretched.
	shape := result.Shape()
	for i := range targetShape {
		if targetShape[i] == 1 && shape[i] > 1 {
			result = backend.SumDim(result, i, true)
		}
	}

	if !result.Shape().Equal(targetShape) {
		result = backend.Reshape(result, targetShape)
	}
	return result
}

// broadcastTo stretches grad to shape by adding it onto zeros.
func broadcastTo(grad *tensor.RawTensor, shape tensor.Shape, backend tensor.Backend) *tensor.RawTensor {
	zeros := tensor.MustRaw(shape, backend.Device())
	return backend.Add(zeros, grad)
}

// mapPair builds a tensor of x's shape from f applied to aligned elements.
func mapPair(x, y *tensor.RawTensor, device tensor.Device, f func(a, b float32) float32) *tensor.RawTensor {
	out := tensor.MustRaw(x.Shape(), device)
	dst, xs, ys := out.AsFloat32(), x.AsFloat32(), y.AsFloat32()
	for i := range dst {
		dst[i] = f(xs[i], ys[i])
	}
	return out
}
