package nn

import (
	"math/rand/v2"

	"github.com/born-ml/ganlab/internal/tensor"
	"gonum.org/v1/gonum/stat/distuv"
)

// Normal draws a tensor from N(mean, std²) using src.
//
// Parameters:
//   - shape: Shape of the tensor
//   - mean, std: Distribution parameters
//   - src: Random source; the same seed reproduces the same tensor
//   - backend: Backend to use for tensor creation
func Normal[B tensor.Backend](shape tensor.Shape, mean, std float64, src rand.Source, backend B) *tensor.Tensor[B] {
	dist := distuv.Normal{Mu: mean, Sigma: std, Src: src}
	t := tensor.Zeros(shape, backend)
	data := t.Data()
	for i := range data {
		data[i] = float32(dist.Rand())
	}
	return t
}

// Zeros creates a tensor filled with zeros.
// This is used for bias initialization.
func Zeros[B tensor.Backend](shape tensor.Shape, backend B) *tensor.Tensor[B] {
	return tensor.Zeros(shape, backend)
}
