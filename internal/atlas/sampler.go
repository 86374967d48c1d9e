package atlas

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Parameters of the truncated normal noise distribution.
const (
	NoiseMean   = 0.5
	NoiseStdDev = 0.25
)

// Sampler draws one vector per call.
type Sampler interface {
	// Dim returns the length of the vectors Sample writes.
	Dim() int
	// Sample fills dst, which has length Dim.
	Sample(dst []float32)
}

// UniformNoise draws each coordinate from U[0,1).
type UniformNoise struct {
	dim int
	rng *rand.Rand
}

// NewUniformNoise creates a uniform noise sampler.
func NewUniformNoise(dim int, rng *rand.Rand) *UniformNoise {
	return &UniformNoise{dim: dim, rng: rng}
}

// Dim implements Sampler.
func (u *UniformNoise) Dim() int { return u.dim }

// Sample implements Sampler.
func (u *UniformNoise) Sample(dst []float32) {
	for i := range dst {
		dst[i] = float32(u.rng.Float64())
	}
}

// TruncatedNormalNoise draws each coordinate from N(0.5, 0.25²), rejecting
// values more than two standard deviations from the mean.
type TruncatedNormalNoise struct {
	dim    int
	normal distuv.Normal
}

// NewTruncatedNormalNoise creates a truncated normal noise sampler.
func NewTruncatedNormalNoise(dim int, rng *rand.Rand) *TruncatedNormalNoise {
	return &TruncatedNormalNoise{
		dim:    dim,
		normal: distuv.Normal{Mu: NoiseMean, Sigma: NoiseStdDev, Src: rng},
	}
}

// Dim implements Sampler.
func (t *TruncatedNormalNoise) Dim() int { return t.dim }

// Sample implements Sampler.
func (t *TruncatedNormalNoise) Sample(dst []float32) {
	for i := range dst {
		v := t.normal.Rand()
		for math.Abs(v-NoiseMean) > 2*NoiseStdDev {
			v = t.normal.Rand()
		}
		dst[i] = float32(v)
	}
}
