package atlas

import (
	"fmt"

	"gonum.org/v1/gonum/stat/distuv"
)

// NewNoiseLattice creates the manifold provider: the (cells+1)^dim lattice
// points of the unit interval or square, padded with Filler.
//
// For dim 2 the first coordinate varies slowest.
func NewNoiseLattice(dim, cells, batchSize int) (*Provider, error) {
	if dim != 1 && dim != 2 {
		return nil, fmt.Errorf("atlas: noise lattice supports 1 or 2 dimensions, got %d", dim)
	}
	if err := checkSizes(dim, cells, batchSize); err != nil {
		return nil, err
	}
	n := cells + 1
	length := n
	if dim == 2 {
		length = n * n
	}

	return &Provider{
		name:      "noise lattice",
		dim:       dim,
		batchSize: batchSize,
		cycleLen:  length,
		sweep:     true,
		generate: func() ([]float32, error) {
			data := make([]float32, 0, length*dim)
			for i := range n {
				if dim == 1 {
					data = append(data, float32(i)/float32(cells))
					continue
				}
				for j := range n {
					data = append(data, float32(i)/float32(cells), float32(j)/float32(cells))
				}
			}
			return data, nil
		},
	}, nil
}

// NewUniformGrid creates the heatmap provider: the centres of a cells×cells
// partition of the unit square, x varying fastest.
func NewUniformGrid(cells, batchSize int) (*Provider, error) {
	if err := checkSizes(2, cells, batchSize); err != nil {
		return nil, err
	}
	length := cells * cells

	return &Provider{
		name:      "uniform grid",
		dim:       2,
		batchSize: batchSize,
		cycleLen:  length,
		sweep:     true,
		generate: func() ([]float32, error) {
			data := make([]float32, 0, length*2)
			for j := range cells {
				for i := range cells {
					data = append(data,
						(float32(i)+0.5)/float32(cells),
						(float32(j)+0.5)/float32(cells))
				}
			}
			return data, nil
		},
	}, nil
}

// GaussianDensities returns, for 2-D noise, the density of N(0.5, 0.25²)
// in each dimension evaluated at the centre of every manifold cell, in the
// same cell order as the manifold lattice. For other dimensions it returns nil.
func GaussianDensities(dim, cells int) []float64 {
	if dim != 2 {
		return nil
	}
	normal := distuv.Normal{Mu: NoiseMean, Sigma: NoiseStdDev}
	densities := make([]float64, 0, cells*cells)
	for i := range cells {
		for j := range cells {
			x := (float64(i) + 0.5) / float64(cells)
			y := (float64(j) + 0.5) / float64(cells)
			densities = append(densities, normal.Prob(x)*normal.Prob(y))
		}
	}
	return densities
}
