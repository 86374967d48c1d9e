// Package evaluator scores a generator by comparing grid-quantised densities
// of generated and true 2-D samples.
package evaluator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
)

// Epsilon smooths empty cells in the divergence sums.
const Epsilon = 1e-4

// GridDensities holds the true and generated empirical densities over a
// numGrid×numGrid partition of the unit square.
type GridDensities struct {
	numGrid   int
	trueGrid  []float64
	generated []float64
}

// New returns an evaluator with both density arrays zeroed.
func New(numGrid int) *GridDensities {
	return &GridDensities{
		numGrid:   numGrid,
		trueGrid:  make([]float64, numGrid*numGrid),
		generated: make([]float64, numGrid*numGrid),
	}
}

// NumGrid returns the number of cells per side.
func (g *GridDensities) NumGrid() int {
	return g.numGrid
}

// CellIndex maps a point to floor(x*n) + n*floor(y*n). Coordinates outside
// the unit square are clamped to the border cells.
func (g *GridDensities) CellIndex(x, y float32) int {
	return g.axis(x) + g.numGrid*g.axis(y)
}

func (g *GridDensities) axis(v float32) int {
	c := int(math.Floor(float64(v) * float64(g.numGrid)))
	return min(max(c, 0), g.numGrid-1)
}

// CreateTrueGrid computes the true density from the first n points of
// samples, a flat slice of (x, y) pairs.
func (g *GridDensities) CreateTrueGrid(samples []float32, n int) error {
	if n < 1 || 2*n > len(samples) {
		return fmt.Errorf("evaluator: need %d true samples, have %d", n, len(samples)/2)
	}
	g.fill(g.trueGrid, samples[:2*n])
	return nil
}

// UpdateGeneratedGrid overwrites the generated density with that of samples,
// a flat slice of (x, y) pairs.
func (g *GridDensities) UpdateGeneratedGrid(samples []float32) error {
	if len(samples) < 2 || len(samples)%2 != 0 {
		return fmt.Errorf("evaluator: generated samples must be non-empty (x, y) pairs, got %d values", len(samples))
	}
	g.fill(g.generated, samples)
	return nil
}

func (g *GridDensities) fill(dst []float64, samples []float32) {
	for i := range dst {
		dst[i] = 0
	}
	n := len(samples) / 2
	for i := range n {
		dst[g.CellIndex(samples[2*i], samples[2*i+1])]++
	}
	floats.Scale(1/float64(n), dst)
}

// TrueDensities returns a copy of the true density array.
func (g *GridDensities) TrueDensities() []float64 {
	return append([]float64(nil), g.trueGrid...)
}

// GeneratedDensities returns a copy of the generated density array.
func (g *GridDensities) GeneratedDensities() []float64 {
	return append([]float64(nil), g.generated...)
}

// KLDivergence returns the smoothed KL(true || generated) in bits.
func (g *GridDensities) KLDivergence() float64 {
	return smoothedKL(g.trueGrid, g.generated)
}

// JSDivergence returns the smoothed Jensen-Shannon divergence in bits.
func (g *GridDensities) JSDivergence() float64 {
	return jsDivergence(g.trueGrid, g.generated)
}

func jsDivergence(p, q []float64) float64 {
	m := make([]float64, len(p))
	floats.AddTo(m, p, q)
	floats.Scale(0.5, m)
	return 0.5 * (smoothedKL(p, m) + smoothedKL(q, m))
}

func smoothedKL(p, q []float64) float64 {
	var score float64
	for i := range p {
		a, b := p[i]+Epsilon, q[i]+Epsilon
		score += a * math.Log2(a/b)
	}
	return score
}
