package evaluator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func randomPoints(seed uint64, n int) []float32 {
	rng := rand.New(rand.NewPCG(seed, 1))
	out := make([]float32, 2*n)
	for i := range out {
		out[i] = rng.Float32()
	}
	return out
}

func randomDensity(seed uint64, n int) []float64 {
	rng := rand.New(rand.NewPCG(seed, 2))
	d := make([]float64, n)
	for i := range d {
		d[i] = rng.Float64()
	}
	floats.Scale(1/floats.Sum(d), d)
	return d
}

func TestCellIndex(t *testing.T) {
	g := New(10)
	tests := []struct {
		x, y float32
		want int
	}{
		{0, 0, 0},
		{0.05, 0.05, 0},
		{0.15, 0.05, 1},
		{0.05, 0.15, 10},
		{0.95, 0.95, 99},
		{1, 1, 99},
		{-0.3, 0.5, 50},
		{1.7, -2, 9},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, g.CellIndex(tt.x, tt.y), "(%v, %v)", tt.x, tt.y)
	}
}

func TestDensitiesSumToOne(t *testing.T) {
	g := New(30)
	require.NoError(t, g.CreateTrueGrid(randomPoints(1, 500), 450))
	require.NoError(t, g.UpdateGeneratedGrid(randomPoints(2, 150)))

	assert.InDelta(t, 1.0, floats.Sum(g.TrueDensities()), 1e-6)
	assert.InDelta(t, 1.0, floats.Sum(g.GeneratedDensities()), 1e-6)

	// Out-of-range points are clamped, not dropped.
	require.NoError(t, g.UpdateGeneratedGrid([]float32{-1, -1, 2, 2, 0.5, 0.5}))
	assert.InDelta(t, 1.0, floats.Sum(g.GeneratedDensities()), 1e-6)
}

func TestCreateTrueGridUsesFirstN(t *testing.T) {
	g := New(2)
	samples := []float32{0.1, 0.1, 0.9, 0.1, 0.9, 0.9}
	require.NoError(t, g.CreateTrueGrid(samples, 2))
	assert.Equal(t, []float64{0.5, 0.5, 0, 0}, g.TrueDensities())

	assert.Error(t, g.CreateTrueGrid(samples, 4))
	assert.Error(t, g.CreateTrueGrid(samples, 0))
}

func TestUpdateGeneratedGridOverwrites(t *testing.T) {
	g := New(2)
	require.NoError(t, g.UpdateGeneratedGrid([]float32{0.1, 0.1}))
	require.NoError(t, g.UpdateGeneratedGrid([]float32{0.9, 0.9, 0.9, 0.9}))
	assert.Equal(t, []float64{0, 0, 0, 1}, g.GeneratedDensities())

	assert.Error(t, g.UpdateGeneratedGrid(nil))
	assert.Error(t, g.UpdateGeneratedGrid([]float32{0.1}))
}

func TestKLZeroForEqualGrids(t *testing.T) {
	g := New(30)
	pts := randomPoints(3, 450)
	require.NoError(t, g.CreateTrueGrid(pts, 450))
	require.NoError(t, g.UpdateGeneratedGrid(pts))

	assert.InDelta(t, 0, g.KLDivergence(), 2*Epsilon)
	assert.InDelta(t, 0, g.JSDivergence(), 2*Epsilon)
}

func TestKLHandComputed(t *testing.T) {
	g := New(1)
	require.NoError(t, g.CreateTrueGrid([]float32{0.5, 0.5}, 1))
	require.NoError(t, g.UpdateGeneratedGrid([]float32{0.2, 0.7}))
	// A single cell holds all mass in both grids.
	assert.InDelta(t, 0, g.KLDivergence(), 1e-12)
}

func TestJSSymmetricAndBounded(t *testing.T) {
	for seed := uint64(0); seed < 20; seed++ {
		p := randomDensity(seed, 900)
		q := randomDensity(seed+100, 900)
		js := jsDivergence(p, q)
		assert.InDelta(t, js, jsDivergence(q, p), 1e-12)
		assert.GreaterOrEqual(t, js, 0.0)
		assert.LessOrEqual(t, js, 1.0)
	}

	// Disjoint supports approach the upper bound.
	p := []float64{1, 0}
	q := []float64{0, 1}
	js := jsDivergence(p, q)
	assert.Greater(t, js, 0.99)
	assert.LessOrEqual(t, js, 1.0)
}

func TestKLPositiveForDifferentGrids(t *testing.T) {
	g := New(10)
	require.NoError(t, g.CreateTrueGrid([]float32{0.05, 0.05, 0.15, 0.05}, 2))
	require.NoError(t, g.UpdateGeneratedGrid([]float32{0.95, 0.95}))
	assert.Greater(t, g.KLDivergence(), 1.0)
}
