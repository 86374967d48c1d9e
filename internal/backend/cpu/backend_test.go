package cpu

import (
	"errors"
	"math"
	"testing"

	"github.com/born-ml/ganlab/internal/parallel"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func raw(t *testing.T, data []float32, shape ...int) *tensor.RawTensor {
	t.Helper()
	r, err := tensor.RawFromSlice(data, tensor.Shape(shape), tensor.CPU)
	require.NoError(t, err)
	return r
}

func TestCPUBackend_Metadata(t *testing.T) {
	b := New()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
	assert.NotEmpty(t, b.Description())
}

func TestCPUBackend_AddBroadcastBias(t *testing.T) {
	b := New()
	x := raw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	bias := raw(t, []float32{10, 20, 30}, 3)

	out := b.Add(x, bias)
	assert.Equal(t, tensor.Shape{2, 3}, out.Shape())
	assert.Equal(t, []float32{11, 22, 33, 14, 25, 36}, out.AsFloat32())
}

func TestCPUBackend_SubMulDiv(t *testing.T) {
	b := New()
	x := raw(t, []float32{4, 9}, 2)
	y := raw(t, []float32{2, 3}, 2)

	assert.Equal(t, []float32{2, 6}, b.Sub(x, y).AsFloat32())
	assert.Equal(t, []float32{8, 27}, b.Mul(x, y).AsFloat32())
	assert.Equal(t, []float32{2, 3}, b.Div(x, y).AsFloat32())
}

func TestCPUBackend_ShapeMismatchPanicsWithShapeError(t *testing.T) {
	b := New()
	x := raw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	y := raw(t, []float32{1, 2}, 2)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		var se *tensor.ShapeError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, "add", se.Op)
	}()
	b.Add(x, y)
}

func TestCPUBackend_MatMul(t *testing.T) {
	b := New()
	a := raw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)
	m := raw(t, []float32{7, 8, 9, 10, 11, 12}, 3, 2)

	out := b.MatMul(a, m)
	assert.Equal(t, tensor.Shape{2, 2}, out.Shape())
	assert.Equal(t, []float32{58, 64, 139, 154}, out.AsFloat32())

	assert.Panics(t, func() { b.MatMul(a, a) })
}

func TestCPUBackend_Activations(t *testing.T) {
	b := New()
	x := raw(t, []float32{-2, 0, 3}, 3)

	assert.Equal(t, []float32{0, 0, 3}, b.ReLU(x).AsFloat32())

	sig := b.Sigmoid(x).AsFloat32()
	assert.InDelta(t, 1/(1+math.Exp(2)), sig[0], 1e-6)
	assert.InDelta(t, 0.5, sig[1], 1e-7)

	th := b.Tanh(x).AsFloat32()
	assert.InDelta(t, math.Tanh(-2), th[0], 1e-6)
	assert.InDelta(t, math.Tanh(3), th[2], 1e-6)
}

func TestCPUBackend_SigmoidSaturates(t *testing.T) {
	b := New()
	out := b.Sigmoid(raw(t, []float32{-200, 200}, 2)).AsFloat32()
	assert.Equal(t, float32(0), out[0])
	assert.Equal(t, float32(1), out[1])
}

func TestCPUBackend_LogPropagatesNonFinite(t *testing.T) {
	b := New()
	out := b.Log(raw(t, []float32{0, -1, 1}, 3)).AsFloat32()
	assert.True(t, math.IsInf(float64(out[0]), -1))
	assert.True(t, math.IsNaN(float64(out[1])))
	assert.Equal(t, float32(0), out[2])
}

func TestCPUBackend_Reductions(t *testing.T) {
	b := New()
	x := raw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)

	sum := b.Sum(x)
	assert.Equal(t, 0, len(sum.Shape()))
	assert.Equal(t, float32(21), sum.AsFloat32()[0])
	assert.Equal(t, float32(3.5), b.Mean(x).AsFloat32()[0])

	cols := b.SumDim(x, 0, false)
	assert.Equal(t, tensor.Shape{3}, cols.Shape())
	assert.Equal(t, []float32{5, 7, 9}, cols.AsFloat32())

	rows := b.SumDim(x, -1, true)
	assert.Equal(t, tensor.Shape{2, 1}, rows.Shape())
	assert.Equal(t, []float32{6, 15}, rows.AsFloat32())
}

func TestCPUBackend_ReshapeTranspose(t *testing.T) {
	b := New()
	x := raw(t, []float32{1, 2, 3, 4, 5, 6}, 2, 3)

	tr := b.Transpose(x)
	assert.Equal(t, tensor.Shape{3, 2}, tr.Shape())
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, tr.AsFloat32())

	flat := b.Reshape(x, tensor.Shape{6})
	assert.Equal(t, tensor.Shape{6}, flat.Shape())
	assert.Panics(t, func() { b.Reshape(x, tensor.Shape{4}) })
}

func TestCPUBackend_ParallelMatchesSequential(t *testing.T) {
	n := 20000
	data := make([]float32, n)
	for i := range data {
		data[i] = float32(i%97) - 48
	}
	x := raw(t, data, n)

	par := NewWithConfig(parallel.Config{Enabled: true, NumWorkers: 4, MinChunkSize: 1000})
	seq := NewWithConfig(parallel.Config{Enabled: false})

	assert.Equal(t, seq.Tanh(x).AsFloat32(), par.Tanh(x).AsFloat32())
	assert.Equal(t, seq.Add(x, x).AsFloat32(), par.Add(x, x).AsFloat32())
}
