package gan_test

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/born-ml/ganlab/internal/atlas"
	"github.com/born-ml/ganlab/internal/gan"
	"github.com/born-ml/ganlab/internal/serialization"
	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func forward(t *testing.T, tr *gan.Trainer) ([]float32, []float32) {
	t.Helper()
	noise := make([]float32, 0, 20)
	for i := range 10 {
		noise = append(noise, float32(i)/10, 1-float32(i)/10)
	}
	x, err := tensor.FromSlice(noise, tensor.Shape{10, 2}, tr.Backend())
	require.NoError(t, err)
	generated := tr.Generator().Forward(x)
	return generated.Data(), tr.Discriminator().Forward(generated).Data()
}

func exported(t *testing.T, tr *gan.Trainer) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, tr.Export(&buf))
	return buf.Bytes()
}

func TestExportImportRoundTrip(t *testing.T) {
	cfg := smallConfig()
	cfg.ShapeName = atlas.ShapeRing
	src, err := gan.New(cfg)
	require.NoError(t, err)
	for range 5 {
		_, err := src.Step()
		require.NoError(t, err)
	}
	data := exported(t, src)

	other := smallConfig()
	other.Seed = 7
	other.NumGeneratorLayers = 3
	dst, err := gan.New(other)
	require.NoError(t, err)
	require.NoError(t, dst.Import(bytes.NewReader(data)))

	assert.Equal(t, 5, dst.Iteration())
	assert.Equal(t, src.Config(), dst.Config())

	wantG, wantD := forward(t, src)
	gotG, gotD := forward(t, dst)
	assert.Equal(t, wantG, gotG)
	assert.Equal(t, wantD, gotD)

	res, err := dst.Step()
	require.NoError(t, err)
	assert.Equal(t, 6, res.Iteration)
}

func TestExportLayout(t *testing.T) {
	tr, err := gan.New(smallConfig())
	require.NoError(t, err)
	_, err = tr.Step()
	require.NoError(t, err)

	f, err := serialization.Read(bytes.NewReader(exported(t, tr)), serialization.ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"d-0", "d-1", "d-2", "d-3", "d-4", "d-5", "g-0", "g-1", "g-2", "g-3", "g-4", "g-5"}, f.TensorNames())

	meta := f.Metadata()
	assert.Equal(t, atlas.ShapeGaussians, meta[gan.MetaShapeName])
	assert.Equal(t, "1", meta[gan.MetaIterCount])
	assert.Equal(t, tr.ExperimentID(), meta[gan.MetaExperimentID])
	assert.Contains(t, meta[gan.MetaConfig], `"noise_type":"2D Uniform"`)
}

// rewrite re-encodes an exported file after edit changes its tensor list.
func rewrite(t *testing.T, data []byte, edit func([]serialization.NamedTensor) []serialization.NamedTensor) []byte {
	t.Helper()
	f, err := serialization.Read(bytes.NewReader(data), serialization.ReaderOptions{})
	require.NoError(t, err)
	var tensors []serialization.NamedTensor
	for _, name := range f.TensorNames() {
		raw, err := f.Tensor(name)
		require.NoError(t, err)
		tensors = append(tensors, serialization.NamedTensor{Name: name, Raw: raw})
	}
	var buf bytes.Buffer
	require.NoError(t, serialization.Write(&buf, edit(tensors), "GANLab", f.Metadata()))
	return buf.Bytes()
}

func TestImportRejectsMismatchedNames(t *testing.T) {
	src, err := gan.New(smallConfig())
	require.NoError(t, err)
	data := exported(t, src)

	tests := map[string]func([]serialization.NamedTensor) []serialization.NamedTensor{
		"missing": func(ts []serialization.NamedTensor) []serialization.NamedTensor {
			return ts[1:]
		},
		"extra": func(ts []serialization.NamedTensor) []serialization.NamedTensor {
			return append(ts, serialization.NamedTensor{Name: "g-99", Raw: ts[0].Raw})
		},
		"renamed": func(ts []serialization.NamedTensor) []serialization.NamedTensor {
			ts[0].Name = "x-0"
			return ts
		},
		"wrong shape": func(ts []serialization.NamedTensor) []serialization.NamedTensor {
			ts[0].Raw = tensor.MustRaw(tensor.Shape{3, 3}, tensor.CPU)
			return ts
		},
	}
	for name, edit := range tests {
		t.Run(name, func(t *testing.T) {
			dst, err := gan.New(smallConfig())
			require.NoError(t, err)
			_, err = dst.Step()
			require.NoError(t, err)
			id, before := dst.ExperimentID(), snapshot(dst.Generator())

			err = dst.Import(bytes.NewReader(rewrite(t, data, edit)))
			assert.ErrorIs(t, err, gan.ErrConfiguration)

			assert.Equal(t, id, dst.ExperimentID())
			assert.Equal(t, 1, dst.Iteration())
			assert.Equal(t, before, snapshot(dst.Generator()))
		})
	}
}

func TestImportRejectsCorruptFile(t *testing.T) {
	src, err := gan.New(smallConfig())
	require.NoError(t, err)
	data := exported(t, src)
	data[len(data)-1] ^= 0x01

	dst, err := gan.New(smallConfig())
	require.NoError(t, err)
	assert.ErrorIs(t, dst.Import(bytes.NewReader(data)), serialization.ErrChecksumMismatch)
}

func TestImportRejectsMissingConfig(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{1}, tensor.CPU)
	var buf bytes.Buffer
	require.NoError(t, serialization.Write(&buf, []serialization.NamedTensor{{Name: "g-0", Raw: raw}}, "GANLab", nil))

	dst, err := gan.New(smallConfig())
	require.NoError(t, err)
	assert.ErrorIs(t, dst.Import(&buf), gan.ErrConfiguration)
}

func TestImportRejectsOutOfRangeOffset(t *testing.T) {
	src, err := gan.New(smallConfig())
	require.NoError(t, err)
	data := exported(t, src)

	// Move g-0 far past the data section; data and checksum stay intact.
	headerSize := int64(binary.LittleEndian.Uint64(data[16:24]))
	aligned := func(n int64) int64 { return (n + 63) / 64 * 64 }
	var h serialization.Header
	require.NoError(t, json.Unmarshal(data[64:64+headerSize], &h))
	for i := range h.Tensors {
		if h.Tensors[i].Name == "g-0" {
			h.Tensors[i].Offset = 1<<63 - 2
		}
	}
	headerJSON, err := json.Marshal(h)
	require.NoError(t, err)

	crafted := append([]byte(nil), data[:64]...)
	binary.LittleEndian.PutUint64(crafted[16:24], uint64(len(headerJSON)))
	crafted = append(crafted, headerJSON...)
	crafted = append(crafted, make([]byte, aligned(int64(len(crafted)))-int64(len(crafted)))...)
	crafted = append(crafted, data[aligned(64+headerSize):]...)

	dst, err := gan.New(smallConfig())
	require.NoError(t, err)
	before, _ := forward(t, dst)
	require.NotPanics(t, func() {
		err = dst.Import(bytes.NewReader(crafted))
	})
	assert.ErrorIs(t, err, serialization.ErrOutOfBounds)
	after, _ := forward(t, dst)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, dst.Iteration())
}
