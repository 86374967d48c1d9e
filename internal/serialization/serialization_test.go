package serialization

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/born-ml/ganlab/internal/tensor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTensors(t *testing.T) []NamedTensor {
	t.Helper()
	w, err := tensor.RawFromSlice([]float32{1, -2, 3.5, 4, 5, 6}, tensor.Shape{2, 3}, tensor.CPU)
	require.NoError(t, err)
	b, err := tensor.RawFromSlice([]float32{0.25, -0.5, 0}, tensor.Shape{3}, tensor.CPU)
	require.NoError(t, err)
	return []NamedTensor{{Name: "g-0", Raw: w}, {Name: "g-1", Raw: b}}
}

func TestRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	tensors := sampleTensors(t)
	require.NoError(t, Write(&buf, tensors, "GANLab", map[string]string{"iter_count": "7"}))

	f, err := Read(bytes.NewReader(buf.Bytes()), ReaderOptions{})
	require.NoError(t, err)

	assert.Equal(t, uint32(FormatVersionV2), f.Version)
	assert.Equal(t, FlagHasMetadata, f.Flags&FlagHasMetadata)
	assert.Equal(t, "GANLab", f.Header.ModelType)
	assert.Equal(t, "7", f.Metadata()["iter_count"])
	assert.Equal(t, []string{"g-0", "g-1"}, f.TensorNames())

	all, err := f.Tensors()
	require.NoError(t, err)
	for _, nt := range tensors {
		got := all[nt.Name]
		require.NotNil(t, got)
		assert.Equal(t, nt.Raw.Shape(), got.Shape())
		assert.Equal(t, nt.Raw.AsFloat32(), got.AsFloat32())
	}

	_, err = f.Tensor("d-0")
	assert.ErrorIs(t, err, ErrTensorNotFound)
}

func TestDataIsAligned(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTensors(t), "GANLab", nil))

	headerSize := binary.LittleEndian.Uint64(buf.Bytes()[16:24])
	dataSize := binary.LittleEndian.Uint64(buf.Bytes()[24:32])
	offset := alignedDataOffset(FixedHeaderSizeV2, int64(headerSize))
	assert.Zero(t, offset%HeaderAlignment)
	assert.Equal(t, offset+int64(dataSize), int64(buf.Len()))
}

func TestChecksumMismatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTensors(t), "GANLab", nil))

	corrupted := bytes.Clone(buf.Bytes())
	corrupted[len(corrupted)-1] ^= 0xff

	_, err := Read(bytes.NewReader(corrupted), ReaderOptions{})
	assert.ErrorIs(t, err, ErrChecksumMismatch)

	_, err = Read(bytes.NewReader(corrupted), ReaderOptions{SkipChecksumValidation: true})
	assert.NoError(t, err)
}

func TestInvalidMagicAndVersion(t *testing.T) {
	_, err := Read(bytes.NewReader([]byte("NOPE\x02\x00\x00\x00")), ReaderOptions{})
	assert.ErrorIs(t, err, ErrInvalidMagic)

	_, err = Read(bytes.NewReader([]byte("BORN\x09\x00\x00\x00")), ReaderOptions{})
	assert.ErrorIs(t, err, ErrUnsupportedVersion)

	_, err = Read(bytes.NewReader([]byte("BO")), ReaderOptions{})
	assert.Error(t, err)
}

func TestTruncatedStream(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTensors(t), "GANLab", nil))
	_, err := Read(bytes.NewReader(buf.Bytes()[:buf.Len()-4]), ReaderOptions{})
	assert.Error(t, err)
}

func TestReadV1(t *testing.T) {
	raw, err := tensor.RawFromSlice([]float32{1, 2}, tensor.Shape{2}, tensor.CPU)
	require.NoError(t, err)
	header := Header{
		FormatVersion: FormatVersion,
		ModelType:     "GANLab",
		Tensors:       []TensorMeta{{Name: "d-0", DType: "float32", Shape: []int{2}, Offset: 0, Size: 8}},
	}
	headerJSON, err := json.Marshal(header)
	require.NoError(t, err)

	var buf bytes.Buffer
	buf.WriteString(MagicBytes)
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(FormatVersion)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint32(0)))
	require.NoError(t, binary.Write(&buf, binary.LittleEndian, uint64(len(headerJSON))))
	buf.Write(headerJSON)
	pad := alignedDataOffset(FixedHeaderSizeV1, int64(len(headerJSON))) - int64(buf.Len())
	buf.Write(make([]byte, pad))
	buf.Write(raw.Bytes())

	f, err := Read(&buf, ReaderOptions{})
	require.NoError(t, err)
	assert.Equal(t, uint32(FormatVersion), f.Version)
	got, err := f.Tensor("d-0")
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2}, got.AsFloat32())
}

func TestWriteRejectsBadNames(t *testing.T) {
	raw := tensor.MustRaw(tensor.Shape{1}, tensor.CPU)
	var buf bytes.Buffer

	err := Write(&buf, []NamedTensor{{Name: "../g-0", Raw: raw}}, "GANLab", nil)
	assert.ErrorIs(t, err, ErrInvalidTensorName)

	err = Write(&buf, []NamedTensor{{Name: "g-0", Raw: raw}, {Name: "g-0", Raw: raw}}, "GANLab", nil)
	assert.ErrorIs(t, err, ErrDuplicateTensor)
}

func TestValidateTensorName(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
	}{
		{"g-0", true},
		{"d-12", true},
		{"", false},
		{"a/b", false},
		{`a\b`, false},
		{"a..b", false},
		{"a\x00b", false},
		{string(make([]byte, MaxTensorNameLen+1)), false},
	}
	for _, tt := range tests {
		err := ValidateTensorName(tt.name)
		if tt.valid {
			assert.NoError(t, err, "%q", tt.name)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTensorName, "%q", tt.name)
		}
	}
}

func TestValidateTensorOffsets(t *testing.T) {
	ok := []TensorMeta{
		{Name: "a", Offset: 8, Size: 8},
		{Name: "b", Offset: 0, Size: 8},
	}
	assert.NoError(t, ValidateTensorOffsets(ok, 16))

	overlap := []TensorMeta{
		{Name: "a", Offset: 0, Size: 12},
		{Name: "b", Offset: 8, Size: 8},
	}
	err := ValidateTensorOffsets(overlap, 16)
	assert.ErrorIs(t, err, ErrOffsetOverlap)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "a", verr.Tensor)
	assert.Equal(t, "b", verr.Tensor2)

	assert.ErrorIs(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 8, Size: 16}}, 16), ErrOutOfBounds)
	assert.ErrorIs(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: -1, Size: 4}}, 16), ErrOutOfBounds)
}

func TestValidateHeaderDTypeAndSize(t *testing.T) {
	h := &Header{Tensors: []TensorMeta{{Name: "a", DType: "float64", Shape: []int{2}, Size: 16}}}
	assert.ErrorIs(t, ValidateHeader(h, 16), ErrUnsupportedDType)

	h = &Header{Tensors: []TensorMeta{{Name: "a", DType: "float32", Shape: []int{2}, Size: 12}}}
	assert.ErrorIs(t, ValidateHeader(h, 16), ErrOutOfBounds)

	h = &Header{Tensors: []TensorMeta{{Name: "a", DType: "float32", Shape: []int{0}, Size: 0}}}
	assert.ErrorIs(t, ValidateHeader(h, 16), ErrOutOfBounds)
}

func TestChecksum(t *testing.T) {
	a := ComputeChecksum([]byte("weights"))
	assert.NoError(t, ValidateChecksum(a, ComputeChecksum([]byte("weights"))))
	assert.ErrorIs(t, ValidateChecksum(a, ComputeChecksum([]byte("weightz"))), ErrChecksumMismatch)
}

// withHeader re-encodes the JSON header of a v2 stream after edit, keeping
// the data section and its checksum.
func withHeader(t *testing.T, stream []byte, edit func(*Header)) []byte {
	t.Helper()
	headerSize := int64(binary.LittleEndian.Uint64(stream[16:24]))
	var h Header
	require.NoError(t, json.Unmarshal(stream[FixedHeaderSizeV2:FixedHeaderSizeV2+headerSize], &h))
	data := stream[alignedDataOffset(FixedHeaderSizeV2, headerSize):]

	edit(&h)
	headerJSON, err := json.Marshal(h)
	require.NoError(t, err)

	out := append([]byte(nil), stream[:FixedHeaderSizeV2]...)
	binary.LittleEndian.PutUint64(out[16:24], uint64(len(headerJSON)))
	out = append(out, headerJSON...)
	pad := alignedDataOffset(FixedHeaderSizeV2, int64(len(headerJSON))) - int64(len(out))
	out = append(out, make([]byte, pad)...)
	return append(out, data...)
}

func TestReadRejectsOverflowingOffset(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleTensors(t), "GANLab", nil))

	stream := withHeader(t, buf.Bytes(), func(h *Header) {
		h.Tensors[0].Offset = 1<<63 - 2
	})
	_, err := Read(bytes.NewReader(stream), ReaderOptions{})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.ErrorIs(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 1<<63 - 2, Size: 24}}, 48), ErrOutOfBounds)
	assert.ErrorIs(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 0, Size: 64}}, 48), ErrOutOfBounds)
	assert.NoError(t, ValidateTensorOffsets([]TensorMeta{{Name: "a", Offset: 24, Size: 24}}, 48))
}
