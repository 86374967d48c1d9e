package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"

	"github.com/born-ml/ganlab/internal/tensor"
)

// ReaderOptions configures Read.
type ReaderOptions struct {
	SkipChecksumValidation bool // v2 only
}

// File is a fully decoded .born stream.
type File struct {
	Version uint32
	Flags   uint32
	Header  Header

	data []byte
}

// Read decodes a v1 or v2 .born stream. The header is validated before any
// tensor is decoded, and the checksum of a v2 stream is verified unless
// disabled.
func Read(r io.Reader, opts ReaderOptions) (*File, error) {
	prefix := make([]byte, 8)
	if _, err := io.ReadFull(r, prefix); err != nil {
		return nil, fmt.Errorf("failed to read magic bytes: %w", err)
	}
	if string(prefix[:4]) != MagicBytes {
		return nil, ErrInvalidMagic
	}

	f := &File{Version: binary.LittleEndian.Uint32(prefix[4:8])}
	var err error
	switch f.Version {
	case FormatVersion:
		err = f.readV1(r)
	case FormatVersionV2:
		err = f.readV2(r, opts)
	default:
		return nil, fmt.Errorf("%w: got %d, expected %d or %d", ErrUnsupportedVersion, f.Version, FormatVersion, FormatVersionV2)
	}
	if err != nil {
		return nil, err
	}
	if err := ValidateHeader(&f.Header, int64(len(f.data))); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return f, nil
}

func (f *File) readV1(r io.Reader) error {
	rest := make([]byte, FixedHeaderSizeV1-8)
	if _, err := io.ReadFull(r, rest); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	f.Flags = binary.LittleEndian.Uint32(rest[0:4])
	headerSize := binary.LittleEndian.Uint64(rest[4:12])

	if err := f.readHeader(r, FixedHeaderSizeV1, headerSize); err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read tensor data: %w", err)
	}
	f.data = data
	return nil
}

func (f *File) readV2(r io.Reader, opts ReaderOptions) error {
	rest := make([]byte, FixedHeaderSizeV2-8)
	if _, err := io.ReadFull(r, rest); err != nil {
		return fmt.Errorf("failed to read fixed header: %w", err)
	}
	// rest starts at file offset 0x08.
	f.Flags = binary.LittleEndian.Uint32(rest[0:4])
	headerSize := binary.LittleEndian.Uint64(rest[8:16])
	dataSize := binary.LittleEndian.Uint64(rest[16:24])
	var stored [ChecksumSize]byte
	copy(stored[:], rest[ChecksumOffsetV2-8:])

	if err := f.readHeader(r, FixedHeaderSizeV2, headerSize); err != nil {
		return err
	}
	if dataSize > MaxDataSize {
		return fmt.Errorf("%w: data size %d", ErrOutOfBounds, dataSize)
	}
	f.data = make([]byte, dataSize)
	if _, err := io.ReadFull(r, f.data); err != nil {
		return fmt.Errorf("failed to read tensor data: %w", err)
	}
	if !opts.SkipChecksumValidation {
		if err := ValidateChecksum(ComputeChecksum(f.data), stored); err != nil {
			return err
		}
	}
	return nil
}

// readHeader reads the JSON header and skips the alignment padding after it.
func (f *File) readHeader(r io.Reader, fixedSize int64, headerSize uint64) error {
	if headerSize > MaxHeaderSize {
		return ErrHeaderTooLarge
	}
	headerBytes := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return fmt.Errorf("failed to read header JSON: %w", err)
	}
	if err := json.Unmarshal(headerBytes, &f.Header); err != nil {
		return fmt.Errorf("failed to parse header JSON: %w", err)
	}
	//nolint:gosec // G115: headerSize is bounded by MaxHeaderSize
	size := int64(headerSize)
	padding := alignedDataOffset(fixedSize, size) - fixedSize - size
	if _, err := io.CopyN(io.Discard, r, padding); err != nil {
		return fmt.Errorf("failed to read padding: %w", err)
	}
	return nil
}

// Metadata returns the header metadata.
func (f *File) Metadata() map[string]string {
	return f.Header.Metadata
}

// TensorNames returns the stored tensor names in file order.
func (f *File) TensorNames() []string {
	names := make([]string, len(f.Header.Tensors))
	for i, meta := range f.Header.Tensors {
		names[i] = meta.Name
	}
	return names
}

// TensorInfo returns the metadata of the named tensor.
func (f *File) TensorInfo(name string) (*TensorMeta, error) {
	for i := range f.Header.Tensors {
		if f.Header.Tensors[i].Name == name {
			return &f.Header.Tensors[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrTensorNotFound, name)
}

// Tensor decodes the named tensor into a new RawTensor.
func (f *File) Tensor(name string) (*tensor.RawTensor, error) {
	meta, err := f.TensorInfo(name)
	if err != nil {
		return nil, err
	}
	raw, err := tensor.RawFromBytes(f.data[meta.Offset:meta.Offset+meta.Size], tensor.Shape(meta.Shape), tensor.CPU)
	if err != nil {
		return nil, fmt.Errorf("failed to decode tensor %s: %w", name, err)
	}
	return raw, nil
}

// Tensors decodes every tensor, keyed by name.
func (f *File) Tensors() (map[string]*tensor.RawTensor, error) {
	out := make(map[string]*tensor.RawTensor, len(f.Header.Tensors))
	for _, meta := range f.Header.Tensors {
		raw, err := f.Tensor(meta.Name)
		if err != nil {
			return nil, err
		}
		out[meta.Name] = raw
	}
	return out, nil
}
