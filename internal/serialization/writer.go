package serialization

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// Version of the writer recorded in every header.
const bornVersion = "0.5.4"

// Write encodes tensors, in order, as a v2 .born stream.
func Write(w io.Writer, tensors []NamedTensor, modelType string, metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersionV2,
		BornVersion:   bornVersion,
		ModelType:     modelType,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, len(tensors)),
		Metadata:      metadata,
	}
	if header.Metadata == nil {
		header.Metadata = make(map[string]string)
	}

	var data []byte
	for _, t := range tensors {
		if err := ValidateTensorName(t.Name); err != nil {
			return err
		}
		b := t.Raw.Bytes()
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   t.Name,
			DType:  t.Raw.DType().String(),
			Shape:  []int(t.Raw.Shape()),
			Offset: int64(len(data)),
			Size:   int64(len(b)),
		})
		data = append(data, b...)
	}
	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return err
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return fmt.Errorf("failed to marshal header: %w", err)
	}

	fixed := make([]byte, FixedHeaderSizeV2)
	copy(fixed[0:4], MagicBytes)
	binary.LittleEndian.PutUint32(fixed[4:8], FormatVersionV2)
	if len(header.Metadata) > 0 {
		binary.LittleEndian.PutUint32(fixed[8:12], FlagHasMetadata)
	}
	binary.LittleEndian.PutUint64(fixed[16:24], uint64(len(headerJSON)))
	binary.LittleEndian.PutUint64(fixed[24:32], uint64(len(data)))
	checksum := ComputeChecksum(data)
	copy(fixed[ChecksumOffsetV2:], checksum[:])

	if _, err := w.Write(fixed); err != nil {
		return fmt.Errorf("failed to write fixed header: %w", err)
	}
	if _, err := w.Write(headerJSON); err != nil {
		return fmt.Errorf("failed to write header JSON: %w", err)
	}
	headerEnd := int64(FixedHeaderSizeV2 + len(headerJSON))
	if padding := alignedDataOffset(FixedHeaderSizeV2, int64(len(headerJSON))) - headerEnd; padding > 0 {
		if _, err := w.Write(make([]byte, padding)); err != nil {
			return fmt.Errorf("failed to write padding: %w", err)
		}
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write tensor data: %w", err)
	}
	return nil
}
