package serialization

import (
	"time"

	"github.com/born-ml/ganlab/internal/tensor"
)

// Format constants.
const (
	MagicBytes        = "BORN"
	FormatVersion     = 1    // v1: no checksum
	FormatVersionV2   = 2    // v2: SHA-256 checksum in a fixed header
	HeaderAlignment   = 64   // tensor data starts on a 64-byte boundary
	FixedHeaderSizeV1 = 20   // magic + version + flags + header size
	FixedHeaderSizeV2 = 64   // 0x40
	ChecksumSize      = 32   // SHA-256
	ChecksumOffsetV2  = 0x20 // checksum position in the v2 fixed header
)

// Flags for the .born format.
const (
	FlagHasMetadata uint32 = 1 << 2
)

// Header is the JSON header of a .born file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	BornVersion   string            `json:"born_version"`
	ModelType     string            `json:"model_type"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata"`
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`
	DType  string `json:"dtype"`
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// NamedTensor pairs a tensor with the name it is stored under.
type NamedTensor struct {
	Name string
	Raw  *tensor.RawTensor
}

func alignedDataOffset(fixed, headerSize int64) int64 {
	pos := fixed + headerSize
	return pos + (HeaderAlignment-pos%HeaderAlignment)%HeaderAlignment
}
