package tensor

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	default:
		return "Unknown"
	}
}

// RawTensor is the untyped storage behind a Tensor: a row-major float32
// buffer plus its shape and strides.
//
// Row views returned by Rows share memory with their parent.
type RawTensor struct {
	data   []float32
	shape  Shape
	stride []int
	device Device
}

// NewRaw allocates a zero-filled RawTensor.
func NewRaw(shape Shape, device Device) (*RawTensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	return &RawTensor{
		data:   make([]float32, shape.NumElements()),
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		device: device,
	}, nil
}

// MustRaw is NewRaw for shapes already known to be valid.
func MustRaw(shape Shape, device Device) *RawTensor {
	r, err := NewRaw(shape, device)
	if err != nil {
		panic(err)
	}
	return r
}

// RawFromSlice copies data into a new RawTensor of the given shape.
func RawFromSlice(data []float32, shape Shape, device Device) (*RawTensor, error) {
	if shape.NumElements() != len(data) {
		return nil, fmt.Errorf("shape %v requires %d elements, but got %d", shape, shape.NumElements(), len(data))
	}
	r, err := NewRaw(shape, device)
	if err != nil {
		return nil, err
	}
	copy(r.data, data)
	return r, nil
}

// RawFromBytes decodes little-endian float32 values into a new RawTensor.
func RawFromBytes(b []byte, shape Shape, device Device) (*RawTensor, error) {
	if len(b) != shape.NumElements()*Float32.Size() {
		return nil, fmt.Errorf("shape %v requires %d bytes, but got %d", shape, shape.NumElements()*Float32.Size(), len(b))
	}
	r, err := NewRaw(shape, device)
	if err != nil {
		return nil, err
	}
	for i := range r.data {
		r.data[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return r, nil
}

// Shape returns the tensor's shape.
func (r *RawTensor) Shape() Shape {
	return r.shape
}

// Strides returns the row-major strides.
func (r *RawTensor) Strides() []int {
	return r.stride
}

// DType returns the tensor's data type.
func (r *RawTensor) DType() DataType {
	return Float32
}

// Device returns the tensor's compute device.
func (r *RawTensor) Device() Device {
	return r.device
}

// NumElements returns the total number of elements.
func (r *RawTensor) NumElements() int {
	return len(r.data)
}

// ByteSize returns the size of the encoded data in bytes.
func (r *RawTensor) ByteSize() int {
	return len(r.data) * Float32.Size()
}

// AsFloat32 returns the backing slice. Writes are visible to every view.
func (r *RawTensor) AsFloat32() []float32 {
	return r.data
}

// Bytes encodes the values as little-endian float32.
func (r *RawTensor) Bytes() []byte {
	b := make([]byte, r.ByteSize())
	for i, v := range r.data {
		binary.LittleEndian.PutUint32(b[i*4:], math.Float32bits(v))
	}
	return b
}

// Clone returns a deep copy.
func (r *RawTensor) Clone() *RawTensor {
	data := make([]float32, len(r.data))
	copy(data, r.data)
	return &RawTensor{
		data:   data,
		shape:  r.shape.Clone(),
		stride: append([]int(nil), r.stride...),
		device: r.device,
	}
}

// Rows returns a view of n consecutive rows starting at row start.
// The view shares memory with r.
func (r *RawTensor) Rows(start, n int) *RawTensor {
	if len(r.shape) == 0 || start < 0 || n <= 0 || start+n > r.shape[0] {
		panic(NewShapeError("rows", fmt.Sprintf("rows [%d, %d) out of range", start, start+n), r.shape))
	}
	rowSize := r.stride[0]
	shape := r.shape.Clone()
	shape[0] = n
	return &RawTensor{
		data:   r.data[start*rowSize : (start+n)*rowSize],
		shape:  shape,
		stride: shape.ComputeStrides(),
		device: r.device,
	}
}
