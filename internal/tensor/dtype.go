// Package tensor provides the float32 tensor types shared by the GAN engine.
package tensor

// DataType represents runtime type information for tensors.
//
// Only Float32 is produced by the engine. The other values exist so that
// weight files written by other tools can be recognised and rejected.
type DataType int

// Known data types.
const (
	Float32 DataType = iota
	Float64
	Int32
)

// Size returns the byte size of the data type.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64:
		return 8
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	default:
		return "unknown"
	}
}

// ParseDataType maps a name produced by String back to its DataType.
func ParseDataType(name string) (DataType, bool) {
	switch name {
	case "float32":
		return Float32, true
	case "float64":
		return Float64, true
	case "int32":
		return Int32, true
	default:
		return 0, false
	}
}
