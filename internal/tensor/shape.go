package tensor

import (
	"fmt"
	"slices"
)

// Shape lists tensor dimensions, outermost first. An empty shape is a scalar.
type Shape []int

// NumElements is the product of all dimensions (1 for a scalar).
func (s Shape) NumElements() int {
	n := 1
	for _, d := range s {
		n *= d
	}
	return n
}

// Validate rejects zero or negative dimensions.
func (s Shape) Validate() error {
	if i := slices.IndexFunc(s, func(d int) bool { return d <= 0 }); i >= 0 {
		return fmt.Errorf("dimension %d is %d, want a positive size", i, s[i])
	}
	return nil
}

// Equal reports whether both shapes have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	return slices.Equal(s, other)
}

// Clone returns an independent copy.
func (s Shape) Clone() Shape {
	return append(Shape(make([]int, 0, len(s))), s...)
}

// ComputeStrides returns row-major element strides: the last dimension is
// contiguous and each earlier stride is the product of the sizes after it.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	step := 1
	for d := len(s) - 1; d >= 0; d-- {
		strides[d] = step
		step *= s[d]
	}
	return strides
}

// BroadcastShapes aligns a and b from their trailing dimension and returns
// the combined shape. A dimension of 1 (or a missing leading one) stretches
// to match the other operand; any other disagreement is a *ShapeError.
// The boolean is true when either operand needs stretching.
//
//	[3 1] x [3 5] -> [3 5], true
//	[5]   x [3 5] -> [3 5], true
//	[3 5] x [3 5] -> [3 5], false
//	[3 4] x [3 5] -> error
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	out := make(Shape, rank)
	stretched := false

	dimAt := func(s Shape, d int) int {
		if k := d - (rank - len(s)); k >= 0 {
			return s[k]
		}
		return 1
	}

	for d := range rank {
		x, y := dimAt(a, d), dimAt(b, d)
		switch {
		case x == y:
			out[d] = x
		case x == 1 || y == 1:
			out[d] = max(x, y)
			stretched = true
		default:
			return nil, false, NewShapeError("broadcast",
				fmt.Sprintf("dimension %d: %d vs %d", d, x, y), a, b)
		}
	}
	return out, stretched, nil
}

// BroadcastIndex maps a flat index into the broadcast result shape back to
// the flat index of an operand with the given shape and strides.
func BroadcastIndex(flat int, result, shape Shape, strides []int) int {
	offset := len(result) - len(shape)
	idx := 0
	for d := len(result) - 1; d >= 0; d-- {
		coord := flat % result[d]
		flat /= result[d]
		od := d - offset
		if od < 0 {
			continue
		}
		if shape[od] != 1 {
			idx += coord * strides[od]
		}
	}
	return idx
}
