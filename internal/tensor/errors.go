package tensor

import (
	"fmt"
	"strings"
)

// ShapeError reports operands whose shapes an operation cannot combine.
//
// Backends raise it with panic so that arithmetic chains stay readable;
// callers that drive whole training steps recover it into a returned error.
type ShapeError struct {
	Op     string
	Shapes []Shape
	Reason string
}

// NewShapeError builds a ShapeError for op over the given operand shapes.
func NewShapeError(op, reason string, shapes ...Shape) *ShapeError {
	cloned := make([]Shape, len(shapes))
	for i, s := range shapes {
		cloned[i] = s.Clone()
	}
	return &ShapeError{Op: op, Shapes: cloned, Reason: reason}
}

// Error implements error.
func (e *ShapeError) Error() string {
	parts := make([]string, len(e.Shapes))
	for i, s := range e.Shapes {
		parts[i] = fmt.Sprint([]int(s))
	}
	msg := fmt.Sprintf("%s: incompatible shapes %s", e.Op, strings.Join(parts, ", "))
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}
