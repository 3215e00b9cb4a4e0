// Package graph defines the minimal operator surface for plugging
// computations into a differentiable graph: shapes, dense values, and ops
// with declared capabilities. Gradient support is a queryable capability,
// not a runtime discovery: a graph layer can reject differentiation of a
// non-differentiable op at construction time.
package graph

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoGradient indicates a gradient request against an op whose
	// capabilities exclude differentiation.
	ErrNoGradient = errors.New("graph: op does not support differentiation")

	// ErrArity indicates a wrong number of inputs for an op.
	ErrArity = errors.New("graph: wrong input arity")

	// ErrShape indicates inputs whose shapes violate the op's contract.
	ErrShape = errors.New("graph: incompatible input shapes")
)

// Unknown marks a dimension whose extent is not known until runtime.
const Unknown = -1

// Shape is a dense tensor shape. Dimensions may be Unknown; inference
// propagates them rather than forcing eager resolution.
type Shape []int

func (s Shape) Rank() int { return len(s) }

// Size returns the element count, or Unknown if any dimension is Unknown.
func (s Shape) Size() int {
	size := 1
	for _, d := range s {
		if d == Unknown {
			return Unknown
		}
		size *= d
	}
	return size
}

func (s Shape) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		if d == Unknown {
			parts[i] = "?"
		} else {
			parts[i] = strconv.Itoa(d)
		}
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// Value is a dense tensor: a shape and flat row-major float64 data.
type Value struct {
	Shape Shape
	Data  []float64
}

// Capabilities declares what an op can do beyond forward evaluation.
type Capabilities struct {
	SupportsGradient bool
}

// Op is a graph operator: shape inference plus forward evaluation.
type Op interface {
	Name() string
	Capabilities() Capabilities
	OutputShape(inputs ...Shape) (Shape, error)
	Perform(ctx context.Context, inputs ...*Value) (*Value, error)
}

// Differentiable is implemented by ops that can produce input gradients
// given an upstream output gradient.
type Differentiable interface {
	Op
	Grad(ctx context.Context, outGrad *Value, inputs ...*Value) ([]*Value, error)
}

// Grad computes input gradients through op, consulting its capabilities
// first so unsupported requests fail at the graph level with a typed error
// instead of a fault inside the op.
func Grad(ctx context.Context, op Op, outGrad *Value, inputs ...*Value) ([]*Value, error) {
	if !op.Capabilities().SupportsGradient {
		return nil, fmt.Errorf("%s: %w", op.Name(), ErrNoGradient)
	}
	d, ok := op.(Differentiable)
	if !ok {
		return nil, fmt.Errorf("%s: %w", op.Name(), ErrNoGradient)
	}
	return d.Grad(ctx, outGrad, inputs...)
}
