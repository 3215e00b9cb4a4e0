package graph

import (
	"context"
	"fmt"

	"github.com/san-kum/gravflow/internal/trajectory"
)

// TrajectoryOp exposes the N-body trajectory evaluator as a graph op.
//
// Inputs: masses (N), coords (N, 6), times (T). Output: (T, N, 6).
// The op is forward-only; its capabilities report no gradient support and
// Grad requests are rejected by [Grad] before reaching the evaluator.
type TrajectoryOp struct {
	eval *trajectory.Evaluator
}

func NewTrajectoryOp() *TrajectoryOp {
	return &TrajectoryOp{eval: trajectory.NewEvaluator()}
}

// NewTrajectoryOpWith wraps a configured evaluator.
func NewTrajectoryOpWith(eval *trajectory.Evaluator) *TrajectoryOp {
	return &TrajectoryOp{eval: eval}
}

func (op *TrajectoryOp) Name() string { return "nbody_trajectory" }

func (op *TrajectoryOp) Capabilities() Capabilities {
	return Capabilities{SupportsGradient: false}
}

// OutputShape is the generic concatenation of the times shape with the
// coords shape; unknown extents propagate instead of failing.
func (op *TrajectoryOp) OutputShape(inputs ...Shape) (Shape, error) {
	if len(inputs) != 3 {
		return nil, fmt.Errorf("%w: want 3 (masses, coords, times), got %d", ErrArity, len(inputs))
	}
	masses, coords, times := inputs[0], inputs[1], inputs[2]

	if masses.Rank() != 1 {
		return nil, fmt.Errorf("%w: masses must be rank 1, got %s", ErrShape, masses)
	}
	if coords.Rank() != 2 {
		return nil, fmt.Errorf("%w: coords must be rank 2, got %s", ErrShape, coords)
	}
	if times.Rank() != 1 {
		return nil, fmt.Errorf("%w: times must be rank 1, got %s", ErrShape, times)
	}
	if coords[1] != Unknown && coords[1] != trajectory.StateComponents {
		return nil, fmt.Errorf("%w: coords must have %d columns, got %s", ErrShape, trajectory.StateComponents, coords)
	}

	n := masses[0]
	if n == Unknown {
		n = coords[0]
	} else if coords[0] != Unknown && coords[0] != n {
		return nil, fmt.Errorf("%w: masses %s vs coords %s", ErrShape, masses, coords)
	}

	return Shape{times[0], n, trajectory.StateComponents}, nil
}

func (op *TrajectoryOp) Perform(ctx context.Context, inputs ...*Value) (*Value, error) {
	if len(inputs) != 3 {
		return nil, fmt.Errorf("%w: want 3 (masses, coords, times), got %d", ErrArity, len(inputs))
	}
	masses, coords, times := inputs[0], inputs[1], inputs[2]

	n := len(masses.Data)
	if len(coords.Data) != n*trajectory.StateComponents {
		return nil, fmt.Errorf("%w: %d masses but %d coordinate values", ErrShape, n, len(coords.Data))
	}

	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = coords.Data[i*trajectory.StateComponents : (i+1)*trajectory.StateComponents]
	}

	out, err := op.eval.Evaluate(ctx, masses.Data, rows, times.Data)
	if err != nil {
		return nil, err
	}

	return &Value{
		Shape: Shape{len(times.Data), n, trajectory.StateComponents},
		Data:  out.Data(),
	}, nil
}
