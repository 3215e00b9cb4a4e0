// Package trajectory evaluates N-body particle trajectories at requested
// output times, marshaling mass and coordinate arrays into a fresh
// simulation per call and snapshotting every particle state at every time.
//
// Units are astronomical units, solar masses, and time scaled so that the
// gravitational constant is 1 (year/2π). The simulation itself is built
// with a rescaled convention that must be preserved exactly: its
// gravitational constant is set to the square of the primary's mass, the
// primary is added with nominal mass 1, and every other body with its mass
// as a ratio to the primary's. Replacing the engine requires reproducing
// this rescaling, not "simplifying" it.
package trajectory

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/gravflow/internal/integrators"
	"github.com/san-kum/gravflow/internal/nbody"
	"github.com/san-kum/gravflow/internal/ode"
)

var (
	// ErrNoBodies indicates an empty mass vector.
	ErrNoBodies = errors.New("trajectory: at least one body required")

	// ErrShapeMismatch indicates len(masses) != rows(coords).
	ErrShapeMismatch = errors.New("trajectory: mass vector and coordinate matrix disagree on body count")

	// ErrBadCoords indicates a coordinate row without exactly 6 components.
	ErrBadCoords = errors.New("trajectory: coordinate rows must have 6 components (x, y, z, vx, vy, vz)")

	// ErrBadPrimary indicates a primary mass that is not positive and finite.
	ErrBadPrimary = errors.New("trajectory: primary mass must be positive and finite")
)

// Evaluator computes trajectories. The zero value is not usable; construct
// with NewEvaluator. An Evaluator holds no per-call state and may be shared
// by concurrent callers: every call builds and discards its own simulation.
type Evaluator struct {
	Dt        float64
	Softening float64

	// Validate enables NaN/Inf checks on every substep of every call.
	Validate bool

	// NewIntegrator produces a fresh stepper per call. Integrators carry
	// scratch buffers, so a shared instance would leak state between calls.
	NewIntegrator func() ode.Integrator
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		Dt:            nbody.DefaultDt,
		Softening:     nbody.DefaultSoftening,
		Validate:      true,
		NewIntegrator: func() ode.Integrator { return integrators.NewLeapfrog() },
	}
}

// SimulationMasses converts input masses to the engine's rescaled masses
// and gravitational constant: G = masses[0]², primary mass 1.0, secondary
// masses as ratios to the primary.
func SimulationMasses(masses []float64) (simMasses []float64, g float64, err error) {
	if len(masses) == 0 {
		return nil, 0, ErrNoBodies
	}
	m0 := masses[0]
	if m0 <= 0 || math.IsNaN(m0) || math.IsInf(m0, 0) {
		return nil, 0, fmt.Errorf("%w: got %v", ErrBadPrimary, m0)
	}

	simMasses = make([]float64, len(masses))
	simMasses[0] = 1.0
	for i := 1; i < len(masses); i++ {
		simMasses[i] = masses[i] / m0
	}
	return simMasses, m0 * m0, nil
}

// Evaluate computes the state of every body at every requested time.
//
// masses has one positive entry per body, index 0 the primary. coords has
// one row per body: (x, y, z, vx, vy, vz). times is the output grid;
// the simulation advances by the difference between each entry and its
// clock, so non-monotonic grids integrate backward between entries.
//
// The result has shape (len(times), len(masses), 6) with body order
// preserved. A zero-length times yields an empty tensor, not an error.
// There are no partial results: any failure discards the call.
func (e *Evaluator) Evaluate(ctx context.Context, masses []float64, coords [][]float64, times []float64) (*Tensor, error) {
	if len(masses) == 0 {
		return nil, ErrNoBodies
	}
	if len(coords) != len(masses) {
		return nil, fmt.Errorf("%w: %d masses, %d rows", ErrShapeMismatch, len(masses), len(coords))
	}
	for i, row := range coords {
		if len(row) != StateComponents {
			return nil, fmt.Errorf("%w: row %d has %d", ErrBadCoords, i, len(row))
		}
	}

	simMasses, g, err := SimulationMasses(masses)
	if err != nil {
		return nil, err
	}

	sim := nbody.New()
	sim.Dt = e.Dt
	sim.Softening = e.Softening
	sim.Validate = e.Validate
	sim.SetG(g)
	if e.NewIntegrator != nil {
		sim.SetIntegrator(e.NewIntegrator())
	}

	for i, row := range coords {
		sim.Add(nbody.Particle{
			M:  simMasses[i],
			X:  row[0],
			Y:  row[1],
			Z:  row[2],
			VX: row[3],
			VY: row[4],
			VZ: row[5],
		})
	}

	out := NewTensor(len(times), len(masses))
	for ti, t := range times {
		if err := sim.AdvanceBy(ctx, t-sim.T()); err != nil {
			return nil, fmt.Errorf("trajectory: advancing to t=%g: %w", t, err)
		}
		sim.Snapshot(out.Row(ti))
	}

	return out, nil
}
