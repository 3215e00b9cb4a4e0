// Package orbit declares the orbit-model contract consumed by the rest of
// the module and reserves its N-body specialization.
package orbit

import "errors"

// ErrNotImplemented is returned by every method of the reserved N-body
// orbit model.
var ErrNotImplemented = errors.New("orbit: n-body orbit model not implemented")

// Orbit gives the Cartesian state of an orbiting body as a function of
// time, in the module's unit system (AU, solar masses, year/2π).
type Orbit interface {
	PositionAt(t float64) (x, y, z float64, err error)
	VelocityAt(t float64) (vx, vy, vz float64, err error)
}

// NBody is the reserved specialization of the Keplerian orbit model that
// would replace analytic two-body motion with full N-body integration.
// Its intended behavior is an unresolved extension point: whether it should
// evaluate lazily per call, cache a trajectory grid, or expose the raw
// evaluator is undecided, so no behavior is provided. Every method returns
// ErrNotImplemented.
type NBody struct{}

var _ Orbit = (*NBody)(nil)

func (o *NBody) PositionAt(t float64) (x, y, z float64, err error) {
	return 0, 0, 0, ErrNotImplemented
}

func (o *NBody) VelocityAt(t float64) (vx, vy, vz float64, err error) {
	return 0, 0, 0, ErrNotImplemented
}
