// Package nbody implements a gravitational N-body simulation behind a small
// object model: construct a [Simulation], set its gravitational constant,
// add particles, advance the clock by signed increments, and read back the
// per-particle state.
//
// The simulation owns no global state; each instance is independent and a
// single instance is not safe for concurrent use. Advancing by a negative
// increment integrates backward in time.
//
// Forces are the direct pairwise O(N²) sum with optional Plummer softening.
// The default stepper is the symplectic leapfrog from the integrators
// package; RK4 and Euler can be substituted per instance.
package nbody
