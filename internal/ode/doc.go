// Package ode provides the core primitives for numerical integration of
// dynamical systems.
//
// The package defines the fundamental interfaces and types shared by the
// simulation engine:
//
//   - [State]: flat vector representing system state
//   - [System]: interface for ODE right-hand sides (dX/dt = f(X, t))
//   - [Integrator]: fixed-step numerical integrator interface
//   - [Hamiltonian]: optional energy calculation for conservative systems
//
// States used by the gravitational engine are laid out in canonical split
// form: all position components first, all velocity components second. The
// symplectic integrators in the integrators package rely on this layout.
package ode
