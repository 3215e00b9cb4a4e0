// Package metrics computes conservation diagnostics over trajectory
// snapshots. Metrics observe states in the simulation's rescaled unit
// system, so callers feed them the rescaled masses and gravitational
// constant, not the raw input masses.
package metrics

import (
	"math"

	"github.com/san-kum/gravflow/internal/nbody"
)

type Metric interface {
	Name() string
	Observe(parts []nbody.Particle, t float64)
	Value() float64
	Reset()
}

// Bodies assembles particles from one tensor row (six components per body)
// and the simulation masses.
func Bodies(simMasses []float64, row []float64) []nbody.Particle {
	parts := make([]nbody.Particle, len(simMasses))
	for i := range simMasses {
		parts[i] = nbody.Particle{
			M:  simMasses[i],
			X:  row[i*6],
			Y:  row[i*6+1],
			Z:  row[i*6+2],
			VX: row[i*6+3],
			VY: row[i*6+4],
			VZ: row[i*6+5],
		}
	}
	return parts
}

// EnergyDrift tracks the maximum relative deviation of total mechanical
// energy from the first observed snapshot.
type EnergyDrift struct {
	g         float64
	softening float64
	initial   float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(g, softening float64) *EnergyDrift {
	return &EnergyDrift{g: g, softening: softening}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(parts []nbody.Particle, t float64) {
	energy := nbody.SystemEnergy(e.g, e.softening, parts)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 { return e.maxDrift }

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}

// MomentumDrift tracks the maximum deviation of total linear momentum
// from the first observed snapshot, as a vector norm.
type MomentumDrift struct {
	px, py, pz float64
	maxDrift   float64
	samples    int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{}
}

func (m *MomentumDrift) Name() string { return "momentum_drift" }

func (m *MomentumDrift) Observe(parts []nbody.Particle, t float64) {
	px, py, pz := nbody.SystemMomentum(parts)

	if m.samples == 0 {
		m.px, m.py, m.pz = px, py, pz
	}
	m.samples++

	dx := px - m.px
	dy := py - m.py
	dz := pz - m.pz
	m.maxDrift = math.Max(m.maxDrift, math.Sqrt(dx*dx+dy*dy+dz*dz))
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.px, m.py, m.pz = 0, 0, 0
	m.maxDrift = 0
	m.samples = 0
}

// AngularMomentumDrift tracks the maximum deviation of total angular
// momentum about the origin from the first observed snapshot.
type AngularMomentumDrift struct {
	lx, ly, lz float64
	maxDrift   float64
	samples    int
}

func NewAngularMomentumDrift() *AngularMomentumDrift {
	return &AngularMomentumDrift{}
}

func (a *AngularMomentumDrift) Name() string { return "angular_momentum_drift" }

func (a *AngularMomentumDrift) Observe(parts []nbody.Particle, t float64) {
	lx, ly, lz := nbody.SystemAngularMomentum(parts)

	if a.samples == 0 {
		a.lx, a.ly, a.lz = lx, ly, lz
	}
	a.samples++

	dx := lx - a.lx
	dy := ly - a.ly
	dz := lz - a.lz
	a.maxDrift = math.Max(a.maxDrift, math.Sqrt(dx*dx+dy*dy+dz*dz))
}

func (a *AngularMomentumDrift) Value() float64 { return a.maxDrift }

func (a *AngularMomentumDrift) Reset() {
	a.lx, a.ly, a.lz = 0, 0, 0
	a.maxDrift = 0
	a.samples = 0
}
