package nbody

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/gravflow/internal/integrators"
	"github.com/san-kum/gravflow/internal/ode"
)

const (
	DefaultDt        = 1e-3
	DefaultSoftening = 0.0
)

// Particle is the full state of one body: mass, position, velocity.
type Particle struct {
	M          float64
	X, Y, Z    float64
	VX, VY, VZ float64
}

// Simulation integrates a set of particles under mutual gravity. The zero
// value is not usable; construct with New. Particles are indexed in the
// order they were added and never reordered.
type Simulation struct {
	G         float64
	Dt        float64 // substep size, always positive
	Softening float64
	Validate  bool

	t         float64
	particles []Particle
	integ     ode.Integrator
}

func New() *Simulation {
	return &Simulation{
		G:        1.0,
		Dt:       DefaultDt,
		Validate: true,
		integ:    integrators.NewLeapfrog(),
	}
}

func (s *Simulation) SetG(g float64) { s.G = g }

// SetIntegrator replaces the stepper. The instance must not be shared with
// another simulation.
func (s *Simulation) SetIntegrator(integ ode.Integrator) { s.integ = integ }

func (s *Simulation) Add(p Particle) { s.particles = append(s.particles, p) }

func (s *Simulation) N() int { return len(s.particles) }

// T returns the simulation clock.
func (s *Simulation) T() float64 { return s.t }

// Particles returns a copy of the current particle states.
func (s *Simulation) Particles() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Snapshot writes each particle's (x, y, z, vx, vy, vz) into dst, 6
// components per particle, and returns dst.
func (s *Simulation) Snapshot(dst []float64) []float64 {
	for i, p := range s.particles {
		dst[i*6] = p.X
		dst[i*6+1] = p.Y
		dst[i*6+2] = p.Z
		dst[i*6+3] = p.VX
		dst[i*6+4] = p.VY
		dst[i*6+5] = p.VZ
	}
	return dst
}

// AdvanceBy integrates the system forward (or backward, for negative delta)
// by the given clock increment. The clock always lands exactly at t+delta:
// the increment is divided into equal substeps of magnitude at most Dt.
func (s *Simulation) AdvanceBy(ctx context.Context, delta float64) error {
	if len(s.particles) == 0 {
		return fmt.Errorf("nbody: no particles added")
	}
	if math.IsNaN(delta) || math.IsInf(delta, 0) {
		return fmt.Errorf("nbody: non-finite advance %v", delta)
	}
	if delta == 0 {
		return nil
	}
	if s.Dt <= 0 {
		return fmt.Errorf("nbody: substep must be positive, got %g", s.Dt)
	}

	steps := int(math.Ceil(math.Abs(delta) / s.Dt))
	h := delta / float64(steps)

	sys := s.system()
	x := s.packState()
	t := s.t

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		x = s.integ.Step(sys, x, t, h)
		t += h

		if s.Validate && !x.IsValid() {
			return fmt.Errorf("nbody: t=%.6g: %w", t, ode.ErrInvalidState)
		}
	}

	s.unpackState(x)
	s.t += delta
	return nil
}

// Energy returns the total mechanical energy at the current state, using
// the simulation's G and softening.
func (s *Simulation) Energy() float64 {
	return s.system().Energy(s.packState())
}

// Momentum returns the total linear momentum.
func (s *Simulation) Momentum() (px, py, pz float64) {
	return SystemMomentum(s.particles)
}

// AngularMomentum returns the total angular momentum about the origin.
func (s *Simulation) AngularMomentum() (lx, ly, lz float64) {
	return SystemAngularMomentum(s.particles)
}

func (s *Simulation) system() *gravity {
	masses := make([]float64, len(s.particles))
	for i, p := range s.particles {
		masses[i] = p.M
	}
	return &gravity{g: s.G, eps2: s.Softening * s.Softening, masses: masses}
}

func (s *Simulation) packState() ode.State {
	n := len(s.particles)
	x := make(ode.State, n*6)
	half := n * 3
	for i, p := range s.particles {
		x[i*3] = p.X
		x[i*3+1] = p.Y
		x[i*3+2] = p.Z
		x[half+i*3] = p.VX
		x[half+i*3+1] = p.VY
		x[half+i*3+2] = p.VZ
	}
	return x
}

func (s *Simulation) unpackState(x ode.State) {
	half := len(s.particles) * 3
	for i := range s.particles {
		s.particles[i].X = x[i*3]
		s.particles[i].Y = x[i*3+1]
		s.particles[i].Z = x[i*3+2]
		s.particles[i].VX = x[half+i*3]
		s.particles[i].VY = x[half+i*3+1]
		s.particles[i].VZ = x[half+i*3+2]
	}
}
