package integrators

import "github.com/san-kum/gravflow/internal/ode"

// Leapfrog is a kick-drift-kick symplectic integrator. It assumes the
// state is laid out as [positions | velocities] with the split at len/2,
// and that the system's derivative gives velocities in the first half
// and accelerations in the second.
type Leapfrog struct {
	scratch ode.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys ode.System, x ode.State, t, dt float64) ode.State {
	n := len(x)
	half := n / 2

	if len(l.scratch) != n {
		l.scratch = make(ode.State, n)
	}

	result := make(ode.State, n)
	dx := sys.Derive(x, t)
	halfDt := dt * 0.5

	// Half kick: velocities advance by dt/2 under the current accelerations.
	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + dx[half+i]*halfDt
	}

	// Full drift with the half-kicked velocities.
	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	dxNew := sys.Derive(l.scratch, t+dt)

	// Second half kick at the drifted positions.
	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + dxNew[half+i]*halfDt
	}

	return result
}
