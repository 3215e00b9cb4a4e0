package nbody

import (
	"math"

	"github.com/san-kum/gravflow/internal/ode"
)

// gravity is the ODE right-hand side for N point masses under mutual
// Newtonian attraction. States are in split layout: 3N position components
// followed by 3N velocity components.
type gravity struct {
	g      float64
	eps2   float64
	masses []float64
}

func (gr *gravity) Dim() int { return len(gr.masses) * 6 }

func (gr *gravity) Derive(x ode.State, t float64) ode.State {
	n := len(gr.masses)
	half := n * 3
	dx := make(ode.State, len(x))

	// Position derivatives are the velocities.
	copy(dx[:half], x[half:])

	acc := dx[half:]
	for i := 0; i < n; i++ {
		xi, yi, zi := x[i*3], x[i*3+1], x[i*3+2]

		for j := i + 1; j < n; j++ {
			rx := x[j*3] - xi
			ry := x[j*3+1] - yi
			rz := x[j*3+2] - zi
			r2 := rx*rx + ry*ry + rz*rz + gr.eps2

			rInv := 1.0 / math.Sqrt(r2)
			r3Inv := rInv * rInv * rInv

			fij := gr.g * gr.masses[j] * r3Inv
			acc[i*3] += fij * rx
			acc[i*3+1] += fij * ry
			acc[i*3+2] += fij * rz

			fji := gr.g * gr.masses[i] * r3Inv
			acc[j*3] -= fji * rx
			acc[j*3+1] -= fji * ry
			acc[j*3+2] -= fji * rz
		}
	}

	return dx
}

func (gr *gravity) Energy(x ode.State) float64 {
	n := len(gr.masses)
	half := n * 3
	ke := 0.0
	pe := 0.0

	for i := 0; i < n; i++ {
		vx := x[half+i*3]
		vy := x[half+i*3+1]
		vz := x[half+i*3+2]
		ke += 0.5 * gr.masses[i] * (vx*vx + vy*vy + vz*vz)

		for j := i + 1; j < n; j++ {
			rx := x[j*3] - x[i*3]
			ry := x[j*3+1] - x[i*3+1]
			rz := x[j*3+2] - x[i*3+2]
			r := math.Sqrt(rx*rx + ry*ry + rz*rz + gr.eps2)
			pe -= gr.g * gr.masses[i] * gr.masses[j] / r
		}
	}

	return ke + pe
}
