package nbody

import "math"

// SystemEnergy returns the total mechanical energy of the particles under
// gravitational constant g with Plummer softening eps.
func SystemEnergy(g, eps float64, parts []Particle) float64 {
	ke := 0.0
	pe := 0.0
	eps2 := eps * eps

	for i, p := range parts {
		ke += 0.5 * p.M * (p.VX*p.VX + p.VY*p.VY + p.VZ*p.VZ)

		for j := i + 1; j < len(parts); j++ {
			q := parts[j]
			rx := q.X - p.X
			ry := q.Y - p.Y
			rz := q.Z - p.Z
			r := math.Sqrt(rx*rx + ry*ry + rz*rz + eps2)
			pe -= g * p.M * q.M / r
		}
	}

	return ke + pe
}

func SystemMomentum(parts []Particle) (px, py, pz float64) {
	for _, p := range parts {
		px += p.M * p.VX
		py += p.M * p.VY
		pz += p.M * p.VZ
	}
	return
}

// SystemAngularMomentum returns L = Σ m·(r × v) about the origin.
func SystemAngularMomentum(parts []Particle) (lx, ly, lz float64) {
	for _, p := range parts {
		lx += p.M * (p.Y*p.VZ - p.Z*p.VY)
		ly += p.M * (p.Z*p.VX - p.X*p.VZ)
		lz += p.M * (p.X*p.VY - p.Y*p.VX)
	}
	return
}
