package config

import "sort"

// Presets are ready-made scenarios. Velocities are circular-orbit values in
// the module's units, where a body at 1 AU around one solar mass moves at
// speed 1 with period 2π.
var presets = map[string]*Scenario{
	"two-body": {
		Name:   "two-body",
		Masses: []float64{1.0, 3e-6},
		Bodies: []BodyConfig{
			{},
			{X: 1.0, VY: 1.0000015},
		},
		Times:       TimesConfig{Start: 0, Stop: 6.2832, Count: 100},
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		CheckStates: true,
	},
	// Chenciner-Montgomery figure-eight choreography, equal masses.
	"figure-eight": {
		Name:   "figure-eight",
		Masses: []float64{1.0, 1.0, 1.0},
		Bodies: []BodyConfig{
			{X: -0.97000436, Y: 0.24308753, VX: 0.46620368, VY: 0.43236573},
			{X: 0.97000436, Y: -0.24308753, VX: 0.46620368, VY: 0.43236573},
			{VX: -0.93240737, VY: -0.86473146},
		},
		Times:       TimesConfig{Start: 0, Stop: 6.32591398, Count: 200},
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		CheckStates: true,
	},
	// Sun, Jupiter, Saturn on coplanar circular orbits.
	"solar-lite": {
		Name:   "solar-lite",
		Masses: []float64{1.0, 9.54e-4, 2.86e-4},
		Bodies: []BodyConfig{
			{},
			{X: 5.2, VY: 0.43852},
			{X: 9.58, VY: 0.32310},
		},
		Times:       TimesConfig{Start: 0, Stop: 190.0, Count: 400},
		Integrator:  DefaultIntegrator,
		Dt:          5e-3,
		CheckStates: true,
	},
}

// GetPreset returns an independent copy of the named preset, or nil when no
// preset has that name. Callers may mutate the copy freely.
func GetPreset(name string) *Scenario {
	scn, ok := presets[name]
	if !ok {
		return nil
	}
	out := *scn
	out.Masses = append([]float64(nil), scn.Masses...)
	out.Bodies = append([]BodyConfig(nil), scn.Bodies...)
	out.Times.Explicit = append([]float64(nil), scn.Times.Explicit...)
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
