package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDt         = 1e-3
	DefaultIntegrator = "leapfrog"
	DefaultSoftening  = 0.0
	DefaultTimeCount  = 100
)

// Scenario describes one evaluation: the bodies, their initial states, and
// the output-time grid. Units are AU, solar masses, year/2π.
type Scenario struct {
	Name       string       `yaml:"name"`
	Masses     []float64    `yaml:"masses"`
	Bodies     []BodyConfig `yaml:"bodies"`
	Times      TimesConfig  `yaml:"times"`
	Integrator string       `yaml:"integrator"`
	Dt         float64      `yaml:"dt"`
	Softening  float64      `yaml:"softening"`

	// CheckStates enables NaN/Inf validation on every substep. On by
	// default; set check_states: false to trade the check for speed.
	CheckStates bool `yaml:"check_states"`
}

type BodyConfig struct {
	X  float64 `yaml:"x"`
	Y  float64 `yaml:"y"`
	Z  float64 `yaml:"z"`
	VX float64 `yaml:"vx"`
	VY float64 `yaml:"vy"`
	VZ float64 `yaml:"vz"`
}

// TimesConfig is either an explicit list of output times or a uniform grid
// of Count points from Start to Stop. Explicit wins when both are set.
type TimesConfig struct {
	Start    float64   `yaml:"start"`
	Stop     float64   `yaml:"stop"`
	Count    int       `yaml:"count"`
	Explicit []float64 `yaml:"explicit"`
}

func (t TimesConfig) Grid() []float64 {
	if len(t.Explicit) > 0 {
		out := make([]float64, len(t.Explicit))
		copy(out, t.Explicit)
		return out
	}

	out := make([]float64, t.Count)
	if t.Count == 1 {
		out[0] = t.Start
		return out
	}
	step := (t.Stop - t.Start) / float64(t.Count-1)
	for i := range out {
		out[i] = t.Start + float64(i)*step
	}
	return out
}

func Default() *Scenario {
	return &Scenario{
		Name:   "two-body",
		Masses: []float64{1.0, 3e-6},
		Bodies: []BodyConfig{
			{},
			{X: 1.0, VY: 1.0},
		},
		Times:       TimesConfig{Start: 0, Stop: 6.2832, Count: DefaultTimeCount},
		Integrator:  DefaultIntegrator,
		Dt:          DefaultDt,
		Softening:   DefaultSoftening,
		CheckStates: true,
	}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	scn := Default()
	if err := yaml.Unmarshal(data, scn); err != nil {
		return nil, err
	}
	return scn, nil
}

func Save(path string, scn *Scenario) error {
	data, err := yaml.Marshal(scn)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (s *Scenario) Validate() error {
	if len(s.Masses) == 0 {
		return fmt.Errorf("scenario %q: no masses", s.Name)
	}
	if len(s.Bodies) != len(s.Masses) {
		return fmt.Errorf("scenario %q: %d masses but %d bodies", s.Name, len(s.Masses), len(s.Bodies))
	}
	if s.Times.Count < 0 {
		return fmt.Errorf("scenario %q: negative time count", s.Name)
	}
	if s.Dt <= 0 {
		return fmt.Errorf("scenario %q: dt must be positive, got %g", s.Name, s.Dt)
	}
	return nil
}

// Coords returns the N×6 coordinate matrix for the evaluator.
func (s *Scenario) Coords() [][]float64 {
	rows := make([][]float64, len(s.Bodies))
	for i, b := range s.Bodies {
		rows[i] = []float64{b.X, b.Y, b.Z, b.VX, b.VY, b.VZ}
	}
	return rows
}
