package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/gravflow/internal/ode"
)

var factories = map[string]func() ode.Integrator{
	"leapfrog": func() ode.Integrator { return NewLeapfrog() },
	"rk4":      func() ode.Integrator { return NewRK4() },
	"euler":    func() ode.Integrator { return NewEuler() },
}

// New returns a fresh integrator by name. Integrators carry scratch buffers,
// so callers must not share one instance across simulations.
func New(name string) (ode.Integrator, error) {
	fn, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s (available: %v)", name, Names())
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
