// Package initial provides the library of named initial temperature
// profiles that can seed a simulation run.
package initial

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/heatsim/internal/solver"
)

// Func maps a normalized position x in [0, 1] to a temperature.
type Func func(x float64) float64

// Profile is a named initial condition that can be sampled onto a grid.
type Profile struct {
	Name   string
	Sample func(g solver.Grid) solver.Field
}

// FromFunc samples fn pointwise at the normalized node positions.
func FromFunc(name string, fn Func) Profile {
	return Profile{
		Name: name,
		Sample: func(g solver.Grid) solver.Field {
			f := make(solver.Field, g.Nodes())
			for i := range f {
				f[i] = fn(g.X(i) / g.Length())
			}
			return f
		},
	}
}

// Spike places unit temperature at the node nearest the midpoint.
func Spike() Profile {
	return Profile{
		Name: "spike",
		Sample: func(g solver.Grid) solver.Field {
			f := make(solver.Field, g.Nodes())
			f[g.Nodes()/2] = 1.0
			return f
		},
	}
}

var profiles = map[string]Profile{}

func register(p Profile) {
	profiles[p.Name] = p
}

func init() {
	register(FromFunc("sin(pi*x)", func(x float64) float64 { return math.Sin(math.Pi * x) }))
	register(FromFunc("x*(1-x)", func(x float64) float64 { return x * (1 - x) }))
	register(FromFunc("x", func(x float64) float64 { return x }))
	register(FromFunc("flat", func(float64) float64 { return 1.0 }))
	register(Spike())
}

// Get returns the profile registered under name.
func Get(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("initial: unknown profile %q (available: %v)", name, Names())
	}
	return p, nil
}

// Names lists the registered profile names in sorted order.
func Names() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
