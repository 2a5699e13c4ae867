// Package metrics provides run-level observers that summarize a simulation:
// heat conservation drift, peak temperature decay, and a non-finite value
// watchdog for runs that accepted an unstable time step.
package metrics

import "github.com/san-kum/heatsim/internal/solver"

// Metric observes every step of a run and reduces it to one number.
// Metrics satisfy solver.Observer so they can be attached directly.
type Metric interface {
	solver.Observer
	Name() string
	Value() float64
	Reset()
}

// Collect reduces a slice of metrics to a name-value map.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
