// Package analysis provides post-run diagnostics: comparison against the
// closed-form solution for the sine mode and decay-rate estimation.
package analysis

import (
	"math"

	"github.com/san-kum/heatsim/internal/solver"
)

// SineMode is the closed-form solution of the heat equation for the
// fundamental sine initial profile with both ends fixed at zero:
//
//	u(x,t) = sin(pi*x/L) * exp(-alpha*(pi/L)^2 * t)
func SineMode(g solver.Grid, alpha, t float64) solver.Field {
	k := math.Pi / g.Length()
	decay := math.Exp(-alpha * k * k * t)
	f := make(solver.Field, g.Nodes())
	for i := range f {
		f[i] = math.Sin(k*g.X(i)) * decay
	}
	return f
}

// SineDecayRate is the analytic decay rate alpha*(pi/L)^2 of the
// fundamental mode.
func SineDecayRate(alpha, length float64) float64 {
	k := math.Pi / length
	return alpha * k * k
}

// MaxError returns the largest absolute nodewise difference.
func MaxError(f, ref solver.Field) float64 {
	worst := 0.0
	for i := range f {
		if d := math.Abs(f[i] - ref[i]); d > worst {
			worst = d
		}
	}
	return worst
}

// CompareSine returns the per-snapshot max error of a result against the
// fundamental sine mode.
func CompareSine(res *solver.Result, g solver.Grid, alpha float64) []float64 {
	errs := make([]float64, len(res.Fields))
	for k, f := range res.Fields {
		errs[k] = MaxError(f, SineMode(g, alpha, res.Times[k]))
	}
	return errs
}
