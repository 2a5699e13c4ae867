package analysis

import (
	"math"

	"github.com/san-kum/heatsim/internal/solver"
)

// DecayRate estimates the exponential decay rate of the peak temperature by
// a least-squares line fit through log(peak) over time. Snapshots with a
// vanishing or non-finite peak are skipped. Returns 0 when fewer than two
// usable snapshots remain.
func DecayRate(res *solver.Result) float64 {
	var ts, logs []float64
	for k, f := range res.Fields {
		p := f.Peak()
		if p <= 0 || math.IsInf(p, 0) || math.IsNaN(p) {
			continue
		}
		ts = append(ts, res.Times[k])
		logs = append(logs, math.Log(p))
	}
	if len(ts) < 2 {
		return 0
	}

	n := float64(len(ts))
	var sumT, sumL, sumTT, sumTL float64
	for i := range ts {
		sumT += ts[i]
		sumL += logs[i]
		sumTT += ts[i] * ts[i]
		sumTL += ts[i] * logs[i]
	}

	denom := n*sumTT - sumT*sumT
	if denom == 0 {
		return 0
	}
	slope := (n*sumTL - sumT*sumL) / denom
	return -slope
}
