package solver

// Result is the recorded trajectory of one run: an ordered sequence of
// field snapshots with their timestamps. Immutable after Run returns.
type Result struct {
	Fields      []Field
	Times       []float64
	Dt          float64
	RecordEvery int
	StepsTaken  int
}

func (r *Result) Snapshots() int { return len(r.Fields) }

// Last returns the final recorded field, or nil for an empty result.
func (r *Result) Last() Field {
	if len(r.Fields) == 0 {
		return nil
	}
	return r.Fields[len(r.Fields)-1]
}

// Peaks returns the peak magnitude of every snapshot in order.
func (r *Result) Peaks() []float64 {
	peaks := make([]float64, len(r.Fields))
	for i, f := range r.Fields {
		peaks[i] = f.Peak()
	}
	return peaks
}

// NodeSeries returns the time series of a single node across snapshots.
func (r *Result) NodeSeries(i int) []float64 {
	series := make([]float64, len(r.Fields))
	for k, f := range r.Fields {
		if i >= 0 && i < len(f) {
			series[k] = f[i]
		}
	}
	return series
}
