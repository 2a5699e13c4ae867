package solver

import "math"

// StabilityLimit is the largest stability ratio for which the explicit
// scheme cannot diverge in one spatial dimension.
const StabilityLimit = 0.5

// Params configures a single simulation run.
type Params struct {
	Length   float64 // rod length L
	Nodes    int     // spatial node count N
	Alpha    float64 // thermal diffusivity
	Dt       float64 // time step
	Duration float64 // total simulated time T
}

func (p Params) Dx() float64 {
	return p.Length / float64(p.Nodes-1)
}

// StabilityRatio returns r = alpha*dt/dx^2.
func (p Params) StabilityRatio() float64 {
	dx := p.Dx()
	return p.Alpha * p.Dt / (dx * dx)
}

// Steps returns the step count M = ceil(T/dt). The small slack absorbs
// rounding in the division so T=0.5, dt=0.001 yields exactly 500 steps.
func (p Params) Steps() int {
	return int(math.Ceil(p.Duration/p.Dt - 1e-9))
}

func (p Params) Validate() error {
	if p.Nodes < 3 {
		return &ParameterError{Name: "nodes", Value: float64(p.Nodes), Reason: "need at least 3 nodes"}
	}
	if p.Length <= 0 {
		return &ParameterError{Name: "length", Value: p.Length, Reason: "must be positive"}
	}
	if p.Alpha <= 0 {
		return &ParameterError{Name: "alpha", Value: p.Alpha, Reason: "must be positive"}
	}
	if p.Dt <= 0 {
		return &ParameterError{Name: "dt", Value: p.Dt, Reason: "must be positive"}
	}
	if p.Duration <= 0 {
		return &ParameterError{Name: "duration", Value: p.Duration, Reason: "must be positive"}
	}
	return nil
}
