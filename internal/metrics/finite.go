package metrics

import "github.com/san-kum/heatsim/internal/solver"

// Finite watches for NaN/Inf values. The solver never intercepts numeric
// blow-up mid-run; this observer gives callers the early-detection hook.
type Finite struct {
	badSteps int
	firstBad float64
	seen     bool
}

func NewFinite() *Finite { return &Finite{} }

func (m *Finite) Name() string { return "non_finite_steps" }

func (m *Finite) OnStep(f solver.Field, t float64) {
	if f.IsFinite() {
		return
	}
	if !m.seen {
		m.firstBad = t
		m.seen = true
	}
	m.badSteps++
}

func (m *Finite) Value() float64 { return float64(m.badSteps) }

// FirstBadTime returns the elapsed time of the first non-finite field and
// whether one was seen at all.
func (m *Finite) FirstBadTime() (float64, bool) { return m.firstBad, m.seen }

func (m *Finite) Reset() {
	m.badSteps = 0
	m.firstBad = 0
	m.seen = false
}
