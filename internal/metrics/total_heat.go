package metrics

import (
	"math"

	"github.com/san-kum/heatsim/internal/solver"
)

// TotalHeat tracks the relative drift of the interior heat content against
// the first observed field. Under insulated ends the drift stays at
// floating-point noise; under fixed ends it measures boundary exchange.
type TotalHeat struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewTotalHeat() *TotalHeat { return &TotalHeat{} }

func (m *TotalHeat) Name() string { return "heat_drift" }

func (m *TotalHeat) OnStep(f solver.Field, _ float64) {
	sum := f.InteriorSum()
	if m.samples == 0 {
		m.initial = sum
	}
	m.samples++

	if m.initial != 0 {
		drift := math.Abs(sum-m.initial) / math.Abs(m.initial)
		m.maxDrift = math.Max(m.maxDrift, drift)
	}
}

func (m *TotalHeat) Value() float64 { return m.maxDrift }

func (m *TotalHeat) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
