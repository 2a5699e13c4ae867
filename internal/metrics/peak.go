package metrics

import "github.com/san-kum/heatsim/internal/solver"

// Peak reports the final peak temperature magnitude and counts steps where
// the peak rose, which a diffusing field with cold fixed ends never does.
type Peak struct {
	last    float64
	rises   int
	samples int
}

func NewPeak() *Peak { return &Peak{} }

func (m *Peak) Name() string { return "peak" }

func (m *Peak) OnStep(f solver.Field, _ float64) {
	peak := f.Peak()
	if m.samples > 0 && peak > m.last {
		m.rises++
	}
	m.last = peak
	m.samples++
}

func (m *Peak) Value() float64 { return m.last }

// Rises returns how many observed steps increased the peak.
func (m *Peak) Rises() int { return m.rises }

func (m *Peak) Reset() {
	m.last = 0
	m.rises = 0
	m.samples = 0
}
