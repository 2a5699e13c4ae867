package solver

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func testParams() Params {
	return Params{Length: 1.0, Nodes: 11, Alpha: 0.01, Dt: 0.001, Duration: 0.1}
}

func sineField(g Grid) Field {
	f := make(Field, g.Nodes())
	for i := range f {
		f[i] = math.Sin(math.Pi * g.X(i) / g.Length())
	}
	return f
}

func TestNewInvalidParams(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"two nodes", func(p *Params) { p.Nodes = 2 }},
		{"zero length", func(p *Params) { p.Length = 0 }},
		{"negative alpha", func(p *Params) { p.Alpha = -0.01 }},
		{"zero dt", func(p *Params) { p.Dt = 0 }},
		{"zero duration", func(p *Params) { p.Duration = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			tt.mutate(&p)
			ic := make(Field, p.Nodes)
			_, err := New(p, ic, nil)
			require.Error(t, err)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestNewInitialLengthMismatch(t *testing.T) {
	p := testParams()
	_, err := New(p, make(Field, p.Nodes+1), nil)
	require.ErrorIs(t, err, ErrInvalidParameter)
}

func TestNewUnstableRatio(t *testing.T) {
	p := testParams()
	// dx = 0.1, so dt = 0.6*dx^2/alpha gives r = 0.6.
	p.Dt = 0.6 * p.Dx() * p.Dx() / p.Alpha

	s, err := New(p, make(Field, p.Nodes), nil)
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnstable)
	require.NotNil(t, s, "solver must remain usable on a stability warning")

	var stab *StabilityError
	require.ErrorAs(t, err, &stab)
	require.InDelta(t, 0.6, stab.Ratio, 1e-12)

	// Caller opts into the auto-correction path.
	dt, err := s.StabilizeDt()
	require.NoError(t, err)
	require.InDelta(t, StabilityLimit*p.Dx()*p.Dx()/p.Alpha, dt, 1e-15)
	require.InDelta(t, StabilityLimit, s.Ratio(), 1e-12)
}

func TestStabilizeDtAfterStep(t *testing.T) {
	p := testParams()
	s, err := New(p, make(Field, p.Nodes), nil)
	require.NoError(t, err)

	_, err = s.Step()
	require.NoError(t, err)

	_, err = s.StabilizeDt()
	require.ErrorIs(t, err, ErrStarted)
}

func TestSteadyStateInvariant(t *testing.T) {
	// Equal initial and boundary temperatures must stay put forever.
	p := testParams()
	ic := make(Field, p.Nodes)
	for i := range ic {
		ic[i] = 25.0
	}

	s, err := New(p, ic, FixedEnds(25.0, 25.0))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 1)
	require.NoError(t, err)

	for k, f := range res.Fields {
		for i, v := range f {
			require.InDeltaf(t, 25.0, v, 1e-12, "snapshot %d node %d drifted", k, i)
		}
	}
}

func TestInsulatedConservation(t *testing.T) {
	p := testParams()
	g, err := NewGrid(p.Nodes, p.Length)
	require.NoError(t, err)

	ic := make(Field, p.Nodes)
	for i := range ic {
		x := g.X(i)
		ic[i] = x * (1 - x)
	}

	s, err := New(p, ic, Insulated{})
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 1)
	require.NoError(t, err)

	// The mirror boundary makes the interior flux telescope to zero, so the
	// interior sum is conserved once the endpoints mirror their neighbors.
	ref := res.Fields[1].InteriorSum()
	for k := 2; k < len(res.Fields); k++ {
		require.InDeltaf(t, ref, res.Fields[k].InteriorSum(), 1e-9, "interior heat leaked by snapshot %d", k)
	}
}

func TestSpikeDecaysMonotonically(t *testing.T) {
	p := testParams()
	ic := make(Field, p.Nodes)
	ic[p.Nodes/2] = 1.0

	s, err := New(p, ic, FixedEnds(0, 0))
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 1)
	require.NoError(t, err)

	peaks := res.Peaks()
	for k := 1; k < len(peaks); k++ {
		require.Lessf(t, peaks[k], peaks[k-1], "peak rose at snapshot %d", k)
	}
}

func TestRunRecordCadence(t *testing.T) {
	tests := []struct {
		name        string
		steps       int
		recordEvery int
		want        int
	}{
		{"every step", 10, 1, 11},
		{"every second step", 10, 2, 6},
		{"uneven tail", 10, 3, 5}, // 0,3,6,9,10
		{"single snapshot pair", 10, 100, 2},
		{"zero coerced to one", 10, 0, 11},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testParams()
			p.Dt = 0.01
			p.Duration = 0.01 * float64(tt.steps)

			s, err := New(p, make(Field, p.Nodes), nil)
			require.NoError(t, err)
			require.Equal(t, tt.steps, s.TotalSteps())

			res, err := s.Run(context.Background(), tt.recordEvery)
			require.NoError(t, err)
			require.Len(t, res.Fields, tt.want)
			require.Len(t, res.Times, tt.want)

			require.InDelta(t, 0.0, res.Times[0], 1e-15)
			require.InDelta(t, p.Duration, res.Times[len(res.Times)-1], 1e-9)
		})
	}
}

func TestStepAfterCompletion(t *testing.T) {
	p := testParams()
	p.Dt = 0.01
	p.Duration = 0.03

	ic := make(Field, p.Nodes)
	ic[p.Nodes/2] = 1.0

	s, err := New(p, ic, FixedEnds(0, 0))
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err = s.Step()
		require.NoError(t, err)
	}
	require.True(t, s.Completed())

	last := s.Field()
	_, err = s.Step()
	require.ErrorIs(t, err, ErrCompleted)
	require.Equal(t, last, s.Field(), "failed step must leave the field untouched")
}

func TestRunOnCompletedSolver(t *testing.T) {
	p := testParams()
	s, err := New(p, make(Field, p.Nodes), nil)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), 1)
	require.NoError(t, err)

	_, err = s.Run(context.Background(), 1)
	require.ErrorIs(t, err, ErrCompleted)
}

func TestRunCancellation(t *testing.T) {
	p := testParams()
	s, err := New(p, make(Field, p.Nodes), nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := s.Run(ctx, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, res.Fields, 1, "only the initial snapshot should be recorded")
}

func TestTimeDependentDirichlet(t *testing.T) {
	p := testParams()
	ramp := func(t float64) float64 { return 10 * t }

	s, err := New(p, make(Field, p.Nodes), Dirichlet{Left: ramp, Right: Constant(0)})
	require.NoError(t, err)

	// Boundary values read the elapsed time before the step.
	f, err := s.Step()
	require.NoError(t, err)
	require.InDelta(t, 0.0, f[0], 1e-15)

	f, err = s.Step()
	require.NoError(t, err)
	require.InDelta(t, 10*p.Dt, f[0], 1e-12)
	require.InDelta(t, 0.0, f[len(f)-1], 1e-15)
}

func TestDefaultBoundaryHoldsEndpoints(t *testing.T) {
	p := testParams()
	g, _ := NewGrid(p.Nodes, p.Length)
	ic := sineField(g)
	ic[0] = 3.0
	ic[len(ic)-1] = -2.0

	s, err := New(p, ic, nil)
	require.NoError(t, err)

	res, err := s.Run(context.Background(), 1)
	require.NoError(t, err)

	for _, f := range res.Fields {
		require.InDelta(t, 3.0, f[0], 1e-15)
		require.InDelta(t, -2.0, f[len(f)-1], 1e-15)
	}
}

func TestStepReturnsIndependentCopy(t *testing.T) {
	p := testParams()
	s, err := New(p, make(Field, p.Nodes), nil)
	require.NoError(t, err)

	f, err := s.Step()
	require.NoError(t, err)

	f[p.Nodes/2] = 1e6
	require.NotEqual(t, f, s.Field(), "mutating the returned field must not reach the solver")
}

func TestObserversSeeEveryStep(t *testing.T) {
	p := testParams()
	p.Dt = 0.01
	p.Duration = 0.05

	s, err := New(p, make(Field, p.Nodes), nil)
	require.NoError(t, err)

	var times []float64
	s.AddObserver(observerFunc(func(_ Field, t float64) { times = append(times, t) }))

	_, err = s.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, times, 5, "observers fire per step, not per snapshot")
}

type observerFunc func(f Field, t float64)

func (fn observerFunc) OnStep(f Field, t float64) { fn(f, t) }

func TestUnstableRunDiverges(t *testing.T) {
	// Sanity check on the stability limit itself: an accepted r well above
	// 0.5 must blow up, and the solver must not intercept it.
	p := testParams()
	p.Dt = 2.0 * p.Dx() * p.Dx() / p.Alpha
	p.Duration = 50 * p.Dt

	ic := make(Field, p.Nodes)
	ic[p.Nodes/2] = 1.0

	s, err := New(p, ic, FixedEnds(0, 0))
	if !errors.Is(err, ErrUnstable) {
		t.Fatalf("expected instability warning, got %v", err)
	}

	for i := 0; i < 50 && !s.Completed(); i++ {
		if _, err := s.Step(); err != nil {
			t.Fatalf("step failed: %v", err)
		}
	}
	if s.Field().Peak() < 1e3 && s.Field().IsFinite() {
		t.Error("expected divergence at r=2.0")
	}
}
