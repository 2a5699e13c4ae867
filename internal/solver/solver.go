package solver

import (
	"context"
	"fmt"
)

type runState int

const (
	stateReady runState = iota
	stateStepping
	stateCompleted
)

// Observer is notified after every completed step with the new field and
// the elapsed time. The field is the solver's working buffer: observers
// must not retain or mutate it.
type Observer interface {
	OnStep(f Field, t float64)
}

// Solver advances a temperature field through the FTCS update
//
//	next[i] = cur[i] + r*(cur[i+1] - 2*cur[i] + cur[i-1])
//
// for the interior nodes, applies the boundary condition to the endpoints,
// then swaps buffers. Interior updates read only the prior field.
type Solver struct {
	grid      Grid
	params    Params
	boundary  Boundary
	cur       Field
	next      Field
	r         float64
	steps     int
	total     int
	t         float64
	state     runState
	observers []Observer
}

// New validates the parameters and builds a solver holding a copy of the
// initial field. A nil boundary pins the endpoints at their initial values,
// matching the reference behavior where only interior nodes are updated.
//
// When the stability ratio exceeds [StabilityLimit], New returns the solver
// together with a *StabilityError: the caller may proceed at its own risk,
// abort, or call [Solver.StabilizeDt].
func New(params Params, initial Field, boundary Boundary) (*Solver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	grid, err := NewGrid(params.Nodes, params.Length)
	if err != nil {
		return nil, err
	}
	if len(initial) != grid.Nodes() {
		return nil, &ParameterError{
			Name:   "initial",
			Value:  float64(len(initial)),
			Reason: fmt.Sprintf("field length must match %d grid nodes", grid.Nodes()),
		}
	}

	cur := initial.Clone()
	if boundary == nil {
		boundary = FixedEnds(cur[0], cur[len(cur)-1])
	}

	s := &Solver{
		grid:     grid,
		params:   params,
		boundary: boundary,
		cur:      cur,
		next:     make(Field, grid.Nodes()),
		r:        params.StabilityRatio(),
		total:    params.Steps(),
	}
	if s.r > StabilityLimit {
		return s, &StabilityError{Ratio: s.r}
	}
	return s, nil
}

func (s *Solver) Grid() Grid         { return s.grid }
func (s *Solver) Params() Params     { return s.params }
func (s *Solver) Ratio() float64     { return s.r }
func (s *Solver) Elapsed() float64   { return s.t }
func (s *Solver) StepsTaken() int    { return s.steps }
func (s *Solver) TotalSteps() int    { return s.total }
func (s *Solver) Completed() bool    { return s.state == stateCompleted }

// Field returns a copy of the current temperature field.
func (s *Solver) Field() Field { return s.cur.Clone() }

func (s *Solver) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// StabilizeDt shrinks dt to the largest explicitly stable step,
// dt' = 0.5*dx^2/alpha, and recomputes the step count so the configured
// duration is still covered. Only legal before the first step.
func (s *Solver) StabilizeDt() (float64, error) {
	if s.state != stateReady {
		return s.params.Dt, ErrStarted
	}
	dx := s.grid.Dx()
	s.params.Dt = StabilityLimit * dx * dx / s.params.Alpha
	s.r = s.params.StabilityRatio()
	s.total = s.params.Steps()
	return s.params.Dt, nil
}

// Step advances the field by one time step and returns a copy of the new
// field. After the configured step count is reached the solver is completed
// and further calls fail with [ErrCompleted], leaving the field untouched.
func (s *Solver) Step() (Field, error) {
	if s.state == stateCompleted {
		return nil, ErrCompleted
	}
	s.state = stateStepping

	cur, next := s.cur, s.next
	last := len(cur) - 1
	for i := 1; i < last; i++ {
		next[i] = cur[i] + s.r*(cur[i+1]-2*cur[i]+cur[i-1])
	}
	// Carry endpoints over so a one-sided Dirichlet can hold the other end.
	next[0] = cur[0]
	next[last] = cur[last]
	s.boundary.Apply(next, s.t)

	s.cur, s.next = next, cur
	s.steps++
	s.t += s.params.Dt
	if s.steps >= s.total {
		s.state = stateCompleted
	}

	for _, o := range s.observers {
		o.OnStep(s.cur, s.t)
	}
	return s.cur.Clone(), nil
}

// Run drives the solver from its initial state to completion, recording the
// initial field, every recordEvery-th step, and the final step exactly once.
// The context is only checked between steps; a cancelled run returns the
// snapshots recorded so far alongside the context error.
func (s *Solver) Run(ctx context.Context, recordEvery int) (*Result, error) {
	if s.state != stateReady {
		return nil, ErrCompleted
	}
	if recordEvery < 1 {
		recordEvery = 1
	}

	res := &Result{
		Fields:      make([]Field, 0, s.total/recordEvery+2),
		Times:       make([]float64, 0, s.total/recordEvery+2),
		Dt:          s.params.Dt,
		RecordEvery: recordEvery,
	}
	res.Fields = append(res.Fields, s.cur.Clone())
	res.Times = append(res.Times, s.t)

	for i := 1; i <= s.total; i++ {
		select {
		case <-ctx.Done():
			res.StepsTaken = s.steps
			return res, ctx.Err()
		default:
		}

		if _, err := s.Step(); err != nil {
			res.StepsTaken = s.steps
			return res, err
		}
		if i%recordEvery == 0 || i == s.total {
			res.Fields = append(res.Fields, s.cur.Clone())
			res.Times = append(res.Times, s.t)
		}
	}

	res.StepsTaken = s.steps
	return res, nil
}
