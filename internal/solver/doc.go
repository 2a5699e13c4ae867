// Package solver implements an explicit finite-difference solver for the
// one-dimensional transient heat-conduction equation over a finite rod.
//
// The core types are:
//
//   - [Grid]: immutable uniform spatial discretization of [0, L]
//   - [Field]: temperature values, one per grid node
//   - [Params]: physical and numerical parameters for one run
//   - [Boundary]: endpoint condition ([Dirichlet] or [Insulated])
//   - [Solver]: the FTCS time-stepping loop
//
// # Stability
//
// The explicit scheme is only stable while r = alpha*dt/dx^2 <= 0.5.
// [New] returns a usable solver together with a [StabilityError] when the
// ratio is exceeded; the caller decides whether to proceed, abort, or call
// [Solver.StabilizeDt] to shrink dt to the largest stable step.
//
// # Example
//
//	s, err := solver.New(params, initial, solver.FixedEnds(0, 0))
//	if errors.Is(err, solver.ErrUnstable) {
//	    s.StabilizeDt()
//	} else if err != nil {
//	    return err
//	}
//	result, err := s.Run(ctx, 1)
//
// Solver instances are not safe for concurrent use: a single goroutine owns
// the field buffers for the lifetime of a run. A finished solver cannot be
// rewound; start a new run with a new instance.
package solver
