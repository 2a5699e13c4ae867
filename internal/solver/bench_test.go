package solver

import (
	"fmt"
	"math"
	"testing"
)

func benchSolver(b *testing.B, nodes int) *Solver {
	p := Params{Length: 1.0, Nodes: nodes, Alpha: 0.01, Duration: 1e9}
	p.Dt = 0.4 * p.Dx() * p.Dx() / p.Alpha

	g, err := NewGrid(p.Nodes, p.Length)
	if err != nil {
		b.Fatal(err)
	}
	ic := make(Field, p.Nodes)
	for i := range ic {
		ic[i] = math.Sin(math.Pi * g.X(i))
	}
	s, err := New(p, ic, FixedEnds(0, 0))
	if err != nil {
		b.Fatal(err)
	}
	return s
}

func BenchmarkStep(b *testing.B) {
	for _, nodes := range []int{51, 201, 1001} {
		b.Run(fmt.Sprintf("n%d", nodes), func(b *testing.B) {
			s := benchSolver(b, nodes)
			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if _, err := s.Step(); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
