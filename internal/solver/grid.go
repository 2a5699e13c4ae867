package solver

// Grid is an immutable uniform spatial grid over [0, L].
type Grid struct {
	n      int
	length float64
	dx     float64
}

func NewGrid(n int, length float64) (Grid, error) {
	if n < 3 {
		return Grid{}, &ParameterError{Name: "nodes", Value: float64(n), Reason: "need at least 3 nodes"}
	}
	if length <= 0 {
		return Grid{}, &ParameterError{Name: "length", Value: length, Reason: "must be positive"}
	}
	return Grid{n: n, length: length, dx: length / float64(n-1)}, nil
}

func (g Grid) Nodes() int      { return g.n }
func (g Grid) Length() float64 { return g.length }
func (g Grid) Dx() float64     { return g.dx }

// X returns the position of node i.
func (g Grid) X(i int) float64 { return float64(i) * g.dx }

// Points returns all node positions in order.
func (g Grid) Points() []float64 {
	pts := make([]float64, g.n)
	for i := range pts {
		pts[i] = g.X(i)
	}
	return pts
}
