package solver

// Boundary fixes the two endpoint nodes after each interior update. Apply
// receives the freshly computed field with the previous endpoint values
// carried over, and the elapsed time before the step.
type Boundary interface {
	Apply(next Field, t float64)
}

// ValueFunc supplies a possibly time-dependent boundary temperature.
type ValueFunc func(t float64) float64

func Constant(v float64) ValueFunc {
	return func(float64) float64 { return v }
}

// Dirichlet pins the endpoint nodes to prescribed values. A nil side leaves
// that endpoint holding its previous value.
type Dirichlet struct {
	Left  ValueFunc
	Right ValueFunc
}

// FixedEnds pins both endpoints to constant temperatures.
func FixedEnds(left, right float64) Dirichlet {
	return Dirichlet{Left: Constant(left), Right: Constant(right)}
}

func (d Dirichlet) Apply(next Field, t float64) {
	if d.Left != nil {
		next[0] = d.Left(t)
	}
	if d.Right != nil {
		next[len(next)-1] = d.Right(t)
	}
}

// Insulated mirrors each endpoint onto its neighbor: zero heat flux crosses
// either end of the rod.
type Insulated struct{}

func (Insulated) Apply(next Field, _ float64) {
	next[0] = next[1]
	next[len(next)-1] = next[len(next)-2]
}
