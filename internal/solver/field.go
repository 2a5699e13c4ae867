package solver

import "math"

// Field holds one temperature value per grid node.
type Field []float64

func (f Field) Clone() Field {
	c := make(Field, len(f))
	copy(c, f)
	return c
}

// IsFinite reports whether every node value is finite.
func (f Field) IsFinite() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Sum returns the total over all nodes.
func (f Field) Sum() float64 {
	total := 0.0
	for _, v := range f {
		total += v
	}
	return total
}

// InteriorSum returns the total over nodes 1..N-2.
func (f Field) InteriorSum() float64 {
	total := 0.0
	for i := 1; i < len(f)-1; i++ {
		total += f[i]
	}
	return total
}

// Peak returns the largest absolute node value.
func (f Field) Peak() float64 {
	peak := 0.0
	for _, v := range f {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}
	return peak
}
