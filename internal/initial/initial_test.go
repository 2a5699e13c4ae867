package initial

import (
	"math"
	"testing"

	"github.com/san-kum/heatsim/internal/solver"
)

func testGrid(t *testing.T, n int) solver.Grid {
	t.Helper()
	g, err := solver.NewGrid(n, 1.0)
	if err != nil {
		t.Fatalf("grid: %v", err)
	}
	return g
}

func TestGetUnknown(t *testing.T) {
	if _, err := Get("nonexistent"); err == nil {
		t.Error("expected error for unknown profile")
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) < 5 {
		t.Fatalf("expected at least 5 profiles, got %d", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("names not sorted: %q before %q", names[i-1], names[i])
		}
	}
}

func TestSineProfile(t *testing.T) {
	p, err := Get("sin(pi*x)")
	if err != nil {
		t.Fatal(err)
	}

	g := testGrid(t, 11)
	f := p.Sample(g)

	if len(f) != 11 {
		t.Fatalf("expected 11 nodes, got %d", len(f))
	}
	if math.Abs(f[0]) > 1e-12 || math.Abs(f[10]) > 1e-12 {
		t.Errorf("sine endpoints should vanish, got %g and %g", f[0], f[10])
	}
	if math.Abs(f[5]-1.0) > 1e-12 {
		t.Errorf("sine midpoint should be 1, got %g", f[5])
	}
}

func TestParabolaProfile(t *testing.T) {
	p, err := Get("x*(1-x)")
	if err != nil {
		t.Fatal(err)
	}

	g := testGrid(t, 11)
	f := p.Sample(g)

	if math.Abs(f[5]-0.25) > 1e-12 {
		t.Errorf("parabola midpoint should be 0.25, got %g", f[5])
	}
}

func TestSpikeProfile(t *testing.T) {
	p, err := Get("spike")
	if err != nil {
		t.Fatal(err)
	}

	g := testGrid(t, 11)
	f := p.Sample(g)

	for i, v := range f {
		want := 0.0
		if i == 5 {
			want = 1.0
		}
		if v != want {
			t.Errorf("node %d: want %g, got %g", i, want, v)
		}
	}
}

func TestProfilesScaleWithLength(t *testing.T) {
	g, err := solver.NewGrid(11, 2.0)
	if err != nil {
		t.Fatal(err)
	}

	p, _ := Get("sin(pi*x)")
	f := p.Sample(g)

	// Normalized sampling: the midpoint of a longer rod still peaks at 1.
	if math.Abs(f[5]-1.0) > 1e-12 {
		t.Errorf("midpoint of L=2 rod should be 1, got %g", f[5])
	}
}
