package export

import (
	"strings"
	"testing"

	"github.com/san-kum/heatsim/internal/solver"
)

func TestProfileToSVG(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	f := solver.Field{0, 1, 0}

	svg := ProfileToSVG(xs, f, 400, 300, "#00ff00")
	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, "<path") {
		t.Error("missing profile path")
	}
	if strings.Count(svg, " L") != 2 {
		t.Errorf("expected 2 line segments, got %d", strings.Count(svg, " L"))
	}
}

func TestProfileToSVGDegenerate(t *testing.T) {
	if svg := ProfileToSVG([]float64{0}, solver.Field{1}, 400, 300, "#fff"); svg != "" {
		t.Error("expected empty output for a single point")
	}
	if svg := ProfileToSVG([]float64{0, 1}, solver.Field{1}, 400, 300, "#fff"); svg != "" {
		t.Error("expected empty output for mismatched lengths")
	}
}

func TestHeatmapToSVG(t *testing.T) {
	res := &solver.Result{
		Fields: []solver.Field{{0, 1, 0}, {0, 0.5, 0}},
		Times:  []float64{0, 0.1},
	}

	svg := HeatmapToSVG(res, 300, 200)
	// One background rect plus one cell per node per snapshot.
	if got := strings.Count(svg, "<rect"); got != 7 {
		t.Errorf("expected 7 rects, got %d", got)
	}
}

func TestHeatColorClamps(t *testing.T) {
	if got := heatColor(-1); got != "#0000ff" {
		t.Errorf("cold clamp: got %s", got)
	}
	if got := heatColor(2); got != "#ff0000" {
		t.Errorf("hot clamp: got %s", got)
	}
}
