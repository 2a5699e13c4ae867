package config

import "sort"

func ptr(v float64) *float64 { return &v }

// Presets are ready-made scenarios covering the interesting regimes.
var Presets = map[string]*Config{
	"cooldown": {
		Length: 1.0, Alpha: 0.01, Nodes: 51, Dt: 0.001, Duration: 0.5,
		Initial:  "sin(pi*x)",
		Boundary: BoundaryConfig{Type: "fixed", Left: ptr(0), Right: ptr(0)},
	},
	"hotend": {
		Length: 1.0, Alpha: 0.05, Nodes: 51, Dt: 0.001, Duration: 2.0,
		Initial:  "flat",
		Boundary: BoundaryConfig{Type: "fixed", Left: ptr(5.0), Right: ptr(1.0)},
	},
	"insulated": {
		Length: 1.0, Alpha: 0.01, Nodes: 51, Dt: 0.001, Duration: 1.0,
		Initial:  "x*(1-x)",
		Boundary: BoundaryConfig{Type: "insulated"},
	},
	"spike": {
		Length: 1.0, Alpha: 0.005, Nodes: 101, Dt: 0.001, Duration: 1.0,
		Initial:  "spike",
		Boundary: BoundaryConfig{Type: "fixed", Left: ptr(0), Right: ptr(0)},
	},
	"gradient": {
		Length: 2.0, Alpha: 0.02, Nodes: 81, Dt: 0.0005, Duration: 1.0,
		Initial:  "x",
		Boundary: BoundaryConfig{Type: "fixed"},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if out.RecordEvery == 0 {
		out.RecordEvery = 1
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
