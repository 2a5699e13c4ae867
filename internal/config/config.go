package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/heatsim/internal/initial"
	"github.com/san-kum/heatsim/internal/solver"
)

// Defaults mirror the reference parameter set: a unit rod, alpha=0.01,
// 50 intervals (51 nodes), 500 steps over T=0.5.
const (
	DefaultLength   = 1.0
	DefaultAlpha    = 0.01
	DefaultNodes    = 51
	DefaultDt       = 0.001
	DefaultDuration = 0.5
	DefaultInitial  = "sin(pi*x)"
)

// BoundaryConfig selects the endpoint condition. Type is "fixed" or
// "insulated"; for fixed ends a nil value holds that endpoint at its
// initial temperature.
type BoundaryConfig struct {
	Type  string   `yaml:"type"`
	Left  *float64 `yaml:"left,omitempty"`
	Right *float64 `yaml:"right,omitempty"`
}

type Config struct {
	Length      float64        `yaml:"length"`
	Alpha       float64        `yaml:"alpha"`
	Nodes       int            `yaml:"nodes"`
	Dt          float64        `yaml:"dt"`
	Duration    float64        `yaml:"duration"`
	Initial     string         `yaml:"initial"`
	Boundary    BoundaryConfig `yaml:"boundary"`
	RecordEvery int            `yaml:"record_every"`
}

func DefaultConfig() *Config {
	return &Config{
		Length:      DefaultLength,
		Alpha:       DefaultAlpha,
		Nodes:       DefaultNodes,
		Dt:          DefaultDt,
		Duration:    DefaultDuration,
		Initial:     DefaultInitial,
		Boundary:    BoundaryConfig{Type: "fixed"},
		RecordEvery: 1,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Params converts the configuration into solver parameters.
func (c *Config) Params() solver.Params {
	return solver.Params{
		Length:   c.Length,
		Nodes:    c.Nodes,
		Alpha:    c.Alpha,
		Dt:       c.Dt,
		Duration: c.Duration,
	}
}

// InitialField samples the configured initial profile onto the grid.
func (c *Config) InitialField() (solver.Field, error) {
	g, err := solver.NewGrid(c.Nodes, c.Length)
	if err != nil {
		return nil, err
	}
	p, err := initial.Get(c.Initial)
	if err != nil {
		return nil, err
	}
	return p.Sample(g), nil
}

// MakeBoundary builds the configured boundary condition. ic supplies the
// hold values for fixed ends that leave left/right unset.
func (c *Config) MakeBoundary(ic solver.Field) (solver.Boundary, error) {
	switch c.Boundary.Type {
	case "", "fixed":
		d := solver.Dirichlet{}
		if c.Boundary.Left != nil {
			d.Left = solver.Constant(*c.Boundary.Left)
		} else {
			d.Left = solver.Constant(ic[0])
		}
		if c.Boundary.Right != nil {
			d.Right = solver.Constant(*c.Boundary.Right)
		} else {
			d.Right = solver.Constant(ic[len(ic)-1])
		}
		return d, nil
	case "insulated":
		return solver.Insulated{}, nil
	default:
		return nil, fmt.Errorf("config: unknown boundary type %q (want fixed or insulated)", c.Boundary.Type)
	}
}

// BoundaryLabel is a short human-readable boundary description for run
// metadata and listings.
func (c *Config) BoundaryLabel() string {
	if c.Boundary.Type == "insulated" {
		return "insulated"
	}
	label := "fixed"
	if c.Boundary.Left != nil || c.Boundary.Right != nil {
		left, right := "hold", "hold"
		if c.Boundary.Left != nil {
			left = fmt.Sprintf("%g", *c.Boundary.Left)
		}
		if c.Boundary.Right != nil {
			right = fmt.Sprintf("%g", *c.Boundary.Right)
		}
		label = fmt.Sprintf("fixed(%s,%s)", left, right)
	}
	return label
}
