package config

import (
	"fmt"
	"os"

	"github.com/ryanmcf10/three-body-simulation/internal/body"
	"github.com/ryanmcf10/three-body-simulation/internal/dynamo"
	"github.com/ryanmcf10/three-body-simulation/internal/placement"
	"github.com/ryanmcf10/three-body-simulation/internal/sim"
	"github.com/ryanmcf10/three-body-simulation/internal/units"
	"gonum.org/v1/gonum/spatial/r3"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "rk4"
	DefaultSteps      = 2000
)

// Config describes one run. Bodies are given the way the placement layer
// produces them: pixel position, size multiplier, velocity multiplier.
type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Rate       int             `yaml:"rate"`
	Steps      int             `yaml:"steps"`
	Seed       int64           `yaml:"seed"`
	Units      units.Converter `yaml:"units"`
	Bodies     []BodyConfig    `yaml:"bodies"`
}

type BodyConfig struct {
	Position [2]float64 `yaml:"position"`
	Size     float64    `yaml:"size"`
	Velocity [2]float64 `yaml:"velocity"`
	// Color is optional; a random colour is used when it is nil.
	Color *[3]uint8 `yaml:"color,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         sim.DefaultDt,
		Rate:       sim.DefaultRate,
		Steps:      DefaultSteps,
		Seed:       1,
		Units:      units.Default(),
		Bodies:     clone(Presets["triangle"].Bodies),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	// Bodies in the file replace the defaults rather than merge into them.
	cfg.Bodies = nil
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
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

// Validate checks the run parameters. Body readiness is checked by Session.
func (c *Config) Validate() error {
	if !(c.Dt > 0) {
		return fmt.Errorf("%w, got %v", dynamo.ErrInvalidTimestep, c.Dt)
	}
	if c.Rate < 0 || c.Rate > sim.MaxRate {
		return fmt.Errorf("rate must be in [0, %d], got %d", sim.MaxRate, c.Rate)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must not be negative, got %d", c.Steps)
	}
	if len(c.Bodies) > dynamo.NumBodies {
		return fmt.Errorf("exactly %d bodies are supported, got %d", dynamo.NumBodies, len(c.Bodies))
	}
	return c.Units.Validate()
}

// Session replays the configured bodies through the placement state
// machine. Missing bodies leave the session unready.
func (c *Config) Session() (*placement.Session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	colors := placement.RandomColors(c.Seed)
	for i, b := range c.Bodies {
		if b.Color != nil {
			colors[i] = body.Color{R: b.Color[0], G: b.Color[1], B: b.Color[2]}
		}
	}

	s := placement.NewSession(c.Units, colors)
	for _, b := range c.Bodies {
		pos := r3.Vec{X: b.Position[0], Y: b.Position[1]}
		vel := r3.Vec{X: b.Velocity[0], Y: b.Velocity[1]}
		if err := s.Place(pos, b.Size, vel); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// InitialBodies returns the three placed bodies or an incomplete-conditions error.
func (c *Config) InitialBodies() ([dynamo.NumBodies]body.Body, error) {
	s, err := c.Session()
	if err != nil {
		return [dynamo.NumBodies]body.Body{}, err
	}
	return s.Bodies()
}

// SimConfig maps the file settings onto the driver configuration.
func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		Dt:       c.Dt,
		Rate:     c.Rate,
		MaxSteps: c.Steps,
		Units:    c.Units,
	}
}

// BodyConfigs converts placed bodies back to file form, the inverse of
// the replay done by Session.
func BodyConfigs(conv units.Converter, bodies [dynamo.NumBodies]body.Body) []BodyConfig {
	out := make([]BodyConfig, len(bodies))
	for i, b := range bodies {
		c := b.Color
		out[i] = BodyConfig{
			Position: [2]float64{b.Position.X, b.Position.Y},
			Size:     b.Mass / conv.MaxMass,
			Velocity: [2]float64{b.Velocity.X / conv.StandardVelocity, b.Velocity.Y / conv.StandardVelocity},
			Color:    &[3]uint8{c.R, c.G, c.B},
		}
	}
	return out
}

func clone(bodies []BodyConfig) []BodyConfig {
	out := make([]BodyConfig, len(bodies))
	copy(out, bodies)
	return out
}
