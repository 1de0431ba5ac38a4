package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
	"github.com/san-kum/ballpit/internal/render"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth   = 800.0
	DefaultHeight  = 800.0
	DefaultFPS     = 60
	DefaultFrames  = 600
	DefaultCount   = 5
	DefaultRadius  = 20.0
	DefaultSpacing = 50.0
)

var ErrInvalidSize = errors.New("config: surface size must be positive")

type Config struct {
	Width     float64          `yaml:"width"`
	Height    float64          `yaml:"height"`
	FPS       int              `yaml:"fps"`
	Frames    int              `yaml:"frames"`
	Style     StyleConfig      `yaml:"style"`
	Layout    LayoutConfig     `yaml:"layout"`
	Physics   physics.Params   `yaml:"physics"`
	Particles []ParticleConfig `yaml:"particles,omitempty"`
}

// StyleConfig holds hex colours for the surface. Theme names a terminal
// colour theme; when empty the terminal draws balls in Fill.
type StyleConfig struct {
	Background string `yaml:"background"`
	Fill       string `yaml:"fill"`
	Theme      string `yaml:"theme,omitempty"`
}

// LayoutConfig describes the staggered row used when no explicit particles
// are listed.
type LayoutConfig struct {
	Count   int     `yaml:"count"`
	Radius  float64 `yaml:"radius"`
	Spacing float64 `yaml:"spacing"`
}

type ParticleConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	VX     float64 `yaml:"vx,omitempty"`
	VY     float64 `yaml:"vy,omitempty"`
	Radius float64 `yaml:"radius,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Frames: DefaultFrames,
		Style: StyleConfig{
			Background: render.DefaultBackground,
			Fill:       render.DefaultFill,
		},
		Layout: LayoutConfig{
			Count:   DefaultCount,
			Radius:  DefaultRadius,
			Spacing: DefaultSpacing,
		},
		Physics: physics.DefaultParams(),
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads path on top of a copy of base, so keys missing from the
// file keep base's values.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base.Clone()
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

func (c *Config) Validate() error {
	if !(c.Width > 0) || !(c.Height > 0) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidSize, c.Width, c.Height)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("config: fps must be positive, got %d", c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("config: frames must not be negative, got %d", c.Frames)
	}
	if len(c.Particles) == 0 {
		if c.Layout.Count <= 0 {
			return fmt.Errorf("config: layout count must be positive, got %d", c.Layout.Count)
		}
		if !(c.Layout.Radius > 0) || math.IsInf(c.Layout.Radius, 0) {
			return fmt.Errorf("config: layout radius %g: %w", c.Layout.Radius, particle.ErrInvalidRadius)
		}
	}
	if err := c.Physics.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.RenderStyle(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.InitialParticles(); err != nil {
		return err
	}
	return nil
}

// InitialParticles builds the starting set: the explicit particle list when
// present, otherwise the staggered reference row.
func (c *Config) InitialParticles() ([]particle.Particle, error) {
	if len(c.Particles) == 0 {
		return Row(c.Width, c.Height, c.Layout)
	}

	ps := make([]particle.Particle, 0, len(c.Particles))
	for i, pc := range c.Particles {
		r := pc.Radius
		if r == 0 {
			r = c.Layout.Radius
		}
		p, err := particle.New(pc.X, pc.Y, r)
		if err != nil {
			return nil, fmt.Errorf("config: particle %d: %w", i, err)
		}
		ps = append(ps, p.WithVelocity(pc.VX, pc.VY))
	}
	return ps, nil
}

// Row lays out l.Count particles left to right starting one spacing left of
// centre. Odd indices sit sqrt(3)*r/2 lower, giving the staggered look.
func Row(width, height float64, l LayoutConfig) ([]particle.Particle, error) {
	startX := width/2 - l.Spacing
	h := math.Sqrt(3) * l.Radius / 2

	ps := make([]particle.Particle, 0, l.Count)
	for i := 0; i < l.Count; i++ {
		y := height / 2
		if i%2 == 1 {
			y += h
		}
		p, err := particle.New(startX+float64(i)*l.Spacing, y, l.Radius)
		if err != nil {
			return nil, fmt.Errorf("config: layout: %w", err)
		}
		ps = append(ps, p)
	}
	return ps, nil
}

func (c *Config) RenderStyle() (render.Style, error) {
	return render.ParseStyle(c.Style.Background, c.Style.Fill)
}

// Clone returns a deep copy so callers can override fields freely.
func (c *Config) Clone() *Config {
	cp := *c
	if c.Particles != nil {
		cp.Particles = make([]ParticleConfig, len(c.Particles))
		copy(cp.Particles, c.Particles)
	}
	return &cp
}
