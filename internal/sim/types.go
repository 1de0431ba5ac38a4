package sim

import (
	"github.com/san-kum/ballpit/internal/interaction"
	"github.com/san-kum/ballpit/internal/particle"
)

type Metric interface {
	Name() string
	Observe(frame int, ps []particle.Particle)
	Value() float64
	Reset()
}

// Observer sees the particle set after every rendered frame. The slice is
// the live store; observers must copy what they keep.
type Observer interface {
	OnFrame(frame int, ps []particle.Particle)
}

// Cue delivers a pointer event before the given frame is stepped. Frame 0
// means before the first step.
type Cue struct {
	Frame int
	Event interaction.Event
}

type Config struct {
	Frames        int
	Script        []Cue
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Frames:        600,
		ValidateState: true,
	}
}

type Result struct {
	Final      []particle.Particle
	Energy     []float64
	Metrics    map[string]float64
	FramesRun  int
	CuesPlayed int
}
