package metrics

import (
	"github.com/san-kum/ballpit/internal/particle"
)

// Energy tracks the kinetic energy of the whole set, unit mass per particle.
// Value is the mean over observed frames.
type Energy struct {
	name    string
	samples int
	total   float64
	last    float64
	peak    float64
}

func NewEnergy() *Energy {
	return &Energy{name: "kinetic_energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(frame int, ps []particle.Particle) {
	ke := particle.TotalKineticEnergy(ps)
	e.total += ke
	e.last = ke
	if ke > e.peak {
		e.peak = ke
	}
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *Energy) Last() float64 { return e.last }

func (e *Energy) Peak() float64 { return e.peak }

func (e *Energy) Reset() {
	e.total = 0
	e.last = 0
	e.peak = 0
	e.samples = 0
}
