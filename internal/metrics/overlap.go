package metrics

import (
	"github.com/san-kum/ballpit/internal/particle"
	"github.com/san-kum/ballpit/internal/physics"
)

// PeakOverlap is the deepest pairwise penetration seen after any frame.
type PeakOverlap struct {
	name string
	max  float64
}

func NewPeakOverlap() *PeakOverlap {
	return &PeakOverlap{name: "peak_overlap"}
}

func (o *PeakOverlap) Name() string { return o.name }

func (o *PeakOverlap) Observe(frame int, ps []particle.Particle) {
	if d := physics.MaxOverlap(ps); d > o.max {
		o.max = d
	}
}

func (o *PeakOverlap) Value() float64 { return o.max }

func (o *PeakOverlap) Reset() { o.max = 0 }
