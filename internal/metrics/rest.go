package metrics

import (
	"github.com/san-kum/ballpit/internal/particle"
)

// RestFrame records the first frame after which every velocity component is
// exactly zero. It restarts when motion resumes, so a fling after a rest
// period is reported against its own settle frame. Value is -1 while moving.
type RestFrame struct {
	name  string
	frame int
}

func NewRestFrame() *RestFrame {
	return &RestFrame{name: "rest_frame", frame: -1}
}

func (r *RestFrame) Name() string { return r.name }

func (r *RestFrame) Observe(frame int, ps []particle.Particle) {
	if !particle.AtRest(ps) {
		r.frame = -1
		return
	}
	if r.frame < 0 {
		r.frame = frame
	}
}

func (r *RestFrame) Value() float64 { return float64(r.frame) }

func (r *RestFrame) Reset() { r.frame = -1 }
