package physics

import (
	"math"

	"github.com/san-kum/ballpit/internal/particle"
)

// World is the rectangular surface the particles live on.
type World struct {
	Width, Height float64
	Params        Params
}

func NewWorld(width, height float64) *World {
	return &World{Width: width, Height: height, Params: DefaultParams()}
}

// Step advances ps by one frame in place.
func (w *World) Step(ps []particle.Particle) {
	for i := range ps {
		p := &ps[i]

		p.Pos = p.Pos.Add(p.Vel)

		for j := range ps {
			if i == j {
				continue
			}
			w.Resolve(p, &ps[j])
		}

		w.reflect(p)

		p.Vel = p.Vel.Scale(w.Params.Damping)

		if math.Abs(p.Vel.X) < w.Params.Deadzone {
			p.Vel.X = 0
		}
		if math.Abs(p.Vel.Y) < w.Params.Deadzone {
			p.Vel.Y = 0
		}
	}
}

// Resolve applies one soft correction from p onto q when they overlap. The
// correction pulls q toward the point minDistance away from p along p->q and
// pushes p back by the same amount. It reports whether a correction was made.
func (w *World) Resolve(p, q *particle.Particle) bool {
	dx := q.Pos.X - p.Pos.X
	dy := q.Pos.Y - p.Pos.Y
	dist := math.Sqrt(dx*dx + dy*dy)
	minDist := p.Radius() + q.Radius()

	if dist >= minDist {
		return false
	}

	angle := CoincidentAngle
	if dist > 0 {
		angle = math.Atan2(dy, dx)
	}

	tx := p.Pos.X + math.Cos(angle)*minDist
	ty := p.Pos.Y + math.Sin(angle)*minDist
	a := particle.Vec2{
		X: (tx - q.Pos.X) * w.Params.Gain,
		Y: (ty - q.Pos.Y) * w.Params.Gain,
	}

	p.Vel = p.Vel.Sub(a)
	q.Vel = q.Vel.Add(a)
	return true
}

// reflect flips and damps a velocity component whose near edge has reached
// a bound. The axes are checked independently.
func (w *World) reflect(p *particle.Particle) {
	r := p.Radius()
	if p.Pos.X-r <= 0 || p.Pos.X+r >= w.Width {
		p.Vel.X *= -w.Params.Restitution
	}
	if p.Pos.Y-r <= 0 || p.Pos.Y+r >= w.Height {
		p.Vel.Y *= -w.Params.Restitution
	}
}

// MaxOverlap returns the deepest pairwise penetration in ps, or 0.
func MaxOverlap(ps []particle.Particle) float64 {
	deepest := 0.0
	for i := range ps {
		for j := i + 1; j < len(ps); j++ {
			d := ps[j].Pos.Sub(ps[i].Pos).Len()
			if pen := ps[i].Radius() + ps[j].Radius() - d; pen > deepest {
				deepest = pen
			}
		}
	}
	return deepest
}

func (w *World) GetParams() map[string]float64 {
	return w.Params.asMap()
}

func (w *World) SetParam(name string, value float64) error {
	if err := checkParam(name, value); err != nil {
		return err
	}
	switch name {
	case "gain":
		w.Params.Gain = value
	case "restitution":
		w.Params.Restitution = value
	case "damping":
		w.Params.Damping = value
	case "deadzone":
		w.Params.Deadzone = value
	}
	return nil
}
