package particle

import "math"

// Vec2 is a point or displacement in surface coordinates.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(f float64) Vec2 { return Vec2{v.X * f, v.Y * f} }

func (v Vec2) Len() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y) }

func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// Particle is a ball. Radius is fixed at construction; position and velocity
// are mutated by the step and by pointer interaction.
type Particle struct {
	Pos    Vec2
	Vel    Vec2
	radius float64
}

// New returns a resting particle centred on (x, y).
func New(x, y, radius float64) (Particle, error) {
	if !(radius > 0) || math.IsInf(radius, 0) {
		return Particle{}, ErrInvalidRadius
	}
	return Particle{Pos: Vec2{x, y}, radius: radius}, nil
}

// Must is a helper for layouts known to be valid. It panics on error.
func Must(p Particle, err error) Particle {
	if err != nil {
		panic(err)
	}
	return p
}

func (p Particle) Radius() float64 { return p.radius }

// WithVelocity returns a copy of p moving at (dx, dy).
func (p Particle) WithVelocity(dx, dy float64) Particle {
	p.Vel = Vec2{dx, dy}
	return p
}

// Contains reports whether (x, y) lies within or on the particle's edge.
func (p Particle) Contains(x, y float64) bool {
	dx := p.Pos.X - x
	dy := p.Pos.Y - y
	return math.Sqrt(dx*dx+dy*dy) <= p.radius
}

// KineticEnergy is 0.5*|v|^2 with unit mass.
func (p Particle) KineticEnergy() float64 {
	return 0.5 * (p.Vel.X*p.Vel.X + p.Vel.Y*p.Vel.Y)
}

func (p Particle) IsValid() bool {
	return p.Pos.IsFinite() && p.Vel.IsFinite()
}
