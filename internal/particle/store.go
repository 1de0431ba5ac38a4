package particle

// Store holds the particle set in a fixed order. The set's cardinality never
// changes after construction.
type Store struct {
	particles []Particle
	initial   []Particle
}

// NewStore copies ps into a new store. The copy is also kept so Reset can
// restore the starting layout.
func NewStore(ps []Particle) (*Store, error) {
	if len(ps) == 0 {
		return nil, ErrEmptyLayout
	}
	for _, p := range ps {
		if !(p.radius > 0) {
			return nil, ErrInvalidRadius
		}
		if !p.IsValid() {
			return nil, ErrNonFinite
		}
	}
	s := &Store{
		particles: make([]Particle, len(ps)),
		initial:   make([]Particle, len(ps)),
	}
	copy(s.particles, ps)
	copy(s.initial, ps)
	return s, nil
}

func (s *Store) Len() int { return len(s.particles) }

// Particles exposes the backing slice so the step can mutate it in place.
func (s *Store) Particles() []Particle { return s.particles }

// At returns a copy of the particle at index i.
func (s *Store) At(i int) (Particle, error) {
	if i < 0 || i >= len(s.particles) {
		return Particle{}, ErrIndexOutOfRange
	}
	return s.particles[i], nil
}

// Snapshot returns a copy of the current particle set.
func (s *Store) Snapshot() []Particle {
	c := make([]Particle, len(s.particles))
	copy(c, s.particles)
	return c
}

// SetVelocity overwrites the velocity of particle i. Position is never
// touched.
func (s *Store) SetVelocity(i int, v Vec2) error {
	if i < 0 || i >= len(s.particles) {
		return ErrIndexOutOfRange
	}
	s.particles[i].Vel = v
	return nil
}

// IndexAt returns the index of the first particle, in store order, whose
// edge contains (x, y), or -1.
func (s *Store) IndexAt(x, y float64) int {
	for i, p := range s.particles {
		if p.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Reset restores the layout the store was built with.
func (s *Store) Reset() {
	copy(s.particles, s.initial)
}

func (s *Store) IsValid() bool {
	for _, p := range s.particles {
		if !p.IsValid() {
			return false
		}
	}
	return true
}

// KineticEnergy sums the kinetic energy of every particle.
func (s *Store) KineticEnergy() float64 {
	return TotalKineticEnergy(s.particles)
}

func TotalKineticEnergy(ps []Particle) float64 {
	sum := 0.0
	for _, p := range ps {
		sum += p.KineticEnergy()
	}
	return sum
}

// AtRest reports whether every velocity component is exactly zero.
func AtRest(ps []Particle) bool {
	for _, p := range ps {
		if p.Vel.X != 0 || p.Vel.Y != 0 {
			return false
		}
	}
	return true
}
