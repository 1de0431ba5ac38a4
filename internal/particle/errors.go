package particle

import (
	"errors"
	"fmt"
)

// Domain errors for particle and simulation operations.
var (
	// ErrInvalidRadius indicates a radius that is zero, negative, NaN or Inf.
	ErrInvalidRadius = errors.New("particle: radius must be positive and finite")

	// ErrNonFinite indicates a position or velocity component became NaN or Inf.
	ErrNonFinite = errors.New("particle: non-finite position or velocity")

	// ErrIndexOutOfRange indicates an index that does not address a particle.
	ErrIndexOutOfRange = errors.New("particle: index out of range")

	// ErrEmptyLayout indicates a store built from zero particles.
	ErrEmptyLayout = errors.New("particle: layout has no particles")
)

// SimulationError wraps an error with the frame it occurred on.
type SimulationError struct {
	Frame   int
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("frame %d: %v", e.Frame, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
