package physics

import (
	"errors"
	"fmt"
)

// ErrParameterBounds indicates a parameter value is outside its valid range
// or the parameter name is unknown.
var ErrParameterBounds = errors.New("physics: parameter out of valid bounds")

const (
	DefaultGain        = 0.1
	DefaultRestitution = 0.8
	DefaultDamping     = 0.99
	DefaultDeadzone    = 0.1

	// CoincidentAngle is the push direction used when two centres coincide.
	// It equals atan2(0, 0).
	CoincidentAngle = 0.0
)

type Params struct {
	Gain        float64 `yaml:"gain"`
	Restitution float64 `yaml:"restitution"`
	Damping     float64 `yaml:"damping"`
	Deadzone    float64 `yaml:"deadzone"`
}

func DefaultParams() Params {
	return Params{
		Gain:        DefaultGain,
		Restitution: DefaultRestitution,
		Damping:     DefaultDamping,
		Deadzone:    DefaultDeadzone,
	}
}

// ParamNames lists the tunable parameters in the order they are checked.
var ParamNames = []string{"gain", "restitution", "damping", "deadzone"}

// Validate checks every field against its range and reports the first
// failure in ParamNames order.
func (p Params) Validate() error {
	values := p.asMap()
	for _, name := range ParamNames {
		if err := checkParam(name, values[name]); err != nil {
			return err
		}
	}
	return nil
}

func (p Params) asMap() map[string]float64 {
	return map[string]float64{
		"gain":        p.Gain,
		"restitution": p.Restitution,
		"damping":     p.Damping,
		"deadzone":    p.Deadzone,
	}
}

func checkParam(name string, v float64) error {
	var ok bool
	switch name {
	case "gain":
		ok = v > 0 && v <= 1
	case "restitution", "damping":
		ok = v >= 0 && v <= 1
	case "deadzone":
		ok = v >= 0
	default:
		return fmt.Errorf("%w: unknown parameter %q", ErrParameterBounds, name)
	}
	if !ok {
		return fmt.Errorf("%w: %s=%g", ErrParameterBounds, name, v)
	}
	return nil
}
