package interaction

import "fmt"

type Kind int

const (
	Down Kind = iota
	Move
	Up
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Event is a pointer event in surface-local coordinates.
type Event struct {
	Kind Kind
	X, Y float64
}

// Handle dispatches ev to the matching pointer method.
func (c *Controller) Handle(ev Event) {
	switch ev.Kind {
	case Down:
		c.PointerDown(ev.X, ev.Y)
	case Move:
		c.PointerMove(ev.X, ev.Y)
	case Up:
		c.PointerUp()
	}
}

// Local converts client coordinates to coordinates relative to a surface
// whose top-left corner sits at (left, top).
func Local(clientX, clientY, left, top float64) (float64, float64) {
	return clientX - left, clientY - top
}
