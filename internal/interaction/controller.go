// Package interaction turns pointer events into a drag on a single particle.
package interaction

import (
	"github.com/charmbracelet/log"

	"github.com/san-kum/ballpit/internal/particle"
)

// DragScale divides the pointer displacement from the drag anchor to give
// the imposed velocity.
const DragScale = 10.0

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Controller is the only writer into the store from outside the step. It
// only ever overwrites the velocity of the active particle.
type Controller struct {
	store  *particle.Store
	active int
	anchor particle.Vec2
}

func NewController(store *particle.Store) *Controller {
	return &Controller{store: store, active: -1}
}

func (c *Controller) State() State {
	if c.active >= 0 {
		return Dragging
	}
	return Idle
}

// Active returns the grabbed particle index.
func (c *Controller) Active() (int, bool) {
	return c.active, c.active >= 0
}

// Anchor is the pointer position recorded when the current drag started.
func (c *Controller) Anchor() particle.Vec2 { return c.anchor }

// PointerDown grabs the first particle under (x, y). A miss leaves the
// current state untouched.
func (c *Controller) PointerDown(x, y float64) bool {
	if c.store == nil {
		return false
	}
	i := c.store.IndexAt(x, y)
	if i < 0 {
		return false
	}
	c.active = i
	c.anchor = particle.Vec2{X: x, Y: y}
	log.Debug("drag start", "particle", i, "x", x, "y", y)
	return true
}

// PointerMove sets the active particle's velocity from the total
// displacement since the drag started. The anchor is not moved.
func (c *Controller) PointerMove(x, y float64) {
	if c.store == nil || c.active < 0 {
		return
	}
	v := particle.Vec2{
		X: (c.anchor.X - x) / DragScale,
		Y: (c.anchor.Y - y) / DragScale,
	}
	if err := c.store.SetVelocity(c.active, v); err != nil {
		log.Warn("drag target lost, releasing", "particle", c.active, "err", err)
		c.active = -1
	}
}

// PointerUp releases the drag. The particle keeps its last velocity.
func (c *Controller) PointerUp() {
	if c.active >= 0 {
		log.Debug("drag end", "particle", c.active)
	}
	c.active = -1
}

// Reset drops any drag in progress without touching the store.
func (c *Controller) Reset() {
	c.active = -1
	c.anchor = particle.Vec2{}
}
