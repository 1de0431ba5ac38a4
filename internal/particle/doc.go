// Package particle provides the state primitives for the ball simulation.
//
// The package defines the data the rest of the module operates on:
//
//   - [Vec2]: a 2D vector used for positions and velocities
//   - [Particle]: a ball with position, velocity and a fixed radius
//   - [Store]: the ordered, index-addressed collection of particles
//
// # Example
//
//	p, _ := particle.New(400, 400, 20)
//	st, _ := particle.NewStore([]particle.Particle{p})
//	st.SetVelocity(0, particle.Vec2{X: 2})
//
// # Thread Safety
//
// Store instances are NOT thread-safe. A Store is owned by one logical thread
// of control (the frame loop); input handlers mutate it on that same thread.
package particle
