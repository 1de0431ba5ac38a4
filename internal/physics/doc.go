// Package physics implements the per-frame ball step.
//
// A [World] owns the surface bounds and the tunable [Params]. Each call to
// [World.Step] advances every particle by one frame:
//
//  1. integrate position by velocity (unit time step)
//  2. soft-correct every overlapping pair, both visit orders
//  3. reflect off the bounds with restitution
//  4. damp velocity
//  5. snap sub-deadzone components to zero
//
// Updates are applied in place and in store order, so later particles see
// the positions and velocities already written earlier in the same pass.
// Changing that order changes trajectories.
//
// # Parameters
//
// World implements GetParams/SetParam for runtime tuning:
//
//	w := physics.NewWorld(800, 800)
//	w.SetParam("damping", 0.98)
package physics
