// Package kinematics models a single four-directional entity driven by a
// constant force.
//
// The entity accelerates along one axis at a time:
//
//   - [North] and [South] act on the y axis (negative and positive)
//   - [East] and [West] act on the x axis (positive and negative)
//
// Each velocity component is clamped to [-MaxSpeed, MaxSpeed] independently,
// and turning to a new direction drops all momentum before the new
// acceleration is applied.
//
// # Example
//
//	e, err := kinematics.New(mgl64.Vec2{0, 0}, kinematics.DefaultParams())
//	if err != nil {
//	    return err
//	}
//	e.Advance(kinematics.East, 0.01)
//	pos := e.Position()
//
// # Units
//
// Velocity is expressed in pixels per simulated millisecond and dt in
// seconds, so positions advance by velocity * dt * [Scale].
//
// Entity is NOT safe for concurrent use. The simulation loop owns it.
package kinematics
