// Package sim runs the fixed-timestep loop that drives the simulation.
//
// Wall-clock frame time is fed into an accumulator and consumed in
// constant [Config.Dt] slices, so the physics step never sees a variable
// timestep:
//
//   - [PhysicsStepper]: called once per consumed slice, may run several times per frame
//   - [FrameRenderer]: called exactly once per frame with the current FPS estimate
//   - [Clock]: accumulator, simulated time and FPS bookkeeping
//   - [Timer]: wall-clock source; [VirtualTimer] makes runs deterministic
//
// # Example
//
//	loop, _ := sim.NewLoop(sim.DefaultConfig())
//	err := loop.Run(ctx, controller, renderer)
//	if errors.Is(err, sim.ErrQuit) {
//	    // user asked to leave
//	}
//
// # Thread Safety
//
// A Loop runs on the caller's goroutine. Both callbacks are invoked from it,
// in order, never concurrently.
package sim
