package sim

import "time"

// Clock is the loop's bookkeeping. After Drain returns without error,
// 0 <= Accumulator < Dt unless the step limit was hit.
type Clock struct {
	Dt          float64
	Accumulator float64
	SimTime     float64
	Steps       uint64
	// Limit stops draining once Steps reaches it; zero means unbounded.
	Limit uint64

	frames     int
	fps        int
	lastSample time.Time
}

func NewClock(dt float64, start time.Time) *Clock {
	return &Clock{Dt: dt, lastSample: start}
}

// Accumulate adds elapsed wall time in seconds. Negative deltas are dropped.
func (c *Clock) Accumulate(frameTime float64) {
	if frameTime > 0 {
		c.Accumulator += frameTime
	}
}

// Drain consumes the accumulator in Dt slices, calling step for each one in
// increasing simulated time. A step error leaves the failing slice
// unconsumed.
func (c *Clock) Drain(step func(t, dt float64) error) (int, error) {
	n := 0
	for c.Accumulator >= c.Dt && !c.Done() {
		if err := step(c.SimTime, c.Dt); err != nil {
			return n, err
		}
		c.Accumulator -= c.Dt
		c.SimTime += c.Dt
		c.Steps++
		n++
	}
	return n, nil
}

func (c *Clock) Done() bool {
	return c.Limit > 0 && c.Steps >= c.Limit
}

// Tick counts a rendered frame and refreshes the FPS estimate once per
// second of wall time.
func (c *Clock) Tick(now time.Time) int {
	c.frames++
	if now.Sub(c.lastSample) >= time.Second {
		c.fps = c.frames
		c.frames = 0
		c.lastSample = now
	}
	return c.fps
}

func (c *Clock) FPS() int { return c.fps }
