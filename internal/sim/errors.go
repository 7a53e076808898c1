package sim

import (
	"errors"
	"fmt"
)

var (
	// ErrQuit is returned by a callback to end the loop on user request.
	ErrQuit = errors.New("sim: quit requested")

	// ErrInvalidConfig indicates loop timing that cannot be scheduled.
	ErrInvalidConfig = errors.New("sim: invalid loop configuration")
)

type Phase string

const (
	PhaseStep   Phase = "step"
	PhaseRender Phase = "render"
)

// LoopError wraps a callback error with the frame it ended.
type LoopError struct {
	Phase   Phase
	Frame   uint64
	SimTime float64
	Err     error
}

func (e *LoopError) Error() string {
	return fmt.Sprintf("%s failed at frame %d (t=%.4f): %v", e.Phase, e.Frame, e.SimTime, e.Err)
}

func (e *LoopError) Unwrap() error {
	return e.Err
}

// IsQuit reports whether err ended the loop through ErrQuit.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
