package kinematics

import (
	"errors"
	"fmt"
)

// ErrInvalidParam indicates a physical constant that would produce NaN or
// Inf velocities.
var ErrInvalidParam = errors.New("kinematics: invalid physical parameter")

// ParamError wraps ErrInvalidParam with the offending field.
type ParamError struct {
	Name  string
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%v: %s=%g", ErrInvalidParam, e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return ErrInvalidParam
}
