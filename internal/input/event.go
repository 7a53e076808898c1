// Package input turns key activity into direction press, release and quit
// events for the controller.
package input

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/glide/internal/kinematics"
)

var (
	// ErrClosed means the event stream is gone for good.
	ErrClosed = errors.New("input: source closed")

	ErrBadScript = errors.New("input: malformed script")
)

type Kind uint8

const (
	Press Kind = iota + 1
	Release
	Quit
)

func (k Kind) String() string {
	switch k {
	case Press:
		return "press"
	case Release:
		return "release"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Event struct {
	Kind Kind
	Dir  kinematics.Direction
	// Reason describes why a Quit was raised.
	Reason string
}

func (e Event) String() string {
	switch e.Kind {
	case Press, Release:
		return e.Kind.String() + " " + e.Dir.String()
	case Quit:
		return "quit: " + e.Reason
	}
	return e.Kind.String()
}

// Source yields events one at a time. A false ok with a nil error means
// nothing arrived within timeout; a zero timeout never blocks.
type Source interface {
	Poll(timeout time.Duration) (ev Event, ok bool, err error)
}

// Seeker is implemented by sources that replay events on simulated time.
type Seeker interface {
	Seek(t float64)
}

// Clock is the time source used to detect released keys.
type Clock interface {
	Now() time.Time
}
