// Package game binds input events to the kinematic entity inside each
// physics step.
package game

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/san-kum/glide/internal/input"
	"github.com/san-kum/glide/internal/kinematics"
	"github.com/san-kum/glide/internal/sim"
)

// Observer sees the entity after every physics step.
type Observer interface {
	OnStep(t float64, s kinematics.State)
}

// Controller is the only writer of the entity. It implements
// sim.PhysicsStepper.
type Controller struct {
	entity      *kinematics.Entity
	source      input.Source
	pollTimeout time.Duration
	observers   []Observer
	log         logrus.FieldLogger

	held    bool
	heldDir kinematics.Direction
	reason  string
	// waited is set once the bounded poll has been spent for this frame.
	waited bool
}

func NewController(e *kinematics.Entity, src input.Source, pollTimeout time.Duration, log logrus.FieldLogger) *Controller {
	return &Controller{
		entity:      e,
		source:      src,
		pollTimeout: pollTimeout,
		observers:   make([]Observer, 0),
		log:         log,
	}
}

func (c *Controller) AddObserver(o Observer) { c.observers = append(c.observers, o) }

// BeginFrame re-arms the bounded poll. Only the first step of a frame may
// block on input; catch-up steps poll without waiting.
func (c *Controller) BeginFrame() { c.waited = false }

// Step drains pending input, then advances the entity along the held
// direction if there is one.
func (c *Controller) Step(t, dt float64) error {
	if s, ok := c.source.(input.Seeker); ok {
		s.Seek(t)
	}

	var timeout time.Duration
	if !c.waited {
		timeout = c.pollTimeout
		c.waited = true
	}
	for {
		ev, ok, err := c.source.Poll(timeout)
		if err != nil {
			return fmt.Errorf("poll input: %w", err)
		}
		if !ok {
			break
		}
		timeout = 0

		if err := c.handle(ev, t); err != nil {
			return err
		}
	}

	if c.held {
		c.entity.Advance(c.heldDir, dt)
	}

	state := c.entity.Snapshot()
	for _, o := range c.observers {
		o.OnStep(t+dt, state)
	}
	return nil
}

func (c *Controller) handle(ev input.Event, t float64) error {
	c.log.WithFields(logrus.Fields{"t": t, "event": ev.String()}).Debug("input")

	switch ev.Kind {
	case input.Quit:
		c.reason = ev.Reason
		return fmt.Errorf("%w: %s", sim.ErrQuit, ev.Reason)
	case input.Press:
		c.held = true
		c.heldDir = ev.Dir
	case input.Release:
		if c.held && c.heldDir == ev.Dir {
			c.held = false
			c.entity.Stop()
		}
	}
	return nil
}

// Held reports the direction currently commanding acceleration.
func (c *Controller) Held() (kinematics.Direction, bool) {
	return c.heldDir, c.held
}

func (c *Controller) State() kinematics.State {
	return c.entity.Snapshot()
}

// QuitReason is the reason carried by the Quit event that ended the run, if
// any.
func (c *Controller) QuitReason() string { return c.reason }
