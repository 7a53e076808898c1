package input

import (
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"

	"github.com/san-kum/glide/internal/kinematics"
)

const (
	// DefaultReleaseDelay must exceed the OS key auto-repeat delay (660ms
	// on X11 by default), or a held key is seen as released before its
	// first repeat arrives.
	DefaultReleaseDelay = 750 * time.Millisecond
	eventBuffer         = 100
)

var keyDirections = map[tcell.Key]kinematics.Direction{
	tcell.KeyUp:    kinematics.North,
	tcell.KeyDown:  kinematics.South,
	tcell.KeyRight: kinematics.East,
	tcell.KeyLeft:  kinematics.West,
}

var runeDirections = map[rune]kinematics.Direction{
	'w': kinematics.North, 'k': kinematics.North,
	's': kinematics.South, 'j': kinematics.South,
	'd': kinematics.East, 'l': kinematics.East,
	'a': kinematics.West, 'h': kinematics.West,
}

// TerminalSource reads keys from a tcell screen. Terminals only report key
// presses (and auto-repeat), so a held key counts as released once no
// repeat arrived for ReleaseDelay.
type TerminalSource struct {
	screen       tcell.Screen
	events       chan tcell.Event
	clock        Clock
	releaseDelay time.Duration
	log          logrus.FieldLogger

	held      bool
	heldDir   kinematics.Direction
	lastPress time.Time
}

// NewTerminalSource starts pumping events from an initialized screen. The
// pump ends when the screen is finalized.
func NewTerminalSource(screen tcell.Screen, clock Clock, releaseDelay time.Duration, log logrus.FieldLogger) *TerminalSource {
	s := &TerminalSource{
		screen:       screen,
		events:       make(chan tcell.Event, eventBuffer),
		clock:        clock,
		releaseDelay: releaseDelay,
		log:          log,
	}
	go s.pump()
	return s
}

func (s *TerminalSource) pump() {
	defer close(s.events)
	for {
		ev := s.screen.PollEvent()
		if ev == nil {
			return
		}
		s.events <- ev
	}
}

func (s *TerminalSource) Poll(timeout time.Duration) (Event, bool, error) {
	for {
		select {
		case tev, open := <-s.events:
			if !open {
				return Event{}, false, ErrClosed
			}
			if ev, ok := s.translate(tev); ok {
				return ev, true, nil
			}
			continue
		default:
		}

		if ev, ok := s.expire(); ok {
			return ev, true, nil
		}
		if timeout <= 0 {
			return Event{}, false, nil
		}

		wait := time.NewTimer(timeout)
		select {
		case tev, open := <-s.events:
			wait.Stop()
			if !open {
				return Event{}, false, ErrClosed
			}
			if ev, ok := s.translate(tev); ok {
				return ev, true, nil
			}
			timeout = 0
		case <-wait.C:
			return Event{}, false, nil
		}
	}
}

func (s *TerminalSource) translate(tev tcell.Event) (Event, bool) {
	key, ok := tev.(*tcell.EventKey)
	if !ok {
		return Event{}, false
	}

	switch key.Key() {
	case tcell.KeyEscape:
		return Event{Kind: Quit, Reason: "escape key pressed"}, true
	case tcell.KeyCtrlC:
		return Event{Kind: Quit, Reason: "interrupted"}, true
	case tcell.KeyRune:
		switch r := key.Rune(); r {
		case 'q', 'Q':
			return Event{Kind: Quit, Reason: "quit key pressed"}, true
		case ' ':
			return s.release()
		default:
			if dir, ok := runeDirections[r]; ok {
				return s.press(dir)
			}
		}
	default:
		if dir, ok := keyDirections[key.Key()]; ok {
			return s.press(dir)
		}
	}

	s.log.WithField("key", key.Name()).Trace("unmapped key")
	return Event{}, false
}

// press reports a new direction; auto-repeat of the held key only keeps it
// alive.
func (s *TerminalSource) press(dir kinematics.Direction) (Event, bool) {
	s.lastPress = s.clock.Now()
	if s.held && s.heldDir == dir {
		return Event{}, false
	}
	s.held = true
	s.heldDir = dir
	return Event{Kind: Press, Dir: dir}, true
}

func (s *TerminalSource) release() (Event, bool) {
	if !s.held {
		return Event{}, false
	}
	s.held = false
	return Event{Kind: Release, Dir: s.heldDir}, true
}

func (s *TerminalSource) expire() (Event, bool) {
	if !s.held || s.releaseDelay <= 0 {
		return Event{}, false
	}
	if s.clock.Now().Sub(s.lastPress) < s.releaseDelay {
		return Event{}, false
	}
	return s.release()
}
