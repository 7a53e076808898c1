package input

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/glide/internal/kinematics"
)

// Events scheduled within this much of the current step fire on it.
const seekEpsilon = 1e-9

// Segment holds Key for Hold simulated seconds. Key is a direction name,
// "stop" or "quit".
type Segment struct {
	Key  string  `yaml:"key"`
	Hold float64 `yaml:"hold"`
}

type timedEvent struct {
	at float64
	ev Event
}

// Script replays a fixed sequence of key activity on simulated time.
type Script struct {
	timeline []timedEvent
	next     int
	now      float64
	length   float64
}

// ParseScript reads "east:0.5,stop:0.2,north:0.3,quit".
func ParseScript(src string) (*Script, error) {
	var segs []Segment
	for _, part := range strings.Split(src, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, hold, found := strings.Cut(part, ":")
		seg := Segment{Key: strings.TrimSpace(key)}
		if found {
			v, err := strconv.ParseFloat(strings.TrimSpace(hold), 64)
			if err != nil {
				return nil, fmt.Errorf("%w: segment %q: %v", ErrBadScript, part, err)
			}
			seg.Hold = v
		}
		segs = append(segs, seg)
	}
	return NewScript(segs)
}

func NewScript(segs []Segment) (*Script, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty script", ErrBadScript)
	}

	s := &Script{}
	t := 0.0
	holding := false
	var heldDir kinematics.Direction

	for i, seg := range segs {
		if seg.Hold < 0 {
			return nil, fmt.Errorf("%w: segment %d: negative hold %g", ErrBadScript, i, seg.Hold)
		}
		switch strings.ToLower(seg.Key) {
		case "quit":
			if i != len(segs)-1 {
				return nil, fmt.Errorf("%w: quit must be the last segment", ErrBadScript)
			}
			s.add(t, Event{Kind: Quit, Reason: "script finished"})
			holding = false
		case "stop":
			if holding {
				s.add(t, Event{Kind: Release, Dir: heldDir})
				holding = false
			}
		default:
			dir, err := kinematics.ParseDirection(seg.Key)
			if err != nil {
				return nil, fmt.Errorf("%w: segment %d: %v", ErrBadScript, i, err)
			}
			s.add(t, Event{Kind: Press, Dir: dir})
			holding = true
			heldDir = dir
		}
		t += seg.Hold
	}
	if holding {
		s.add(t, Event{Kind: Release, Dir: heldDir})
	}
	s.length = t
	return s, nil
}

func (s *Script) add(at float64, ev Event) {
	s.timeline = append(s.timeline, timedEvent{at: at, ev: ev})
}

func (s *Script) Seek(t float64) { s.now = t }

// Poll never blocks: events due at the current simulated time come out in
// order, anything later waits for a later Seek.
func (s *Script) Poll(time.Duration) (Event, bool, error) {
	if s.next >= len(s.timeline) {
		return Event{}, false, nil
	}
	te := s.timeline[s.next]
	if te.at > s.now+seekEpsilon {
		return Event{}, false, nil
	}
	s.next++
	return te.ev, true, nil
}

// Duration is the simulated time covered by all segments.
func (s *Script) Duration() float64 { return s.length }

func (s *Script) Done() bool { return s.next >= len(s.timeline) }

func (s *Script) Reset() {
	s.next = 0
	s.now = 0
}
