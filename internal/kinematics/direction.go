package kinematics

import (
	"fmt"
	"strings"
)

type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists every valid direction in declaration order.
var Directions = [...]Direction{North, South, East, West}

// axis index into the velocity vector and the sign of the push.
type push struct {
	axis int
	sign float64
}

var pushes = [...]push{
	North: {axis: 1, sign: -1},
	South: {axis: 1, sign: 1},
	East:  {axis: 0, sign: 1},
	West:  {axis: 0, sign: -1},
}

var directionNames = [...]string{
	North: "north",
	South: "south",
	East:  "east",
	West:  "west",
}

func (d Direction) Valid() bool { return int(d) < len(pushes) }

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Axis returns the velocity component index and sign driven by d.
func (d Direction) Axis() (int, float64) {
	p := pushes[d]
	return p.axis, p.sign
}

// ParseDirection accepts full names, single letters and arrow names.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "south", "s", "down":
		return South, nil
	case "east", "e", "right":
		return East, nil
	case "west", "w", "left":
		return West, nil
	}
	return 0, fmt.Errorf("unknown direction: %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", uint8(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	parsed, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
