package world

import (
	"fmt"
	"strings"
)

type Direction int

const (
	None Direction = iota
	Up
	Left
	Down
	Right
)

// Directions lists the four moves in tie-break priority order.
var Directions = [4]Direction{Up, Left, Down, Right}

func (d Direction) Vector() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Left:
		return -1, 0
	case Down:
		return 0, 1
	case Right:
		return 1, 0
	}
	return 0, 0
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Left:
		return Right
	case Down:
		return Up
	case Right:
		return Left
	}
	return None
}

func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	case Right:
		return Up
	}
	return None
}

func (d Direction) TurnRight() Direction {
	return d.TurnLeft().Opposite()
}

func (d Direction) IsVertical() bool {
	return d == Up || d == Down
}

func (d Direction) IsHorizontal() bool {
	return d == Left || d == Right
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	}
	return "none"
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "north", "n":
		return Up, nil
	case "left", "west", "w":
		return Left, nil
	case "down", "south", "s":
		return Down, nil
	case "right", "east", "e":
		return Right, nil
	case "", "none":
		return None, nil
	}
	return None, fmt.Errorf("world: unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
