package chess

import (
	"errors"
	"fmt"
)

// ErrCorruptState - the engine found data it does not own in an inconsistent shape.
var ErrCorruptState = errors.New("corrupt engine state")

type Colour uint8

const (
	White Colour = iota
	Black
)

const (
	whiteMarker = "w"
	blackMarker = "b"
)

func (that Colour) Opposite() Colour {
	if that == White {
		return Black
	}
	return White
}

func (that Colour) String() string {
	if that == White {
		return "white"
	}
	return "black"
}

// Marker - short turn marker used in stored positions.
func (that Colour) Marker() string {
	if that == White {
		return whiteMarker
	}
	return blackMarker
}

// homeRow - the rank the colour's king and rooks start on.
func (that Colour) homeRow() int {
	if that == White {
		return 0
	}
	return 7
}

// forward - row delta of a pawn step.
func (that Colour) forward() int {
	if that == White {
		return 1
	}
	return -1
}

// ParseColour - derives a colour from a stored turn marker or a colour name.
func ParseColour(marker string) (Colour, error) {
	switch marker {
	case whiteMarker, "white":
		return White, nil
	case blackMarker, "black":
		return Black, nil
	default:
		return White, fmt.Errorf("%w: unknown turn marker %q", ErrCorruptState, marker)
	}
}
