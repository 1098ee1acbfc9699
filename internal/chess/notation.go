package chess

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidNotation = errors.New("invalid move notation")

// ParseMove reads a move typed by a player: "e2 e4", "e2e4", "e7 e8q",
// "e7e8=Q", or the castling tokens "O-O" and "O-O-O" ("0-0" and any case
// accepted). Castling is translated into the king's two-file step for side.
func ParseMove(text string, side Colour) (Move, error) {
	token := strings.TrimSpace(text)
	if token == "" {
		return Move{From: NoMove, To: NoMove}, fmt.Errorf("%w: empty move", ErrInvalidNotation)
	}

	switch strings.ToUpper(strings.ReplaceAll(token, "0", "O")) {
	case "O-O":
		return castlingMove(side, true), nil
	case "O-O-O":
		return castlingMove(side, false), nil
	}

	compact := strings.ToLower(strings.Join(strings.Fields(token), ""))
	compact = strings.ReplaceAll(compact, "-", "")
	compact = strings.ReplaceAll(compact, "=", "")

	if len(compact) != 4 && len(compact) != 5 {
		return Move{From: NoMove, To: NoMove}, fmt.Errorf("%w: %q", ErrInvalidNotation, text)
	}

	from, okFrom := ParseCoord(compact[0:2])
	to, okTo := ParseCoord(compact[2:4])
	if !okFrom || !okTo {
		return Move{From: NoMove, To: NoMove}, fmt.Errorf("%w: %q", ErrInvalidNotation, text)
	}

	move := Move{From: from, To: to}
	if len(compact) == 5 {
		kind, ok := KindFromSymbol(compact[4])
		if !ok || !kind.Promotable() {
			return Move{From: NoMove, To: NoMove}, fmt.Errorf("%w: promotion %q", ErrInvalidNotation, compact[4:])
		}
		move.Promotion = kind
	}

	return move, nil
}

func castlingMove(side Colour, short bool) Move {
	from := Coord{Row: side.homeRow(), Col: kingHomeCol}
	dir := 2
	if !short {
		dir = -2
	}
	return Move{From: from, To: from.offset(0, dir)}
}
