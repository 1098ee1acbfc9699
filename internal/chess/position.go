package chess

import (
	"fmt"
	"strings"
)

// Position is the storable form of a board.
type Position struct {
	Board     string `json:"board"`                // canonical snapshot
	Turn      string `json:"turn"`                 // turn marker, "w" or "b"
	Castling  string `json:"castling"`             // "KQkq" subset or "-"
	EnPassant string `json:"en_passant,omitempty"` // target square, e.g. "e3"
}

// Key - identity of the position for repetition counting.
func (that Position) Key() string {
	return that.Board + that.Turn + " " + that.Castling + " " + that.EnPassant
}

var castlingLetters = [2][2]byte{
	White: {queenSide: 'Q', kingSide: 'K'},
	Black: {queenSide: 'q', kingSide: 'k'},
}

func (that *Board) Position() Position {
	var rights strings.Builder
	for _, colour := range []Colour{White, Black} {
		for _, side := range []int{kingSide, queenSide} {
			if that.CastlingRight(colour, side == kingSide) {
				rights.WriteByte(castlingLetters[colour][side])
			}
		}
	}

	castling := rights.String()
	if castling == "" {
		castling = "-"
	}

	pos := Position{
		Board:    that.Snapshot(),
		Turn:     that.turn.Marker(),
		Castling: castling,
	}
	if that.enPassant.Valid() {
		pos.EnPassant = that.enPassant.String()
	}

	return pos
}

// NewBoardFromPosition restores a board. Kings and rooks are treated as
// unmoved only while the castling field grants the matching right.
func NewBoardFromPosition(pos Position) (*Board, error) {
	turn, err := ParseColour(pos.Turn)
	if err != nil {
		return nil, err
	}

	board := &Board{turn: turn, enPassant: NoMove, last: Turn{From: NoMove, To: NoMove}}
	if err = board.fillSnapshot(pos.Board); err != nil {
		return nil, err
	}

	for _, colour := range []Colour{White, Black} {
		for _, side := range []int{queenSide, kingSide} {
			granted := strings.IndexByte(pos.Castling, castlingLetters[colour][side]) >= 0
			board.castling.rookMoved[colour][side] = !granted
		}
		board.castling.kingMoved[colour] = board.castling.rookMoved[colour][queenSide] &&
			board.castling.rookMoved[colour][kingSide]
	}
	board.syncMovedFlags()

	if pos.EnPassant != "" {
		target, ok := ParseCoord(pos.EnPassant)
		if !ok {
			return nil, fmt.Errorf("%w: en passant square %q", ErrCorruptState, pos.EnPassant)
		}
		board.enPassant = target
	}

	return board, nil
}

// fillSnapshot reads the canonical snapshot and checks there is exactly one
// king per colour.
func (that *Board) fillSnapshot(snapshot string) error {
	lines := strings.Split(strings.TrimRight(snapshot, "\n"), "\n")
	if len(lines) != boardSize {
		return fmt.Errorf("%w: snapshot has %d rows", ErrCorruptState, len(lines))
	}

	kings := [2]int{}
	for row, line := range lines {
		cells := strings.Fields(line)
		if len(cells) != boardSize {
			return fmt.Errorf("%w: row %d has %d cells", ErrCorruptState, row, len(cells))
		}

		for col, cell := range cells {
			if len(cell) != 1 {
				return fmt.Errorf("%w: cell %q", ErrCorruptState, cell)
			}

			p, ok := PieceFromSymbol(cell[0])
			if !ok {
				return fmt.Errorf("%w: unknown symbol %q", ErrCorruptState, cell)
			}
			if p.Kind == King {
				kings[p.Colour]++
			}
			that.grid[row][col] = p
		}
	}

	if kings[White] != 1 || kings[Black] != 1 {
		return fmt.Errorf("%w: expected one king per colour, got %d white and %d black",
			ErrCorruptState, kings[White], kings[Black])
	}

	return nil
}

// syncMovedFlags derives per-piece moved flags from the board flags.
func (that *Board) syncMovedFlags() {
	for idx := 0; idx < boardSize*boardSize; idx++ {
		c := coordFromIndex(idx)
		p := that.At(c)

		switch p.Kind {
		case King:
			p.Moved = c != (Coord{Row: p.Colour.homeRow(), Col: kingHomeCol}) || that.castling.kingMoved[p.Colour]
		case Rook:
			p.Moved = true
			for _, side := range []int{queenSide, kingSide} {
				if c == rookHome(p.Colour, side) && !that.castling.rookMoved[p.Colour][side] {
					p.Moved = false
				}
			}
		default:
			continue
		}

		that.set(c, p)
	}
}
