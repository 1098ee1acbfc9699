package chess

import "fmt"

// Verdict classifies a move evaluation or the position it leaves behind.
type Verdict uint8

const (
	Correct         Verdict = iota
	WhiteMate               // white is checkmated, black wins
	BlackMate               // black is checkmated, white wins
	WhiteStalemate          // white to move and has no legal move
	BlackStalemate          // black to move and has no legal move
	UnnaturalMove           // rejected by the rules
	Check                   // side to move is in check
	InvalidCastling         // castling requested but not allowed
	Transformation          // a pawn was promoted
	WhiteTurn               // it is white's turn, not the submitter's
	BlackTurn               // it is black's turn, not the submitter's
)

var verdictNames = [...]string{
	"correct",
	"white_mate",
	"black_mate",
	"white_stalemate",
	"black_stalemate",
	"unnatural_move",
	"check",
	"invalid_castling",
	"transformation",
	"white_turn",
	"black_turn",
}

func (that Verdict) String() string {
	if int(that) < len(verdictNames) {
		return verdictNames[that]
	}
	return fmt.Sprintf("verdict(%d)", that)
}

// Rejected - the move was refused and the board is unchanged.
func (that Verdict) Rejected() bool {
	switch that {
	case UnnaturalMove, InvalidCastling, WhiteTurn, BlackTurn:
		return true
	default:
		return false
	}
}

// Final - the position ends the game.
func (that Verdict) Final() bool {
	switch that {
	case WhiteMate, BlackMate, WhiteStalemate, BlackStalemate:
		return true
	default:
		return false
	}
}

// Winner - colour that won by checkmate.
func (that Verdict) Winner() (Colour, bool) {
	switch that {
	case WhiteMate:
		return Black, true
	case BlackMate:
		return White, true
	default:
		return White, false
	}
}

// WrongTurn - verdict reported to a player who moved out of turn.
func WrongTurn(turn Colour) Verdict {
	if turn == White {
		return WhiteTurn
	}
	return BlackTurn
}

func mateFor(colour Colour) Verdict {
	if colour == White {
		return WhiteMate
	}
	return BlackMate
}

func stalemateFor(colour Colour) Verdict {
	if colour == White {
		return WhiteStalemate
	}
	return BlackStalemate
}
