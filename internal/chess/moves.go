package chess

import "fmt"

// Move is a parsed move request. Promotion is Empty unless a choice was given.
type Move struct {
	From      Coord `json:"from"`
	To        Coord `json:"to"`
	Promotion Kind  `json:"promotion,omitempty"`
}

// String - coordinate notation, "e7e8q" for promotions.
func (that Move) String() string {
	s := that.From.String() + that.To.String()
	if that.Promotion != Empty {
		s += string(NewPiece(that.Promotion, Black).Symbol())
	}
	return s
}

// DoTurn plays the move when CheckTurn accepts it. A pawn reaching the far
// rank becomes a queen. The board is unchanged on any other verdict.
func (that *Board) DoTurn(from, to Coord) Verdict {
	verdict, _ := that.DoTurnPromote(from, to, Queen)
	return verdict
}

// DoTurnPromote is DoTurn with a promotion choice. Empty means Queen.
func (that *Board) DoTurnPromote(from, to Coord, promotion Kind) (Verdict, error) {
	if promotion == Empty {
		promotion = Queen
	}
	if !promotion.Promotable() {
		return UnnaturalMove, fmt.Errorf("%w: %s", ErrInvalidPromotion, promotion)
	}

	verdict := that.CheckTurn(from, to)
	if verdict != Correct {
		return verdict, nil
	}

	if short, ok := that.castlingRequest(from, to); ok {
		return that.PerformCastle(short), nil
	}

	mover := that.At(from)
	captured, enPassant := that.apply(from, to)

	moved := mover
	if mover.Kind == King || mover.Kind == Rook {
		moved.Moved = true
		that.set(to, moved)
	}
	that.markMoved(from, mover)
	if captured.Kind == Rook {
		that.markMoved(to, captured)
	}

	turn := Turn{From: from, To: to, Piece: mover, Captured: captured, EnPassant: enPassant}

	if mover.Kind == Pawn && to.Row == promotionRow(mover.Colour) {
		if err := that.PromotePawn(to, promotion); err != nil {
			return UnnaturalMove, fmt.Errorf("%w: promotion after accepted move", ErrCorruptState)
		}
		turn.Promotion = promotion
	}

	that.enPassant = NoMove
	if mover.Kind == Pawn && abs(to.Row-from.Row) == 2 {
		that.enPassant = Coord{Row: (from.Row + to.Row) / 2, Col: from.Col}
	}

	that.last = turn
	that.turn = that.turn.Opposite()

	return Correct, nil
}

// LegalMoves - every move the side to move may play.
func (that *Board) LegalMoves() []Move {
	var moves []Move
	that.eachLegalMove(func(m Move) bool {
		moves = append(moves, m)
		return true
	})
	return moves
}

func (that *Board) hasLegalMove() bool {
	found := false
	that.eachLegalMove(func(Move) bool {
		found = true
		return false
	})
	return found
}

// eachLegalMove calls fn for each legal move until fn returns false.
func (that *Board) eachLegalMove(fn func(Move) bool) {
	for idx := 0; idx < boardSize*boardSize; idx++ {
		from := coordFromIndex(idx)
		p := that.At(from)
		if p.IsEmpty() || p.Colour != that.turn {
			continue
		}

		candidates := p.ReservedSteps(from).Union(p.Hits(from))
		if p.Kind == King {
			candidates.Add(from.offset(0, 2))
			candidates.Add(from.offset(0, -2))
		}

		for _, to := range candidates.Coords() {
			if that.CheckTurn(from, to) != Correct {
				continue
			}

			if p.Kind == Pawn && to.Row == promotionRow(p.Colour) {
				for _, kind := range []Kind{Queen, Rook, Bishop, Knight} {
					if !fn(Move{From: from, To: to, Promotion: kind}) {
						return
					}
				}
				continue
			}

			if !fn(Move{From: from, To: to}) {
				return
			}
		}
	}
}

// Status classifies the position for the side to move.
func (that *Board) Status() Verdict {
	inCheck := that.InCheck(that.turn)

	if !that.hasLegalMove() {
		if inCheck {
			return mateFor(that.turn)
		}
		return stalemateFor(that.turn)
	}

	if inCheck {
		return Check
	}

	return Correct
}
