package chess

// CheckTurn evaluates a move for the side to move without changing the board.
// Every rejection is reported as a verdict.
func (that *Board) CheckTurn(from, to Coord) Verdict {
	if !from.Valid() || !to.Valid() || from == to {
		return UnnaturalMove
	}

	mover := that.At(from)
	target := that.At(to)

	if mover.IsEmpty() || mover.Colour != that.turn {
		return UnnaturalMove
	}

	if short, ok := that.castlingRequest(from, to); ok {
		if !that.CanCastle(mover.Colour, short) {
			return InvalidCastling
		}
		return Correct
	}

	if !target.IsEmpty() && target.Colour == mover.Colour {
		return UnnaturalMove
	}

	if target.IsEmpty() {
		if !that.CheckMove(from, to) && !that.isEnPassant(from, to) {
			return UnnaturalMove
		}
	} else if !that.CheckAttack(from, to) {
		return UnnaturalMove
	}

	if !that.CheckChessValid(from, to) {
		return UnnaturalMove
	}

	return Correct
}

// CheckMove - a quiet move: `to` is a reserved step of the piece and
// nothing stands in between.
func (that *Board) CheckMove(from, to Coord) bool {
	p := that.At(from)
	if !p.ReservedSteps(from).Has(to) {
		return false
	}
	return that.pathClear(from, to)
}

// CheckAttack - the piece on `from` could capture on `to` by its capture
// geometry. Occupancy of `to` itself is not examined.
func (that *Board) CheckAttack(from, to Coord) bool {
	if !from.Valid() || !to.Valid() || from == to {
		return false
	}

	p := that.At(from)
	dRow, dCol := to.Row-from.Row, to.Col-from.Col

	switch p.Kind {
	case Pawn:
		return dRow == p.Colour.forward() && abs(dCol) == 1
	case Knight:
		return (abs(dRow) == 2 && abs(dCol) == 1) || (abs(dRow) == 1 && abs(dCol) == 2)
	case King:
		return abs(dRow) <= 1 && abs(dCol) <= 1
	case Rook:
		return (dRow == 0 || dCol == 0) && that.pathClear(from, to)
	case Bishop:
		return abs(dRow) == abs(dCol) && that.pathClear(from, to)
	case Queen:
		return (dRow == 0 || dCol == 0 || abs(dRow) == abs(dCol)) && that.pathClear(from, to)
	default:
		return false
	}
}

// CheckChessValid - playing the move does not leave the mover's king attacked.
func (that *Board) CheckChessValid(from, to Coord) bool {
	mover := that.At(from)
	if mover.IsEmpty() {
		return false
	}

	// evaluated on a copy, the receiver is never touched
	sim := *that
	sim.apply(from, to)

	king, ok := sim.findKing(mover.Colour)
	if !ok {
		return false
	}

	return !sim.IsCellUnderAttack(king, mover.Colour.Opposite())
}

// IsCellUnderAttack - some piece of colour `by` hits the cell along an open path.
func (that *Board) IsCellUnderAttack(cell Coord, by Colour) bool {
	if !cell.Valid() {
		return false
	}

	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			p := that.grid[row][col]
			if p.IsEmpty() || p.Colour != by {
				continue
			}

			from := Coord{Row: row, Col: col}
			if !p.Hits(from).Has(cell) {
				continue
			}
			if p.Kind.sliding() && !that.pathClear(from, cell) {
				continue
			}
			return true
		}
	}

	return false
}

// InCheck - the king of the colour is attacked.
func (that *Board) InCheck(colour Colour) bool {
	king, ok := that.findKing(colour)
	if !ok {
		return false
	}
	return that.IsCellUnderAttack(king, colour.Opposite())
}

// pathClear - every square strictly between the two is empty.
// Squares that are not on a common line have nothing in between.
func (that *Board) pathClear(from, to Coord) bool {
	for _, c := range between(from, to) {
		if !that.At(c).IsEmpty() {
			return false
		}
	}
	return true
}

func between(from, to Coord) []Coord {
	dRow, dCol := to.Row-from.Row, to.Col-from.Col
	if dRow != 0 && dCol != 0 && abs(dRow) != abs(dCol) {
		return nil
	}

	stepRow, stepCol := sign(dRow), sign(dCol)
	var squares []Coord
	for c := from.offset(stepRow, stepCol); c != to; c = c.offset(stepRow, stepCol) {
		squares = append(squares, c)
	}
	return squares
}

func (that *Board) isEnPassant(from, to Coord) bool {
	p := that.At(from)
	if p.Kind != Pawn || to != that.enPassant || !that.At(to).IsEmpty() {
		return false
	}
	if !that.CheckAttack(from, to) {
		return false
	}

	victim := that.At(Coord{Row: from.Row, Col: to.Col})
	return victim.Kind == Pawn && victim.Colour != p.Colour
}

// apply moves the piece without any validation and returns what was taken.
func (that *Board) apply(from, to Coord) (Piece, bool) {
	p := that.At(from)
	captured := that.At(to)
	enPassant := false

	if p.Kind == Pawn && from.Col != to.Col && captured.IsEmpty() {
		victim := Coord{Row: from.Row, Col: to.Col}
		captured = that.At(victim)
		that.set(victim, Piece{})
		enPassant = true
	}

	that.set(to, p)
	that.set(from, Piece{})

	return captured, enPassant
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}
