package chess

const kingHomeCol = 4

// castlingRequest - the move is a king stepping two files from its home square.
func (that *Board) castlingRequest(from, to Coord) (bool, bool) {
	p := that.At(from)
	if p.Kind != King {
		return false, false
	}

	home := Coord{Row: p.Colour.homeRow(), Col: kingHomeCol}
	if from != home || to.Row != home.Row || abs(to.Col-from.Col) != 2 {
		return false, false
	}

	return to.Col > from.Col, true
}

// CanCastle reports whether the colour may castle on the given wing now.
func (that *Board) CanCastle(colour Colour, short bool) bool {
	row := colour.homeRow()
	kingAt := Coord{Row: row, Col: kingHomeCol}
	rookAt := rookHome(colour, wing(short))

	king := that.At(kingAt)
	if king.Kind != King || king.Colour != colour || king.Moved || that.castling.kingMoved[colour] {
		return false
	}

	rook := that.At(rookAt)
	if rook.Kind != Rook || rook.Colour != colour || rook.Moved || that.castling.rookMoved[colour][wing(short)] {
		return false
	}

	for _, c := range between(kingAt, rookAt) {
		if !that.At(c).IsEmpty() {
			return false
		}
	}

	dir := 1
	if !short {
		dir = -1
	}

	// start, transit and destination are three separate evaluations
	opponent := colour.Opposite()
	for _, c := range []Coord{kingAt, kingAt.offset(0, dir), kingAt.offset(0, 2*dir)} {
		if that.IsCellUnderAttack(c, opponent) {
			return false
		}
	}

	return true
}

// PerformCastle castles the side to move. The board is unchanged when
// castling is not allowed.
func (that *Board) PerformCastle(short bool) Verdict {
	colour := that.turn
	if !that.CanCastle(colour, short) {
		return InvalidCastling
	}

	dir := 1
	if !short {
		dir = -1
	}

	kingFrom := Coord{Row: colour.homeRow(), Col: kingHomeCol}
	kingTo := kingFrom.offset(0, 2*dir)
	rookFrom := rookHome(colour, wing(short))
	rookTo := kingFrom.offset(0, dir)

	king := that.At(kingFrom)
	rook := that.At(rookFrom)
	king.Moved = true
	rook.Moved = true

	that.set(kingFrom, Piece{})
	that.set(rookFrom, Piece{})
	that.set(kingTo, king)
	that.set(rookTo, rook)

	that.markMoved(kingFrom, king)
	that.markMoved(rookFrom, rook)

	that.enPassant = NoMove
	that.last = Turn{From: kingFrom, To: kingTo, Piece: king, Castling: true}
	that.turn = colour.Opposite()

	return Correct
}
