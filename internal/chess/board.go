package chess

import (
	"strings"
)

const (
	queenSide = 0
	kingSide  = 1
)

var backRank = [boardSize]Kind{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// castlingFlags - what has left its starting square, per colour.
type castlingFlags struct {
	kingMoved [2]bool
	rookMoved [2][2]bool // [colour][queenSide|kingSide]
}

// Turn records an applied move.
type Turn struct {
	From      Coord `json:"from"`
	To        Coord `json:"to"`
	Piece     Piece `json:"piece"`
	Captured  Piece `json:"captured"`
	Promotion Kind  `json:"promotion,omitempty"`
	Castling  bool  `json:"castling,omitempty"`
	EnPassant bool  `json:"en_passant,omitempty"`
}

func (that Turn) IsCapture() bool {
	return !that.Captured.IsEmpty()
}

// Board owns the 8x8 grid and the rule state around it.
// It is a plain value: copying a Board copies the whole position.
// A Board is not safe for concurrent use.
type Board struct {
	grid      [boardSize][boardSize]Piece
	turn      Colour
	castling  castlingFlags
	enPassant Coord
	last      Turn
}

// NewBoard - standard starting position, White to move.
func NewBoard() *Board {
	board := &Board{turn: White, enPassant: NoMove, last: Turn{From: NoMove, To: NoMove}}

	for col, kind := range backRank {
		board.grid[White.homeRow()][col] = NewPiece(kind, White)
		board.grid[pawnStartRow(White)][col] = NewPiece(Pawn, White)
		board.grid[pawnStartRow(Black)][col] = NewPiece(Pawn, Black)
		board.grid[Black.homeRow()][col] = NewPiece(kind, Black)
	}

	return board
}

// At - piece on the square; an empty piece for invalid coordinates.
func (that *Board) At(c Coord) Piece {
	if !c.Valid() {
		return Piece{}
	}
	return that.grid[c.Row][c.Col]
}

func (that *Board) set(c Coord, p Piece) {
	that.grid[c.Row][c.Col] = p
}

// Turn - the side to move.
func (that *Board) Turn() Colour {
	return that.turn
}

// EnPassantTarget - square a pawn may capture onto en passant, NoMove if none.
func (that *Board) EnPassantTarget() Coord {
	return that.enPassant
}

// LastTurn - the most recently applied move.
func (that *Board) LastTurn() Turn {
	return that.last
}

// CastlingRight - neither the king nor the rook of that wing has moved.
func (that *Board) CastlingRight(colour Colour, short bool) bool {
	return !that.castling.kingMoved[colour] && !that.castling.rookMoved[colour][wing(short)]
}

// Snapshot - canonical text form: one line per row starting at row 0,
// symbols separated by single spaces.
func (that *Board) Snapshot() string {
	var sb strings.Builder
	sb.Grow(boardSize * boardSize * 2)

	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			if col > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(that.grid[row][col].Symbol())
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

// Picture - rows for display, top line is row 7.
func (that *Board) Picture() []string {
	lines := strings.Split(strings.TrimSuffix(that.Snapshot(), "\n"), "\n")
	picture := make([]string, 0, len(lines))
	for row := len(lines) - 1; row >= 0; row-- {
		picture = append(picture, lines[row])
	}
	return picture
}

func (that *Board) findKing(colour Colour) (Coord, bool) {
	for row := 0; row < boardSize; row++ {
		for col := 0; col < boardSize; col++ {
			p := that.grid[row][col]
			if p.Kind == King && p.Colour == colour {
				return Coord{Row: row, Col: col}, true
			}
		}
	}
	return NoMove, false
}

func wing(short bool) int {
	if short {
		return kingSide
	}
	return queenSide
}

func rookHome(colour Colour, side int) Coord {
	if side == kingSide {
		return Coord{Row: colour.homeRow(), Col: boardSize - 1}
	}
	return Coord{Row: colour.homeRow(), Col: 0}
}

// markMoved - keeps the castling flags in step with pieces leaving or
// being taken on their home squares.
func (that *Board) markMoved(from Coord, p Piece) {
	switch p.Kind {
	case King:
		that.castling.kingMoved[p.Colour] = true
	case Rook:
		for _, side := range []int{queenSide, kingSide} {
			if from == rookHome(p.Colour, side) {
				that.castling.rookMoved[p.Colour][side] = true
			}
		}
	}
}
