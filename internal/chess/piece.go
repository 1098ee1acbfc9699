package chess

import "fmt"

type Kind uint8

const (
	Empty Kind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

const emptySymbol = '.'

var kindNames = [...]string{"Empty", "Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

var kindSymbols = [...]byte{emptySymbol, 'P', 'N', 'B', 'R', 'Q', 'K'}

func (that Kind) String() string {
	if int(that) < len(kindNames) {
		return kindNames[that]
	}
	return fmt.Sprintf("kind(%d)", that)
}

// Promotable - a pawn may turn into this kind.
func (that Kind) Promotable() bool {
	switch that {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

func (that Kind) sliding() bool {
	return that == Bishop || that == Rook || that == Queen
}

// KindFromSymbol - reads a piece letter in either case.
func KindFromSymbol(symbol byte) (Kind, bool) {
	if symbol >= 'a' && symbol <= 'z' {
		symbol -= 'a' - 'A'
	}
	for kind, s := range kindSymbols {
		if s == symbol && kind != int(Empty) {
			return Kind(kind), true
		}
	}
	return Empty, false
}

var (
	knightOffsets = [][2]int{{-2, -1}, {-2, 1}, {-1, -2}, {-1, 2}, {1, -2}, {1, 2}, {2, -1}, {2, 1}}
	kingOffsets   = [][2]int{{-1, -1}, {-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 0}, {1, 1}}
	straightRays  = [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	diagonalRays  = [][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Piece is the content of a board cell. The zero value is an empty cell.
// Empty cells carry the zero colour; callers must not read meaning into it.
type Piece struct {
	Kind   Kind   `json:"kind"`
	Colour Colour `json:"colour"`
	Moved  bool   `json:"moved,omitempty"`
}

func NewPiece(kind Kind, colour Colour) Piece {
	return Piece{Kind: kind, Colour: colour}
}

func (that Piece) IsEmpty() bool {
	return that.Kind == Empty
}

func (that Piece) Name() string {
	return that.Kind.String()
}

// Symbol - uppercase for White, lowercase for Black, '.' for an empty cell.
func (that Piece) Symbol() byte {
	if that.IsEmpty() {
		return emptySymbol
	}

	symbol := kindSymbols[that.Kind]
	if that.Colour == Black {
		symbol += 'a' - 'A'
	}
	return symbol
}

// PieceFromSymbol - inverse of Symbol.
func PieceFromSymbol(symbol byte) (Piece, bool) {
	if symbol == emptySymbol {
		return Piece{}, true
	}

	kind, ok := KindFromSymbol(symbol)
	if !ok {
		return Piece{}, false
	}

	colour := White
	if symbol >= 'a' && symbol <= 'z' {
		colour = Black
	}
	return NewPiece(kind, colour), true
}

// ReservedSteps - destinations reachable from `from` ignoring occupancy.
// Sliding rays run to the board edge; blocking is resolved by the board.
func (that Piece) ReservedSteps(from Coord) CoordSet {
	var steps CoordSet
	if !from.Valid() {
		return steps
	}

	switch that.Kind {
	case Pawn:
		dir := that.Colour.forward()
		steps.Add(from.offset(dir, 0))
		if from.Row == pawnStartRow(that.Colour) {
			steps.Add(from.offset(2*dir, 0))
		}
	case Knight:
		steps = jumps(from, knightOffsets)
	case King:
		steps = jumps(from, kingOffsets)
	case Bishop:
		steps = rays(from, diagonalRays)
	case Rook:
		steps = rays(from, straightRays)
	case Queen:
		steps = rays(from, straightRays).Union(rays(from, diagonalRays))
	case Empty:
	}

	return steps
}

// Hits - squares the piece attacks. Same as ReservedSteps except for pawns.
func (that Piece) Hits(from Coord) CoordSet {
	if that.Kind != Pawn {
		return that.ReservedSteps(from)
	}

	var hits CoordSet
	if !from.Valid() {
		return hits
	}

	dir := that.Colour.forward()
	hits.Add(from.offset(dir, -1))
	hits.Add(from.offset(dir, 1))

	return hits
}

func pawnStartRow(colour Colour) int {
	if colour == White {
		return 1
	}
	return 6
}

func promotionRow(colour Colour) int {
	if colour == White {
		return boardSize - 1
	}
	return 0
}

func jumps(from Coord, offsets [][2]int) CoordSet {
	var set CoordSet
	for _, off := range offsets {
		set.Add(from.offset(off[0], off[1]))
	}
	return set
}

func rays(from Coord, dirs [][2]int) CoordSet {
	var set CoordSet
	for _, dir := range dirs {
		for next := from.offset(dir[0], dir[1]); next.Valid(); next = next.offset(dir[0], dir[1]) {
			set.Add(next)
		}
	}
	return set
}
