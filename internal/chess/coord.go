package chess

import (
	"math/bits"
	"strings"
)

const boardSize = 8

// Coord identifies a square: Row 0 is White's home rank, Col 0 is the a-file.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoMove - sentinel used by the notation parser when there is nothing to play.
var NoMove = Coord{Row: boardSize, Col: boardSize}

func (that Coord) Valid() bool {
	return that.Row >= 0 && that.Row < boardSize && that.Col >= 0 && that.Col < boardSize
}

// Index - deterministic hash of a valid coordinate in [0, 63].
func (that Coord) Index() int {
	return that.Row*boardSize + that.Col
}

func (that Coord) offset(dRow, dCol int) Coord {
	return Coord{Row: that.Row + dRow, Col: that.Col + dCol}
}

// String - algebraic name of the square, "e2" for (1,4).
func (that Coord) String() string {
	if !that.Valid() {
		return "-"
	}
	return string([]byte{byte('a' + that.Col), byte('1' + that.Row)})
}

// ParseCoord - reads an algebraic square name such as "e4".
func ParseCoord(square string) (Coord, bool) {
	square = strings.ToLower(strings.TrimSpace(square))
	if len(square) != 2 {
		return NoMove, false
	}

	coord := Coord{Row: int(square[1]) - '1', Col: int(square[0]) - 'a'}
	if !coord.Valid() {
		return NoMove, false
	}

	return coord, true
}

func coordFromIndex(idx int) Coord {
	return Coord{Row: idx / boardSize, Col: idx % boardSize}
}

// CoordSet is a set of squares keyed by Coord.Index.
type CoordSet uint64

func (that CoordSet) Has(c Coord) bool {
	if !c.Valid() {
		return false
	}
	return that&(1<<uint(c.Index())) != 0
}

func (that *CoordSet) Add(c Coord) {
	if c.Valid() {
		*that |= 1 << uint(c.Index())
	}
}

func (that CoordSet) Len() int {
	return bits.OnesCount64(uint64(that))
}

func (that CoordSet) Union(other CoordSet) CoordSet {
	return that | other
}

// Coords - members in ascending index order.
func (that CoordSet) Coords() []Coord {
	coords := make([]Coord, 0, that.Len())
	for rest := uint64(that); rest != 0; rest &= rest - 1 {
		coords = append(coords, coordFromIndex(bits.TrailingZeros64(rest)))
	}
	return coords
}
