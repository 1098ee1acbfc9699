package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func castlingBoard(t *testing.T, firstRank string, eighthRank string) *Board {
	t.Helper()

	return boardFromPicture(t, White, "KQkq",
		eighthRank,
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		firstRank,
	)
}

func TestBoard_Castling(t *testing.T) {
	t.Run("Short castling relocates king and rook", func(t *testing.T) {
		// Given: a clear path between the white king and the h1 rook
		board := castlingBoard(t, "R . . . K . . R", "r . . . k . . r")

		// When: the king steps two files towards the rook
		verdict := board.DoTurn(sq(t, "e1"), sq(t, "g1"))

		// Then: king on g1, rook on f1, both marked moved
		require.Equal(t, Correct, verdict)
		king := board.At(sq(t, "g1"))
		rook := board.At(sq(t, "f1"))
		assert.Equal(t, King, king.Kind)
		assert.True(t, king.Moved)
		assert.Equal(t, Rook, rook.Kind)
		assert.True(t, rook.Moved)
		assert.True(t, board.At(sq(t, "e1")).IsEmpty())
		assert.True(t, board.At(sq(t, "h1")).IsEmpty())
		assert.True(t, board.LastTurn().Castling)
		assert.False(t, board.CastlingRight(White, true))
		assert.False(t, board.CastlingRight(White, false))
		assert.Equal(t, Black, board.Turn())
	})

	t.Run("Long castling relocates king and rook", func(t *testing.T) {
		// Given: black to move with a clear queen side
		board := castlingBoard(t, "R . . . K . . R", "r . . . k . . r")
		play(t, board, "a1a2")

		// When: black castles long
		verdict := board.DoTurn(sq(t, "e8"), sq(t, "c8"))

		// Then: king on c8, rook on d8
		require.Equal(t, Correct, verdict)
		king := board.At(sq(t, "c8"))
		assert.Equal(t, King, king.Kind)
		assert.Equal(t, Black, king.Colour)
		assert.Equal(t, Rook, board.At(sq(t, "d8")).Kind)
		assert.True(t, board.At(sq(t, "a8")).IsEmpty())
	})

	t.Run("Rejected when the rook has moved", func(t *testing.T) {
		// Given: the h1 rook went away and came back
		board := castlingBoard(t, "R . . . K . . R", "r . . . k . . r")
		play(t, board, "h1h2", "a8a7", "h2h1", "a7a8")

		// When: white tries to castle short
		verdict := board.DoTurn(sq(t, "e1"), sq(t, "g1"))

		// Then: castling is refused, the long side is still available
		assert.Equal(t, InvalidCastling, verdict)
		assert.True(t, board.CanCastle(White, false))
	})

	t.Run("Rejected when the king has moved", func(t *testing.T) {
		// Given: the white king went away and came back
		board := castlingBoard(t, "R . . . K . . R", "r . . . k . . r")
		play(t, board, "e1e2", "e8e7", "e2e1", "e7e8")

		// When: white tries to castle on either side
		// Then: both are refused
		assert.Equal(t, InvalidCastling, board.DoTurn(sq(t, "e1"), sq(t, "g1")))
		assert.Equal(t, InvalidCastling, board.DoTurn(sq(t, "e1"), sq(t, "c1")))
	})

	t.Run("Rejected when a square in between is occupied", func(t *testing.T) {
		// Given: a knight on b1 and a bishop on g1
		board := castlingBoard(t, "R N . . K . B R", "r . . . k . . r")

		// When: white tries both castlings
		// Then: both are refused
		assert.Equal(t, InvalidCastling, board.CheckTurn(sq(t, "e1"), sq(t, "c1")))
		assert.Equal(t, InvalidCastling, board.CheckTurn(sq(t, "e1"), sq(t, "g1")))
	})

	t.Run("Rejected when the king is in check", func(t *testing.T) {
		// Given: a black rook on the e-file
		board := castlingBoard(t, "R . . . K . . R", "r . . . r . k .")

		// When: white tries to castle
		verdict := board.CheckTurn(sq(t, "e1"), sq(t, "g1"))

		// Then: castling out of check is refused
		assert.Equal(t, InvalidCastling, verdict)
	})

	t.Run("Rejected when the transit square is attacked", func(t *testing.T) {
		// Given: a black rook on the f-file
		board := castlingBoard(t, "R . . . K . . R", "r . . . k r . .")

		// When: white tries to castle short
		// Then: passing over f1 is refused, long castling is fine
		assert.Equal(t, InvalidCastling, board.CheckTurn(sq(t, "e1"), sq(t, "g1")))
		assert.Equal(t, Correct, board.CheckTurn(sq(t, "e1"), sq(t, "c1")))
	})

	t.Run("Rejected when the destination is attacked", func(t *testing.T) {
		// Given: a black rook on the g-file
		board := castlingBoard(t, "R . . . K . . R", "r . . . k . r .")

		// When: white tries to castle short
		verdict := board.CheckTurn(sq(t, "e1"), sq(t, "g1"))

		// Then: it is refused
		assert.Equal(t, InvalidCastling, verdict)
	})

	t.Run("Attacked b1 does not stop long castling", func(t *testing.T) {
		// Given: a black rook on the b-file
		board := castlingBoard(t, "R . . . K . . R", "r r . . k . . .")

		// When: white castles long
		verdict := board.CheckTurn(sq(t, "e1"), sq(t, "c1"))

		// Then: only the king's own path matters
		assert.Equal(t, Correct, verdict)
	})

	t.Run("Capturing a rook on its home square removes the right", func(t *testing.T) {
		// Given: a white bishop aiming at the h8 rook
		board := boardFromPicture(t, White, "KQkq",
			"r . . . k . . r",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". B . . . . . .",
			"R . . . K . . R",
		)

		// When: the bishop takes the rook
		play(t, board, "b2h8")

		// Then: black can no longer castle short
		assert.False(t, board.CastlingRight(Black, true))
		assert.True(t, board.CastlingRight(Black, false))
		assert.Equal(t, "KQq", board.Position().Castling)
	})
}
