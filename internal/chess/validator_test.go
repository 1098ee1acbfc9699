package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoard_DoTurn(t *testing.T) {
	t.Run("Pawn e2 e4 from the starting position", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: white pushes the e-pawn two squares
		verdict := board.DoTurn(Coord{Row: 1, Col: 4}, Coord{Row: 3, Col: 4})

		// Then: the move is accepted and black is to move
		require.Equal(t, Correct, verdict)
		assert.Equal(t, Black, board.Turn())
		assert.True(t, board.At(Coord{Row: 1, Col: 4}).IsEmpty())
		assert.Equal(t, NewPiece(Pawn, White), board.At(Coord{Row: 3, Col: 4}))
		assert.Equal(t, Coord{Row: 2, Col: 4}, board.EnPassantTarget())
	})

	t.Run("King onto its own pawn", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()
		before := board.Snapshot()

		// When: white moves the king onto e2
		verdict := board.DoTurn(Coord{Row: 0, Col: 4}, Coord{Row: 1, Col: 4})

		// Then: the move is rejected and nothing changes
		assert.Equal(t, UnnaturalMove, verdict)
		assert.Equal(t, before, board.Snapshot())
		assert.Equal(t, White, board.Turn())
	})

	t.Run("Moving the opponent's piece", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: white tries to move a black pawn
		verdict := board.DoTurn(sq(t, "e7"), sq(t, "e5"))

		// Then: it is rejected
		assert.Equal(t, UnnaturalMove, verdict)
	})

	t.Run("Coordinates outside the board", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: submitting the sentinel or a square off the grid
		// Then: the move is rejected
		assert.Equal(t, UnnaturalMove, board.DoTurn(NoMove, NoMove))
		assert.Equal(t, UnnaturalMove, board.DoTurn(sq(t, "e2"), Coord{Row: 8, Col: 4}))
		assert.Equal(t, UnnaturalMove, board.DoTurn(sq(t, "e2"), sq(t, "e2")))
	})

	t.Run("Turn alternates after every accepted move", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		for _, text := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4"} {
			before := board.Turn()

			// When: an accepted move is played
			play(t, board, text)

			// Then: the side to move changes
			assert.NotEqual(t, before, board.Turn(), text)
		}
	})

	t.Run("Pawn captures diagonally", func(t *testing.T) {
		// Given: pawns facing each other on e4 and d5
		board := NewBoard()
		play(t, board, "e2e4", "d7d5")

		// When: white takes on d5
		verdict := board.DoTurn(sq(t, "e4"), sq(t, "d5"))

		// Then: the black pawn is gone
		require.Equal(t, Correct, verdict)
		last := board.LastTurn()
		assert.True(t, last.IsCapture())
		assert.Equal(t, NewPiece(Pawn, Black), last.Captured)
		assert.Equal(t, NewPiece(Pawn, White), board.At(sq(t, "d5")))
	})

	t.Run("Pawn cannot capture straight ahead", func(t *testing.T) {
		// Given: pawns blocking each other on e4 and e5
		board := NewBoard()
		play(t, board, "e2e4", "e7e5")

		// When: white pushes into the black pawn
		verdict := board.DoTurn(sq(t, "e4"), sq(t, "e5"))

		// Then: it is rejected
		assert.Equal(t, UnnaturalMove, verdict)
	})

	t.Run("Pawn double step needs a free intermediate square", func(t *testing.T) {
		// Given: a black knight on e3 in front of the e-pawn
		board := boardFromPicture(t, White, "KQkq",
			"r . b q k b n r",
			"p p p p p p p p",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . n . . .",
			"P P P P P P P P",
			"R N B Q K B N R",
		)

		// When: white tries e2 e4
		verdict := board.CheckTurn(sq(t, "e2"), sq(t, "e4"))

		// Then: the jump over the knight is rejected
		assert.Equal(t, UnnaturalMove, verdict)
	})

	t.Run("Sliding pieces are blocked by adjacent pieces", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: sliding pieces try to pass through their own pawns
		// Then: every move is rejected although the squares are reserved steps
		assert.True(t, board.At(sq(t, "a1")).ReservedSteps(sq(t, "a1")).Has(sq(t, "a3")))
		assert.Equal(t, UnnaturalMove, board.CheckTurn(sq(t, "a1"), sq(t, "a3")))
		assert.Equal(t, UnnaturalMove, board.CheckTurn(sq(t, "f1"), sq(t, "c4")))
		assert.Equal(t, UnnaturalMove, board.CheckTurn(sq(t, "d1"), sq(t, "d7")))
		assert.False(t, board.CheckAttack(sq(t, "d1"), sq(t, "d7")))
		assert.Equal(t, Correct, board.CheckTurn(sq(t, "g1"), sq(t, "f3")))
	})
}

func TestBoard_CheckChessValid(t *testing.T) {
	t.Run("Pinned piece cannot leave the rank", func(t *testing.T) {
		// Given: a white bishop between its king and a black rook on the first rank
		board := boardFromPicture(t, White, "-",
			"k . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . K B . r",
		)
		before := board.Snapshot()

		// When: the bishop steps off the rank
		verdict := board.DoTurn(sq(t, "f1"), sq(t, "g2"))

		// Then: the move exposes the king and is rejected, the board is untouched
		assert.Equal(t, UnnaturalMove, verdict)
		assert.False(t, board.CheckChessValid(sq(t, "f1"), sq(t, "g2")))
		assert.Equal(t, before, board.Snapshot())
	})

	t.Run("King cannot step into an attacked square", func(t *testing.T) {
		// Given: a black rook controlling the second rank
		board := boardFromPicture(t, White, "-",
			"k . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			"r . . . . . . .",
			". . . . K . . .",
		)

		// When: the king tries to go up
		// Then: it is rejected, sideways is fine
		assert.Equal(t, UnnaturalMove, board.CheckTurn(sq(t, "e1"), sq(t, "e2")))
		assert.Equal(t, Correct, board.CheckTurn(sq(t, "e1"), sq(t, "f1")))
	})

	t.Run("Capturing the checking piece resolves check", func(t *testing.T) {
		// Given: a black queen giving check next to the white king
		board := boardFromPicture(t, White, "-",
			"k . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . q . . .",
			". . . . K . . .",
		)
		require.True(t, board.InCheck(White))

		// When: the king takes the unprotected queen
		verdict := board.DoTurn(sq(t, "e1"), sq(t, "e2"))

		// Then: the capture is legal
		assert.Equal(t, Correct, verdict)
		assert.False(t, board.InCheck(White))
	})

	t.Run("Attack lines stop at the first piece", func(t *testing.T) {
		// Given: a white pawn shielding the king from a black rook
		board := boardFromPicture(t, White, "-",
			"k . . . r . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . P . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . K . . .",
		)

		// When: checking whether the king square is attacked
		// Then: the pawn blocks the rook
		assert.False(t, board.IsCellUnderAttack(sq(t, "e1"), Black))
		assert.True(t, board.IsCellUnderAttack(sq(t, "e5"), Black))
		assert.False(t, board.IsCellUnderAttack(NoMove, Black))
	})
}

func TestBoard_EnPassant(t *testing.T) {
	t.Run("Capture on the square passed over", func(t *testing.T) {
		// Given: a white pawn on e5 and a black pawn that just moved d7 d5
		board := NewBoard()
		play(t, board, "e2e4", "a7a6", "e4e5", "d7d5")

		// When: white takes en passant
		verdict := board.DoTurn(sq(t, "e5"), sq(t, "d6"))

		// Then: the d5 pawn is removed
		require.Equal(t, Correct, verdict)
		assert.True(t, board.At(sq(t, "d5")).IsEmpty())
		assert.Equal(t, NewPiece(Pawn, White), board.At(sq(t, "d6")))
		assert.True(t, board.LastTurn().EnPassant)
		assert.True(t, board.LastTurn().IsCapture())
	})

	t.Run("Right expires after one move", func(t *testing.T) {
		// Given: the same position but white waits one move
		board := NewBoard()
		play(t, board, "e2e4", "a7a6", "e4e5", "d7d5", "h2h3", "a6a5")

		// When: white tries the capture now
		verdict := board.DoTurn(sq(t, "e5"), sq(t, "d6"))

		// Then: it is rejected
		assert.Equal(t, UnnaturalMove, verdict)
	})
}

func TestBoard_Status(t *testing.T) {
	t.Run("Fool's mate", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: the shortest mate is played
		play(t, board, "f2f3", "e7e5", "g2g4", "d8h4")

		// Then: white is mated and black wins
		status := board.Status()
		assert.Equal(t, WhiteMate, status)
		assert.True(t, status.Final())
		winner, ok := status.Winner()
		require.True(t, ok)
		assert.Equal(t, Black, winner)
		assert.Empty(t, board.LegalMoves())
	})

	t.Run("Stalemate", func(t *testing.T) {
		// Given: a black king in the corner and a white queen about to take its last square
		board := boardFromPicture(t, White, "-",
			". . . . . . . k",
			". . . . . K . .",
			". . . . . . . .",
			". . . . . . Q .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
		)

		// When: the queen goes to g6
		play(t, board, "g5g6")

		// Then: black has no legal move and is not in check
		assert.Equal(t, BlackStalemate, board.Status())
		assert.False(t, board.InCheck(Black))
		_, ok := board.Status().Winner()
		assert.False(t, ok)
	})

	t.Run("Check", func(t *testing.T) {
		// Given: an open e-file
		board := NewBoard()
		play(t, board, "e2e4", "f7f5", "d1h5")

		// When: classifying the position
		// Then: black is in check but can block
		assert.Equal(t, Check, board.Status())
	})

	t.Run("Twenty moves from the start", func(t *testing.T) {
		// Given: the starting position
		board := NewBoard()

		// When: listing legal moves
		moves := board.LegalMoves()

		// Then: sixteen pawn moves and four knight moves
		assert.Len(t, moves, 20)
		assert.Equal(t, Correct, board.Status())
	})
}
