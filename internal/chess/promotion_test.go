package chess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promotionBoard(t *testing.T, turn Colour) *Board {
	t.Helper()

	return boardFromPicture(t, turn, "-",
		". . . . . . . k",
		"P . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . .",
		". . . . . . . p",
		"K . . . . . . .",
	)
}

func TestBoard_DoTurnPromotion(t *testing.T) {
	t.Run("Pawn reaching the last rank becomes a queen", func(t *testing.T) {
		// Given: a white pawn on a7
		board := promotionBoard(t, White)

		// When: it advances to a8 without a choice
		verdict := board.DoTurn(sq(t, "a7"), sq(t, "a8"))

		// Then: a white queen stands on a8 immediately
		require.Equal(t, Correct, verdict)
		promoted := board.At(sq(t, "a8"))
		assert.Equal(t, Queen, promoted.Kind)
		assert.Equal(t, White, promoted.Colour)
		assert.Equal(t, Queen, board.LastTurn().Promotion)
		assert.Equal(t, Black, board.Turn())
	})

	t.Run("Black pawn promotes on row 0 to the chosen piece", func(t *testing.T) {
		// Given: a black pawn on h2 with black to move
		board := promotionBoard(t, Black)

		// When: it advances to h1 asking for a knight
		verdict, err := board.DoTurnPromote(sq(t, "h2"), sq(t, "h1"), Knight)

		// Then: a black knight stands on h1
		require.NoError(t, err)
		require.Equal(t, Correct, verdict)
		assert.Equal(t, Piece{Kind: Knight, Colour: Black, Moved: true}, board.At(sq(t, "h1")))
	})

	t.Run("King is not a promotion choice", func(t *testing.T) {
		// Given: a white pawn on a7
		board := promotionBoard(t, White)
		before := board.Snapshot()

		// When: asking for a king
		verdict, err := board.DoTurnPromote(sq(t, "a7"), sq(t, "a8"), King)

		// Then: the request fails and the board is untouched
		require.ErrorIs(t, err, ErrInvalidPromotion)
		assert.Equal(t, UnnaturalMove, verdict)
		assert.Equal(t, before, board.Snapshot())
	})
}

func TestBoard_PromotePawn(t *testing.T) {
	t.Run("Fails without a pawn", func(t *testing.T) {
		// Given: an empty square
		board := promotionBoard(t, White)

		// When: promoting it
		err := board.PromotePawn(sq(t, "d4"), Queen)

		// Then: ErrNoPawn, an invalid argument
		assert.ErrorIs(t, err, ErrNoPawn)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Fails off the promotion rank", func(t *testing.T) {
		// Given: a white pawn on a7
		board := promotionBoard(t, White)

		// When: promoting it in place
		err := board.PromotePawn(sq(t, "a7"), Queen)

		// Then: ErrNotPromotionRank
		assert.ErrorIs(t, err, ErrNotPromotionRank)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("Fails for kinds a pawn cannot become", func(t *testing.T) {
		for _, kind := range []Kind{Empty, Pawn, King} {
			// Given: a white pawn already on a8
			board := boardFromPicture(t, Black, "-",
				"P . . . . . . k",
				". . . . . . . .",
				". . . . . . . .",
				". . . . . . . .",
				". . . . . . . .",
				". . . . . . . .",
				". . . . . . . .",
				"K . . . . . . .",
			)

			// When: promoting it to an invalid kind
			err := board.PromotePawn(sq(t, "a8"), kind)

			// Then: ErrInvalidPromotion and the pawn stays
			assert.ErrorIs(t, err, ErrInvalidPromotion, kind.String())
			assert.Equal(t, Pawn, board.At(sq(t, "a8")).Kind)
		}
	})

	t.Run("Keeps colour and position", func(t *testing.T) {
		// Given: a white pawn already on a8
		board := boardFromPicture(t, Black, "-",
			"P . . . . . . k",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			". . . . . . . .",
			"K . . . . . . .",
		)

		// When: promoting it to a rook
		err := board.PromotePawn(sq(t, "a8"), Rook)

		// Then: a white rook stands on a8
		require.NoError(t, err)
		assert.Equal(t, Rook, board.At(sq(t, "a8")).Kind)
		assert.Equal(t, White, board.At(sq(t, "a8")).Colour)
	})
}
