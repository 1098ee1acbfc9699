package chess

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// boardFromPicture builds a board from display rows, row 7 first.
func boardFromPicture(t *testing.T, turn Colour, castling string, picture ...string) *Board {
	t.Helper()

	require.Len(t, picture, boardSize)

	rows := make([]string, 0, boardSize)
	for idx := len(picture) - 1; idx >= 0; idx-- {
		rows = append(rows, picture[idx])
	}

	board, err := NewBoardFromPosition(Position{
		Board:    strings.Join(rows, "\n") + "\n",
		Turn:     turn.Marker(),
		Castling: castling,
	})
	require.NoError(t, err)

	return board
}

func sq(t *testing.T, name string) Coord {
	t.Helper()

	c, ok := ParseCoord(name)
	require.True(t, ok, "bad square %q", name)
	return c
}

// play applies moves in coordinate notation and requires each to be accepted.
func play(t *testing.T, board *Board, moves ...string) {
	t.Helper()

	for _, text := range moves {
		move, err := ParseMove(text, board.Turn())
		require.NoError(t, err)

		verdict, err := board.DoTurnPromote(move.From, move.To, move.Promotion)
		require.NoError(t, err)
		require.Equal(t, Correct, verdict, "move %s", text)
	}
}
