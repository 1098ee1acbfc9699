package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func play(t *testing.T, lines ...string) string {
	t.Helper()

	color.NoColor = true

	var out bytes.Buffer
	err := run(strings.NewReader(strings.Join(lines, "\n")+"\n"), &out)
	require.NoError(t, err)

	return out.String()
}

func TestRun(t *testing.T) {
	t.Run("Fool's mate ends the game", func(t *testing.T) {
		// When: playing the fool's mate
		out := play(t, "f2 f3", "e7 e5", "g2 g4", "d8 h4", "a2 a3")

		// Then: black wins and the loop stops
		assert.Contains(t, out, "Checkmate! Black wins!")
		assert.Equal(t, 1, strings.Count(out, "Checkmate!"))
	})

	t.Run("Exit quits", func(t *testing.T) {
		// When: typing exit straight away
		out := play(t, "exit", "e2 e4")

		// Then: the loop says goodbye and reads nothing more
		assert.Contains(t, out, "Bye!")
		assert.Equal(t, 1, strings.Count(out, "white to move"))
	})

	t.Run("Illegal and unreadable moves are explained", func(t *testing.T) {
		// When: typing a pawn triple step and garbage
		out := play(t, "e2 e5", "hello", "exit")

		// Then: both are refused with a message
		assert.Contains(t, out, "Unnatural move! Please try again.")
		assert.Contains(t, out, "Cannot read the move")
	})

	t.Run("Check is announced", func(t *testing.T) {
		// When: white gives check with the bishop
		out := play(t, "e2 e4", "d7 d6", "f1 b5", "exit")

		// Then: check is reported
		assert.Contains(t, out, "Check!")
	})

	t.Run("Board is drawn with labels", func(t *testing.T) {
		// When: quitting at once
		out := play(t, "exit")

		// Then: the starting position is shown with black on top
		assert.Contains(t, out, "8 r n b q k b n r")
		assert.Contains(t, out, "1 R N B Q K B N R")
		assert.Contains(t, out, files)
	})

	t.Run("End of input stops the loop", func(t *testing.T) {
		// When: the input ends without exit
		out := play(t, "e2 e4")

		// Then: black was asked to move and the loop returned
		assert.Contains(t, out, "black to move")
	})
}
