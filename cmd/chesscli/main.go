package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/rocketscienceinc/chess-backend/internal/chess"
)

const exitCommand = "exit"

const files = "a b c d e f g h"

var verdictMessages = map[chess.Verdict]string{
	chess.WhiteMate:       "Checkmate! Black wins!",
	chess.BlackMate:       "Checkmate! White wins!",
	chess.WhiteStalemate:  "Stalemate! It's a draw.",
	chess.BlackStalemate:  "Stalemate! It's a draw.",
	chess.UnnaturalMove:   "Unnatural move! Please try again.",
	chess.Check:           "Check! Be careful, your king is in danger.",
	chess.InvalidCastling: "Invalid castling! The move is not allowed.",
	chess.Transformation:  "Pawn promoted!",
	chess.WhiteTurn:       "It's not your turn, black player!",
	chess.BlackTurn:       "It's not your turn, white player!",
}

var drawMessages = map[chess.DrawReason]string{
	chess.DrawFiftyMoves: "Fifty moves without a capture. It's a draw.",
	chess.DrawRepetition: "The position repeated three times. It's a draw.",
}

var (
	whitePieces = color.New(color.FgHiWhite, color.Bold)
	blackPieces = color.New(color.FgRed, color.Bold)
	labels      = color.New(color.FgCyan)
)

// main - two players share one terminal and type moves until the game ends or one types exit.
func main() {
	if err := run(os.Stdin, color.Output); err != nil {
		fmt.Fprintf(os.Stderr, "chesscli: %v\n", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	tracker := chess.NewTracker(chess.NewBoard())
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Moves look like e2 e4, e7e8q or O-O. Type %q to quit.\n", exitCommand)

	for {
		board := tracker.Board()
		printBoard(out, board)
		fmt.Fprintf(out, "%s to move: ", board.Turn())

		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		if strings.EqualFold(input, exitCommand) {
			fmt.Fprintln(out, "Bye!")
			return nil
		}

		move, err := chess.ParseMove(input, board.Turn())
		if err != nil {
			fmt.Fprintln(out, "Cannot read the move, try e2 e4, e7e8q or O-O.")
			continue
		}

		outcome, err := tracker.MakeMove(move)
		if err != nil {
			fmt.Fprintf(out, "Move refused: %v\n", err)
			continue
		}

		if outcome.Verdict != chess.Correct {
			fmt.Fprintln(out, verdictMessages[outcome.Verdict])
			continue
		}

		if outcome.Turn.Promotion != chess.Empty {
			fmt.Fprintln(out, verdictMessages[chess.Transformation])
		}

		if message, ok := verdictMessages[outcome.Status]; ok {
			fmt.Fprintln(out, message)
		}

		if message, ok := drawMessages[outcome.Draw]; ok {
			fmt.Fprintln(out, message)
		}

		if outcome.Finished() {
			printBoard(out, tracker.Board())
			return nil
		}
	}
}

func printBoard(out io.Writer, board *chess.Board) {
	fmt.Fprintln(out)

	for i, line := range board.Picture() {
		labels.Fprintf(out, "%d ", 8-i)

		for j := 0; j < len(line); j++ {
			symbol := line[j]
			switch {
			case symbol >= 'A' && symbol <= 'Z':
				whitePieces.Fprintf(out, "%c", symbol)
			case symbol >= 'a' && symbol <= 'z':
				blackPieces.Fprintf(out, "%c", symbol)
			default:
				fmt.Fprintf(out, "%c", symbol)
			}
		}

		fmt.Fprintln(out)
	}

	labels.Fprintf(out, "  %s\n\n", files)
}
