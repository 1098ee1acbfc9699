package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
	StatusWaiting  = "waiting"

	ResultDraw = "draw"
)

const (
	ReasonCheckmate  = "checkmate"
	ReasonStalemate  = "stalemate"
	ReasonFiftyMoves = "fifty_moves"
	ReasonRepetition = "repetition"
	ReasonResign     = "resign"
)

const maxPlayers = 2

var (
	ErrUnknownGameStatus = errors.New("unknown game status")
	ErrGameIsFull        = errors.New("game already has two players")
)

type Game struct {
	ID        string             `json:"id"`
	Position  chess.Position     `json:"position"`
	Tracker   chess.TrackerState `json:"tracker"`
	Turn      string             `json:"turn"`
	Status    string             `json:"status"`
	Verdict   string             `json:"verdict,omitempty"`
	Winner    string             `json:"winner,omitempty"`
	Reason    string             `json:"reason,omitempty"`
	LastMove  string             `json:"last_move,omitempty"`
	MoveCount int                `json:"move_count"`
	Players   []*Player          `json:"players,omitempty"`
}

// NewGame - a game in the starting position waiting for a second player.
func NewGame(id string) *Game {
	tracker := chess.NewTracker(chess.NewBoard())

	game := &Game{
		ID:     id,
		Status: StatusWaiting,
	}
	game.Store(tracker)

	return game
}

// Restore - rebuilds the engine state kept in the record.
func (that *Game) Restore() (*chess.Tracker, error) {
	board, err := chess.NewBoardFromPosition(that.Position)
	if err != nil {
		return nil, fmt.Errorf("failed to restore game %s: %w", that.ID, err)
	}

	return chess.RestoreTracker(board, that.Tracker), nil
}

// Store - copies the engine state into the record.
func (that *Game) Store(tracker *chess.Tracker) {
	board := tracker.Board()

	that.Position = board.Position()
	that.Tracker = tracker.State()
	that.Turn = board.Turn().String()
}

// Snapshot - canonical board text of the stored position.
func (that *Game) Snapshot() string {
	return that.Position.Board
}

// ApplyOutcome - records an accepted move and finishes the game when it ends it.
func (that *Game) ApplyOutcome(tracker *chess.Tracker, move chess.Move, outcome chess.Outcome) {
	that.Store(tracker)
	that.MoveCount++
	that.LastMove = move.String()
	that.Verdict = outcome.Status.String()

	if winner, ok := outcome.Status.Winner(); ok {
		that.finish(winner.String(), ReasonCheckmate)
		return
	}

	switch outcome.Draw {
	case chess.DrawStalemate:
		that.finish(ResultDraw, ReasonStalemate)
	case chess.DrawRepetition:
		that.finish(ResultDraw, ReasonRepetition)
	case chess.DrawFiftyMoves:
		that.finish(ResultDraw, ReasonFiftyMoves)
	case chess.NoDraw:
	}
}

// Resign - the colour gives up and the opponent wins.
func (that *Game) Resign(colour chess.Colour) {
	that.finish(colour.Opposite().String(), ReasonResign)
}

func (that *Game) finish(winner, reason string) {
	that.Winner = winner
	that.Reason = reason
	that.Status = StatusFinished
	that.Turn = ""
}

// AddPlayer - seats the player on the free colour. The second player starts the game.
func (that *Game) AddPlayer(player *Player) error {
	if len(that.Players) >= maxPlayers {
		return fmt.Errorf("%w: game id %s", ErrGameIsFull, that.ID)
	}

	colour := chess.White
	if len(that.Players) == 1 {
		colour = chess.Black
		if that.Players[0].Colour == chess.Black.String() {
			colour = chess.White
		}
	}

	player.GameID = that.ID
	player.Colour = colour.String()
	that.Players = append(that.Players, player)

	if len(that.Players) == maxPlayers {
		that.Status = StatusOngoing
	}

	return nil
}

func (that *Game) PlayerByID(id string) (*Player, bool) {
	for _, player := range that.Players {
		if player.ID == id {
			return player, true
		}
	}

	return nil, false
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) IsWaiting() bool {
	return that.Status == StatusWaiting
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsWaiting():
		return apperror.ErrGameIsNotStarted
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}
