package entity

import "time"

// ArchivedGame - summary of a finished game kept after the live record is gone.
type ArchivedGame struct {
	ID         string    `json:"id"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Moves      int       `json:"moves"`
	Snapshot   string    `json:"snapshot"`
	FinishedAt time.Time `json:"finished_at"`
}

func NewArchivedGame(game *Game, finishedAt time.Time) *ArchivedGame {
	return &ArchivedGame{
		ID:         game.ID,
		Winner:     game.Winner,
		Reason:     game.Reason,
		Moves:      game.MoveCount,
		Snapshot:   game.Snapshot(),
		FinishedAt: finishedAt.UTC(),
	}
}
