package entity

import (
	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
)

type Player struct {
	ID     string `json:"id"`
	GameID string `json:"game_id,omitempty"`
	Colour string `json:"colour,omitempty"`
}

// Side - colour the player plays in its current game.
func (that *Player) Side() (chess.Colour, error) {
	if that.GameID == "" {
		return chess.White, apperror.ErrNotInGame
	}

	return chess.ParseColour(that.Colour)
}

// Leave - detaches the player from its game.
func (that *Player) Leave() {
	that.GameID = ""
	that.Colour = ""
}
