package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rocketscienceinc/chess-backend/internal/repository"
)

type boardResponse struct {
	ID        string   `json:"id"`
	Board     string   `json:"board"`
	Picture   []string `json:"picture"`
	Turn      string   `json:"turn,omitempty"`
	Status    string   `json:"status"`
	Verdict   string   `json:"verdict,omitempty"`
	Winner    string   `json:"winner,omitempty"`
	Reason    string   `json:"reason,omitempty"`
	LastMove  string   `json:"last_move,omitempty"`
	MoveCount int      `json:"move_count"`
}

type historyResponse struct {
	ID        string   `json:"id"`
	Snapshots []string `json:"snapshots"`
}

type archiveResponse struct {
	ID         string    `json:"id"`
	Winner     string    `json:"winner"`
	Reason     string    `json:"reason"`
	Moves      int       `json:"moves"`
	Board      string    `json:"board"`
	FinishedAt time.Time `json:"finished_at"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *Server) boardHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "boardHandler")

	game, err := that.gameUseCase.GetGameByID(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	tracker, err := game.Restore()
	if err != nil {
		log.Error("failed to restore board", "gameID", game.ID, "error", err)
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, boardResponse{
		ID:        game.ID,
		Board:     game.Snapshot(),
		Picture:   tracker.Board().Picture(),
		Turn:      game.Turn,
		Status:    game.Status,
		Verdict:   game.Verdict,
		Winner:    game.Winner,
		Reason:    game.Reason,
		LastMove:  game.LastMove,
		MoveCount: game.MoveCount,
	})
}

func (that *Server) historyHandler(w http.ResponseWriter, r *http.Request) {
	gameID := r.PathValue("id")

	history, err := that.gameUseCase.History(r.Context(), gameID)
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, historyResponse{
		ID:        gameID,
		Snapshots: history,
	})
}

func (that *Server) archiveHandler(w http.ResponseWriter, r *http.Request) {
	archived, err := that.gameUseCase.Archived(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, err)
		return
	}

	that.writeJSON(w, http.StatusOK, archiveResponse{
		ID:         archived.ID,
		Winner:     archived.Winner,
		Reason:     archived.Reason,
		Moves:      archived.Moves,
		Board:      archived.Snapshot,
		FinishedAt: archived.FinishedAt,
	})
}

func (that *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrGameNotFound), errors.Is(err, repository.ErrArchiveNotFound):
		that.writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "error", err)
		that.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func (that *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
