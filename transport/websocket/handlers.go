package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

func decodePayload(msg *Message) (Payload, error) {
	var payloadReq Payload

	if err := json.Unmarshal(msg.Payload, &payloadReq); err != nil {
		return Payload{}, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payloadReq, nil
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Player is required")
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get", "player", err)

		return sendErrorResponse(conn, msg.Action, "failed to create a new player")
	}

	that.register(player.ID, conn)

	payloadResp := Payload{
		Player: player,
	}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("failed to get the game of a returning player", "gameID", player.GameID, "error", err)
		} else {
			payloadResp.Game = newGameView(game)
		}
	}

	if err = sendMessage(conn, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.register(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to create or get", "error", err)
		return sendErrorResponse(conn, msg.Action, "failed to create a new game")
	}

	that.broadcast(msg.Action, game, Payload{})

	log.Info("player is in game", "gameID", game.ID)

	return nil
}

func (that *Server) handleJoinGame(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleJoinGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Game == nil || payloadReq.Game.ID == "" {
		log.Error("Game is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Game is required")
	}

	that.register(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, err := that.gameUseCase.ConnectToGame(ctx, payloadReq.Game.ID, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to join game", "error", err)
		return sendErrorResponse(conn, msg.Action, fmt.Sprintf("game %s: %v", payloadReq.Game.ID, err))
	}

	that.broadcast(msg.Action, game, Payload{})

	log.Info("Player joined game", "gameID", game.ID)

	return nil
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameTurn")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Player is required")
	}

	if payloadReq.Move == "" {
		log.Error("Move is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Move is required")
	}

	that.register(payloadReq.Player.ID, conn)

	log = log.With("playerID", payloadReq.Player.ID)

	game, verdict, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, payloadReq.Move)

	switch {
	case errors.Is(err, apperror.ErrGameFinished) && verdict != chess.UnnaturalMove:
		that.broadcast(msg.Action, game, Payload{Move: game.LastMove, Verdict: verdict.String()})
		log.Info("Game finished", "gameID", game.ID, "winner", game.Winner, "reason", game.Reason)

		return nil
	case errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrInvalidMove),
		errors.Is(err, apperror.ErrNotInGame),
		errors.Is(err, apperror.ErrGameIsNotStarted),
		errors.Is(err, apperror.ErrGameFinished):
		return sendMessage(conn, msg.Action, Payload{Move: payloadReq.Move, Verdict: verdict.String(), Error: err.Error()})
	case err != nil:
		log.Error("failed to make turn", "error", err)
		return sendErrorResponse(conn, msg.Action, "failed to make turn")
	}

	if verdict.Rejected() {
		player, _ := game.PlayerByID(payloadReq.Player.ID)

		return sendMessage(conn, msg.Action, Payload{
			Player:  player,
			Game:    newGameView(game),
			Move:    payloadReq.Move,
			Verdict: verdict.String(),
		})
	}

	that.broadcast(msg.Action, game, Payload{Move: game.LastMove, Verdict: verdict.String()})

	log.Info("Player made a turn", "gameID", game.ID, "move", game.LastMove, "verdict", verdict.String())

	return nil
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, conn *connection) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		log.Error("Player is missing in payload")
		return sendErrorResponse(conn, msg.Action, "Player is required")
	}

	that.register(payloadReq.Player.ID, conn)

	game, err := that.gameUseCase.LeaveGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to leave game", "error", err)
		return sendErrorResponse(conn, msg.Action, "game doesn't exist")
	}

	that.broadcast(msg.Action, game, Payload{})

	log.Info("Player leaving", "gameID", game.ID)

	return nil
}

// broadcast - sends the game state to every seated player that is connected.
func (that *Server) broadcast(action string, game *entity.Game, payload Payload) {
	log := that.logger.With("method", "broadcast", "gameID", game.ID)

	for _, player := range game.Players {
		conn, ok := that.connection(player.ID)
		if !ok {
			log.Warn("connection not found for player", "playerID", player.ID)
			continue
		}

		payload.Player = player
		payload.Game = newGameView(game)

		if err := sendMessage(conn, action, payload); err != nil {
			log.Error("failed to send game update", "playerID", player.ID, "error", err)
		}
	}
}

func (that *Server) handleDisconnect(conn *connection) {
	log := that.logger.With("method", "handleDisconnect")

	that.connectionsMutex.Lock()
	defer that.connectionsMutex.Unlock()

	for playerID, registered := range that.connections {
		if registered == conn {
			delete(that.connections, playerID)
			log.Info("player disconnected", "playerID", playerID)
		}
	}
}

func sendErrorResponse(conn *connection, action, errorMsg string) error {
	if err := sendMessage(conn, action, Payload{Error: errorMsg}); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}
