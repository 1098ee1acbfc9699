package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/chess"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/internal/pkg"
	"github.com/rocketscienceinc/chess-backend/internal/repository"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	AppendSnapshot(ctx context.Context, id, snapshot string) error
	History(ctx context.Context, id string) ([]string, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type archiveRepo interface {
	Save(ctx context.Context, game *entity.ArchivedGame) error
	Find(ctx context.Context, id string) (*entity.ArchivedGame, error)
}

// GameManager - runs games between players. Operations on one game are
// serialised; different games proceed in parallel.
type GameManager struct {
	logger      *slog.Logger
	playerRepo  playerRepo
	gameRepo    gameRepo
	archiveRepo archiveRepo

	now func() time.Time

	locksMutex sync.Mutex
	locks      map[string]*sync.Mutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, archiveRepo archiveRepo) *GameManager {
	return &GameManager{
		logger: logger,

		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		archiveRepo: archiveRepo,

		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

// MakeTurn - plays a move typed by the player. Moves the rules refuse come
// back as a verdict with a nil error and leave the game untouched.
func (that *GameManager) MakeTurn(ctx context.Context, playerID, notation string) (*entity.Game, chess.Verdict, error) {
	log := that.logger.With("method", "MakeTurn", "playerID", playerID)

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, chess.UnnaturalMove, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, chess.UnnaturalMove, apperror.ErrNotInGame
	}

	unlock := that.lockGame(player.GameID)
	defer unlock()

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, chess.UnnaturalMove, fmt.Errorf("failed get game: %w", err)
	}

	if err = game.ConfirmOngoingState(); err != nil {
		return game, chess.UnnaturalMove, err
	}

	side, err := player.Side()
	if err != nil {
		return game, chess.UnnaturalMove, fmt.Errorf("failed to resolve player colour: %w", err)
	}

	tracker, err := game.Restore()
	if err != nil {
		return game, chess.UnnaturalMove, err
	}

	if turn := tracker.Board().Turn(); turn != side {
		return game, chess.WrongTurn(turn), apperror.ErrNotYourTurn
	}

	move, err := chess.ParseMove(notation, side)
	if err != nil {
		return game, chess.UnnaturalMove, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	outcome, err := tracker.MakeMove(move)
	if err != nil {
		return game, chess.UnnaturalMove, fmt.Errorf("%w: %w", apperror.ErrInvalidMove, err)
	}

	if outcome.Verdict != chess.Correct {
		log.Debug("move rejected", "move", move.String(), "verdict", outcome.Verdict.String())
		return game, outcome.Verdict, nil
	}

	game.ApplyOutcome(tracker, move, outcome)
	verdict := reportedVerdict(outcome)

	if err = that.updateGame(ctx, game); err != nil {
		return nil, chess.UnnaturalMove, fmt.Errorf("failed update game: %w", err)
	}

	if err = that.gameRepo.AppendSnapshot(ctx, game.ID, game.Snapshot()); err != nil {
		return nil, chess.UnnaturalMove, fmt.Errorf("failed append snapshot: %w", err)
	}

	if game.IsFinished() {
		that.finishGame(ctx, game)

		return game, verdict, apperror.ErrGameFinished
	}

	return game, verdict, nil
}

// reportedVerdict - what the players are told about an accepted move.
func reportedVerdict(outcome chess.Outcome) chess.Verdict {
	if outcome.Status != chess.Correct {
		return outcome.Status
	}

	if outcome.Turn.Promotion != chess.Empty {
		return chess.Transformation
	}

	return chess.Correct
}

func (that *GameManager) ConnectToGame(ctx context.Context, gameID, playerID string) (*entity.Game, error) {
	unlock := that.lockGame(gameID)
	defer unlock()

	existingGame, err := that.getGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game by id: %w", err)
	}

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == existingGame.ID {
		return existingGame, nil
	}

	if player.GameID != "" {
		return nil, fmt.Errorf("%w: player is in game %s", apperror.ErrGameAlreadyExists, player.GameID)
	}

	if err = existingGame.AddPlayer(player); err != nil {
		return nil, fmt.Errorf("failed to join game %s: %w", gameID, err)
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player by id: %w", err)
	}

	if err = that.updateGame(ctx, existingGame); err != nil {
		return nil, fmt.Errorf("failed update game by id: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID != "" {
		existingGame, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, fmt.Errorf("failed get game: %w", err)
		}

		player.Leave()
	}

	newGame, err := that.createGame(ctx, player)
	if err != nil {
		return nil, fmt.Errorf("failed create game: %w", err)
	}

	return newGame, nil
}

// LeaveGame - the player quits. A started game is lost by resignation.
func (that *GameManager) LeaveGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNotInGame
	}

	unlock := that.lockGame(player.GameID)
	defer unlock()

	game, err := that.getGameByID(ctx, player.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed get game: %w", err)
	}

	if !game.IsOngoing() {
		game.Status = entity.StatusFinished
		that.deleteGame(ctx, game)

		return game, nil
	}

	side, err := player.Side()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve player colour: %w", err)
	}

	game.Resign(side)
	that.finishGame(ctx, game)

	return game, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed get player by id: %w", err)
	}

	if player.GameID == "" {
		return nil, apperror.ErrNotInGame
	}

	return that.getGameByID(ctx, player.GameID)
}

func (that *GameManager) GetGameByID(ctx context.Context, gameID string) (*entity.Game, error) {
	return that.getGameByID(ctx, gameID)
}

// History - board snapshots of a live game, oldest first.
func (that *GameManager) History(ctx context.Context, gameID string) ([]string, error) {
	history, err := that.gameRepo.History(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}

	return history, nil
}

// Archived - result of a finished game.
func (that *GameManager) Archived(ctx context.Context, gameID string) (*entity.ArchivedGame, error) {
	archived, err := that.archiveRepo.Find(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to find archived game: %w", err)
	}

	return archived, nil
}

func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		player, err := that.createPlayer(ctx, pkg.GenerateNewSessionID())
		if err != nil {
			return nil, fmt.Errorf("failed to create new player %w", err)
		}

		return player, nil
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		// records are dropped with their finished game
		return that.createPlayer(ctx, id)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id %w", err)
	}

	return player, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, err
	}

	newGame := entity.NewGame(gameID)
	if err = newGame.AddPlayer(player); err != nil {
		return nil, err
	}

	if err = that.gameRepo.Create(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, fmt.Errorf("failed update player: %w", err)
	}

	return newGame, nil
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

// finishGame - archives the result and drops the live records.
func (that *GameManager) finishGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "finishGame", "gameID", game.ID)

	if err := that.archiveRepo.Save(ctx, entity.NewArchivedGame(game, that.now())); err != nil {
		log.Error("failed to archive game", "error", err)
	}

	that.deleteGame(ctx, game)

	log.Info("game finished", "winner", game.Winner, "reason", game.Reason)
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	that.locksMutex.Lock()
	delete(that.locks, game.ID)
	that.locksMutex.Unlock()

	log.Info("game deleted")
}

// lockGame - takes the exclusive lock of one game and returns its release.
func (that *GameManager) lockGame(id string) func() {
	that.locksMutex.Lock()
	lock, ok := that.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		that.locks[id] = lock
	}
	that.locksMutex.Unlock()

	lock.Lock()

	return lock.Unlock
}

func (that *GameManager) createPlayer(ctx context.Context, id string) (*entity.Player, error) {
	player := &entity.Player{
		ID: id,
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
