package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rocketscienceinc/chess-backend/internal/apperror"
	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

var ErrGameNotFound = errors.New("game not found")

type GameRepository interface {
	Create(ctx context.Context, game *entity.Game) error
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	AppendSnapshot(ctx context.Context, id, snapshot string) error
	History(ctx context.Context, id string) ([]string, error)
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbGame struct {
	client *redis.Client
}

func NewGameRepository(client *redis.Client) GameRepository {
	return &dbGame{
		client: client,
	}
}

func gameKey(id string) string {
	return "game:" + id
}

func historyKey(id string) string {
	return "game:" + id + ":history"
}

// Create - stores a new game record together with its initial snapshot.
func (that *dbGame) Create(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	created, err := that.client.SetNX(ctx, gameKey(game.ID), gameJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create game: %w", err)
	}

	if !created {
		return fmt.Errorf("%w: game id %s", apperror.ErrGameAlreadyExists, game.ID)
	}

	pipe := that.client.TxPipeline()
	pipe.Del(ctx, historyKey(game.ID))
	pipe.RPush(ctx, historyKey(game.ID), game.Snapshot())
	if _, err = pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to store initial snapshot: %w", err)
	}

	return nil
}

func (that *dbGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	err = that.client.Set(ctx, gameKey(game.ID), gameJSON, 0).Err()
	if err != nil {
		return fmt.Errorf("failed to set game: %w", err)
	}

	return nil
}

// AppendSnapshot - adds a board snapshot to the game history.
func (that *dbGame) AppendSnapshot(ctx context.Context, id, snapshot string) error {
	if err := that.client.RPush(ctx, historyKey(id), snapshot).Err(); err != nil {
		return fmt.Errorf("failed to append snapshot: %w", err)
	}

	return nil
}

// History - every snapshot of the game, oldest first.
func (that *dbGame) History(ctx context.Context, id string) ([]string, error) {
	snapshots, err := that.client.LRange(ctx, historyKey(id), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}

	if len(snapshots) == 0 {
		return nil, ErrGameNotFound
	}

	return snapshots, nil
}

func (that *dbGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	response, err := that.client.Get(ctx, gameKey(id)).Result()

	if errors.Is(err, redis.Nil) {
		return &entity.Game{}, ErrGameNotFound
	}

	if err != nil {
		return &entity.Game{}, fmt.Errorf("%w by id", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(response), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

// DeleteByID - removes the game, its history and the records of its players.
func (that *dbGame) DeleteByID(ctx context.Context, id string) error {
	keys := []string{gameKey(id), historyKey(id)}

	game, err := that.GetByID(ctx, id)
	if err != nil && !errors.Is(err, ErrGameNotFound) {
		return fmt.Errorf("failed to read game before delete: %w", err)
	}

	for _, player := range game.Players {
		keys = append(keys, playerKey(player.ID))
	}

	if err = that.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete game by ID: %w", err)
	}

	return nil
}
