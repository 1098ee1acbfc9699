package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
)

var ErrArchiveNotFound = errors.New("archived game not found")

type ArchiveRepository interface {
	Save(ctx context.Context, game *entity.ArchivedGame) error
	Find(ctx context.Context, id string) (*entity.ArchivedGame, error)
}

type dbArchive struct {
	db *sql.DB
}

func NewArchiveRepository(db *sql.DB) ArchiveRepository {
	return &dbArchive{
		db: db,
	}
}

// Save - stores the summary, replacing an earlier one with the same id.
func (that *dbArchive) Save(ctx context.Context, game *entity.ArchivedGame) error {
	query := `INSERT OR REPLACE INTO archived_games (id, winner, reason, moves, snapshot, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)`

	_, err := that.db.ExecContext(ctx, query,
		game.ID, game.Winner, game.Reason, game.Moves, game.Snapshot, game.FinishedAt)
	if err != nil {
		return fmt.Errorf("failed to archive game: %w", err)
	}

	return nil
}

func (that *dbArchive) Find(ctx context.Context, id string) (*entity.ArchivedGame, error) {
	query := `SELECT id, winner, reason, moves, snapshot, finished_at FROM archived_games WHERE id = ?`

	var game entity.ArchivedGame
	err := that.db.QueryRowContext(ctx, query, id).
		Scan(&game.ID, &game.Winner, &game.Reason, &game.Moves, &game.Snapshot, &game.FinishedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrArchiveNotFound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to find archived game: %w", err)
	}

	return &game, nil
}
