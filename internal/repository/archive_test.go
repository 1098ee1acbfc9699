package repository

import (
	"testing"
	"time"

	"github.com/rocketscienceinc/chess-backend/internal/entity"
	"github.com/rocketscienceinc/chess-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArchiveRepository_Save(t *testing.T) {
	t.Run("Save_ThenFind", func(t *testing.T) {
		ctx, st := suite.NewArchive(t)

		archiveRepo := NewArchiveRepository(st.Connection)

		// Given: a finished game summary
		finishedAt := time.Date(2024, 5, 1, 12, 30, 0, 0, time.UTC)
		game := &entity.ArchivedGame{
			ID:         "123",
			Winner:     "black",
			Reason:     entity.ReasonCheckmate,
			Moves:      4,
			Snapshot:   "snapshot",
			FinishedAt: finishedAt,
		}

		// When: Save is called
		err := archiveRepo.Save(ctx, game)

		// Then: Find returns the same summary
		require.NoError(t, err)

		found, err := archiveRepo.Find(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, game.ID, found.ID)
		assert.Equal(t, game.Winner, found.Winner)
		assert.Equal(t, game.Reason, found.Reason)
		assert.Equal(t, game.Moves, found.Moves)
		assert.Equal(t, game.Snapshot, found.Snapshot)
		assert.True(t, finishedAt.Equal(found.FinishedAt))
	})

	t.Run("Save_ReplacesExisting", func(t *testing.T) {
		ctx, st := suite.NewArchive(t)

		archiveRepo := NewArchiveRepository(st.Connection)

		// Given: a stored summary
		game := &entity.ArchivedGame{ID: "123", Winner: "white", Reason: entity.ReasonResign, FinishedAt: time.Now().UTC()}
		require.NoError(t, archiveRepo.Save(ctx, game))

		// When: the same game is saved again with another result
		game.Winner = entity.ResultDraw
		game.Reason = entity.ReasonRepetition
		err := archiveRepo.Save(ctx, game)

		// Then: the newer result wins
		require.NoError(t, err)

		found, err := archiveRepo.Find(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, entity.ResultDraw, found.Winner)
		assert.Equal(t, entity.ReasonRepetition, found.Reason)
	})
}

func TestArchiveRepository_Find(t *testing.T) {
	ctx, st := suite.NewArchive(t)

	archiveRepo := NewArchiveRepository(st.Connection)

	// When: Find is called with an unknown ID
	found, err := archiveRepo.Find(ctx, "9999999")

	// Then: ErrArchiveNotFound is returned
	require.ErrorIs(t, err, ErrArchiveNotFound)
	assert.Nil(t, found)
}
