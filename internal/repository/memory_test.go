package repository

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryGameRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Stored round is a copy", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		// Given: a stored round
		game := newTestGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		// When: the caller keeps playing on its own value
		game.RevealTile(0, 0)
		game.RevealTile(0, 1)

		// Then: the stored round is unchanged
		stored, err := gameRepo.GetByID(ctx, game.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.RevealedCount)
		assert.False(t, stored.Revealed[0][0])
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()

		_, err := gameRepo.GetByID(ctx, "missing")

		require.ErrorIs(t, err, ErrGameNotFound)
	})

	t.Run("DeleteByID removes the round", func(t *testing.T) {
		gameRepo := NewMemoryGameRepository()
		game := newTestGame(t)
		require.NoError(t, gameRepo.CreateOrUpdate(ctx, game))

		require.NoError(t, gameRepo.DeleteByID(ctx, game.ID))

		_, err := gameRepo.GetByID(ctx, game.ID)
		require.ErrorIs(t, err, ErrGameNotFound)
		require.ErrorIs(t, gameRepo.DeleteByID(ctx, game.ID), ErrGameNotFound)
	})
}

func TestMemoryPlayerRepository(t *testing.T) {
	ctx := context.Background()
	playerRepo := NewMemoryPlayerRepository()

	// Given: a stored player
	player := &entity.Player{ID: "0xabc"}
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// When: the caller changes its copy and reads back
	player.GameID = "game-1"
	stored, err := playerRepo.GetByID(ctx, "0xabc")

	// Then: the store only sees saved changes
	require.NoError(t, err)
	assert.Empty(t, stored.GameID)

	_, err = playerRepo.GetByID(ctx, "0xdead")
	require.ErrorIs(t, err, ErrPlayerNotFound)
}
