package service

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/internal/repository"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestPlayerService_Connect(t *testing.T) {
	ctx := context.Background()

	t.Run("Creates a player on first connection", func(t *testing.T) {
		// Given: a wallet that knows the account and an empty player store
		w := &mockWallet{}
		w.On("Connect", mock.Anything, "0xABC").Return(&wallet.Account{Address: "0xabc"}, nil).Once()
		players := repository.NewMemoryPlayerRepository()
		svc := NewPlayerService(newTestLogger(), players, w)

		// When: connecting
		player, err := svc.Connect(ctx, "0xABC")

		// Then: the player is created with the account address as id
		require.NoError(t, err)
		assert.Equal(t, "0xabc", player.ID)

		stored, err := players.GetByID(ctx, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, player, stored)
		w.AssertExpectations(t)
	})

	t.Run("Returns the existing player with its round", func(t *testing.T) {
		w := &mockWallet{}
		w.On("Connect", mock.Anything, "0xabc").Return(&wallet.Account{Address: "0xabc"}, nil).Once()
		players := repository.NewMemoryPlayerRepository()
		require.NoError(t, players.CreateOrUpdate(ctx, &entity.Player{ID: "0xabc", GameID: "game-1"}))
		svc := NewPlayerService(newTestLogger(), players, w)

		player, err := svc.Connect(ctx, "0xabc")

		require.NoError(t, err)
		assert.Equal(t, "game-1", player.GameID)
	})

	t.Run("Wallet failure is returned", func(t *testing.T) {
		w := &mockWallet{}
		w.On("Connect", mock.Anything, "0xabc").Return(nil, apperror.ErrWalletNotConnected).Once()
		svc := NewPlayerService(newTestLogger(), repository.NewMemoryPlayerRepository(), w)

		player, err := svc.Connect(ctx, "0xabc")

		require.ErrorIs(t, err, apperror.ErrWalletNotConnected)
		assert.Nil(t, player)
	})
}
