package wallet

import (
	"context"
	"testing"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("Connected account gets distinct hashes", func(t *testing.T) {
		// Given: a connected account
		w := NewLocalWallet()
		account, err := w.Connect(ctx, "0xABC")
		require.NoError(t, err)
		assert.Equal(t, "0xabc", account.Address)

		// When: submitting the same transaction twice
		first, err := w.SignAndSubmitTransaction(ctx, account.Address, entity.CashOutTx(""))
		require.NoError(t, err)
		second, err := w.SignAndSubmitTransaction(ctx, account.Address, entity.CashOutTx(""))
		require.NoError(t, err)

		// Then: both succeed with different 32 byte hashes
		assert.True(t, first.Success)
		assert.Len(t, first.Hash, 2+64)
		assert.NotEqual(t, first.Hash, second.Hash)
	})

	t.Run("Sender connected before a restart is accepted", func(t *testing.T) {
		// Given: a fresh wallet that never saw the account connect
		w := NewLocalWallet()

		// When: the account submits a transaction
		result, err := w.SignAndSubmitTransaction(ctx, "0xABC", entity.CashOutTx(""))

		// Then: it is applied and the account now has a sequence number
		require.NoError(t, err)
		assert.True(t, result.Success)

		account, err := w.Connect(ctx, "0xabc")
		require.NoError(t, err)
		assert.Equal(t, uint64(1), account.SequenceNumber)
	})

	t.Run("Malformed sender is rejected", func(t *testing.T) {
		w := NewLocalWallet()

		_, err := w.SignAndSubmitTransaction(ctx, "not-an-address", entity.CashOutTx(""))

		require.ErrorIs(t, err, apperror.ErrWalletNotConnected)
		require.ErrorIs(t, err, apperror.ErrInvalidAddress)
	})

	t.Run("Malformed address is rejected", func(t *testing.T) {
		_, err := NewLocalWallet().Connect(ctx, "abc")

		require.ErrorIs(t, err, apperror.ErrInvalidAddress)
	})
}
