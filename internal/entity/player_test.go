package entity

import (
	"strings"
	"testing"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeAddress(t *testing.T) {
	t.Run("Lowercases a valid address", func(t *testing.T) {
		addr, err := NormalizeAddress(" 0xABcd12 ")

		require.NoError(t, err)
		assert.Equal(t, "0xabcd12", addr)
	})

	t.Run("Rejects malformed addresses", func(t *testing.T) {
		for _, address := range []string{"", "0x", "abcd", "0xzz", "0x" + strings.Repeat("a", 65)} {
			_, err := NormalizeAddress(address)
			assert.ErrorIs(t, err, apperror.ErrInvalidAddress, "address %q", address)
		}
	})
}

func TestShortAddress(t *testing.T) {
	assert.Equal(t, "0x1234...abcd", ShortAddress("0x1234567890abcd"))
	assert.Equal(t, "0x1", ShortAddress("0x1"))
}

func TestTransactions(t *testing.T) {
	t.Run("Default module is used when none is configured", func(t *testing.T) {
		tx := InitializeGameTx("", 2.5)

		assert.Equal(t, "0x1::mines_game::initialize_game", tx.Function)
		assert.Equal(t, []string{"2.5"}, tx.FunctionArguments)
	})

	t.Run("Reveal and cash out carry their arguments", func(t *testing.T) {
		reveal := RevealTileTx("0x2::mines", 1, 2)
		cashOut := CashOutTx("0x2::mines")

		assert.Equal(t, "0x2::mines::reveal_tile", reveal.Function)
		assert.Equal(t, []string{"1", "2"}, reveal.FunctionArguments)
		assert.Equal(t, "0x2::mines::cash_out", cashOut.Function)
		assert.Empty(t, cashOut.FunctionArguments)
	})
}
