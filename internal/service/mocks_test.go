package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
	"github.com/stretchr/testify/mock"
)

type mockWallet struct {
	mock.Mock
}

func (that *mockWallet) Connect(ctx context.Context, address string) (*wallet.Account, error) {
	args := that.Called(ctx, address)
	account, _ := args.Get(0).(*wallet.Account)
	return account, args.Error(1)
}

func (that *mockWallet) SignAndSubmitTransaction(ctx context.Context, sender string, tx entity.Transaction) (*wallet.TxResult, error) {
	args := that.Called(ctx, sender, tx)
	result, _ := args.Get(0).(*wallet.TxResult)
	return result, args.Error(1)
}

type mockRenderer struct {
	mock.Mock
}

func (that *mockRenderer) Render(ctx context.Context, playerID string, game *entity.Game) {
	that.Called(ctx, playerID, game)
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
