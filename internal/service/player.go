package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/internal/repository"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
)

type PlayerService interface {
	Connect(ctx context.Context, address string) (*entity.Player, error)
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type walletConnector interface {
	Connect(ctx context.Context, address string) (*wallet.Account, error)
}

type playerService struct {
	logger *slog.Logger

	playerRepo playerRepo
	wallet     walletConnector
}

func NewPlayerService(logger *slog.Logger, playerRepo playerRepo, ledger walletConnector) PlayerService {
	return &playerService{
		logger:     logger,
		playerRepo: playerRepo,
		wallet:     ledger,
	}
}

// Connect connects the wallet account and returns its player, creating one on
// the first connection.
func (that *playerService) Connect(ctx context.Context, address string) (*entity.Player, error) {
	log := that.logger.With("method", "Connect")

	account, err := that.wallet.Connect(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to connect wallet: %w", err)
	}

	player, err := that.playerRepo.GetByID(ctx, account.Address)
	if err == nil {
		return player, nil
	}

	if !errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	player = &entity.Player{ID: account.Address}
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	log.Info("new player connected", "player", entity.ShortAddress(player.ID))

	return player, nil
}

func (that *playerService) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	existingPlayer, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return existingPlayer, nil
}
