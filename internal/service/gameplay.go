package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/internal/pkg"
	"github.com/rocketscienceinc/mines-backend/internal/repository"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
)

type GamePlayService interface {
	PlaceBet(ctx context.Context, playerID string, bet float64) (*entity.Game, error)
	RevealTile(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	CashOut(ctx context.Context, playerID string) (*entity.Game, error)
	GetState(ctx context.Context, playerID string) (*entity.Game, error)
}

// Renderer is told about every applied transition of a player's round.
type Renderer interface {
	Render(ctx context.Context, playerID string, game *entity.Game)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type transactionSubmitter interface {
	SignAndSubmitTransaction(ctx context.Context, sender string, tx entity.Transaction) (*wallet.TxResult, error)
}

type GamePlayOptions struct {
	Config         entity.GameConfig
	ContractModule string
	Random         entity.RandomSource
}

type gamePlayService struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo
	wallet     transactionSubmitter
	renderer   Renderer

	config entity.GameConfig
	module string
	random entity.RandomSource

	locks *keyedLocker
}

func NewGamePlayService(
	logger *slog.Logger,
	playerRepo playerRepo,
	gameRepo gameRepo,
	ledger transactionSubmitter,
	renderer Renderer,
	opts GamePlayOptions,
) GamePlayService {
	if opts.Random == nil {
		opts.Random = entity.GlobalRandom{}
	}

	return &gamePlayService{
		logger:     logger,
		playerRepo: playerRepo,
		gameRepo:   gameRepo,
		wallet:     ledger,
		renderer:   renderer,
		config:     opts.Config,
		module:     opts.ContractModule,
		random:     opts.Random,
		locks:      newKeyedLocker(),
	}
}

// PlaceBet starts a new round once the ledger has accepted the bet. The
// previous round, if finished, is discarded.
func (that *gamePlayService) PlaceBet(ctx context.Context, playerID string, bet float64) (*entity.Game, error) {
	log := that.logger.With("method", "PlaceBet", "player", entity.ShortAddress(playerID))

	if err := entity.ValidateBet(bet); err != nil {
		return nil, err
	}

	unlock := that.locks.Lock(playerID)
	defer unlock()

	player, err := that.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	previous, err := that.currentGame(ctx, player)
	if err != nil && !errors.Is(err, apperror.ErrNoActiveRound) {
		return nil, err
	}

	if previous != nil && previous.IsInProgress() {
		return previous, apperror.ErrRoundInProgress
	}

	if _, err = that.wallet.SignAndSubmitTransaction(ctx, player.ID, entity.InitializeGameTx(that.module, bet)); err != nil {
		log.Error("failed to initialize game on ledger", "error", err)
		return previous, fmt.Errorf("failed to initialize game: %w", err)
	}

	gameID, err := pkg.GenerateGameID()
	if err != nil {
		return nil, fmt.Errorf("error generating game ID: %w", err)
	}

	game := entity.NewGame(gameID, player.ID, that.config)
	if err = game.StartRound(bet, that.random); err != nil {
		return nil, fmt.Errorf("failed to start round: %w", err)
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	player.GameID = game.ID
	if err = that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to update player: %w", err)
	}

	if previous != nil {
		if err = that.gameRepo.DeleteByID(ctx, previous.ID); err != nil && !errors.Is(err, repository.ErrGameNotFound) {
			log.Warn("failed to delete previous game", "game", previous.ID, "error", err)
		}
	}

	log.Info("round started", "game", game.ID, "bet", bet)

	that.renderer.Render(ctx, player.ID, game)

	return game, nil
}

// RevealTile submits the reveal and applies it once the ledger accepts it.
// Reveals the round would ignore are not submitted and return the round as is.
func (that *gamePlayService) RevealTile(ctx context.Context, playerID string, row, col int) (*entity.Game, error) {
	log := that.logger.With("method", "RevealTile", "player", entity.ShortAddress(playerID))

	unlock := that.locks.Lock(playerID)
	defer unlock()

	game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !game.CanReveal(row, col) {
		return game, nil
	}

	if _, err = that.wallet.SignAndSubmitTransaction(ctx, playerID, entity.RevealTileTx(that.module, row, col)); err != nil {
		log.Error("failed to reveal tile on ledger", "row", row, "col", col, "error", err)
		return game, fmt.Errorf("failed to reveal tile: %w", err)
	}

	game.RevealTile(row, col)

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	if game.IsFinished() {
		log.Info("round finished", "game", game.ID, "status", game.Status, "payout", game.Payout)
	}

	that.renderer.Render(ctx, playerID, game)

	return game, nil
}

// CashOut ends a running round as a win once the ledger accepts it. A
// finished or missing round is returned as is.
func (that *gamePlayService) CashOut(ctx context.Context, playerID string) (*entity.Game, error) {
	log := that.logger.With("method", "CashOut", "player", entity.ShortAddress(playerID))

	unlock := that.locks.Lock(playerID)
	defer unlock()

	game, err := that.activeGame(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if !game.CanCashOut() {
		return game, nil
	}

	if _, err = that.wallet.SignAndSubmitTransaction(ctx, playerID, entity.CashOutTx(that.module)); err != nil {
		log.Error("failed to cash out on ledger", "error", err)
		return game, fmt.Errorf("failed to cash out: %w", err)
	}

	game.CashOut()

	if err = that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Info("round cashed out", "game", game.ID, "revealed", game.RevealedCount, "payout", game.Payout)

	that.renderer.Render(ctx, playerID, game)

	return game, nil
}

// GetState returns the player's current round, or an idle game when there is
// none.
func (that *gamePlayService) GetState(ctx context.Context, playerID string) (*entity.Game, error) {
	return that.activeGame(ctx, playerID)
}

// activeGame returns the player's current round. Without one it returns an idle
// game, on which every reveal and cash-out is a no-op.
func (that *gamePlayService) activeGame(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayer(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.currentGame(ctx, player)
	if errors.Is(err, apperror.ErrNoActiveRound) {
		return entity.NewGame("", player.ID, that.config), nil
	}

	return game, err
}

func (that *gamePlayService) getPlayer(ctx context.Context, playerID string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, playerID)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return nil, apperror.ErrWalletNotConnected
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *gamePlayService) currentGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		return nil, apperror.ErrNoActiveRound
	}

	game, err := that.gameRepo.GetByID(ctx, player.GameID)
	if errors.Is(err, repository.ErrGameNotFound) {
		return nil, apperror.ErrNoActiveRound
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}
