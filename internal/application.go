package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/mines-backend/internal/config"
	"github.com/rocketscienceinc/mines-backend/internal/repository"
	"github.com/rocketscienceinc/mines-backend/internal/repository/storage"
	"github.com/rocketscienceinc/mines-backend/internal/service"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
	"github.com/rocketscienceinc/mines-backend/transport/rest"
	"github.com/rocketscienceinc/mines-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

type repositories struct {
	players repository.PlayerRepository
	games   repository.GameRepository
	closer  io.Closer
}

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	repos, err := newRepositories(ctx, conf)
	if err != nil {
		return err
	}

	if repos.closer != nil {
		defer func() {
			if err = repos.closer.Close(); err != nil {
				log.Error("could not close storage", "error", err)
			}
		}()
	}

	ledger := newWallet(logger, conf)
	hub := websocket.NewHub(logger, conf.Ledger.CoinSymbol)

	authService := service.NewAuthService(conf.JWTSecretKey, conf.JWTTTL)
	playerService := service.NewPlayerService(logger, repos.players, ledger)
	gamePlayService := service.NewGamePlayService(logger, repos.players, repos.games, ledger, hub, service.GamePlayOptions{
		Config:         conf.GameConfig(),
		ContractModule: conf.Ledger.Module,
	})

	wsServer := websocket.New(logger, authService, gamePlayService, hub)
	handlers := rest.NewHandlers(logger, authService, playerService, gamePlayService, conf.Ledger.CoinSymbol)

	log.Info("Starting HTTP server", "port", conf.HTTPPort, "storage", conf.Storage, "ledger", conf.Ledger.Mode)

	if err = rest.Start(ctx, conf.HTTPPort, rest.NewRouter(handlers, wsServer)); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	log.Info("Application context canceled, shutting down")

	return nil
}

func newRepositories(ctx context.Context, conf *config.Config) (*repositories, error) {
	switch conf.Storage {
	case config.StorageRedis:
		redisAddrString := conf.Redis.GetRedisAddr()
		if redisAddrString == "" {
			return nil, ErrAddrNotFound
		}

		redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
		if err != nil {
			return nil, fmt.Errorf("could not connect to redis storage: %w", err)
		}

		return &repositories{
			players: repository.NewPlayerRepository(redisStorage.Connection, conf.Redis.RoundTTL),
			games:   repository.NewGameRepository(redisStorage.Connection, conf.Redis.RoundTTL),
			closer:  redisStorage,
		}, nil

	case config.StorageSQLite:
		sqliteStorage, err := storage.NewSQLiteStorage(conf.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("could not open sqlite storage: %w", err)
		}

		if err = sqliteStorage.Init(ctx); err != nil {
			_ = sqliteStorage.Close()
			return nil, fmt.Errorf("could not init sqlite storage: %w", err)
		}

		return &repositories{
			players: repository.NewSQLitePlayerRepository(sqliteStorage.Connection),
			games:   repository.NewSQLiteGameRepository(sqliteStorage.Connection),
			closer:  sqliteStorage,
		}, nil

	default:
		return &repositories{
			players: repository.NewMemoryPlayerRepository(),
			games:   repository.NewMemoryGameRepository(),
		}, nil
	}
}

func newWallet(logger *slog.Logger, conf *config.Config) wallet.Wallet {
	if conf.Ledger.Mode == config.LedgerRest {
		return wallet.NewRestWallet(logger.With("component", "wallet"), conf.Ledger.URL, conf.Ledger.Timeout)
	}

	return wallet.NewLocalWallet()
}
