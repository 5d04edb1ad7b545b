package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"

	LedgerLocal = "local"
	LedgerRest  = "rest"
)

var (
	ErrUnknownStorage = errors.New("unknown storage")
	ErrUnknownLedger  = errors.New("unknown ledger mode")
	ErrMissingSecret  = errors.New("jwt secret key is empty")
	ErrMissingLedger  = errors.New("ledger url is empty")
)

type Config struct {
	LogLevel     string        `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string        `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage      string        `yaml:"storage" env:"STORAGE" env-default:"memory"`
	SQLitePath   string        `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:":memory:"`
	Redis        Redis         `yaml:"redis"`
	JWTSecretKey string        `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	JWTTTL       time.Duration `yaml:"jwt-ttl" env:"JWT_TTL" env-default:"24h"`
	Ledger       Ledger        `yaml:"ledger"`
	Game         Game          `yaml:"game"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	RoundTTL time.Duration `yaml:"round-ttl" env:"REDIS_ROUND_TTL" env-default:"1h"`
}

type Ledger struct {
	Mode       string        `yaml:"mode" env:"LEDGER_MODE" env-default:"local"`
	URL        string        `yaml:"url" env:"LEDGER_URL"`
	Module     string        `yaml:"module" env:"LEDGER_MODULE" env-default:"0x1::mines_game"`
	CoinSymbol string        `yaml:"coin-symbol" env:"LEDGER_COIN_SYMBOL" env-default:"APT"`
	Timeout    time.Duration `yaml:"timeout" env:"LEDGER_TIMEOUT" env-default:"10s"`
}

type Game struct {
	GridSize      int `yaml:"grid-size" env:"GAME_GRID_SIZE" env-default:"3"`
	MineCount     int `yaml:"mine-count" env:"GAME_MINE_COUNT" env-default:"1"`
	TargetReveals int `yaml:"target-reveals" env:"GAME_TARGET_REVEALS" env-default:"4"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, that.Storage)
	}

	switch that.Ledger.Mode {
	case LedgerLocal:
	case LedgerRest:
		if that.Ledger.URL == "" {
			return ErrMissingLedger
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLedger, that.Ledger.Mode)
	}

	if that.JWTSecretKey == "" {
		return ErrMissingSecret
	}

	if err := that.GameConfig().Validate(); err != nil {
		return fmt.Errorf("failed to validate game config: %w", err)
	}

	return nil
}

func (that *Config) GameConfig() entity.GameConfig {
	return entity.GameConfig{
		GridSize:      that.Game.GridSize,
		MineCount:     that.Game.MineCount,
		TargetReveals: that.Game.TargetReveals,
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
