package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

type sqliteGame struct {
	conn *sql.DB
}

// NewSQLiteGameRepository stores rounds in the games table created by
// storage.SQLiteStorage.Init.
func NewSQLiteGameRepository(conn *sql.DB) GameRepository {
	return &sqliteGame{
		conn: conn,
	}
}

func (that *sqliteGame) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	gameJSON, err := json.Marshal(game)
	if err != nil {
		return fmt.Errorf("could not marshal game: %w", err)
	}

	query := `INSERT INTO games (id, player_id, status, data, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET status = excluded.status, data = excluded.data, updated_at = excluded.updated_at`

	_, err = that.conn.ExecContext(ctx, query, game.ID, game.PlayerID, game.Status, string(gameJSON), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("can't save game: %w", err)
	}

	return nil
}

func (that *sqliteGame) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	query := `SELECT data FROM games WHERE id = ?`

	var data string

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Game{}, ErrGameNotFound
	}
	if err != nil {
		return &entity.Game{}, fmt.Errorf("can't find game: %w", err)
	}

	var existingGame entity.Game
	if err = json.Unmarshal([]byte(data), &existingGame); err != nil {
		return &entity.Game{}, fmt.Errorf("failed to unmarshal game: %w", err)
	}

	return &existingGame, nil
}

func (that *sqliteGame) DeleteByID(ctx context.Context, id string) error {
	result, err := that.conn.ExecContext(ctx, `DELETE FROM games WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("can't delete game: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("can't delete game: %w", err)
	}

	if deleted == 0 {
		return ErrGameNotFound
	}

	return nil
}

type sqlitePlayer struct {
	conn *sql.DB
}

func NewSQLitePlayerRepository(conn *sql.DB) PlayerRepository {
	return &sqlitePlayer{
		conn: conn,
	}
}

func (that *sqlitePlayer) CreateOrUpdate(ctx context.Context, player *entity.Player) error {
	query := `INSERT INTO players (id, game_id) VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET game_id = excluded.game_id`

	_, err := that.conn.ExecContext(ctx, query, player.ID, player.GameID)
	if err != nil {
		return fmt.Errorf("can't save player: %w", err)
	}

	return nil
}

func (that *sqlitePlayer) GetByID(ctx context.Context, id string) (*entity.Player, error) {
	query := `SELECT id, game_id FROM players WHERE id = ?`

	var player entity.Player

	err := that.conn.QueryRowContext(ctx, query, id).Scan(&player.ID, &player.GameID)
	if errors.Is(err, sql.ErrNoRows) {
		return &entity.Player{}, ErrPlayerNotFound
	}
	if err != nil {
		return &entity.Player{}, fmt.Errorf("can't find player: %w", err)
	}

	return &player, nil
}
