package view

import (
	"fmt"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

const (
	TileHidden = "hidden"
	TileSafe   = "safe"
	TileMine   = "mine"

	lostBanner = "Game Over! Better luck next time!"
)

// Game is what a player sees of a round. Mine positions stay hidden until the
// round is over.
type Game struct {
	ID            string     `json:"id,omitempty"`
	Player        string     `json:"player"`
	Status        string     `json:"status"`
	BetAmount     float64    `json:"bet_amount"`
	RevealedCount int        `json:"revealed_count"`
	TargetReveals int        `json:"target_reveals"`
	Tiles         [][]string `json:"tiles"`
	IsGameOver    bool       `json:"is_game_over"`
	IsWinner      bool       `json:"is_winner"`
	Payout        float64    `json:"payout"`
	Banner        string     `json:"banner,omitempty"`
	Stats         *Stats     `json:"stats,omitempty"`
}

// Stats carries both the raw values and the strings shown on the stats panel.
type Stats struct {
	entity.Stats

	MultiplierText     string `json:"multiplier_text"`
	NextMultiplierText string `json:"next_multiplier_text"`
	ProbabilityText    string `json:"probability_text"`
}

func NewGame(game *entity.Game, coinSymbol string) *Game {
	view := &Game{
		ID:            game.ID,
		Player:        entity.ShortAddress(game.PlayerID),
		Status:        game.Status,
		BetAmount:     game.BetAmount,
		RevealedCount: game.RevealedCount,
		TargetReveals: game.Config.TargetReveals,
		Tiles:         tiles(game),
		IsGameOver:    game.IsGameOver,
		IsWinner:      game.IsWinner,
		Payout:        game.Payout,
		Banner:        Banner(game, coinSymbol),
	}

	if stats, err := game.Stats(); err == nil {
		view.Stats = &Stats{
			Stats:              stats,
			MultiplierText:     entity.FormatMultiplier(stats.Multiplier),
			NextMultiplierText: entity.FormatMultiplier(stats.NextMultiplier),
			ProbabilityText:    entity.FormatProbability(stats.Probability),
		}
	}

	return view
}

// Banner is the result line of a finished round, empty while playing.
func Banner(game *entity.Game, coinSymbol string) string {
	switch game.Status {
	case entity.StatusWon:
		return fmt.Sprintf("Congratulations! You won %s %s", entity.FormatPayout(game.Payout), coinSymbol)
	case entity.StatusLost:
		return lostBanner
	default:
		return ""
	}
}

func tiles(game *entity.Game) [][]string {
	size := game.Config.GridSize
	out := make([][]string, size)

	for row := range size {
		out[row] = make([]string, size)
		for col := range size {
			out[row][col] = tile(game, row, col)
		}
	}

	return out
}

func tile(game *entity.Game, row, col int) string {
	mine := game.IsMine(row, col)

	switch {
	case game.IsRevealed(row, col) && mine:
		return TileMine
	case game.IsRevealed(row, col):
		return TileSafe
	case game.IsGameOver && mine:
		return TileMine
	default:
		return TileHidden
	}
}
