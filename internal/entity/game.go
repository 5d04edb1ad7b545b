package entity

import (
	"fmt"
	"math"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
)

const (
	StatusIdle       = "idle"
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusLost       = "lost"
)

// Game is one player's round of Mines.
//
// Grid is fixed when the round starts. Revealed only ever gains true cells and
// RevealedCount always equals the number of true cells in it. IsGameOver is set
// once per round and IsWinner is meaningful only after that.
type Game struct {
	ID            string     `json:"id"`
	PlayerID      string     `json:"player_id"`
	Config        GameConfig `json:"config"`
	Grid          [][]bool   `json:"grid"`
	Revealed      [][]bool   `json:"revealed"`
	BetAmount     float64    `json:"bet_amount"`
	RevealedCount int        `json:"revealed_count"`
	IsGameOver    bool       `json:"is_game_over"`
	IsWinner      bool       `json:"is_winner"`
	Status        string     `json:"status"`
	Payout        float64    `json:"payout"`
}

// NewGame returns an idle game: no bet, nothing to reveal.
func NewGame(id, playerID string, cfg GameConfig) *Game {
	return &Game{
		ID:       id,
		PlayerID: playerID,
		Config:   cfg,
		Grid:     newMatrix(cfg.GridSize),
		Revealed: newMatrix(cfg.GridSize),
		Status:   StatusIdle,
	}
}

// ValidateBet accepts only finite amounts greater than zero.
func ValidateBet(bet float64) error {
	if math.IsNaN(bet) || math.IsInf(bet, 0) || bet <= 0 {
		return fmt.Errorf("%w: %v", apperror.ErrInvalidBet, bet)
	}

	return nil
}

// StartRound discards whatever the previous round left behind and begins a new
// one with a freshly generated grid. Nothing changes when the bet is invalid
// or a round is still being played.
func (that *Game) StartRound(bet float64, rnd RandomSource) error {
	if err := ValidateBet(bet); err != nil {
		return err
	}

	if that.IsInProgress() {
		return apperror.ErrRoundInProgress
	}

	that.Grid = GenerateGrid(that.Config, rnd)
	that.Revealed = newMatrix(that.Config.GridSize)
	that.BetAmount = bet
	that.RevealedCount = 0
	that.IsGameOver = false
	that.IsWinner = false
	that.Payout = 0
	that.Status = StatusInProgress

	return nil
}

// CanReveal reports whether RevealTile(row, col) would change the game.
func (that *Game) CanReveal(row, col int) bool {
	if !that.IsInProgress() || !that.Config.inBounds(row, col) {
		return false
	}

	if that.RevealedCount >= that.Config.MaxReveals() {
		return false
	}

	return !that.Revealed[row][col]
}

// RevealTile opens a tile and reports whether anything changed. Reveals that
// are out of bounds, repeated, or made outside a running round are ignored.
func (that *Game) RevealTile(row, col int) bool {
	if !that.CanReveal(row, col) {
		return false
	}

	that.Revealed[row][col] = true
	that.RevealedCount++

	switch {
	case that.Grid[row][col]:
		that.finish(false)
	case that.RevealedCount >= that.Config.TargetReveals:
		that.finish(true)
	}

	return true
}

func (that *Game) CanCashOut() bool {
	return that.IsInProgress()
}

// CashOut ends a running round as a win and reports whether anything changed.
func (that *Game) CashOut() bool {
	if !that.CanCashOut() {
		return false
	}

	that.finish(true)

	return true
}

// Stats returns the stats for the current number of reveals.
func (that *Game) Stats() (Stats, error) {
	return that.Config.ComputeStats(that.RevealedCount)
}

// IsMine reports whether (row, col) hides a mine; false when out of bounds.
func (that *Game) IsMine(row, col int) bool {
	return that.Config.inBounds(row, col) && that.Grid[row][col]
}

func (that *Game) IsRevealed(row, col int) bool {
	return that.Config.inBounds(row, col) && that.Revealed[row][col]
}

func (that *Game) IsIdle() bool {
	return that.Status == StatusIdle
}

func (that *Game) IsInProgress() bool {
	return that.Status == StatusInProgress
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusLost
}

func (that *Game) finish(won bool) {
	that.IsGameOver = true
	that.IsWinner = won

	if !won {
		that.Status = StatusLost
		that.Payout = 0
		return
	}

	that.Status = StatusWon
	that.Payout = CalculatePayout(that.BetAmount, that.payoutMultiplier())
}

// payoutMultiplier is the multiplier the stats panel shows at the moment of
// winning, rounded to two decimals. When the target equals every safe cell the
// formula is undefined at the final count, so the last defined step is used.
func (that *Game) payoutMultiplier() float64 {
	count := min(that.RevealedCount, that.Config.MaxReveals()-1)

	stats, err := that.Config.ComputeStats(count)
	if err != nil {
		return 1
	}

	return roundTo(stats.Multiplier, 2)
}
