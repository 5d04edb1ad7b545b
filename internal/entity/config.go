package entity

import (
	"errors"
	"fmt"
)

const (
	DefaultGridSize      = 3
	DefaultMineCount     = 1
	DefaultTargetReveals = 4
)

var ErrInvalidGameConfig = errors.New("invalid game configuration")

// GameConfig describes the board of a round: an N×N grid hiding M mines, won
// automatically after T safe reveals.
type GameConfig struct {
	GridSize      int `json:"grid_size"`
	MineCount     int `json:"mine_count"`
	TargetReveals int `json:"target_reveals"`
}

func DefaultGameConfig() GameConfig {
	return GameConfig{
		GridSize:      DefaultGridSize,
		MineCount:     DefaultMineCount,
		TargetReveals: DefaultTargetReveals,
	}
}

// Cells returns N².
func (that GameConfig) Cells() int {
	return that.GridSize * that.GridSize
}

// MaxReveals returns the number of safe cells on the board. Once that many
// tiles are open only mines remain hidden.
func (that GameConfig) MaxReveals() int {
	return that.Cells() - that.MineCount
}

// Validate checks 0 < M < N² and 0 < T ≤ N² − M.
func (that GameConfig) Validate() error {
	if that.GridSize <= 0 {
		return fmt.Errorf("%w: grid size %d", ErrInvalidGameConfig, that.GridSize)
	}

	if that.MineCount <= 0 || that.MineCount >= that.Cells() {
		return fmt.Errorf("%w: mine count %d for %d cells", ErrInvalidGameConfig, that.MineCount, that.Cells())
	}

	if that.TargetReveals <= 0 || that.TargetReveals > that.MaxReveals() {
		return fmt.Errorf("%w: target reveals %d, max %d", ErrInvalidGameConfig, that.TargetReveals, that.MaxReveals())
	}

	return nil
}

func (that GameConfig) inBounds(row, col int) bool {
	return row >= 0 && row < that.GridSize && col >= 0 && col < that.GridSize
}
