package entity

import "math/rand/v2"

// RandomSource is the only source of randomness used for mine placement.
// *rand.Rand from math/rand/v2 satisfies it, so tests can pass a seeded one.
type RandomSource interface {
	IntN(n int) int
}

// GlobalRandom draws from the math/rand/v2 top-level generator, which is safe
// for concurrent use.
type GlobalRandom struct{}

func (GlobalRandom) IntN(n int) int {
	return rand.IntN(n) //nolint: gosec // mine placement is settled on-chain
}

// GenerateGrid places cfg.MineCount mines by rejection sampling: random
// (row, col) pairs are drawn and duplicates are discarded until every mine is
// placed. Every placement of M mines among N² cells is equally likely.
func GenerateGrid(cfg GameConfig, rnd RandomSource) [][]bool {
	grid := newMatrix(cfg.GridSize)

	placed := 0
	for placed < cfg.MineCount {
		row := rnd.IntN(cfg.GridSize)
		col := rnd.IntN(cfg.GridSize)

		if !grid[row][col] {
			grid[row][col] = true
			placed++
		}
	}

	return grid
}

func newMatrix(size int) [][]bool {
	matrix := make([][]bool, size)
	for i := range matrix {
		matrix[i] = make([]bool, size)
	}
	return matrix
}
