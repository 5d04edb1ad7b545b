package view

import (
	"testing"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mineAt places the single default mine at (row, col).
type mineAt struct {
	values []int
	pos    int
}

func (that *mineAt) IntN(int) int {
	v := that.values[that.pos%2]
	that.pos++
	return v
}

func newRound(t *testing.T) *entity.Game {
	t.Helper()

	game := entity.NewGame("game-1", "0x1234567890abcd", entity.DefaultGameConfig())
	require.NoError(t, game.StartRound(10, &mineAt{values: []int{2, 2}}))

	return game
}

func TestNewGame(t *testing.T) {
	t.Run("Hides the mine while playing", func(t *testing.T) {
		// Given: a round with one safe reveal
		game := newRound(t)
		game.RevealTile(0, 0)

		// When: building the view
		v := NewGame(game, "APT")

		// Then: only the revealed tile is shown
		assert.Equal(t, TileSafe, v.Tiles[0][0])
		assert.Equal(t, TileHidden, v.Tiles[2][2])
		assert.Equal(t, "0x1234...abcd", v.Player)
		assert.Empty(t, v.Banner)
		require.NotNil(t, v.Stats)
		assert.Equal(t, "1.14x", v.Stats.MultiplierText)
		assert.Equal(t, "87.5%", v.Stats.ProbabilityText)
	})

	t.Run("Shows the mine and banner after a win", func(t *testing.T) {
		// Given: a round cashed out after three reveals
		game := newRound(t)
		for _, cell := range [][2]int{{0, 0}, {0, 1}, {0, 2}} {
			game.RevealTile(cell[0], cell[1])
		}
		game.CashOut()

		// When: building the view
		v := NewGame(game, "APT")

		// Then: the mine is exposed and the banner shows the payout
		assert.Equal(t, TileMine, v.Tiles[2][2])
		assert.Equal(t, TileHidden, v.Tiles[1][1])
		assert.Equal(t, "Congratulations! You won 12.00 APT", v.Banner)
	})

	t.Run("Lost banner", func(t *testing.T) {
		game := newRound(t)
		game.RevealTile(2, 2)

		v := NewGame(game, "APT")

		assert.Equal(t, TileMine, v.Tiles[2][2])
		assert.Equal(t, "Game Over! Better luck next time!", v.Banner)
	})

	t.Run("Idle game has hidden tiles", func(t *testing.T) {
		v := NewGame(entity.NewGame("", "0xabc", entity.DefaultGameConfig()), "APT")

		assert.Equal(t, entity.StatusIdle, v.Status)
		assert.Len(t, v.Tiles, 3)
		assert.Equal(t, TileHidden, v.Tiles[0][0])
	})
}
