package rest

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/internal/repository"
	"github.com/rocketscienceinc/mines-backend/internal/service"
	"github.com/rocketscienceinc/mines-backend/internal/wallet"
	"github.com/rocketscienceinc/mines-backend/transport/view"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "0xABCDEF0123"

type nopRenderer struct{}

func (nopRenderer) Render(context.Context, string, *entity.Game) {}

// mineAt places the single default mine at (2, 2).
type mineAt struct{ pos int }

func (that *mineAt) IntN(int) int {
	that.pos++
	return 2
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	players := repository.NewMemoryPlayerRepository()
	games := repository.NewMemoryGameRepository()
	w := wallet.NewLocalWallet()

	auth := service.NewAuthService("secret", time.Hour)
	playerService := service.NewPlayerService(logger, players, w)
	gamePlay := service.NewGamePlayService(logger, players, games, w, nopRenderer{}, service.GamePlayOptions{
		Config: entity.DefaultGameConfig(),
		Random: &mineAt{},
	})

	return NewRouter(NewHandlers(logger, auth, playerService, gamePlay, "APT"), nil)
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func connect(t *testing.T, h http.Handler) string {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/wallet/connect", "", `{"address":"`+testAddress+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp connectResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, strings.ToLower(testAddress), resp.Player.ID)

	return resp.Token
}

func decodeGame(t *testing.T, rec *httptest.ResponseRecorder) view.Game {
	t.Helper()

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var game view.Game
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &game))

	return game
}

func TestPing(t *testing.T) {
	rec := do(t, newTestRouter(t), http.MethodGet, "/ping", "", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestGameFlow(t *testing.T) {
	t.Run("Bet, reveal and cash out", func(t *testing.T) {
		// Given: a connected wallet
		h := newTestRouter(t)
		token := connect(t, h)

		// When: betting, revealing three safe tiles and cashing out
		game := decodeGame(t, do(t, h, http.MethodPost, "/game/bet", token, `{"betAmount":10}`))
		assert.Equal(t, entity.StatusInProgress, game.Status)
		assert.Equal(t, "1.13x", game.Stats.MultiplierText)

		for _, body := range []string{`{"row":0,"col":0}`, `{"row":0,"col":1}`, `{"row":0,"col":2}`} {
			game = decodeGame(t, do(t, h, http.MethodPost, "/game/reveal", token, body))
		}
		assert.Equal(t, 3, game.RevealedCount)
		assert.Equal(t, view.TileHidden, game.Tiles[2][2])

		game = decodeGame(t, do(t, h, http.MethodPost, "/game/cashout", token, ""))

		// Then: the round is won with the 1.2x payout
		assert.Equal(t, entity.StatusWon, game.Status)
		assert.InDelta(t, 12.0, game.Payout, 1e-9)
		assert.Equal(t, "Congratulations! You won 12.00 APT", game.Banner)
		assert.Equal(t, view.TileMine, game.Tiles[2][2])
	})

	t.Run("Hitting the mine loses", func(t *testing.T) {
		h := newTestRouter(t)
		token := connect(t, h)
		decodeGame(t, do(t, h, http.MethodPost, "/game/bet", token, `{"betAmount":1.5}`))

		game := decodeGame(t, do(t, h, http.MethodPost, "/game/reveal", token, `{"row":2,"col":2}`))

		assert.Equal(t, entity.StatusLost, game.Status)
		assert.Equal(t, "Game Over! Better luck next time!", game.Banner)
	})

	t.Run("Reveal and cash out before the first bet are no-ops", func(t *testing.T) {
		h := newTestRouter(t)
		token := connect(t, h)

		revealed := do(t, h, http.MethodPost, "/game/reveal", token, `{"row":0,"col":0}`)
		cashed := do(t, h, http.MethodPost, "/game/cashout", token, "")

		assert.Equal(t, http.StatusOK, revealed.Code)
		assert.Equal(t, http.StatusOK, cashed.Code)
		assert.Equal(t, entity.StatusIdle, decodeGame(t, revealed).Status)
		assert.Equal(t, entity.StatusIdle, decodeGame(t, cashed).Status)
	})

	t.Run("Idle state before the first bet", func(t *testing.T) {
		h := newTestRouter(t)
		token := connect(t, h)

		game := decodeGame(t, do(t, h, http.MethodGet, "/game", token, ""))

		assert.Equal(t, entity.StatusIdle, game.Status)
	})
}

func TestErrors(t *testing.T) {
	h := newTestRouter(t)
	token := connect(t, h)

	tests := []struct {
		name   string
		method string
		path   string
		token  string
		body   string
		status int
	}{
		{"missing token", http.MethodGet, "/game", "", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/game", "garbage", "", http.StatusUnauthorized},
		{"bad address", http.MethodPost, "/wallet/connect", "", `{"address":"nope"}`, http.StatusBadRequest},
		{"zero bet", http.MethodPost, "/game/bet", token, `{"betAmount":0}`, http.StatusBadRequest},
		{"malformed bet", http.MethodPost, "/game/bet", token, `{"betAmount":"ten"}`, http.StatusBadRequest},
		{"reveal without cell", http.MethodPost, "/game/reveal", token, `{}`, http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/nope", "", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.token, tt.body)

			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
		})
	}

	t.Run("second bet while playing conflicts", func(t *testing.T) {
		decodeGame(t, do(t, h, http.MethodPost, "/game/bet", token, `{"betAmount":1}`))

		rec := do(t, h, http.MethodPost, "/game/bet", token, `{"betAmount":1}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}
