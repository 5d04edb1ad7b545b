package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/transport/view"
)

type ctxKey struct{}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)
	ConnectWallet(w http.ResponseWriter, r *http.Request)

	RequireAuth(next http.Handler) http.Handler

	GetGame(w http.ResponseWriter, r *http.Request)
	PlaceBet(w http.ResponseWriter, r *http.Request)
	RevealTile(w http.ResponseWriter, r *http.Request)
	CashOut(w http.ResponseWriter, r *http.Request)
}

type authService interface {
	GenerateToken(playerID string) (string, error)
	ParseToken(token string) (string, error)
}

type playerService interface {
	Connect(ctx context.Context, address string) (*entity.Player, error)
}

type gamePlayService interface {
	PlaceBet(ctx context.Context, playerID string, bet float64) (*entity.Game, error)
	RevealTile(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	CashOut(ctx context.Context, playerID string) (*entity.Game, error)
	GetState(ctx context.Context, playerID string) (*entity.Game, error)
}

type handlers struct {
	logger *slog.Logger

	auth       authService
	players    playerService
	gamePlay   gamePlayService
	coinSymbol string
}

func NewHandlers(logger *slog.Logger, auth authService, players playerService, gamePlay gamePlayService, coinSymbol string) Handlers {
	return &handlers{
		logger:     logger.With("component", "rest"),
		auth:       auth,
		players:    players,
		gamePlay:   gamePlay,
		coinSymbol: coinSymbol,
	}
}

type connectRequest struct {
	Address string `json:"address"`
}

type connectResponse struct {
	Player *entity.Player `json:"player"`
	Token  string         `json:"token"`
}

type betRequest struct {
	BetAmount float64 `json:"betAmount"`
}

type revealRequest struct {
	Row *int `json:"row"`
	Col *int `json:"col"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) ConnectWallet(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ConnectWallet")

	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	player, err := that.players.Connect(r.Context(), req.Address)
	if err != nil {
		log.Error("failed to connect wallet", "error", err)
		that.writeAppError(w, err)
		return
	}

	token, err := that.auth.GenerateToken(player.ID)
	if err != nil {
		log.Error("failed to generate token", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	writeJSON(w, http.StatusOK, connectResponse{Player: player, Token: token})
}

// RequireAuth accepts "Authorization: Bearer <token>" and puts the player id
// in the request context.
func (that *handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, apperror.ErrWalletNotConnected.Error())
			return
		}

		playerID, err := that.auth.ParseToken(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, apperror.ErrInvalidToken.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, playerID)))
	})
}

func (that *handlers) GetGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetState(r.Context(), playerFrom(r))
	that.writeGame(w, "GetGame", game, err)
}

func (that *handlers) PlaceBet(w http.ResponseWriter, r *http.Request) {
	var req betRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	game, err := that.gamePlay.PlaceBet(r.Context(), playerFrom(r), req.BetAmount)
	that.writeGame(w, "PlaceBet", game, err)
}

func (that *handlers) RevealTile(w http.ResponseWriter, r *http.Request) {
	var req revealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Row == nil || req.Col == nil {
		writeError(w, http.StatusBadRequest, "row and col are required")
		return
	}

	game, err := that.gamePlay.RevealTile(r.Context(), playerFrom(r), *req.Row, *req.Col)
	that.writeGame(w, "RevealTile", game, err)
}

func (that *handlers) CashOut(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.CashOut(r.Context(), playerFrom(r))
	that.writeGame(w, "CashOut", game, err)
}

func (that *handlers) writeGame(w http.ResponseWriter, method string, game *entity.Game, err error) {
	if err != nil {
		that.logger.With("method", method).Error("game action failed", "error", err)
		that.writeAppError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, view.NewGame(game, that.coinSymbol))
}

func (that *handlers) writeAppError(w http.ResponseWriter, err error) {
	writeError(w, StatusFor(err), err.Error())
}

// StatusFor maps an application error to its HTTP status.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidBet), errors.Is(err, apperror.ErrInvalidAddress):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrInvalidToken), errors.Is(err, apperror.ErrWalletNotConnected):
		return http.StatusUnauthorized
	case errors.Is(err, apperror.ErrNoActiveRound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrRoundInProgress):
		return http.StatusConflict
	case errors.Is(err, apperror.ErrTransactionFailed):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func playerFrom(r *http.Request) string {
	playerID, _ := r.Context().Value(ctxKey{}).(string)
	return playerID
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	if status == http.StatusInternalServerError {
		msg = "Internal Server Error"
	}

	writeJSON(w, status, errorResponse{Error: msg})
}
