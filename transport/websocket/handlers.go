package websocket

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/mines-backend/internal/apperror"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/transport/view"
)

func (that *Server) handleState(ctx context.Context, c *client, msg *Message) *Message {
	game, err := that.gamePlay.GetState(ctx, c.playerID)
	return that.gameReply(msg.Action, game, err)
}

func (that *Server) handleBet(ctx context.Context, c *client, msg *Message) *Message {
	var payload betPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return errorMessage(msg.Action, "invalid payload")
	}

	game, err := that.gamePlay.PlaceBet(ctx, c.playerID, payload.BetAmount)
	return that.gameReply(msg.Action, game, err)
}

func (that *Server) handleReveal(ctx context.Context, c *client, msg *Message) *Message {
	var payload revealPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.Row == nil || payload.Col == nil {
		return errorMessage(msg.Action, "row and col are required")
	}

	game, err := that.gamePlay.RevealTile(ctx, c.playerID, *payload.Row, *payload.Col)
	return that.gameReply(msg.Action, game, err)
}

func (that *Server) handleCashOut(ctx context.Context, c *client, msg *Message) *Message {
	game, err := that.gamePlay.CashOut(ctx, c.playerID)
	return that.gameReply(msg.Action, game, err)
}

func (that *Server) gameReply(action string, game *entity.Game, err error) *Message {
	if err != nil {
		that.logger.With("method", "gameReply").Error("game action failed", "action", action, "error", err)
		return errorMessage(action, publicError(err))
	}

	return newMessage(action, view.NewGame(game, that.hub.coinSymbol))
}

// publicError hides unexpected failures from the client.
func publicError(err error) string {
	for _, known := range []error{
		apperror.ErrInvalidBet,
		apperror.ErrNoActiveRound,
		apperror.ErrRoundInProgress,
		apperror.ErrWalletNotConnected,
		apperror.ErrTransactionFailed,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}

	return "internal error"
}
