package websocket

import (
	"context"
	"log/slog"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
	"github.com/rocketscienceinc/mines-backend/transport/view"
)

const actionGameUpdate = "game:update"

// client is one player's socket. gorilla connections allow a single
// concurrent writer, so every write goes through mu.
type client struct {
	playerID string
	conn     *websocket.Conn
	mu       sync.Mutex
}

func (that *client) send(message *Message) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.conn.WriteJSON(message)
}

// Hub tracks one socket per player and pushes round updates to it.
type Hub struct {
	logger     *slog.Logger
	coinSymbol string

	mu      sync.RWMutex
	clients map[string]*client
}

func NewHub(logger *slog.Logger, coinSymbol string) *Hub {
	return &Hub{
		logger:     logger.With("component", "websocket_hub"),
		coinSymbol: coinSymbol,
		clients:    make(map[string]*client),
	}
}

// Render pushes the player's masked round to their socket, if any.
func (that *Hub) Render(_ context.Context, playerID string, game *entity.Game) {
	that.mu.RLock()
	c, ok := that.clients[playerID]
	that.mu.RUnlock()

	if !ok {
		return
	}

	if err := c.send(newMessage(actionGameUpdate, view.NewGame(game, that.coinSymbol))); err != nil {
		that.logger.With("method", "Render").Error("failed to push game update", "player", entity.ShortAddress(playerID), "error", err)
	}
}

// register makes c the player's socket and closes the one it replaces.
func (that *Hub) register(c *client) {
	that.mu.Lock()
	previous, ok := that.clients[c.playerID]
	that.clients[c.playerID] = c
	that.mu.Unlock()

	if ok && previous != c {
		_ = previous.conn.Close()
	}
}

func (that *Hub) unregister(c *client) {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.clients[c.playerID] == c {
		delete(that.clients, c.playerID)
	}
}
