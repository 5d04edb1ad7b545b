package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/mines-backend/internal/entity"
)

const (
	pongWait     = 60 * time.Second
	pingPeriod   = pongWait * 9 / 10
	writeWait    = 10 * time.Second
	maxFrameSize = 4096
)

type authService interface {
	ParseToken(token string) (string, error)
}

type gamePlayService interface {
	PlaceBet(ctx context.Context, playerID string, bet float64) (*entity.Game, error)
	RevealTile(ctx context.Context, playerID string, row, col int) (*entity.Game, error)
	CashOut(ctx context.Context, playerID string) (*entity.Game, error)
	GetState(ctx context.Context, playerID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, c *client, msg *Message) *Message

type Server struct {
	logger   *slog.Logger
	auth     authService
	gamePlay gamePlayService
	hub      *Hub
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, auth authService, gamePlay gamePlayService, hub *Hub) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		auth:     auth,
		gamePlay: gamePlay,
		hub:      hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  maxFrameSize,
			WriteBufferSize: maxFrameSize,
		},
		handlers: make(map[string]handlerFunc),
	}

	server.handlers["game:state"] = server.handleState
	server.handlers["game:bet"] = server.handleBet
	server.handlers["game:reveal"] = server.handleReveal
	server.handlers["game:cashout"] = server.handleCashOut

	return server
}

// ServeHTTP authenticates ?token=, upgrades the connection and serves it
// until the client goes away.
func (that *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "ServeHTTP")

	playerID, err := that.auth.ParseToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	conn, err := that.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	c := &client{playerID: playerID, conn: conn}
	that.hub.register(c)

	defer func() {
		that.hub.unregister(c)
		_ = conn.Close()
	}()

	log.Info("WebSocket connection established", "player", entity.ShortAddress(playerID))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	go that.keepAlive(ctx, c)

	that.handleMessages(ctx, c)
}

// handleMessages - processes messages from the client.
func (that *Server) handleMessages(ctx context.Context, c *client) {
	log := that.logger.With("method", "handleMessages", "player", entity.ShortAddress(c.playerID))

	c.conn.SetReadLimit(maxFrameSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error("error reading message", "error", err)
			}
			return
		}

		handler, ok := that.handlers[msg.Action]
		if !ok {
			that.reply(c, errorMessage(msg.Action, "unknown action"))
			continue
		}

		that.reply(c, handler(ctx, c, &msg))
	}
}

func (that *Server) keepAlive(ctx context.Context, c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
			c.mu.Unlock()

			if err != nil {
				return
			}
		}
	}
}

func (that *Server) reply(c *client, msg *Message) {
	if err := c.send(msg); err != nil {
		that.logger.With("method", "reply").Error("failed to send message", "action", msg.Action, "error", err)
	}
}
