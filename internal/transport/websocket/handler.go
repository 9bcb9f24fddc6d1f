package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/CongDon1207/Four-Connect/internal/service/game"
	"github.com/CongDon1207/Four-Connect/pkg/auth"
	"github.com/CongDon1207/Four-Connect/pkg/httputil"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

const (
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Handler serves /ws. A socket is bound to the single game named in its token.
type Handler struct {
	ConnManager *ConnectionManager
	Sessions    *game.SessionManager
	Tokens      *auth.TokenIssuer
	Upgrader    websocket.Upgrader
	log         zerolog.Logger
}

func NewHandler(cm *ConnectionManager, sm *game.SessionManager, tokens *auth.TokenIssuer, allowedOrigins []string) *Handler {
	return &Handler{
		ConnManager: cm,
		Sessions:    sm,
		Tokens:      tokens,
		Upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(allowedOrigins, origin)
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: logger.Component("ws"),
	}
}

// HandleWebSocket checks the game token and upgrades the connection. Token
// problems are answered with plain HTTP errors before the upgrade.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	tokenString, err := httputil.GetTokenFromRequest(c.Request)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims, err := h.Tokens.ValidateGameToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	session, err := h.Sessions.Get(c.Request.Context(), claims.GameID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "Game not found"})
		return
	}

	conn, err := h.Upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade failed")
		return
	}

	h.handleConnection(conn, session)
}

// handleConnection manages the lifecycle of a single WebSocket connection
func (h *Handler) handleConnection(conn *websocket.Conn, session *game.Session) {
	gameID := session.ID
	cl := &client{conn: conn}
	h.ConnManager.add(gameID, cl)
	h.log.Info().Str("game_id", gameID).Msg("connection opened")

	done := make(chan struct{})
	defer func() {
		close(done)
		h.ConnManager.remove(gameID, cl)
		conn.Close()
		h.log.Info().Str("game_id", gameID).Msg("connection closed")
	}()

	// Set read deadline to detect stale connections
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	// Keep-alive pinger
	go func() {
		ticker := time.NewTicker(pingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := cl.ping(); err != nil {
					return
				}
			}
		}
	}()

	if err := cl.send(stateMessage(session.State())); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("game_id", gameID).Msg("unexpected close")
			}
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			cl.send(errorMessage(fmt.Errorf("invalid message format"), nil))
			continue
		}

		h.processMessage(cl, gameID, msg)
	}
}

// processMessage routes one client message. Changes are broadcast to every
// socket of the game, errors only go back to the sender.
func (h *Handler) processMessage(cl *client, gameID string, msg ClientMessage) {
	ctx := context.Background()

	var (
		state game.State
		err   error
	)
	switch msg.Type {
	case MessageState:
		session, err := h.Sessions.Get(ctx, gameID)
		if err != nil {
			cl.send(errorMessage(err, nil))
			return
		}
		cl.send(stateMessage(session.State()))
		return
	case MessageMove:
		state, err = h.Sessions.Play(ctx, gameID, msg.Column)
	case MessageUndo:
		state, err = h.Sessions.Undo(ctx, gameID)
	case MessageReset:
		state, err = h.Sessions.Reset(ctx, gameID)
	default:
		cl.send(errorMessage(fmt.Errorf("unknown message type %q", msg.Type), nil))
		return
	}

	if err != nil {
		h.log.Debug().Err(err).Str("game_id", gameID).Str("type", msg.Type).Msg("request rejected")
		cl.send(errorMessage(err, &state))
		return
	}
	h.ConnManager.PushState(state)
}
