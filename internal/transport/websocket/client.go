package websocket

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/CongDon1207/Four-Connect/internal/service/game"
	"github.com/CongDon1207/Four-Connect/pkg/logger"
)

const writeWait = 10 * time.Second

// client is one open socket. conn.WriteJSON is not safe for concurrent use, so
// every write goes through writeMu.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) send(message ServerMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteJSON(message)
}

func (c *client) ping() error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// ConnectionManager tracks the open sockets of every game. A game may be open
// in several tabs at once; all of them receive every state change.
type ConnectionManager struct {
	games map[string]map[*client]struct{} // gameID → sockets
	mu    sync.RWMutex
	log   zerolog.Logger
}

func NewConnectionManager() *ConnectionManager {
	return &ConnectionManager{
		games: make(map[string]map[*client]struct{}),
		log:   logger.Component("ws"),
	}
}

func (cm *ConnectionManager) add(gameID string, c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	clients, ok := cm.games[gameID]
	if !ok {
		clients = make(map[*client]struct{})
		cm.games[gameID] = clients
	}
	clients[c] = struct{}{}
	connectionsOpen.Inc()
}

func (cm *ConnectionManager) remove(gameID string, c *client) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	clients, ok := cm.games[gameID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	connectionsOpen.Dec()
	if len(clients) == 0 {
		delete(cm.games, gameID)
	}
}

// Count returns the number of sockets open for gameID.
func (cm *ConnectionManager) Count(gameID string) int {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return len(cm.games[gameID])
}

// PushState sends state to every socket of its game.
func (cm *ConnectionManager) PushState(state game.State) {
	cm.broadcast(state.GameID, stateMessage(state))
}

func (cm *ConnectionManager) broadcast(gameID string, message ServerMessage) {
	cm.mu.RLock()
	clients := make([]*client, 0, len(cm.games[gameID]))
	for c := range cm.games[gameID] {
		clients = append(clients, c)
	}
	cm.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(message); err != nil {
			cm.log.Debug().Err(err).Str("game_id", gameID).Msg("dropping unwritable socket")
			c.conn.Close()
		}
	}
}

// CloseGame disconnects every socket of a game, e.g. once it has been deleted.
func (cm *ConnectionManager) CloseGame(gameID string) {
	cm.mu.Lock()
	clients := cm.games[gameID]
	delete(cm.games, gameID)
	cm.mu.Unlock()

	for c := range clients {
		c.conn.Close()
		connectionsOpen.Dec()
	}
}
