package ws

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

var ErrNotConnected = errors.New("user not connected")

// client serializes writes; gorilla connections allow one concurrent writer.
type client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex
}

func (c *client) write(payload []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, payload)
}

// Manager keeps track of open websocket connections per user. A user may
// hold several connections at once (one per browser tab or terminal).
type Manager struct {
	mu      sync.RWMutex
	clients map[string]map[*websocket.Conn]*client // userID -> conns
}

func NewManager() *Manager {
	return &Manager{clients: make(map[string]map[*websocket.Conn]*client)}
}

// Register adds a connection for userID.
func (m *Manager) Register(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.clients[userID]
	if !ok {
		conns = make(map[*websocket.Conn]*client)
		m.clients[userID] = conns
	}
	conns[conn] = &client{conn: conn}
}

// Unregister closes and removes a single connection.
func (m *Manager) Unregister(userID string, conn *websocket.Conn) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conns, ok := m.clients[userID]
	if !ok {
		return
	}
	if _, ok := conns[conn]; ok {
		_ = conn.Close()
		delete(conns, conn)
	}
	if len(conns) == 0 {
		delete(m.clients, userID)
	}
}

// SendToUser writes payload to every connection of userID.
func (m *Manager) SendToUser(userID string, payload []byte) error {
	m.mu.RLock()
	targets := make([]*client, 0, len(m.clients[userID]))
	for _, c := range m.clients[userID] {
		targets = append(targets, c)
	}
	m.mu.RUnlock()

	if len(targets) == 0 {
		return ErrNotConnected
	}
	var errs []error
	for _, c := range targets {
		if err := c.write(payload); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// IsConnected returns whether userID has at least one open connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}
