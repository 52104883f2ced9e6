package ws

import (
	"sync"

	"github.com/gorilla/websocket"

	"zonecrawl/server/internal/nav"
)

// clientMessage is the JSON envelope the input/UI layer sends. Raw device
// gestures are translated into grid moves before they reach this boundary.
type clientMessage struct {
	Ver   int        `json:"ver,omitempty"`
	Type  string     `json:"type"`
	DX    int        `json:"dx"`
	DY    int        `json:"dy"`
	Steps []nav.Step `json:"steps,omitempty"`
	Name  string     `json:"name,omitempty"`
}

// ackMessage reports save/load outcomes back to the client.
type ackMessage struct {
	Ver   int    `json:"ver"`
	Type  string `json:"type"`
	Op    string `json:"op"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// session wraps one websocket connection with a write lock, since the hub
// broadcast goroutine and the read loop both send.
type session struct {
	id   string
	mu   sync.Mutex
	conn *websocket.Conn
}

func newSession(id string, conn *websocket.Conn) *session {
	return &session{id: id, conn: conn}
}

func (s *session) ID() string { return s.id }

func (s *session) Send(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conn.WriteMessage(websocket.TextMessage, data)
}
