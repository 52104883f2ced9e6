package ws

import (
	"encoding/json"
	"log"
	nethttp "net/http"

	"github.com/gorilla/websocket"

	server "zonecrawl/server"
	"zonecrawl/server/internal/sim"
)

type HandlerConfig struct {
	Logger *log.Logger
}

// Handler upgrades connections and pumps client messages into the hub.
type Handler struct {
	hub      *server.Hub
	logger   *log.Logger
	upgrader websocket.Upgrader
}

func NewHandler(hub *server.Hub, cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *nethttp.Request) bool {
			return true
		},
	}

	return &Handler{
		hub:      hub,
		logger:   logger,
		upgrader: upgrader,
	}
}

func (h *Handler) Handle(w nethttp.ResponseWriter, r *nethttp.Request) {
	clientID := r.URL.Query().Get("id")
	if clientID == "" {
		nethttp.Error(w, "missing id", nethttp.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Printf("upgrade failed for %s: %v", clientID, err)
		return
	}

	sess := newSession(clientID, conn)
	initial, err := h.hub.Subscribe(sess)
	if err != nil {
		h.logger.Printf("failed to marshal initial state for %s: %v", clientID, err)
		h.hub.Unsubscribe(clientID)
		conn.Close()
		return
	}
	if err := sess.Send(initial); err != nil {
		h.hub.Unsubscribe(clientID)
		conn.Close()
		return
	}

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			h.hub.Unsubscribe(clientID)
			conn.Close()
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			h.logger.Printf("malformed message from %s: %v", clientID, err)
			continue
		}
		h.dispatch(sess, msg)
	}
}

func (h *Handler) dispatch(sess *session, msg clientMessage) {
	switch msg.Type {
	case "move":
		h.hub.HandleCommand(sim.Command{
			Type: sim.CommandMove,
			Move: &sim.MoveCommand{DX: msg.DX, DY: msg.DY},
		})
	case "walk":
		h.hub.HandleCommand(sim.Command{
			Type: sim.CommandWalk,
			Walk: &sim.WalkCommand{Steps: msg.Steps},
		})
	case "wait":
		h.hub.HandleCommand(sim.Command{Type: sim.CommandWait})
	case "save":
		h.ack(sess, "save", h.hub.Save(saveName(msg.Name)))
	case "load":
		h.ack(sess, "load", h.hub.Load(saveName(msg.Name)))
	default:
		h.logger.Printf("unknown message type %q from %s", msg.Type, sess.ID())
	}
}

func saveName(name string) string {
	if name == "" {
		return "default"
	}
	return name
}

func (h *Handler) ack(sess *session, op string, err error) {
	msg := ackMessage{Ver: 1, Type: "ack", Op: op, OK: err == nil}
	if err != nil {
		msg.Error = err.Error()
	}
	data, marshalErr := json.Marshal(msg)
	if marshalErr != nil {
		return
	}
	if sendErr := sess.Send(data); sendErr != nil {
		h.hub.Unsubscribe(sess.ID())
	}
}
