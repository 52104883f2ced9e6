// Package server owns the running world: one engine, one storage backend,
// and the subscriber fan-out. Every mutation path takes the hub mutex, so
// the simulation keeps its single-writer guarantee no matter how many
// sessions are attached.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/sim"
	"zonecrawl/server/internal/zone"
	"zonecrawl/server/logging"
	"zonecrawl/server/persistence"
)

// walkStepInterval paces queued-walk playback; each tick is one full turn.
const walkStepInterval = 150 * time.Millisecond

// Subscriber receives state broadcasts after every resolved turn.
type Subscriber interface {
	ID() string
	Send(data []byte) error
}

// Hub serializes every input into the engine and broadcasts the resulting
// state to all subscribers.
type Hub struct {
	mu          sync.Mutex
	cfg         Config
	engine      sim.Engine
	store       persistence.Storage
	publisher   logging.Publisher
	subscribers map[string]Subscriber
	walkActive  bool
}

// NewHub builds a hub around a fresh world.
func NewHub(cfg Config, store persistence.Storage, publisher logging.Publisher) *Hub {
	cfg = cfg.normalized()
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Hub{
		cfg:         cfg,
		engine:      sim.NewWorld(cfg.Generation, publisher),
		store:       store,
		publisher:   publisher,
		subscribers: make(map[string]Subscriber),
	}
}

// Subscribe registers a session and returns the current state payload so
// the client can render immediately.
func (h *Hub) Subscribe(sub Subscriber) ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribers[sub.ID()] = sub
	return h.stateMessageLocked()
}

// Unsubscribe drops a session; unknown ids are a no-op.
func (h *Hub) Unsubscribe(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subscribers, id)
}

// HandleCommand resolves one player input atomically and broadcasts the
// resulting state.
func (h *Hub) HandleCommand(cmd sim.Command) sim.MoveResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	var result sim.MoveResult
	switch cmd.Type {
	case sim.CommandMove:
		if cmd.Move != nil {
			result = h.engine.AttemptPlayerMove(cmd.Move.DX, cmd.Move.DY)
		}
	case sim.CommandWait:
		result = h.engine.AttemptPlayerMove(0, 0)
	case sim.CommandWalk:
		if cmd.Walk != nil {
			h.engine.EnqueueWalk(cmd.Walk.Steps)
			h.startWalkPlaybackLocked()
		}
	}
	h.broadcastLocked()
	return result
}

// startWalkPlaybackLocked spins up the playback goroutine if one is not
// already draining the queue. Each tick resolves one queued step as a full
// turn; the loop exits as soon as the queue is empty, including when direct
// input interrupted it.
func (h *Hub) startWalkPlaybackLocked() {
	if h.walkActive {
		return
	}
	h.walkActive = true
	go func() {
		ticker := time.NewTicker(walkStepInterval)
		defer ticker.Stop()
		for range ticker.C {
			h.mu.Lock()
			_, ok := h.engine.StepQueuedWalk()
			if ok {
				h.broadcastLocked()
			} else {
				h.walkActive = false
			}
			h.mu.Unlock()
			if !ok {
				return
			}
		}
	}()
}

// Save exports a snapshot to the configured store.
func (h *Hub) Save(name string) error {
	h.mu.Lock()
	snap := h.engine.Snapshot()
	h.mu.Unlock()

	if h.store == nil {
		return fmt.Errorf("no storage configured")
	}
	if err := h.store.SaveSnapshot(name, snap); err != nil {
		return err
	}
	h.publisher.Publish(context.Background(), logging.Event{
		Type:     "snapshot.saved",
		Severity: logging.SeverityInfo,
		Category: logging.CategorySystem,
		Actor:    logging.EntityRef{ID: name, Kind: logging.EntityKindWorld},
	})
	return nil
}

// Load restores a snapshot. Malformed or missing saves fall back to a fresh
// world rather than failing the session.
func (h *Hub) Load(name string) error {
	if h.store == nil {
		return fmt.Errorf("no storage configured")
	}
	snap, err := h.store.LoadSnapshot(name)

	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		err = h.engine.Restore(snap)
	}
	if err != nil {
		h.publisher.Publish(context.Background(), logging.Event{
			Type:     "snapshot.fallback",
			Severity: logging.SeverityWarn,
			Category: logging.CategorySystem,
			Actor:    logging.EntityRef{ID: name, Kind: logging.EntityKindWorld},
			Payload:  map[string]any{"error": err.Error()},
		})
		h.engine = sim.NewWorld(h.cfg.Generation, h.publisher)
	}
	h.broadcastLocked()
	return err
}

// stateMessage is the wire payload sent after every resolved turn.
type stateMessage struct {
	Type       string                         `json:"type"`
	Turn       uint64                         `json:"turn"`
	Zone       string                         `json:"zone"`
	Coord      grid.Coord                     `json:"coord"`
	Tier       int                            `json:"tier"`
	Grid       *grid.Grid                     `json:"grid"`
	Player     sim.Player                     `json:"player"`
	Enemies    []zone.Enemy                   `json:"enemies"`
	Animations map[string]*sim.EnemyAnimation `json:"animations,omitempty"`
}

func (h *Hub) stateMessageLocked() ([]byte, error) {
	coord := h.engine.CurrentZone()
	record := h.engine.CurrentRecord()
	msg := stateMessage{
		Type:    "state",
		Turn:    h.engine.Turn(),
		Zone:    coord.Key(),
		Coord:   coord,
		Tier:    grid.Tier(coord),
		Grid:    record.Grid,
		Player:  h.engine.Player(),
		Enemies: record.Enemies,
	}
	if w, ok := h.engine.(*sim.World); ok {
		msg.Animations = w.Animations()
	}
	return json.Marshal(msg)
}

// StateMessage exposes the current payload for newly joining sessions.
func (h *Hub) StateMessage() ([]byte, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stateMessageLocked()
}

func (h *Hub) broadcastLocked() {
	data, err := h.stateMessageLocked()
	if err != nil {
		return
	}
	for id, sub := range h.subscribers {
		if err := sub.Send(data); err != nil {
			delete(h.subscribers, id)
		}
	}
}
