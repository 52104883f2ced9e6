package sim

import (
	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/nav"
	"zonecrawl/server/internal/zone"
)

// MoveResult reports what one player input did.
type MoveResult struct {
	Moved          bool        `json:"moved"`
	ZoneTransition *grid.Coord `json:"zoneTransition,omitempty"`
}

// Engine defines the minimal surface area exposed to non-simulation callers.
type Engine interface {
	AttemptPlayerMove(dx, dy int) MoveResult
	EnqueueWalk(steps []nav.Step)
	StepQueuedWalk() (MoveResult, bool)
	ResolveEnemyTurn()
	GenerateZone(coord grid.Coord) *zone.Record
	Snapshot() Snapshot
	Restore(Snapshot) error
	Player() Player
	CurrentZone() grid.Coord
	CurrentRecord() *zone.Record
	Turn() uint64
}
