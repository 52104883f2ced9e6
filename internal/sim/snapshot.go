package sim

import (
	"fmt"
	"sort"

	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/zone"
	"zonecrawl/server/logging"
)

// SnapshotVersion guards the persisted shape; Restore rejects unknown
// versions so the persistence collaborator can fall back to a fresh start.
const SnapshotVersion = 1

// Snapshot is the plain-data export of the whole simulation: the zone cache
// with every player-caused mutation, the defeated-enemy set, the player, and
// the generation bookkeeping. Zone tier is deliberately absent — it is a
// pure function of the coordinate.
type Snapshot struct {
	Version     int                       `json:"version"`
	CurrentZone string                    `json:"currentZone"`
	Player      Player                    `json:"player"`
	Zones       map[string]*zone.Record   `json:"zones"`
	Defeated    []string                  `json:"defeated"`
	Generation  zone.WorldGenerationState `json:"generation"`
}

// Snapshot exports the engine state as plain data.
func (w *World) Snapshot() Snapshot {
	defeated := make([]string, 0, len(w.defeated))
	for key := range w.defeated {
		defeated = append(defeated, key)
	}
	sort.Strings(defeated)

	return Snapshot{
		Version:     SnapshotVersion,
		CurrentZone: w.coord.Key(),
		Player:      w.player,
		Zones:       w.gen.CacheSnapshot(),
		Defeated:    defeated,
		Generation:  w.gen.State(),
	}
}

// Restore replaces the engine state from a snapshot. Malformed data returns
// an error and leaves the previous state untouched; the hub falls back to a
// fresh world in that case.
func (w *World) Restore(snap Snapshot) error {
	if snap.Version != SnapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", snap.Version)
	}
	coord, ok := grid.ParseKey(snap.CurrentZone)
	if !ok {
		return fmt.Errorf("malformed current zone key %q", snap.CurrentZone)
	}
	for key, record := range snap.Zones {
		if record == nil || record.Grid == nil {
			return fmt.Errorf("zone %q has no grid", key)
		}
		if err := validateGrid(record.Grid); err != nil {
			return fmt.Errorf("zone %q: %w", key, err)
		}
	}
	if snap.Player.MaxHealth <= 0 {
		return fmt.Errorf("player max health %d out of range", snap.Player.MaxHealth)
	}

	w.gen.RestoreCache(snap.Zones)
	w.gen.RestoreState(snap.Generation)
	w.defeated = make(map[string]struct{}, len(snap.Defeated))
	for _, key := range snap.Defeated {
		w.defeated[key] = struct{}{}
	}
	w.player = snap.Player
	w.coord = coord
	w.record = w.GenerateZone(coord)
	w.anim = make(map[string]*EnemyAnimation)
	w.walk.Reset()
	w.justEntered = true

	w.publish(logging.Event{
		Type:     "snapshot.restored",
		Severity: logging.SeverityInfo,
		Category: logging.CategorySystem,
		Actor:    logging.EntityRef{ID: coord.Key(), Kind: logging.EntityKindWorld},
		Payload:  map[string]any{"zones": len(snap.Zones)},
	})
	return nil
}

func validateGrid(g *grid.Grid) error {
	if g.Size < 3 {
		return fmt.Errorf("grid size %d out of range", g.Size)
	}
	if len(g.Tiles) != g.Size {
		return fmt.Errorf("grid has %d rows, want %d", len(g.Tiles), g.Size)
	}
	for y, row := range g.Tiles {
		if len(row) != g.Size {
			return fmt.Errorf("row %d has %d cells, want %d", y, len(row), g.Size)
		}
	}
	return nil
}
