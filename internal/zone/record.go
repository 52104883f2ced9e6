package zone

import (
	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/nav"
)

// Enemy is the plain-data enemy record stored in a zone. Runtime animation
// counters live in the simulation layer, not here.
type Enemy struct {
	ID         string           `json:"id"`
	Capability nav.CapabilityID `json:"capability"`
	X          int              `json:"x"`
	Y          int              `json:"y"`
	Health     int              `json:"health"`
	Attack     int              `json:"attack"`
}

// Record is one generated zone: the tile grid plus its enemy list. Records
// are cached forever under their zone key, so gameplay mutations (pickups,
// deaths) persist across re-entry.
type Record struct {
	Grid    *grid.Grid `json:"grid"`
	Enemies []Enemy    `json:"enemies"`
}

// Clone deep-copies a record for snapshot export.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	return &Record{
		Grid:    r.Grid.Clone(),
		Enemies: append([]Enemy(nil), r.Enemies...),
	}
}

// RemoveEnemy deletes the enemy with the given id; unknown ids are a no-op.
func (r *Record) RemoveEnemy(id string) {
	if r == nil {
		return
	}
	for i, e := range r.Enemies {
		if e.ID == id {
			r.Enemies = append(r.Enemies[:i], r.Enemies[i+1:]...)
			return
		}
	}
}

// EnemyAt returns the enemy occupying (x, y), if any.
func (r *Record) EnemyAt(x, y int) (*Enemy, bool) {
	if r == nil {
		return nil, false
	}
	for i := range r.Enemies {
		if r.Enemies[i].X == x && r.Enemies[i].Y == y {
			return &r.Enemies[i], true
		}
	}
	return nil, false
}
