package nav

import "zonecrawl/server/internal/grid"

// Step is one unit displacement a capability may take per turn.
type Step struct {
	DX int `json:"dx"`
	DY int `json:"dy"`
}

// CapabilityID names a movement capability for serialization.
type CapabilityID string

const (
	CapOrthogonal CapabilityID = "orthogonal"
	CapOmni       CapabilityID = "omni"
	CapKnight     CapabilityID = "knight"
	CapCharge     CapabilityID = "charge"
)

// Capability is a closed strategy value: the ordered step set one enemy
// archetype may use. The declaration order is the BFS expansion order, which
// fixes which shortest path wins when several tie.
type Capability struct {
	ID    CapabilityID
	Steps []Step
}

var (
	// Orthogonal moves like a rook constrained to one cell.
	Orthogonal = Capability{ID: CapOrthogonal, Steps: []Step{
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	}}

	// Omni adds the diagonals, king-style.
	Omni = Capability{ID: CapOmni, Steps: []Step{
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
		{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
	}}

	// Knight jumps in the chess L shape and ignores the cell between.
	Knight = Capability{ID: CapKnight, Steps: []Step{
		{1, -2}, {2, -1}, {2, 1}, {1, 2},
		{-1, 2}, {-2, 1}, {-2, -1}, {-1, -2},
	}}

	// Charge shares the orthogonal step set; the charger archetype applies
	// it repeatedly inside a single turn at the resolution layer.
	Charge = Capability{ID: CapCharge, Steps: []Step{
		{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	}}
)

var capabilities = map[CapabilityID]Capability{
	CapOrthogonal: Orthogonal,
	CapOmni:       Omni,
	CapKnight:     Knight,
	CapCharge:     Charge,
}

// ByID resolves a serialized capability id; unknown ids degrade to
// Orthogonal so a stale snapshot never strands an enemy.
func ByID(id CapabilityID) Capability {
	if c, ok := capabilities[id]; ok {
		return c
	}
	return Orthogonal
}

// WalkFunc decides whether an actor class may occupy (x, y).
type WalkFunc func(g *grid.Grid, x, y int) bool

// EnemyWalkable admits the tiles enemies may traverse. It deliberately
// differs from the player predicate: enemies wade through water and trample
// food.
func EnemyWalkable(g *grid.Grid, x, y int) bool {
	t, ok := g.At(x, y)
	if !ok {
		return false
	}
	switch t.Kind {
	case grid.TileFloor, grid.TileExit, grid.TileWater, grid.TileFood:
		return true
	}
	return false
}

// PlayerWalkable admits the tiles the player may step onto without a tool.
func PlayerWalkable(g *grid.Grid, x, y int) bool {
	t, ok := g.At(x, y)
	if !ok {
		return false
	}
	switch t.Kind {
	case grid.TileFloor, grid.TileExit, grid.TileGrass, grid.TileSand,
		grid.TileFood, grid.TileCharge, grid.TileNote, grid.TileAxe,
		grid.TileHammer:
		return true
	}
	return false
}
