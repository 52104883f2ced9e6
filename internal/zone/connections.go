package zone

import (
	"fmt"

	"zonecrawl/server/internal/grid"
)

// Connections lists, per edge, the border index hosting an exit. A nil
// entry means the edge is sealed.
type Connections struct {
	North *int `json:"north"`
	South *int `json:"south"`
	East  *int `json:"east"`
	West  *int `json:"west"`
}

// Index returns the connection index for one edge.
func (c Connections) Index(dir grid.Direction) *int {
	switch dir {
	case grid.North:
		return c.North
	case grid.South:
		return c.South
	case grid.East:
		return c.East
	case grid.West:
		return c.West
	}
	return nil
}

// ConnectionManager derives, per zone coordinate, which border cells host an
// exit. Both zones touching an edge hash the same canonical edge key, so
// zone A's south exit at column c always matches its neighbor's north exit
// at column c — symmetry holds by construction, not by bookkeeping.
type ConnectionManager struct {
	seed     string
	gridSize int
}

// NewConnectionManager builds a manager for the given world seed and zone
// edge length.
func NewConnectionManager(seed string, gridSize int) *ConnectionManager {
	if gridSize < 3 {
		gridSize = grid.DefaultSize
	}
	return &ConnectionManager{seed: seed, gridSize: gridSize}
}

// edgeKey canonicalizes the boundary shared by a zone and its neighbor.
// Horizontal boundaries are keyed by the southern zone, vertical boundaries
// by the eastern zone.
func (m *ConnectionManager) edgeKey(c grid.Coord, dir grid.Direction) string {
	switch dir {
	case grid.North:
		return fmt.Sprintf("h:%d:%d:%d", c.X, c.Y, c.Dimension)
	case grid.South:
		return fmt.Sprintf("h:%d:%d:%d", c.X, c.Y+1, c.Dimension)
	case grid.West:
		return fmt.Sprintf("v:%d:%d:%d", c.X, c.Y, c.Dimension)
	case grid.East:
		return fmt.Sprintf("v:%d:%d:%d", c.X+1, c.Y, c.Dimension)
	}
	return ""
}

// exitChance is the per-edge probability that an exit exists.
const exitChance = 0.85

// edgeExit resolves one edge to an exit index or nil.
func (m *ConnectionManager) edgeExit(c grid.Coord, dir grid.Direction) *int {
	rng := NewDeterministicRNG(m.seed, "edge."+m.edgeKey(c, dir))
	if rng.Float64() >= exitChance {
		return nil
	}
	// Interior indices only; corners stay walled.
	idx := 1 + rng.Intn(m.gridSize-2)
	return &idx
}

// Connections returns the exit layout for one zone coordinate.
func (m *ConnectionManager) Connections(c grid.Coord) Connections {
	return Connections{
		North: m.edgeExit(c, grid.North),
		South: m.edgeExit(c, grid.South),
		East:  m.edgeExit(c, grid.East),
		West:  m.edgeExit(c, grid.West),
	}
}
