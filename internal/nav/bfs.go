package nav

import "zonecrawl/server/internal/grid"

// Path runs an unweighted breadth-first search from (fromX, fromY) to
// (toX, toY) along the capability's step set, expanding only through cells
// the walkable predicate allows. The goal cell is always admissible so an
// enemy can path onto the player regardless of the tile under them. The
// returned path includes the start cell; ok=false means unreachable, which
// is a normal outcome, not an error.
func Path(g *grid.Grid, fromX, fromY, toX, toY int, capability Capability, walkable WalkFunc) ([]grid.Point, bool) {
	if g == nil || walkable == nil {
		return nil, false
	}
	if !g.InBounds(fromX, fromY) || !g.InBounds(toX, toY) {
		return nil, false
	}
	start := grid.Point{X: fromX, Y: fromY}
	goal := grid.Point{X: toX, Y: toY}
	if start == goal {
		return []grid.Point{start}, true
	}

	parent := map[grid.Point]grid.Point{start: start}
	queue := []grid.Point{start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, step := range capability.Steps {
			next := grid.Point{X: current.X + step.DX, Y: current.Y + step.DY}
			if _, seen := parent[next]; seen {
				continue
			}
			if next != goal && !walkable(g, next.X, next.Y) {
				continue
			}
			parent[next] = current
			if next == goal {
				return reconstruct(parent, start, goal), true
			}
			queue = append(queue, next)
		}
	}
	return nil, false
}

// NextStep returns the first cell of the shortest path toward the target.
// ok=false means no path exists and the actor waits this turn.
func NextStep(g *grid.Grid, fromX, fromY, toX, toY int, capability Capability, walkable WalkFunc) (grid.Point, bool) {
	path, ok := Path(g, fromX, fromY, toX, toY, capability, walkable)
	if !ok || len(path) < 2 {
		return grid.Point{}, false
	}
	return path[1], true
}

func reconstruct(parent map[grid.Point]grid.Point, start, goal grid.Point) []grid.Point {
	path := []grid.Point{goal}
	for at := goal; at != start; {
		at = parent[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
