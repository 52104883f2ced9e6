package grid

import "fmt"

// Coord addresses one zone on the infinite plane.
type Coord struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Dimension int `json:"dimension"`
}

// Key canonicalizes the coordinate for cache and persistence maps.
func (c Coord) Key() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Dimension)
}

// ParseKey reverses Key. Malformed keys return ok=false.
func ParseKey(key string) (Coord, bool) {
	var c Coord
	n, err := fmt.Sscanf(key, "%d,%d,%d", &c.X, &c.Y, &c.Dimension)
	if err != nil || n != 3 {
		return Coord{}, false
	}
	return c, true
}

// Chebyshev returns the chessboard distance from the origin of the
// coordinate's dimension.
func (c Coord) Chebyshev() int {
	ax := c.X
	if ax < 0 {
		ax = -ax
	}
	ay := c.Y
	if ay < 0 {
		ay = -ay
	}
	if ax > ay {
		return ax
	}
	return ay
}

// Neighbor returns the zone adjacent in the given edge direction.
func (c Coord) Neighbor(dir Direction) Coord {
	switch dir {
	case North:
		return Coord{X: c.X, Y: c.Y - 1, Dimension: c.Dimension}
	case South:
		return Coord{X: c.X, Y: c.Y + 1, Dimension: c.Dimension}
	case East:
		return Coord{X: c.X + 1, Y: c.Y, Dimension: c.Dimension}
	case West:
		return Coord{X: c.X - 1, Y: c.Y, Dimension: c.Dimension}
	}
	return c
}

// Direction names one zone edge.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// Opposite returns the facing edge on the adjacent zone.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	}
	return d
}
