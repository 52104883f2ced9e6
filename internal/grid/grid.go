package grid

// DefaultSize is the edge length of a zone grid.
const DefaultSize = 11

// Point addresses one cell inside a zone grid.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is one zone's square tile array. Every border cell is Wall except the
// cells opened as Exit by the zone's declared connections.
type Grid struct {
	Size  int      `json:"size"`
	Tiles [][]Tile `json:"tiles"`
}

// New returns a size×size grid filled with floor and walled on the border.
func New(size int) *Grid {
	if size < 3 {
		size = DefaultSize
	}
	tiles := make([][]Tile, size)
	for y := range tiles {
		tiles[y] = make([]Tile, size)
		for x := range tiles[y] {
			if x == 0 || y == 0 || x == size-1 || y == size-1 {
				tiles[y][x] = Wall()
			} else {
				tiles[y][x] = Floor()
			}
		}
	}
	return &Grid{Size: size, Tiles: tiles}
}

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return g != nil && x >= 0 && y >= 0 && x < g.Size && y < g.Size
}

// At returns the tile at (x, y). Out-of-bounds reads return ok=false and
// callers treat the cell as blocked.
func (g *Grid) At(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	return g.Tiles[y][x], true
}

// Set writes the tile at (x, y); out-of-bounds writes are dropped.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.InBounds(x, y) {
		return
	}
	g.Tiles[y][x] = t
}

// IsBorder reports whether (x, y) lies on the outer ring.
func (g *Grid) IsBorder(x, y int) bool {
	if !g.InBounds(x, y) {
		return false
	}
	return x == 0 || y == 0 || x == g.Size-1 || y == g.Size-1
}

// Center returns the spawn cell, which generation never overwrites.
func (g *Grid) Center() Point {
	if g == nil {
		return Point{}
	}
	return Point{X: g.Size / 2, Y: g.Size / 2}
}

// Clone deep-copies the grid so snapshots cannot alias live state.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	tiles := make([][]Tile, len(g.Tiles))
	for y, row := range g.Tiles {
		tiles[y] = append([]Tile(nil), row...)
	}
	return &Grid{Size: g.Size, Tiles: tiles}
}
