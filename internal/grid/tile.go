package grid

// TileKind discriminates the tagged Tile variant.
type TileKind string

const (
	TileFloor     TileKind = "floor"
	TileWall      TileKind = "wall"
	TileExit      TileKind = "exit"
	TileRock      TileKind = "rock"
	TileShrubbery TileKind = "shrubbery"
	TileGrass     TileKind = "grass"
	TileWater     TileKind = "water"
	TileSand      TileKind = "sand"
	TileFood      TileKind = "food"
	TileCharge    TileKind = "charge"
	TileStatue    TileKind = "statue"
	TileNote      TileKind = "note"
	TileAxe       TileKind = "axe"
	TileHammer    TileKind = "hammer"
)

// FoodKind selects a food asset; the generator derives it from the zone key.
type FoodKind int

// FoodKindCount bounds the deterministic subtype draw.
const FoodKindCount = 6

// StatueKind identifies a statue variant for the UI overlay collaborator.
type StatueKind string

const (
	StatueKnight StatueKind = "knight"
	StatueRook   StatueKind = "rook"
	StatueQueen  StatueKind = "queen"
)

// Tile is one grid cell: a discriminant plus optional payload. Payload
// fields are meaningful only for the kinds that declare them.
type Tile struct {
	Kind    TileKind   `json:"kind"`
	Food    FoodKind   `json:"food,omitempty"`
	Charges int        `json:"charges,omitempty"`
	Statue  StatueKind `json:"statue,omitempty"`
	Text    string     `json:"text,omitempty"`
}

// Floor is the zero-payload floor tile used when clearing cells.
func Floor() Tile { return Tile{Kind: TileFloor} }

// Wall is the zero-payload wall tile.
func Wall() Tile { return Tile{Kind: TileWall} }

// IsSolidTerrain reports whether the kind blocks every actor outright.
func (t Tile) IsSolidTerrain() bool {
	switch t.Kind {
	case TileWall, TileRock, TileShrubbery, TileStatue:
		return true
	}
	return false
}
