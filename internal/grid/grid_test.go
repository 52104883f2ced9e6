package grid

import "testing"

func TestNewGridBorderIsWalled(t *testing.T) {
	g := New(DefaultSize)
	if g.Size != DefaultSize {
		t.Fatalf("expected size %d, got %d", DefaultSize, g.Size)
	}
	for y := 0; y < g.Size; y++ {
		for x := 0; x < g.Size; x++ {
			tile, ok := g.At(x, y)
			if !ok {
				t.Fatalf("cell (%d,%d) unexpectedly out of bounds", x, y)
			}
			if g.IsBorder(x, y) && tile.Kind != TileWall {
				t.Fatalf("border cell (%d,%d) is %s, want wall", x, y, tile.Kind)
			}
			if !g.IsBorder(x, y) && tile.Kind != TileFloor {
				t.Fatalf("interior cell (%d,%d) is %s, want floor", x, y, tile.Kind)
			}
		}
	}
}

func TestAtOutOfBoundsIsBlocked(t *testing.T) {
	g := New(DefaultSize)
	for _, p := range []Point{{-1, 0}, {0, -1}, {g.Size, 0}, {0, g.Size}, {-5, -5}} {
		if _, ok := g.At(p.X, p.Y); ok {
			t.Fatalf("expected out-of-bounds read at %+v to fail", p)
		}
	}
	// Out-of-bounds writes are dropped, not panics.
	g.Set(-1, -1, Floor())
	g.Set(g.Size, g.Size, Floor())
}

func TestCloneDoesNotAlias(t *testing.T) {
	g := New(DefaultSize)
	clone := g.Clone()
	g.Set(3, 3, Tile{Kind: TileRock})
	if tile, _ := clone.At(3, 3); tile.Kind == TileRock {
		t.Fatalf("clone shares storage with original")
	}
}

func TestCoordKeyRoundTrip(t *testing.T) {
	for _, c := range []Coord{{0, 0, 0}, {-3, 7, 0}, {12, -40, 2}} {
		parsed, ok := ParseKey(c.Key())
		if !ok {
			t.Fatalf("failed to parse key %q", c.Key())
		}
		if parsed != c {
			t.Fatalf("round trip changed %+v into %+v", c, parsed)
		}
	}
	if _, ok := ParseKey("not-a-key"); ok {
		t.Fatalf("expected malformed key to fail")
	}
}

func TestTierBands(t *testing.T) {
	cases := []struct {
		name  string
		coord Coord
		tier  int
	}{
		{"origin", Coord{0, 0, 0}, 0},
		{"band0-edge", Coord{2, -1, 0}, 0},
		{"band1", Coord{3, 0, 0}, 1},
		{"band1-diagonal", Coord{-5, 5, 0}, 1},
		{"band2", Coord{0, 9, 0}, 2},
		{"band3", Coord{-14, 2, 0}, 3},
		{"band4", Coord{15, 0, 0}, 4},
		{"far", Coord{100, -200, 0}, 4},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Tier(tc.coord); got != tc.tier {
				t.Fatalf("Tier(%+v) = %d, want %d", tc.coord, got, tc.tier)
			}
		})
	}
}
