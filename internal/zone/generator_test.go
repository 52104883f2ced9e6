package zone

import (
	"testing"

	"zonecrawl/server/internal/grid"
)

func newTestGenerator(seed string) *Generator {
	return NewGenerator(Config{Seed: seed}, nil)
}

func TestGeneratedBorderIsWallOrExit(t *testing.T) {
	g := newTestGenerator("border-seed")
	// Tier-0 zones never re-block exits, so the border invariant is exact.
	for _, coord := range []grid.Coord{{X: 0, Y: 0, Dimension: 0}, {X: 1, Y: 0, Dimension: 0}, {X: -1, Y: 2, Dimension: 0}, {X: 2, Y: -2, Dimension: 0}} {
		record := g.GenerateZone(coord)
		zg := record.Grid
		for y := 0; y < zg.Size; y++ {
			for x := 0; x < zg.Size; x++ {
				if !zg.IsBorder(x, y) {
					continue
				}
				tile, _ := zg.At(x, y)
				if tile.Kind != grid.TileWall && tile.Kind != grid.TileExit {
					t.Fatalf("zone %v border cell (%d,%d) is %s", coord, x, y, tile.Kind)
				}
			}
		}
	}
}

func TestGenerateZoneIsCacheIdempotent(t *testing.T) {
	g := newTestGenerator("cache-seed")
	coord := grid.Coord{X: 1, Y: 1}

	first := g.GenerateZone(coord)
	second := g.GenerateZone(coord)
	if first != second {
		t.Fatalf("expected the cached record, got a fresh one")
	}

	// Player-caused mutations must survive re-entry.
	first.Grid.Set(5, 5, grid.Tile{Kind: grid.TileSand})
	again := g.GenerateZone(coord)
	if tile, _ := again.Grid.At(5, 5); tile.Kind != grid.TileSand {
		t.Fatalf("cached mutation was lost: got %s", tile.Kind)
	}
}

func TestDeclaredExitsArePunched(t *testing.T) {
	g := newTestGenerator("exit-seed")
	coord := grid.Coord{X: 0, Y: 0}
	conns := g.Connections(coord)
	record := g.GenerateZone(coord)

	checks := []struct {
		dir grid.Direction
		idx *int
	}{
		{grid.North, conns.North},
		{grid.South, conns.South},
		{grid.East, conns.East},
		{grid.West, conns.West},
	}
	for _, check := range checks {
		if check.idx == nil {
			continue
		}
		p := g.ExitPoint(check.dir, *check.idx)
		tile, _ := record.Grid.At(p.X, p.Y)
		switch tile.Kind {
		case grid.TileExit, grid.TileRock, grid.TileShrubbery:
		default:
			t.Fatalf("declared %s exit at %+v is %s", check.dir, p, tile.Kind)
		}
	}
}

func TestRepairClearsInwardOfEveryExit(t *testing.T) {
	g := newTestGenerator("repair-seed")
	for x := -3; x <= 3; x++ {
		for y := -3; y <= 3; y++ {
			coord := grid.Coord{X: x, Y: y}
			conns := g.Connections(coord)
			record := g.GenerateZone(coord)
			for _, dir := range []grid.Direction{grid.North, grid.South, grid.East, grid.West} {
				idx := conns.Index(dir)
				if idx == nil {
					continue
				}
				entry := g.EntryPoint(dir, *idx)
				tile, ok := record.Grid.At(entry.X, entry.Y)
				if !ok {
					t.Fatalf("entry cell %+v out of bounds", entry)
				}
				if tile.IsSolidTerrain() || tile.Kind == grid.TileWater {
					t.Fatalf("zone %v entry cell %+v behind %s exit is %s", coord, entry, dir, tile.Kind)
				}
			}
		}
	}
}

func TestFoodSubtypeIsDeterministic(t *testing.T) {
	key := grid.Coord{X: 7, Y: -2}.Key()
	first := FoodKindFor(key)
	for i := 0; i < 5; i++ {
		if got := FoodKindFor(key); got != first {
			t.Fatalf("food subtype re-rolled: %d then %d", first, got)
		}
	}
	if first < 0 || int(first) >= grid.FoodKindCount {
		t.Fatalf("food subtype %d outside asset range", first)
	}
}

func TestOneTimeRewardsPlaceExactlyOnce(t *testing.T) {
	g := newTestGenerator("reward-seed")

	// March through plenty of eligible zones.
	for x := 3; x < 60; x++ {
		g.GenerateZone(grid.Coord{X: x, Y: 0})
		g.GenerateZone(grid.Coord{X: 0, Y: x})
	}

	state := g.State()
	if !state.AxePlaced || !state.HammerPlaced || !state.NotePlaced || !state.SpecialRoom {
		t.Fatalf("expected every reward flag set after the march, got %+v", state)
	}

	counts := map[grid.TileKind]int{}
	statues := 0
	for _, record := range g.CacheSnapshot() {
		for y := 0; y < record.Grid.Size; y++ {
			for x := 0; x < record.Grid.Size; x++ {
				tile, _ := record.Grid.At(x, y)
				switch tile.Kind {
				case grid.TileAxe, grid.TileHammer, grid.TileNote:
					counts[tile.Kind]++
				case grid.TileStatue:
					statues++
				}
			}
		}
	}
	for _, kind := range []grid.TileKind{grid.TileAxe, grid.TileHammer, grid.TileNote} {
		if counts[kind] != 1 {
			t.Fatalf("expected exactly one %s in the world, found %d", kind, counts[kind])
		}
	}
	if statues != 1 {
		t.Fatalf("expected exactly one statue room, found %d statues", statues)
	}
}

func TestGenerationStateRoundTrip(t *testing.T) {
	g := newTestGenerator("state-seed")
	g.GenerateZone(grid.Coord{X: 4, Y: 4})
	state := g.State()

	other := newTestGenerator("state-seed")
	other.RestoreState(state)
	if other.State() != state {
		t.Fatalf("state round trip changed %+v into %+v", state, other.State())
	}
}

func TestSpawnCellStaysOpen(t *testing.T) {
	g := newTestGenerator("spawn-seed")
	for x := 0; x < 10; x++ {
		record := g.GenerateZone(grid.Coord{X: x, Y: -x})
		spawn := record.Grid.Center()
		tile, _ := record.Grid.At(spawn.X, spawn.Y)
		if tile.Kind != grid.TileFloor {
			t.Fatalf("zone %d spawn cell is %s, want floor", x, tile.Kind)
		}
	}
}
