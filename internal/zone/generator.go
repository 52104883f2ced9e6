package zone

import (
	"context"
	"math/rand"

	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/nav"
	"zonecrawl/server/logging"
)

// Config captures the generation tunables.
type Config struct {
	Seed              string  `json:"seed"`
	GridSize          int     `json:"gridSize"`
	FoodZoneInterval  int     `json:"foodZoneInterval"`
	EnemyChance       float64 `json:"enemyChance"`
	PlacementAttempts int     `json:"placementAttempts"`
}

const defaultSeed = "overworld"

// normalized returns a config with defaults applied.
func (c Config) normalized() Config {
	normalized := c
	if normalized.Seed == "" {
		normalized.Seed = defaultSeed
	}
	if normalized.GridSize < 3 {
		normalized.GridSize = grid.DefaultSize
	}
	if normalized.FoodZoneInterval <= 0 {
		normalized.FoodZoneInterval = 4
	}
	if normalized.EnemyChance <= 0 {
		normalized.EnemyChance = 0.35
	}
	if normalized.PlacementAttempts <= 0 {
		normalized.PlacementAttempts = 20
	}
	return normalized
}

// DefaultConfig enables the standard overworld tuning.
func DefaultConfig() Config {
	return Config{}.normalized()
}

// Generator builds zones deterministically and memoizes them per zone key.
// It is the single writer of the cache and the generation state; callers
// serialize access (the hub holds one mutex around the whole engine).
type Generator struct {
	cfg       Config
	conns     *ConnectionManager
	cache     map[string]*Record
	state     WorldGenerationState
	publisher logging.Publisher
}

// NewGenerator wires a generator with its connection manager and publisher.
func NewGenerator(cfg Config, publisher logging.Publisher) *Generator {
	cfg = cfg.normalized()
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	return &Generator{
		cfg:       cfg,
		conns:     NewConnectionManager(cfg.Seed, cfg.GridSize),
		cache:     make(map[string]*Record),
		publisher: publisher,
	}
}

// Config returns the normalized generation config.
func (g *Generator) Config() Config { return g.cfg }

// Connections exposes the zone's exit layout to the simulation layer.
func (g *Generator) Connections(c grid.Coord) Connections {
	return g.conns.Connections(c)
}

// State returns a copy of the generation bookkeeping for snapshot export.
func (g *Generator) State() WorldGenerationState { return g.state }

// RestoreState replaces the generation bookkeeping wholesale.
func (g *Generator) RestoreState(state WorldGenerationState) { g.state = state }

// CacheSnapshot deep-copies every cached record for snapshot export.
func (g *Generator) CacheSnapshot() map[string]*Record {
	out := make(map[string]*Record, len(g.cache))
	for key, record := range g.cache {
		out[key] = record.Clone()
	}
	return out
}

// RestoreCache replaces the cache wholesale from persisted records.
func (g *Generator) RestoreCache(records map[string]*Record) {
	g.cache = make(map[string]*Record, len(records))
	for key, record := range records {
		g.cache[key] = record.Clone()
	}
}

// GenerateZone returns the record for a coordinate, building it on first
// request. A cache hit returns the stored record untouched, so mutations the
// player caused survive re-entry.
func (g *Generator) GenerateZone(coord grid.Coord) *Record {
	key := coord.Key()
	if record, ok := g.cache[key]; ok {
		return record
	}

	rng := NewDeterministicRNG(g.cfg.Seed, "zone."+key)
	tier := grid.Tier(coord)
	conns := g.conns.Connections(coord)

	zg := grid.New(g.cfg.GridSize)
	record := &Record{Grid: zg}

	g.punchExits(zg, conns, tier, rng)
	g.scatterFeatures(zg, tier, rng)

	var placements []grid.Point

	g.state.ZonesGenerated++
	if g.state.ZonesGenerated%g.cfg.FoodZoneInterval == 0 {
		if p, ok := g.placeConsumable(zg, key, rng); ok {
			placements = append(placements, p)
		}
	}

	if rng.Float64() < g.cfg.EnemyChance {
		if enemy, ok := g.placeEnemy(zg, key, tier, rng); ok {
			record.Enemies = append(record.Enemies, enemy)
			placements = append(placements, grid.Point{X: enemy.X, Y: enemy.Y})
		}
	}

	for _, p := range g.placeRewards(zg, coord, tier, rng) {
		placements = append(placements, p)
	}

	repaired := g.repairConnectivity(zg, conns)
	g.auditPlacements(key, placements, repaired)

	g.cache[key] = record
	g.publisher.Publish(context.Background(), logging.Event{
		Type:     "zone.generated",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGeneration,
		Actor:    logging.EntityRef{ID: key, Kind: logging.EntityKindZone},
		Payload:  map[string]any{"tier": tier, "enemies": len(record.Enemies)},
	})
	return record
}

// exitPoint maps an edge direction and connection index to a border cell.
func exitPoint(size int, dir grid.Direction, index int) grid.Point {
	switch dir {
	case grid.North:
		return grid.Point{X: index, Y: 0}
	case grid.South:
		return grid.Point{X: index, Y: size - 1}
	case grid.East:
		return grid.Point{X: size - 1, Y: index}
	case grid.West:
		return grid.Point{X: 0, Y: index}
	}
	return grid.Point{}
}

// ExitPoint exposes the edge mapping to the simulation layer.
func (g *Generator) ExitPoint(dir grid.Direction, index int) grid.Point {
	return exitPoint(g.cfg.GridSize, dir, index)
}

// EntryPoint is the cell a player arriving through the given edge lands on:
// one step inside the exit, which the repair pass always clears.
func (g *Generator) EntryPoint(dir grid.Direction, index int) grid.Point {
	return inwardOf(g.cfg.GridSize, exitPoint(g.cfg.GridSize, dir, index))
}

// reblockChance is the fraction of exits re-sealed with rock or shrubbery
// per tier; sealed exits force backtracking until the player finds a tool.
func reblockChance(tier int) float64 {
	switch {
	case tier >= 4:
		return 0.5
	case tier >= 2:
		return 0.25
	}
	return 0
}

func (g *Generator) punchExits(zg *grid.Grid, conns Connections, tier int, rng *rand.Rand) {
	for _, dir := range []grid.Direction{grid.North, grid.South, grid.East, grid.West} {
		idx := conns.Index(dir)
		if idx == nil {
			continue
		}
		p := exitPoint(zg.Size, dir, *idx)
		tile := grid.Tile{Kind: grid.TileExit}
		if rng.Float64() < reblockChance(tier) {
			if rng.Float64() < 0.5 {
				tile = grid.Tile{Kind: grid.TileRock}
			} else {
				tile = grid.Tile{Kind: grid.TileShrubbery}
			}
		}
		zg.Set(p.X, p.Y, tile)
	}
}

// featureWeights returns the per-cell scatter probabilities for a tier.
func featureWeights(tier int) (rock, grass, water, sand float64) {
	rock = 0.03 + 0.015*float64(tier)
	grass = 0.05 + 0.01*float64(tier)
	water = 0.02
	if tier >= 2 {
		water = 0.04
	}
	if tier == 1 || tier == 3 {
		sand = 0.03
	}
	return
}

func (g *Generator) scatterFeatures(zg *grid.Grid, tier int, rng *rand.Rand) {
	rock, grass, water, sand := featureWeights(tier)
	spawn := zg.Center()
	for y := 1; y < zg.Size-1; y++ {
		for x := 1; x < zg.Size-1; x++ {
			if (grid.Point{X: x, Y: y}) == spawn {
				continue
			}
			roll := rng.Float64()
			switch {
			case roll < rock:
				zg.Set(x, y, grid.Tile{Kind: grid.TileRock})
			case roll < rock+grass:
				if rng.Float64() < 0.5 {
					zg.Set(x, y, grid.Tile{Kind: grid.TileShrubbery})
				} else {
					zg.Set(x, y, grid.Tile{Kind: grid.TileGrass})
				}
			case roll < rock+grass+water:
				zg.Set(x, y, grid.Tile{Kind: grid.TileWater})
			case roll < rock+grass+water+sand:
				zg.Set(x, y, grid.Tile{Kind: grid.TileSand})
			}
		}
	}
}

// findOpenCell draws random interior cells until it hits plain floor or the
// attempt budget runs out. Exhaustion is a normal outcome: the caller skips
// the spawn.
func (g *Generator) findOpenCell(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool) {
	spawn := zg.Center()
	for attempt := 0; attempt < g.cfg.PlacementAttempts; attempt++ {
		p := grid.Point{
			X: 1 + rng.Intn(zg.Size-2),
			Y: 1 + rng.Intn(zg.Size-2),
		}
		if p == spawn {
			continue
		}
		if t, ok := zg.At(p.X, p.Y); ok && t.Kind == grid.TileFloor {
			return p, true
		}
	}
	return grid.Point{}, false
}

// FoodKindFor derives the food subtype from the zone key alone, so a record
// rebuilt from the same key always shows the same asset.
func FoodKindFor(key string) grid.FoodKind {
	sum := DeterministicSeedValue("food", key)
	if sum < 0 {
		sum = -sum
	}
	return grid.FoodKind(sum % grid.FoodKindCount)
}

func (g *Generator) placeConsumable(zg *grid.Grid, key string, rng *rand.Rand) (grid.Point, bool) {
	p, ok := g.findOpenCell(zg, rng)
	if !ok {
		g.publishSkip(key, "consumable")
		return grid.Point{}, false
	}
	if rng.Float64() < 0.7 {
		zg.Set(p.X, p.Y, grid.Tile{Kind: grid.TileFood, Food: FoodKindFor(key)})
	} else {
		zg.Set(p.X, p.Y, grid.Tile{Kind: grid.TileCharge, Charges: 1 + rng.Intn(3)})
	}
	return p, true
}

// archetypeFor picks an enemy capability for a tier; harder bands unlock the
// trickier movement patterns.
func archetypeFor(tier int, rng *rand.Rand) nav.CapabilityID {
	pool := []nav.CapabilityID{nav.CapOrthogonal}
	if tier >= 1 {
		pool = append(pool, nav.CapOmni)
	}
	if tier >= 2 {
		pool = append(pool, nav.CapKnight)
	}
	if tier >= 3 {
		pool = append(pool, nav.CapCharge)
	}
	return pool[rng.Intn(len(pool))]
}

func (g *Generator) placeEnemy(zg *grid.Grid, key string, tier int, rng *rand.Rand) (Enemy, bool) {
	p, ok := g.findOpenCell(zg, rng)
	if !ok {
		g.publishSkip(key, "enemy")
		return Enemy{}, false
	}
	// One enemy per zone at generation time, so the id is stable across
	// sessions and safe to pair with the zone key in the defeated-set.
	return Enemy{
		ID:         "e1",
		Capability: archetypeFor(tier, rng),
		X:          p.X,
		Y:          p.Y,
		Health:     1,
		Attack:     1 + tier/2,
	}, true
}

// rewardSpec couples a one-time reward with its eligibility predicate.
type rewardSpec struct {
	name     string
	eligible func(coord grid.Coord, tier int) bool
	place    func(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool)
}

func (g *Generator) rewardSpecs() []rewardSpec {
	return []rewardSpec{
		{
			name:     rewardAxe,
			eligible: func(_ grid.Coord, tier int) bool { return tier >= 1 },
			place: func(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool) {
				return g.placeTile(zg, rng, grid.Tile{Kind: grid.TileAxe})
			},
		},
		{
			name:     rewardHammer,
			eligible: func(_ grid.Coord, tier int) bool { return tier >= 2 },
			place: func(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool) {
				return g.placeTile(zg, rng, grid.Tile{Kind: grid.TileHammer})
			},
		},
		{
			name:     rewardNote,
			eligible: func(coord grid.Coord, _ int) bool { return coord.Chebyshev() >= 4 },
			place: func(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool) {
				return g.placeTile(zg, rng, grid.Tile{Kind: grid.TileNote, Text: "the statues remember the old moves"})
			},
		},
		{
			name:     rewardSpecialRoom,
			eligible: func(_ grid.Coord, tier int) bool { return tier >= 3 },
			place:    g.carveStatueRoom,
		},
	}
}

// placeRewards runs every rare one-time reward whose session flag is still
// unset. A successful placement flips the flag irrevocably for the session;
// a skipped placement leaves it unset for a later zone.
func (g *Generator) placeRewards(zg *grid.Grid, coord grid.Coord, tier int, rng *rand.Rand) []grid.Point {
	var placed []grid.Point
	for _, spec := range g.rewardSpecs() {
		if g.state.rewardFlag(spec.name) {
			continue
		}
		if !spec.eligible(coord, tier) {
			continue
		}
		p, ok := spec.place(zg, rng)
		if !ok {
			g.publishSkip(coord.Key(), spec.name)
			continue
		}
		g.state.setRewardFlag(spec.name)
		placed = append(placed, p)
		g.publisher.Publish(context.Background(), logging.Event{
			Type:     "reward.placed",
			Severity: logging.SeverityInfo,
			Category: logging.CategoryGeneration,
			Actor:    logging.EntityRef{ID: coord.Key(), Kind: logging.EntityKindZone},
			Payload:  map[string]any{"reward": spec.name, "x": p.X, "y": p.Y},
		})
	}
	return placed
}

func (g *Generator) placeTile(zg *grid.Grid, rng *rand.Rand, tile grid.Tile) (grid.Point, bool) {
	p, ok := g.findOpenCell(zg, rng)
	if !ok {
		return grid.Point{}, false
	}
	zg.Set(p.X, p.Y, tile)
	return p, true
}

// carveStatueRoom stamps a 3×3 walled room with a statue at its heart and a
// single doorway. The room refuses to cover the spawn cell.
func (g *Generator) carveStatueRoom(zg *grid.Grid, rng *rand.Rand) (grid.Point, bool) {
	spawn := zg.Center()
	statues := []grid.StatueKind{grid.StatueKnight, grid.StatueRook, grid.StatueQueen}
	for attempt := 0; attempt < g.cfg.PlacementAttempts; attempt++ {
		cx := 2 + rng.Intn(zg.Size-4)
		cy := 2 + rng.Intn(zg.Size-4)
		if abs(cx-spawn.X) <= 1 && abs(cy-spawn.Y) <= 1 {
			continue
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				zg.Set(cx+dx, cy+dy, grid.Wall())
			}
		}
		zg.Set(cx, cy, grid.Tile{Kind: grid.TileStatue, Statue: statues[rng.Intn(len(statues))]})
		// Doorway on a random side.
		switch rng.Intn(4) {
		case 0:
			zg.Set(cx, cy-1, grid.Floor())
		case 1:
			zg.Set(cx+1, cy, grid.Floor())
		case 2:
			zg.Set(cx, cy+1, grid.Floor())
		case 3:
			zg.Set(cx-1, cy, grid.Floor())
		}
		return grid.Point{X: cx, Y: cy}, true
	}
	return grid.Point{}, false
}

// repairConnectivity guarantees a corridor inward from every declared exit:
// the adjacent interior cell is force-cleared, then a straight Manhattan
// walk toward the center clears only wall and rock. It does not prove every
// placement is reachable; auditPlacements flags the pockets.
func (g *Generator) repairConnectivity(zg *grid.Grid, conns Connections) map[grid.Point]struct{} {
	repaired := make(map[grid.Point]struct{})
	center := zg.Center()
	for _, dir := range []grid.Direction{grid.North, grid.South, grid.East, grid.West} {
		idx := conns.Index(dir)
		if idx == nil {
			continue
		}
		exit := exitPoint(zg.Size, dir, *idx)
		inward := inwardOf(zg.Size, exit)
		if t, ok := zg.At(inward.X, inward.Y); ok {
			if t.IsSolidTerrain() || t.Kind == grid.TileWater {
				zg.Set(inward.X, inward.Y, grid.Floor())
			}
		}
		repaired[inward] = struct{}{}

		at := inward
		for at != center {
			if at.X != center.X {
				at.X += sign(center.X - at.X)
			} else {
				at.Y += sign(center.Y - at.Y)
			}
			if t, ok := zg.At(at.X, at.Y); ok {
				if t.Kind == grid.TileWall || t.Kind == grid.TileRock {
					zg.Set(at.X, at.Y, grid.Floor())
				}
			}
			repaired[at] = struct{}{}
		}
	}
	return repaired
}

// inwardOf steps one cell off the border toward the interior.
func inwardOf(size int, p grid.Point) grid.Point {
	switch {
	case p.Y == 0:
		return grid.Point{X: p.X, Y: 1}
	case p.Y == size-1:
		return grid.Point{X: p.X, Y: size - 2}
	case p.X == 0:
		return grid.Point{X: 1, Y: p.Y}
	case p.X == size-1:
		return grid.Point{X: size - 2, Y: p.Y}
	}
	return p
}

// auditPlacements emits a debug event for placements the repair pass never
// touched; whether those pockets are intended scavenger-hunt texture is a
// standing question for the domain owner.
func (g *Generator) auditPlacements(key string, placements []grid.Point, repaired map[grid.Point]struct{}) {
	for _, p := range placements {
		if _, ok := repaired[p]; ok {
			continue
		}
		g.publisher.Publish(context.Background(), logging.Event{
			Type:     "spawn.pocket",
			Severity: logging.SeverityDebug,
			Category: logging.CategoryGeneration,
			Actor:    logging.EntityRef{ID: key, Kind: logging.EntityKindZone},
			Payload:  map[string]any{"x": p.X, "y": p.Y},
		})
	}
}

func (g *Generator) publishSkip(key, what string) {
	g.publisher.Publish(context.Background(), logging.Event{
		Type:     "spawn.skipped",
		Severity: logging.SeverityDebug,
		Category: logging.CategoryGeneration,
		Actor:    logging.EntityRef{ID: key, Kind: logging.EntityKindZone},
		Payload:  map[string]any{"spawn": what},
	})
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
