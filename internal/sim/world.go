package sim

import (
	"context"
	"sort"

	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/nav"
	"zonecrawl/server/internal/zone"
	"zonecrawl/server/logging"
)

const (
	defaultMaxHealth = 10
	foodHealAmount   = 2
	chargeMaxSteps   = 3
)

// Player is the authoritative player record.
type Player struct {
	X         int      `json:"x"`
	Y         int      `json:"y"`
	Health    int      `json:"health"`
	MaxHealth int      `json:"maxHealth"`
	Charges   int      `json:"charges"`
	HasAxe    bool     `json:"hasAxe"`
	HasHammer bool     `json:"hasHammer"`
	Notes     []string `json:"notes,omitempty"`
}

// World is the single-writer simulation engine. All mutation happens
// synchronously on the caller's goroutine; the hub serializes access.
type World struct {
	gen       *zone.Generator
	coord     grid.Coord
	record    *zone.Record
	player    Player
	defeated  map[string]struct{}
	anim      map[string]*EnemyAnimation
	walk      walkQueue
	publisher logging.Publisher
	turn      uint64

	// justEntered suppresses exactly one enemy turn after a zone
	// transition, so arrival never costs the player a free hit.
	justEntered bool
}

// NewWorld generates the origin zone and drops the player at its center.
func NewWorld(cfg zone.Config, publisher logging.Publisher) *World {
	if publisher == nil {
		publisher = logging.NopPublisher()
	}
	w := &World{
		gen:       zone.NewGenerator(cfg, publisher),
		defeated:  make(map[string]struct{}),
		anim:      make(map[string]*EnemyAnimation),
		publisher: publisher,
	}
	w.coord = grid.Coord{}
	w.record = w.gen.GenerateZone(w.coord)
	spawn := w.record.Grid.Center()
	w.player = Player{
		X:         spawn.X,
		Y:         spawn.Y,
		Health:    defaultMaxHealth,
		MaxHealth: defaultMaxHealth,
	}
	w.justEntered = true
	return w
}

// Player returns a copy of the player record.
func (w *World) Player() Player { return w.player }

// CurrentZone returns the coordinate of the occupied zone.
func (w *World) CurrentZone() grid.Coord { return w.coord }

// CurrentRecord returns the live record of the occupied zone.
func (w *World) CurrentRecord() *zone.Record { return w.record }

// Turn returns the number of resolved player inputs.
func (w *World) Turn() uint64 { return w.turn }

// Animations returns the cosmetic per-enemy frame counters.
func (w *World) Animations() map[string]*EnemyAnimation { return w.anim }

// GenerateZone builds (or fetches) a zone and prunes enemies the player has
// already defeated there.
func (w *World) GenerateZone(coord grid.Coord) *zone.Record {
	record := w.gen.GenerateZone(coord)
	w.pruneDefeated(coord.Key(), record)
	return record
}

func defeatedKey(zoneKey, enemyID string) string {
	return zoneKey + "/" + enemyID
}

func (w *World) pruneDefeated(zoneKey string, record *zone.Record) {
	if record == nil {
		return
	}
	for i := 0; i < len(record.Enemies); {
		if _, gone := w.defeated[defeatedKey(zoneKey, record.Enemies[i].ID)]; gone {
			record.Enemies = append(record.Enemies[:i], record.Enemies[i+1:]...)
			continue
		}
		i++
	}
}

// EnqueueWalk replaces the queued walk with a fresh step sequence.
func (w *World) EnqueueWalk(steps []nav.Step) {
	w.walk.Replace(steps)
}

// StepQueuedWalk plays back one queued step as a full turn. ok=false means
// the queue is empty and the playback timer should stop.
func (w *World) StepQueuedWalk() (MoveResult, bool) {
	step, ok := w.walk.Pop()
	if !ok {
		return MoveResult{}, false
	}
	return w.resolveInput(step.DX, step.DY), true
}

// AttemptPlayerMove resolves one direct input. Direct input interrupts any
// queued walk before acting.
func (w *World) AttemptPlayerMove(dx, dy int) MoveResult {
	w.walk.Reset()
	return w.resolveInput(dx, dy)
}

func clampStep(v int) int {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}

// resolveInput is the atomic per-input sequence: player action, then one
// synchronized enemy pass unless the arrival flag eats it.
func (w *World) resolveInput(dx, dy int) MoveResult {
	dx = clampStep(dx)
	dy = clampStep(dy)

	result, turnConsumed := w.resolvePlayerAction(dx, dy)
	if !turnConsumed {
		return result
	}
	w.turn++

	if result.ZoneTransition != nil {
		// The arrival turn never runs the new zone's enemies.
		return result
	}
	if w.justEntered {
		w.justEntered = false
		return result
	}
	w.resolveEnemies()
	return result
}

// resolvePlayerAction applies the player's intent. The second return value
// reports whether the input consumed a turn; bumping into plain terrain does
// not.
func (w *World) resolvePlayerAction(dx, dy int) (MoveResult, bool) {
	if dx == 0 && dy == 0 {
		return MoveResult{}, true // deliberate wait
	}
	tx := w.player.X + dx
	ty := w.player.Y + dy

	if enemy, ok := w.record.EnemyAt(tx, ty); ok {
		w.bumpAttack(enemy)
		return MoveResult{}, true
	}

	tile, inBounds := w.record.Grid.At(tx, ty)
	if !inBounds {
		return MoveResult{}, false
	}

	if tile.Kind == grid.TileExit && w.record.Grid.IsBorder(tx, ty) {
		return w.transition(tx, ty)
	}

	if w.tryToolClear(tx, ty, tile) {
		return MoveResult{}, true
	}

	if !nav.PlayerWalkable(w.record.Grid, tx, ty) {
		return MoveResult{}, false
	}

	w.player.X = tx
	w.player.Y = ty
	w.interactWithTile(tx, ty)
	return MoveResult{Moved: true}, true
}

// tryToolClear opens a rock or shrubbery cell when the player carries the
// matching tool, or spends one stored charge in its place. Clearing costs
// the turn but does not move the player; a cleared border cell that hosts a
// declared connection reverts to an exit.
func (w *World) tryToolClear(x, y int, tile grid.Tile) bool {
	var canClear bool
	switch tile.Kind {
	case grid.TileRock:
		canClear = w.player.HasHammer
	case grid.TileShrubbery:
		canClear = w.player.HasAxe
	default:
		return false
	}
	usedCharge := false
	if !canClear && w.player.Charges > 0 {
		canClear = true
		usedCharge = true
	}
	if !canClear {
		return false
	}
	if usedCharge {
		w.player.Charges--
	}
	replacement := grid.Floor()
	if w.record.Grid.IsBorder(x, y) && w.connectionAt(x, y) {
		replacement = grid.Tile{Kind: grid.TileExit}
	}
	w.record.Grid.Set(x, y, replacement)
	w.publish(logging.Event{
		Type:     "tile.cleared",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Payload:  map[string]any{"x": x, "y": y, "kind": tile.Kind, "charge": usedCharge},
	})
	return true
}

// connectionAt reports whether (x, y) is a declared exit cell of the
// current zone.
func (w *World) connectionAt(x, y int) bool {
	conns := w.gen.Connections(w.coord)
	for _, dir := range []grid.Direction{grid.North, grid.South, grid.East, grid.West} {
		idx := conns.Index(dir)
		if idx == nil {
			continue
		}
		if w.gen.ExitPoint(dir, *idx) == (grid.Point{X: x, Y: y}) {
			return true
		}
	}
	return false
}

// bumpAttack resolves the player walking into an enemy: the enemy dies
// before any enemy turn runs, so it can never retaliate.
func (w *World) bumpAttack(enemy *zone.Enemy) {
	id := enemy.ID
	w.defeated[defeatedKey(w.coord.Key(), id)] = struct{}{}
	w.record.RemoveEnemy(id)
	w.anim[id] = &EnemyAnimation{Phase: EnemyDying, FramesLeft: deathAnimationFrames}
	w.publish(logging.Event{
		Type:     "combat.bump",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Targets:  []logging.EntityRef{{ID: id, Kind: logging.EntityKindEnemy}},
	})
	w.publish(logging.Event{
		Type:     "enemy.defeated",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryCombat,
		Actor:    logging.EntityRef{ID: id, Kind: logging.EntityKindEnemy},
		Payload:  map[string]any{"zone": w.coord.Key()},
	})
}

// transition carries the player across a border exit into the adjacent
// zone. The matching exit exists at the same index on the neighbor's
// opposite edge by the connection contract.
func (w *World) transition(x, y int) (MoveResult, bool) {
	var dir grid.Direction
	switch {
	case y == 0:
		dir = grid.North
	case y == w.record.Grid.Size-1:
		dir = grid.South
	case x == w.record.Grid.Size-1:
		dir = grid.East
	default:
		dir = grid.West
	}

	idx := w.gen.Connections(w.coord).Index(dir)
	if idx == nil {
		// A border exit without a declared connection would violate the
		// generator invariant; treat it as blocked rather than panic.
		return MoveResult{}, false
	}

	next := w.coord.Neighbor(dir)
	w.coord = next
	w.record = w.GenerateZone(next)
	entry := w.gen.EntryPoint(dir.Opposite(), *idx)
	w.player.X = entry.X
	w.player.Y = entry.Y
	w.justEntered = true
	w.walk.Reset()
	w.anim = make(map[string]*EnemyAnimation)

	w.publish(logging.Event{
		Type:     "zone.entered",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Payload:  map[string]any{"zone": next.Key(), "tier": grid.Tier(next)},
	})
	coord := next
	return MoveResult{Moved: true, ZoneTransition: &coord}, true
}

// interactWithTile applies pickups on the player's final cell. Consumed
// tiles become floor in the cached record, so the pickup survives re-entry.
func (w *World) interactWithTile(x, y int) {
	tile, ok := w.record.Grid.At(x, y)
	if !ok {
		return
	}
	switch tile.Kind {
	case grid.TileFood:
		w.player.Health += foodHealAmount
		if w.player.Health > w.player.MaxHealth {
			w.player.Health = w.player.MaxHealth
		}
		w.record.Grid.Set(x, y, grid.Floor())
	case grid.TileCharge:
		w.player.Charges += tile.Charges
		w.record.Grid.Set(x, y, grid.Floor())
	case grid.TileAxe:
		w.player.HasAxe = true
		w.record.Grid.Set(x, y, grid.Floor())
	case grid.TileHammer:
		w.player.HasHammer = true
		w.record.Grid.Set(x, y, grid.Floor())
	case grid.TileNote:
		w.player.Notes = append(w.player.Notes, tile.Text)
		w.record.Grid.Set(x, y, grid.Floor())
	default:
		return
	}
	w.publish(logging.Event{
		Type:     "item.picked",
		Severity: logging.SeverityInfo,
		Category: logging.CategoryGameplay,
		Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
		Payload:  map[string]any{"kind": tile.Kind, "x": x, "y": y},
	})
}

// ResolveEnemyTurn runs one synchronized enemy pass against the player's
// current position. Exposed for the input boundary; resolveInput calls it
// implicitly after a consumed turn.
func (w *World) ResolveEnemyTurn() {
	w.resolveEnemies()
}

// resolveEnemies plans every live enemy via BFS and applies the intents in
// stable id order. A planned step onto the player attacks instead of
// moving; a cell already claimed this pass leaves the later claimant in
// place.
func (w *World) resolveEnemies() {
	w.tickAnimations()
	if len(w.record.Enemies) == 0 {
		return
	}

	order := make([]string, 0, len(w.record.Enemies))
	for i := range w.record.Enemies {
		order = append(order, w.record.Enemies[i].ID)
	}
	sort.Strings(order)

	occupied := make(map[grid.Point]string, len(w.record.Enemies))
	for i := range w.record.Enemies {
		e := &w.record.Enemies[i]
		occupied[grid.Point{X: e.X, Y: e.Y}] = e.ID
	}

	for _, id := range order {
		enemy := w.enemyByID(id)
		if enemy == nil || enemy.Health <= 0 {
			continue
		}
		steps := 1
		if enemy.Capability == nav.CapCharge {
			steps = chargeMaxSteps
		}
		for s := 0; s < steps; s++ {
			if !w.resolveEnemyStep(enemy, occupied) {
				break
			}
		}
	}
}

// resolveEnemyStep plans and applies one step for one enemy. It returns
// true only when the enemy relocated, which lets chargers keep going.
func (w *World) resolveEnemyStep(enemy *zone.Enemy, occupied map[grid.Point]string) bool {
	capability := nav.ByID(enemy.Capability)
	step, ok := nav.NextStep(w.record.Grid, enemy.X, enemy.Y, w.player.X, w.player.Y, capability, nav.EnemyWalkable)
	if !ok {
		return false // unreachable player is a normal outcome; the enemy waits
	}

	intent := pendingIntent{actorID: enemy.ID, target: step, kind: intentMove}
	if step.X == w.player.X && step.Y == w.player.Y {
		intent.kind = intentAttack
	}

	switch intent.kind {
	case intentAttack:
		w.player.Health -= enemy.Attack
		if w.player.Health < 0 {
			w.player.Health = 0
		}
		w.anim[enemy.ID] = &EnemyAnimation{Phase: EnemyAttacking, FramesLeft: attackAnimationFrames}
		w.publish(logging.Event{
			Type:     "player.damaged",
			Severity: logging.SeverityInfo,
			Category: logging.CategoryCombat,
			Actor:    logging.EntityRef{ID: enemy.ID, Kind: logging.EntityKindEnemy},
			Targets:  []logging.EntityRef{{ID: "player", Kind: logging.EntityKindPlayer}},
			Payload:  map[string]any{"damage": enemy.Attack, "health": w.player.Health},
		})
		if w.player.Health == 0 {
			w.publish(logging.Event{
				Type:     "player.defeated",
				Severity: logging.SeverityWarn,
				Category: logging.CategoryCombat,
				Actor:    logging.EntityRef{ID: "player", Kind: logging.EntityKindPlayer},
			})
		}
		return false
	default:
		if holder, taken := occupied[intent.target]; taken && holder != enemy.ID {
			return false // earlier claimant keeps the cell; this enemy stays put
		}
		delete(occupied, grid.Point{X: enemy.X, Y: enemy.Y})
		occupied[intent.target] = enemy.ID
		enemy.X = intent.target.X
		enemy.Y = intent.target.Y
		return true
	}
}

func (w *World) enemyByID(id string) *zone.Enemy {
	for i := range w.record.Enemies {
		if w.record.Enemies[i].ID == id {
			return &w.record.Enemies[i]
		}
	}
	return nil
}

// tickAnimations advances the cosmetic counters; expired entries drop out.
func (w *World) tickAnimations() {
	for id, a := range w.anim {
		a.FramesLeft--
		if a.FramesLeft <= 0 {
			delete(w.anim, id)
		}
	}
}

func (w *World) publish(event logging.Event) {
	event.Turn = w.turn
	w.publisher.Publish(context.Background(), event)
}
