package sim

import (
	"encoding/json"
	"testing"

	"zonecrawl/server/internal/grid"
	"zonecrawl/server/internal/zone"
)

func TestSnapshotRoundTripPreservesTheWorld(t *testing.T) {
	w, _ := newCapturingWorld("roundtrip")
	w.GenerateZone(grid.Coord{X: 1, Y: 0})
	w.GenerateZone(grid.Coord{X: 0, Y: -2})
	w.defeated[defeatedKey("1,0,0", "e1")] = struct{}{}
	w.player.Health = 4
	w.player.HasAxe = true
	w.record.Grid.Set(5, 6, grid.Tile{Kind: grid.TileSand})

	snap := w.Snapshot()

	// The snapshot must survive the wire format.
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	var decoded Snapshot
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal snapshot: %v", err)
	}

	restored, _ := newCapturingWorld("roundtrip")
	if err := restored.Restore(decoded); err != nil {
		t.Fatalf("restore: %v", err)
	}

	if restored.CurrentZone() != w.CurrentZone() {
		t.Fatalf("zone changed: %v vs %v", restored.CurrentZone(), w.CurrentZone())
	}
	if got := restored.Player(); got.Health != 4 || !got.HasAxe {
		t.Fatalf("player state lost in round trip: %+v", got)
	}
	if tile, _ := restored.record.Grid.At(5, 6); tile.Kind != grid.TileSand {
		t.Fatalf("cached grid mutation lost in round trip: %s", tile.Kind)
	}
	if _, ok := restored.defeated[defeatedKey("1,0,0", "e1")]; !ok {
		t.Fatalf("defeated set lost in round trip")
	}
	if !restored.justEntered {
		t.Fatalf("restore must arm the enemy-turn suppression flag")
	}

	again := restored.Snapshot()
	if again.CurrentZone != snap.CurrentZone || again.Generation != snap.Generation {
		t.Fatalf("second snapshot drifted: %+v vs %+v", again, snap)
	}
	if len(again.Defeated) != len(snap.Defeated) {
		t.Fatalf("defeated list drifted: %v vs %v", again.Defeated, snap.Defeated)
	}
}

func TestRestoreRejectsMalformedSnapshots(t *testing.T) {
	base := func() Snapshot {
		w, _ := newCapturingWorld("malformed")
		return w.Snapshot()
	}

	cases := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"wrong-version", func(s *Snapshot) { s.Version = 99 }},
		{"bad-zone-key", func(s *Snapshot) { s.CurrentZone = "north-by-northwest" }},
		{"nil-grid", func(s *Snapshot) { s.Zones["0,0,0"] = &zone.Record{} }},
		{"ragged-grid", func(s *Snapshot) {
			s.Zones["0,0,0"].Grid.Tiles = s.Zones["0,0,0"].Grid.Tiles[:3]
		}},
		{"dead-player", func(s *Snapshot) { s.Player.MaxHealth = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, _ := newCapturingWorld("malformed-target")
			before := w.Snapshot()

			snap := base()
			tc.mutate(&snap)
			if err := w.Restore(snap); err == nil {
				t.Fatalf("expected a restore error")
			}

			// A rejected restore leaves the engine untouched and usable.
			if w.CurrentZone().Key() != before.CurrentZone {
				t.Fatalf("rejected restore moved the world to %v", w.CurrentZone())
			}
			w.AttemptPlayerMove(0, 0)
		})
	}
}
