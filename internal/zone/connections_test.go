package zone

import (
	"testing"

	"zonecrawl/server/internal/grid"
)

func TestConnectionsAreSymmetric(t *testing.T) {
	m := NewConnectionManager("symmetry-seed", grid.DefaultSize)
	for x := -6; x <= 6; x++ {
		for y := -6; y <= 6; y++ {
			c := grid.Coord{X: x, Y: y}
			here := m.Connections(c)

			south := m.Connections(c.Neighbor(grid.South))
			if !indicesEqual(here.South, south.North) {
				t.Fatalf("zone %v south=%v but southern neighbor north=%v", c, fmtIdx(here.South), fmtIdx(south.North))
			}

			east := m.Connections(c.Neighbor(grid.East))
			if !indicesEqual(here.East, east.West) {
				t.Fatalf("zone %v east=%v but eastern neighbor west=%v", c, fmtIdx(here.East), fmtIdx(east.West))
			}
		}
	}
}

func TestConnectionIndicesAvoidCorners(t *testing.T) {
	m := NewConnectionManager("corner-seed", grid.DefaultSize)
	for x := -20; x <= 20; x++ {
		conns := m.Connections(grid.Coord{X: x, Y: x * 3})
		for _, idx := range []*int{conns.North, conns.South, conns.East, conns.West} {
			if idx == nil {
				continue
			}
			if *idx < 1 || *idx > grid.DefaultSize-2 {
				t.Fatalf("connection index %d touches a corner", *idx)
			}
		}
	}
}

func TestConnectionsDifferAcrossDimensions(t *testing.T) {
	m := NewConnectionManager("dimension-seed", grid.DefaultSize)
	same := true
	for x := 0; x < 16 && same; x++ {
		a := m.Connections(grid.Coord{X: x, Y: 0, Dimension: 0})
		b := m.Connections(grid.Coord{X: x, Y: 0, Dimension: 1})
		if !indicesEqual(a.North, b.North) || !indicesEqual(a.East, b.East) {
			same = false
		}
	}
	if same {
		t.Fatalf("expected dimensions to produce distinct exit layouts")
	}
}

func indicesEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func fmtIdx(idx *int) any {
	if idx == nil {
		return nil
	}
	return *idx
}
