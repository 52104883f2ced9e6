// Package persistence stores the plain-data snapshots the simulation core
// exports. The core never sees storage mechanics; it hands over a
// sim.Snapshot and gets one back.
package persistence

import "zonecrawl/server/internal/sim"

// Storage is the snapshot persistence boundary.
type Storage interface {
	SaveSnapshot(name string, snap sim.Snapshot) error
	LoadSnapshot(name string) (sim.Snapshot, error)
	Close() error
}
