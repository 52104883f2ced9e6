package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"zonecrawl/server/internal/sim"
)

// JSONStore persists snapshots as files under one directory. It is the
// default store when no database is configured.
type JSONStore struct {
	dir string
}

// NewJSONStore creates the directory if needed.
func NewJSONStore(dir string) (*JSONStore, error) {
	if dir == "" {
		dir = "saves"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create save directory: %w", err)
	}
	return &JSONStore{dir: dir}, nil
}

func (s *JSONStore) path(name string) string {
	name = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		}
		return '_'
	}, name)
	return filepath.Join(s.dir, name+".json")
}

// SaveSnapshot writes atomically via a temp file so a crash never leaves a
// truncated save behind.
func (s *JSONStore) SaveSnapshot(name string, snap sim.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	target := s.path(name)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write temp snapshot: %w", err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// LoadSnapshot reads and decodes one snapshot. Shape validation beyond JSON
// well-formedness belongs to sim.Restore.
func (s *JSONStore) LoadSnapshot(name string) (sim.Snapshot, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		return sim.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	var snap sim.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return sim.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *JSONStore) Close() error { return nil }
