package persistence

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"zonecrawl/server/internal/sim"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// PostgresStore keeps snapshots in one JSONB-backed table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens the pool, verifies connectivity and ensures the
// schema exists.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

func (s *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		name TEXT PRIMARY KEY,
		data JSONB NOT NULL,
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`
	_, err := s.db.Exec(schema)
	return err
}

func (s *PostgresStore) SaveSnapshot(name string, snap sim.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO snapshots (name, data, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET data = $2, updated_at = NOW()`,
		name, data)
	if err != nil {
		return fmt.Errorf("store snapshot: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadSnapshot(name string) (sim.Snapshot, error) {
	var data []byte
	err := s.db.QueryRow(`SELECT data FROM snapshots WHERE name = $1`, name).Scan(&data)
	if err != nil {
		return sim.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}
	var snap sim.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return sim.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
