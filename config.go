package server

import (
	"strings"

	"zonecrawl/server/internal/zone"
)

// Config captures the toggles used when booting a world server.
type Config struct {
	Addr        string      `json:"addr"`
	SaveDir     string      `json:"saveDir"`
	PostgresDSN string      `json:"postgresDsn"`
	LogJSONPath string      `json:"logJsonPath"`
	Generation  zone.Config `json:"generation"`
}

// normalized returns a config with defaults applied.
func (cfg Config) normalized() Config {
	normalized := cfg
	normalized.Addr = strings.TrimSpace(normalized.Addr)
	if normalized.Addr == "" {
		normalized.Addr = ":8080"
	}
	if normalized.SaveDir == "" {
		normalized.SaveDir = "saves"
	}
	return normalized
}

// DefaultConfig serves a local world with JSON saves.
func DefaultConfig() Config {
	return Config{}.normalized()
}
