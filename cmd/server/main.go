package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"time"

	server "zonecrawl/server"
	"zonecrawl/server/internal/net/ws"
	"zonecrawl/server/logging"
	"zonecrawl/server/logging/sinks"
	"zonecrawl/server/persistence"
)

func main() {
	cfg := server.DefaultConfig()
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	flag.StringVar(&cfg.SaveDir, "save-dir", cfg.SaveDir, "directory for JSON saves")
	flag.StringVar(&cfg.PostgresDSN, "postgres-dsn", "", "PostgreSQL DSN; overrides the JSON store")
	flag.StringVar(&cfg.LogJSONPath, "log-json", "", "path for NDJSON event log")
	flag.StringVar(&cfg.Generation.Seed, "seed", cfg.Generation.Seed, "world seed")
	flag.Parse()

	logCfg := logging.DefaultConfig()
	named := []logging.NamedSink{
		{Name: "console", Sink: sinks.NewConsoleSink(os.Stdout, logCfg.Console)},
	}
	if cfg.LogJSONPath != "" {
		file, err := os.OpenFile(cfg.LogJSONPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatalf("open event log: %v", err)
		}
		named = append(named, logging.NamedSink{
			Name: "json",
			Sink: sinks.NewJSON(file, logCfg.JSON.FlushInterval),
		})
	}
	router, err := logging.NewRouter(nil, logCfg, named)
	if err != nil {
		log.Fatalf("build log router: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		router.Close(ctx)
	}()

	store, err := openStore(cfg)
	if err != nil {
		log.Fatalf("open storage: %v", err)
	}
	defer store.Close()

	hub := server.NewHub(cfg, store, router)
	handler := ws.NewHandler(hub, ws.HandlerConfig{})

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", handler.Handle)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("serve: %v", err)
	}
}

func openStore(cfg server.Config) (persistence.Storage, error) {
	if cfg.PostgresDSN != "" {
		return persistence.NewPostgresStore(cfg.PostgresDSN)
	}
	return persistence.NewJSONStore(cfg.SaveDir)
}
