package main

import (
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/freshmall/shopsim/internal/catalog"
	"github.com/freshmall/shopsim/internal/httpserver"
	"github.com/freshmall/shopsim/internal/kvstore"
	"github.com/freshmall/shopsim/internal/session"
	"github.com/freshmall/shopsim/internal/sim"
	"github.com/freshmall/shopsim/pkg/config"
	"github.com/freshmall/shopsim/pkg/logging"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	store, err := kvstore.Open(cfg.DataPath)
	if err != nil {
		log.Fatalf("open durable store: %v", err)
	}

	seed := cfg.CatalogSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	cat := catalog.Generate(seed)

	sessions := &session.Manager{Secret: cfg.JWTSecret}
	simulator := sim.New(cat, store, sessions, logger, sim.Options{
		Latency: time.Duration(cfg.SimLatencyMS) * time.Millisecond,
	})

	e := httpserver.New(&httpserver.Deps{Sim: simulator, Log: logger})

	logger.Info("server starting", "port", cfg.ServerPort, "data_path", cfg.DataPath)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.ServerPort)))
}
