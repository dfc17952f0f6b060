package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int

	// DataPath is the sqlite file backing the durable store.
	DataPath string

	LogLevel string

	JWTSecret []byte

	// CatalogSeed fixes the synthetic catalog; 0 means seed from the clock.
	CatalogSeed int64

	// SimLatencyMS adds a fixed delay to every simulated call.
	SimLatencyMS int
}

func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env not found, using system environment: %v", err)
	}

	return Config{
		ServerPort:   EnvIntDefault("SERVER_PORT", 8080),
		DataPath:     EnvDefault("DATA_PATH", "shopsim.db"),
		LogLevel:     EnvDefault("LOG_LEVEL", "info"),
		JWTSecret:    []byte(EnvDefault("JWT_SECRET", "dev-only-secret")),
		CatalogSeed:  int64(EnvIntDefault("CATALOG_SEED", 0)),
		SimLatencyMS: EnvIntDefault("SIM_LATENCY_MS", 0),
	}
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
