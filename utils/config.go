package utils

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env             string
	Port            string
	DatabaseURL     string
	RedisURL        string
	ScryfallBaseURL string
	ScryfallTimeout time.Duration
	SymbolCacheTTL  time.Duration
	QueryTimeout    time.Duration
}

// LoadConfig reads the environment, loading a .env file first outside
// production.
func LoadConfig() (Config, error) {
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found, continuing..")
		}
	}

	cfg := Config{
		Env:             os.Getenv("APP_ENV"),
		Port:            getEnv("PORT", "8080"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		RedisURL:        os.Getenv("REDIS_URL"),
		ScryfallBaseURL: getEnv("SCRYFALL_BASE_URL", "https://api.scryfall.com"),
	}
	if cfg.DatabaseURL == "" {
		return cfg, errors.New("DATABASE_URL is required in .env or environment")
	}

	var err error
	if cfg.ScryfallTimeout, err = getDuration("SCRYFALL_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	if cfg.SymbolCacheTTL, err = getDuration("SYMBOL_CACHE_TTL", 24*time.Hour); err != nil {
		return cfg, err
	}
	if cfg.QueryTimeout, err = getDuration("QUERY_TIMEOUT", 10*time.Second); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be positive", key, v)
	}
	return d, nil
}
