package utils_test

import (
	"testing"
	"time"

	"personalsite/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnv clears every variable LoadConfig reads, then applies vars.
// APP_ENV=production keeps godotenv from reading a stray .env file.
func setEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for _, k := range []string{"PORT", "DATABASE_URL", "REDIS_URL", "SCRYFALL_BASE_URL", "SCRYFALL_TIMEOUT", "SYMBOL_CACHE_TTL", "QUERY_TIMEOUT"} {
		t.Setenv(k, "")
	}
	t.Setenv("APP_ENV", "production")
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	setEnv(t, map[string]string{"DATABASE_URL": "postgres://localhost/site"})

	cfg, err := utils.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres://localhost/site", cfg.DatabaseURL)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "https://api.scryfall.com", cfg.ScryfallBaseURL)
	assert.Equal(t, 10*time.Second, cfg.ScryfallTimeout)
	assert.Equal(t, 24*time.Hour, cfg.SymbolCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.QueryTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":      "postgres://db/site",
		"REDIS_URL":         "redis://cache:6379/0",
		"PORT":              "4000",
		"SCRYFALL_BASE_URL": "http://localhost:9000",
		"SCRYFALL_TIMEOUT":  "3s",
		"SYMBOL_CACHE_TTL":  "1h",
	})

	cfg, err := utils.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, "http://localhost:9000", cfg.ScryfallBaseURL)
	assert.Equal(t, 3*time.Second, cfg.ScryfallTimeout)
	assert.Equal(t, time.Hour, cfg.SymbolCacheTTL)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{
			name: "missing database url",
			vars: map[string]string{},
			want: "DATABASE_URL is required",
		},
		{
			name: "bad timeout",
			vars: map[string]string{"DATABASE_URL": "postgres://db/site", "SCRYFALL_TIMEOUT": "soon"},
			want: "invalid SCRYFALL_TIMEOUT",
		},
		{
			name: "negative ttl",
			vars: map[string]string{"DATABASE_URL": "postgres://db/site", "SYMBOL_CACHE_TTL": "-1m"},
			want: "must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.vars)

			_, err := utils.LoadConfig()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
