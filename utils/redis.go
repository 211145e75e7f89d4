package utils

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"personalsite/scryfall"

	"github.com/redis/go-redis/v9"
)

const symbologyKey = "scryfall:symbology"

// OpenRedisPool parses dsn and returns a pinged client.
func OpenRedisPool(ctx context.Context, dsn string) (*redis.Client, error) {
	opt, err := redis.ParseURL(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse redis DSN: %w", err)
	}

	opt.PoolSize = 10
	opt.MinIdleConns = 1
	opt.DialTimeout = 5 * time.Second
	opt.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opt)
	if err = client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// SymbolCache keeps the symbology catalog in redis as one JSON value.
type SymbolCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSymbolCache(client *redis.Client, ttl time.Duration) *SymbolCache {
	return &SymbolCache{client: client, ttl: ttl}
}

func (c *SymbolCache) GetSymbols(ctx context.Context) ([]scryfall.Symbol, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := c.client.Get(ctx, symbologyKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var symbols []scryfall.Symbol
	if err := json.Unmarshal(data, &symbols); err != nil {
		return nil, false, fmt.Errorf("decode cached symbology: %w", err)
	}
	return symbols, true, nil
}

func (c *SymbolCache) SetSymbols(ctx context.Context, symbols []scryfall.Symbol) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := json.Marshal(symbols)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, symbologyKey, data, c.ttl).Err()
}

// InvalidateSymbols drops the cached catalog so the next card import
// fetches it again.
func (c *SymbolCache) InvalidateSymbols(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return c.client.Del(ctx, symbologyKey).Err()
}
