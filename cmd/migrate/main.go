// Command migrate applies pending database migrations and exits. With
// -flush-symbols it also drops the cached symbology catalog.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"personalsite/utils"
)

func main() {
	flushSymbols := flag.Bool("flush-symbols", false, "drop the cached symbology catalog from redis")
	flag.Parse()

	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("[FATAL] %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := utils.OpenDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[FATAL] Failed to connect to database: %v", err)
	}
	defer pool.Close()

	applied, err := utils.Migrate(ctx, pool)
	if err != nil {
		log.Fatalf("[FATAL] Migration failed: %v", err)
	}
	if len(applied) == 0 {
		log.Println("Database already up to date")
	}
	for _, v := range applied {
		log.Println("Applied migration", v)
	}

	if *flushSymbols {
		if cfg.RedisURL == "" {
			log.Fatal("[FATAL] -flush-symbols needs REDIS_URL")
		}
		client, err := utils.OpenRedisPool(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[FATAL] %v", err)
		}
		defer client.Close()
		if err := utils.NewSymbolCache(client, cfg.SymbolCacheTTL).InvalidateSymbols(ctx); err != nil {
			log.Fatalf("[FATAL] Failed to flush symbol cache: %v", err)
		}
		log.Println("Symbol cache flushed")
	}
}
