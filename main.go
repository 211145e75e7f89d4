package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"personalsite/handlers"
	"personalsite/scryfall"
	"personalsite/utils"
)

func main() {
	cfg, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()
	logger.Infow("starting", "environment", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the database connection pool
	dbPool, err := utils.OpenDB(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatalw("Failed to connect to database", "error", err)
	}
	defer dbPool.Close()

	applied, err := utils.Migrate(ctx, dbPool)
	if err != nil {
		logger.Fatalw("Migration failed", "error", err)
	}
	if len(applied) > 0 {
		logger.Infow("migrations applied", "versions", applied)
	}

	// The symbol cache is optional; without redis every card import
	// fetches the catalog.
	var cache scryfall.SymbolCache
	if cfg.RedisURL != "" {
		redisClient, err := utils.OpenRedisPool(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatalw("Failed to connect to redis", "error", err)
		}
		defer redisClient.Close()
		cache = utils.NewSymbolCache(redisClient, cfg.SymbolCacheTTL)
	}

	view, err := handlers.NewRenderer()
	if err != nil {
		logger.Fatalw("Failed to parse templates", "error", err)
	}

	router := handlers.NewRouter(handlers.Deps{
		Log:       logger,
		View:      view,
		Tasks:     utils.NewTaskStore(dbPool, cfg.QueryTimeout),
		Groceries: utils.NewGroceryStore(dbPool, cfg.QueryTimeout),
		Cards:     utils.NewCardStore(dbPool, cfg.QueryTimeout),
		Enricher:  scryfall.NewClient(cfg.ScryfallBaseURL, cfg.ScryfallTimeout, cache, logger),
		DB:        dbPool,
		StaticDir: "./ui/static/",
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("shutdown failed", "error", err)
		}
	}()

	logger.Infow("Starting server", "addr", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalw("Server failed", "error", err)
	}
}
