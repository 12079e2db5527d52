package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"skilllink/internal/app"
	"skilllink/internal/config"
	"skilllink/internal/database"
	"skilllink/internal/domain/auth"
	"skilllink/internal/schema"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := schema.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	store, checks, closeStore := sessionStore(cfg)
	defer closeStore()

	a := app.New(cfg, db, store, checks)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           a.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("api: listening on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("api: listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("api: shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("api: shutdown: %v", err)
	}
	a.Hub.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("api: stopped")
}

// sessionStore uses Redis when REDIS_ADDR is set and falls back to memory.
func sessionStore(cfg *config.Config) (auth.SessionStore, map[string]app.Pinger, func()) {
	if cfg.RedisAddr == "" {
		if cfg.IsProd() {
			log.Println("api: REDIS_ADDR not set, revoked sessions are kept in memory")
		}
		return auth.NewMemoryStore(), nil, func() {}
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("redis ping %s: %v", cfg.RedisAddr, err)
	}
	log.Printf("api: session store redis=%s", cfg.RedisAddr)

	checks := map[string]app.Pinger{
		"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}
	return auth.NewRedisStore(rdb), checks, func() { _ = rdb.Close() }
}
