package main

import (
	"context"
	"log"
	"time"

	"skilllink/internal/config"
	"skilllink/internal/database"
	"skilllink/internal/domain/subscription"
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

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	plans := subscription.NewService(subscription.NewRepository(db))
	n, err := plans.ExpireMemberships(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("membership expiry failed: %v", err)
	}
	log.Printf("membership expiry completed: expired=%d", n)
}
