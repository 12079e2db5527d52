package main

import (
	"context"
	"flag"
	"log"
	"os"

	"skilllink/internal/config"
	"skilllink/internal/database"
	"skilllink/internal/schema"
	"skilllink/internal/seed"
)

func main() {
	file := flag.String("file", "", "seed YAML file (defaults to the embedded data)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	log.Println("Running AutoMigrate...")
	if err := schema.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	var data *seed.Data
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read %s: %v", *file, err)
		}
		data, err = seed.Parse(raw)
		if err != nil {
			log.Fatal(err)
		}
	} else if data, err = seed.Default(); err != nil {
		log.Fatal(err)
	}

	if err := seed.Apply(context.Background(), db, data); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("seed completed")
}
