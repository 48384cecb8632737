// File: cmd/apikeygen/main.go
//
// apikeygen issues a new API key: generates the plaintext key, stores its
// hash plus the daily quota ceiling in Postgres, and prints the key once.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"image-gateway/internal/config"
	"image-gateway/internal/domain/model"
	pg "image-gateway/internal/infra/db/postgres"
	"image-gateway/internal/infra/security"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	name := flag.String("name", "", "human-readable credential name (required)")
	quota := flag.Int("quota", 50, "daily request ceiling")
	flag.Parse()

	if *name == "" {
		log.Fatal("-name is required")
	}
	if *quota <= 0 {
		log.Fatal("-quota must be positive")
	}

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 2)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	key, err := security.GenerateAPIKey()
	if err != nil {
		log.Fatalf("generate key: %v", err)
	}
	cred, err := model.NewCredential("", security.HashAPIKey(key), *name, *quota)
	if err != nil {
		log.Fatalf("credential: %v", err)
	}
	if err := pg.NewCredentialRepo(pool).Save(ctx, cred); err != nil {
		log.Fatalf("save credential: %v", err)
	}

	fmt.Printf("credential id: %s\n", cred.ID)
	fmt.Printf("api key (shown once, store it now): %s\n", key)
	fmt.Printf("daily quota: %d\n", *quota)
}
