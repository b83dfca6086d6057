package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"github.com/listinker/listinker-api/config"
	"github.com/listinker/listinker-api/internal/infrastructure/mongodb"
)

// Seeds the category catalog and ensures indexes. The API server does
// this on startup too; this binary exists for provisioning a database
// ahead of a deploy.
func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx := context.Background()

	client, err := mongodb.Connect(ctx, cfg.MongoURI, cfg.MongoConnTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongodb: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()
	db := client.Database(cfg.MongoDatabase)

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("failed to ensure indexes: %v", err)
	}
	if err := mongodb.EnsureCatalog(ctx, db); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}
	log.Println("catalog seeded")
}
