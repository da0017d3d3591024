package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"mixtape/internal/cache"
	"mixtape/internal/config"
	"mixtape/internal/models"
	"mixtape/internal/repositories"
	"mixtape/internal/similarity"
)

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongoDatabase)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	// Initialize similarity cache
	similarityCache, err := cache.NewValkeyCache(cfg.ValkeyURL)
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer similarityCache.Close()

	catalogRepo := repositories.NewMongoCatalogRepository(db)
	neighborService := similarity.NewService(catalogRepo, similarityCache)

	slog.Info("Starting neighbor precompute", "limit", cfg.NeighborLimit)
	if err := neighborService.Precompute(ctx, cfg.NeighborLimit); err != nil {
		slog.Error("Neighbor precompute failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Neighbor precompute completed")
}
