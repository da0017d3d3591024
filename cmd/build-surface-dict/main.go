package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"mixtape/internal/config"
	"mixtape/internal/models"
	"mixtape/internal/repositories"
	"mixtape/internal/surface"
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

	if err := db.CreateIndexes(ctx); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	catalogRepo := repositories.NewMongoCatalogRepository(db)
	surfaceRepo := repositories.NewMongoSurfaceRepository(db)

	builder := surface.NewBuilder(catalogRepo, surfaceRepo)
	if err := builder.Build(ctx); err != nil {
		slog.Error("Surface dictionary build failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Surface dictionary build completed")
}
