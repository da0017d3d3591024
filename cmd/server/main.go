package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"mixtape/internal/cache"
	"mixtape/internal/config"
	"mixtape/internal/handlers"
	"mixtape/internal/models"
	"mixtape/internal/nlu"
	"mixtape/internal/repositories"
	"mixtape/internal/resolver"
	"mixtape/internal/session"
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

	gin.SetMode(cfg.GinMode)

	// Initialize database
	db, err := models.NewDatabase(context.Background(), cfg.MongodbURL, cfg.MongoDatabase)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(context.Background())

	// Initialize similarity cache
	similarityCache, err := cache.NewValkeyCache(cfg.ValkeyURL)
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer similarityCache.Close()

	// Repositories and services
	catalogRepo := repositories.NewMongoCatalogRepository(db)
	surfaceRepo := repositories.NewMongoSurfaceRepository(db)

	resolverService := resolver.NewService(catalogRepo, surfaceRepo)
	neighborService := similarity.NewService(catalogRepo, similarityCache)
	ranker := similarity.NewRanker(neighborService, catalogRepo, cfg.NeighborLimit)

	issuer := session.NewIssuer(cfg.SessionSecret, cfg.SessionTTL)
	sessions := session.NewManager()

	classifier := nlu.NewOllamaClassifier(cfg.OllamaURL, cfg.OllamaModel)

	router := handlers.SetupRouter(handlers.RouterDeps{
		Issuer:          issuer,
		Session:         handlers.NewSessionHandler(issuer, sessions),
		Playlist:        handlers.NewPlaylistHandler(resolverService, sessions),
		Suggestions:     handlers.NewSuggestionsHandler(sessions),
		Recommendations: handlers.NewRecommendationsHandler(ranker, catalogRepo, sessions, cfg.RecommendLimit),
		Messages:        handlers.NewMessageHandler(resolverService, ranker, catalogRepo, surfaceRepo, sessions, classifier, cfg.RecommendLimit),
	})

	slog.Info("Starting server", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
