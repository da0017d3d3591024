package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds all configuration for the application
type Config struct {
	// Application settings
	Port    string `envconfig:"PORT" default:"8080"`
	GinMode string `envconfig:"GIN_MODE" default:"debug"`

	// Storage
	MongodbURL    string `envconfig:"MONGODB_URL" required:"true"`
	MongoDatabase string `envconfig:"MONGO_DATABASE" default:"mixtape"`
	ValkeyURL     string `envconfig:"VALKEY_URL" required:"true"`

	// Intent classifier (Ollama-compatible chat endpoint)
	OllamaURL   string `envconfig:"OLLAMA_URL" default:"http://localhost:11434"`
	OllamaModel string `envconfig:"OLLAMA_MODEL" default:"llama3.2"`

	// Sessions
	SessionSecret string        `envconfig:"SESSION_SECRET" required:"true"`
	SessionTTL    time.Duration `envconfig:"SESSION_TTL" default:"24h"`

	// Recommendations
	NeighborLimit  int `envconfig:"NEIGHBOR_LIMIT" default:"10"`
	RecommendLimit int `envconfig:"RECOMMEND_LIMIT" default:"10"`

	// Spotify enrichment credentials (import tool only, optional)
	SpotifyClientID     string `envconfig:"SPOTIFY_CLIENT_ID"`
	SpotifyClientSecret string `envconfig:"SPOTIFY_CLIENT_SECRET"`
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
