package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("MONGODB_URL", "mongodb://localhost:27017")
	t.Setenv("VALKEY_URL", "valkey://localhost:6379")
	t.Setenv("SESSION_SECRET", "test-secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mixtape", cfg.MongoDatabase)
	assert.Equal(t, "http://localhost:11434", cfg.OllamaURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10, cfg.NeighborLimit)
	assert.Equal(t, 10, cfg.RecommendLimit)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("NEIGHBOR_LIMIT", "25")
	t.Setenv("SESSION_TTL", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 25, cfg.NeighborLimit)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
}

func TestLoadMissingRequired(t *testing.T) {
	// t.Setenv registers the restore; the vars must be absent, not
	// merely empty, for the required check to trip.
	for _, key := range []string{"MONGODB_URL", "VALKEY_URL", "SESSION_SECRET"} {
		t.Setenv(key, "placeholder")
		os.Unsetenv(key)
	}

	_, err := Load()
	assert.Error(t, err)
}
