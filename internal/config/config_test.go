package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "MONGO_URI", "MONGO_DATABASE", "MONGO_SERVER_SELECTION_TIMEOUT", "WEB_DIR"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Empty(t, cfg.MongoURI)
	assert.Equal(t, "test", cfg.MongoDatabase)
	assert.Equal(t, DefaultServerSelectionTimeout, cfg.ServerSelectionTimeout)
	assert.Empty(t, cfg.WebDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("ENV", "production")
	t.Setenv("MONGO_URI", "mongodb://db.internal:27017/portfolio")
	t.Setenv("MONGO_DATABASE", "fallback")
	t.Setenv("MONGO_SERVER_SELECTION_TIMEOUT", "5s")
	t.Setenv("WEB_DIR", "/srv/web")

	cfg := Load()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "mongodb://db.internal:27017/portfolio", cfg.MongoURI)
	assert.Equal(t, "fallback", cfg.MongoDatabase)
	assert.Equal(t, 5*time.Second, cfg.ServerSelectionTimeout)
	assert.Equal(t, "/srv/web", cfg.WebDir)
}

func TestLoadInvalidTimeoutFallsBack(t *testing.T) {
	for _, raw := range []string{"soon", "-3s", "0s"} {
		t.Run(raw, func(t *testing.T) {
			t.Setenv("MONGO_SERVER_SELECTION_TIMEOUT", raw)
			assert.Equal(t, DefaultServerSelectionTimeout, Load().ServerSelectionTimeout)
		})
	}
}
