// Package config handles loading runtime configuration for the Portfolio API.
// Configuration values (like the MongoDB connection string and API port) are read from
// environment variables rather than being hardcoded, so the same binary can run locally,
// in staging, and in production — only the environment changes.
package config

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2/log"
	// godotenv reads a .env file and loads its key=value pairs into the process environment.
	// Handy in development: put MONGO_URI in .env and it's picked up automatically.
	"github.com/joho/godotenv"
)

// DefaultServerSelectionTimeout is how long the MongoDB driver waits to find a usable
// server before giving up. 30 seconds matches the driver's own default.
const DefaultServerSelectionTimeout = 30 * time.Second

// Config holds all runtime configuration values for the application.
type Config struct {
	Port     string // The TCP port the HTTP server will listen on (e.g., "8080")
	Env      string // The runtime environment: "development", "staging", or "production"
	MongoURI string // MongoDB connection string; may be empty (the driver then tries localhost)
	// MongoDatabase is used when MongoURI does not name a database in its path.
	MongoDatabase string
	// ServerSelectionTimeout bounds how long a query waits for a reachable server.
	ServerSelectionTimeout time.Duration
	// WebDir optionally replaces the embedded page assets with a directory on disk.
	WebDir string
}

// Load reads configuration from environment variables and returns a populated Config.
// Nothing here is fatal: a missing or broken MONGO_URI is reported when the first
// query runs, not at startup.
func Load() *Config {
	// A missing .env is fine — real environment variables are used in production.
	_ = godotenv.Load()

	return &Config{
		Port:                   getEnv("PORT", "8080"),
		Env:                    getEnv("ENV", "development"),
		MongoURI:               os.Getenv("MONGO_URI"),
		MongoDatabase:          getEnv("MONGO_DATABASE", "test"),
		ServerSelectionTimeout: getDuration("MONGO_SERVER_SELECTION_TIMEOUT", DefaultServerSelectionTimeout),
		WebDir:                 os.Getenv("WEB_DIR"),
	}
}

// getEnv returns the value of key, or fallback if it is unset or empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses key as a Go duration ("10s", "1m30s").
// Invalid or non-positive values are logged and replaced by fallback.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("config: invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return d
}
