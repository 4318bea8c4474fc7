// cmd/server/main.go
// This is the entry point for the Portfolio API server.
// It builds the long-lived dependencies (config, MongoDB store, page assets), hands
// them to the server package, and runs until SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	// Fiber's log package is used for all diagnostics, the same logger the handlers use.
	"github.com/gofiber/fiber/v2/log"

	"github.com/trentd187/portfolio/internal/config"
	"github.com/trentd187/portfolio/internal/database"
	"github.com/trentd187/portfolio/internal/server"
	"github.com/trentd187/portfolio/web"
)

// shutdownTimeout bounds how long in-flight requests and the MongoDB pool get to drain.
const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	if cfg.Env == "production" {
		log.SetLevel(log.LevelInfo)
	}

	// Build the MongoDB client once; its pool is shared by every request for the life
	// of the process. This never fails startup: an unreachable server or a bad URI is
	// reported by /api/data when it runs its reads, and a failed SRV lookup is retried.
	store := database.Connect(database.Options{
		URI:                    cfg.MongoURI,
		Database:               cfg.MongoDatabase,
		ServerSelectionTimeout: cfg.ServerSelectionTimeout,
	})
	if err := store.Err(); errors.Is(err, database.ErrUnavailable) {
		log.Warnf("MongoDB not reachable yet, retrying on the next request: %v", err)
	} else if err != nil {
		log.Errorf("MongoDB connection string is invalid, /api/data will fail: %v", err)
	} else {
		log.Infof("Using MongoDB database %q", store.DatabaseName())
	}

	pages, err := web.Pages(cfg.WebDir)
	if err != nil {
		log.Fatal("Failed to load web pages:", err)
	}

	app, err := server.New(server.Deps{
		Store:     store,
		Pages:     pages,
		AccessLog: true,
	})
	if err != nil {
		log.Fatal("Failed to build server:", err)
	}

	// Listen in a goroutine so main can wait for a shutdown signal.
	go func() {
		log.Infof("Starting server on port %s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal("Server stopped:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down")

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil {
		log.Errorf("HTTP shutdown: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := store.Close(ctx); err != nil {
		log.Errorf("MongoDB disconnect: %v", err)
	}
}
