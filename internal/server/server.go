// Package server assembles the Fiber app: global middleware plus every route.
// main builds the dependencies and hands them over here, which keeps the route table
// in one place and lets tests run the full app against a fake store.
package server

import (
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	// cors lets the page (or any other origin) call /api/data from a browser.
	"github.com/gofiber/fiber/v2/middleware/cors"
	// filesystem serves the page assets under /static.
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	// logger prints request details (method, path, status, duration) to stdout.
	"github.com/gofiber/fiber/v2/middleware/logger"
	// recover turns a panic in a handler into an error for ErrorHandler.
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/trentd187/portfolio/internal/handlers"
	"github.com/trentd187/portfolio/internal/middleware"
)

// Store is everything the routes need from the database.
type Store interface {
	handlers.DocumentStore
	handlers.Pinger
}

// Deps are the long-lived dependencies built once in main.
type Deps struct {
	Store Store
	// Pages holds index.html and the static/ tree.
	Pages fs.FS
	// AccessLog enables the request logger; tests leave it off.
	AccessLog bool
}

// New returns the configured app. It does not start listening.
func New(deps Deps) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		AppName:      "Portfolio API",
		ErrorHandler: middleware.ErrorHandler,
	})

	// --- Global middleware ---
	app.Use(recover.New())
	if deps.AccessLog {
		app.Use(logger.New())
	}
	// The default config allows every origin, without credentials.
	app.Use(cors.New())

	static, err := fs.Sub(deps.Pages, "static")
	if err != nil {
		return nil, err
	}

	// --- Routes ---
	// GET /             — the portfolio page
	// GET /static/*     — page assets
	// GET /api/data     — all six collections as one JSON object
	// GET /health       — liveness, no database access
	// GET /health/ready — readiness, pings the database
	app.Get("/", handlers.Index(deps.Pages))
	app.Use("/static", filesystem.New(filesystem.Config{
		Root: http.FS(static),
	}))
	app.Get("/api/data", handlers.GetData(deps.Store))
	app.Get("/health", handlers.HealthCheck)
	app.Get("/health/ready", handlers.Ready(deps.Store))

	return app, nil
}
