package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// HealthCheck handles GET /health.
// It returns a simple JSON response indicating the server is alive and reachable.
// No database query is made, so it keeps answering while MongoDB is down — it's a
// liveness check for load balancers and container probes.
func HealthCheck(c *fiber.Ctx) error {
	// fiber.Map is just a shorthand for map[string]interface{}.
	return c.JSON(fiber.Map{"status": "ok"})
}

// Pinger is implemented by *database.Store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Ready returns a handler for GET /health/ready.
// Unlike HealthCheck it asks the database for a round trip and answers 503 when that
// fails, so orchestrators can hold traffic until MongoDB is reachable.
func Ready(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := db.Ping(c.UserContext()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
