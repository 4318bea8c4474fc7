// Package middleware contains Fiber middleware and app-level hooks for the Portfolio API.
// This file turns any error a handler returns (or a panic the recover middleware
// caught) into the same {"error": "..."} JSON body the API uses everywhere.
package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/trentd187/portfolio/internal/models"
)

// ErrorHandler is installed as fiber.Config.ErrorHandler.
// *fiber.Error values (404 for unknown routes, 405, ...) keep their status and
// message. Every other error is a server fault: it is logged and answered with 500.
// The process keeps serving afterwards.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code >= fiber.StatusInternalServerError {
		log.Errorf("%s %s: %v", c.Method(), c.Path(), err)
	}

	return c.Status(code).JSON(models.ErrorResponse{Error: err.Error()})
}
