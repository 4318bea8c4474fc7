// Package handlers contains the HTTP route handler functions for the Portfolio API.
// This file handles GET /api/data, which reads six collections and returns them as a
// single JSON object.
//
// Like every handler here it follows the "handler factory" pattern: GetData takes
// the store it needs and returns a fiber.Handler, so the database is injected instead
// of being looked up from a global.
package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	// errgroup runs the six reads concurrently and returns the first failure.
	"golang.org/x/sync/errgroup"

	"github.com/trentd187/portfolio/internal/bsonjson"
	"github.com/trentd187/portfolio/internal/database"
	"github.com/trentd187/portfolio/internal/models"
)

// ConnectionTimeoutMessage is returned to the client when MongoDB cannot be reached.
// The usual cause with a hosted cluster is that the server's IP is not allowed.
const ConnectionTimeoutMessage = "Database connection timeout. Please check your IP whitelist in MongoDB Atlas."

// EncodingHeader tells clients which value convention the payload uses.
const EncodingHeader = "X-Document-Encoding"

// DocumentStore is the read side of the database that GetData needs.
// *database.Store satisfies it; tests pass a fake.
type DocumentStore interface {
	// FindOne returns the first document, or nil if the collection is empty.
	FindOne(ctx context.Context, collection string) (bson.M, error)
	// FindAll returns all documents in natural order.
	FindAll(ctx context.Context, collection string) ([]bson.M, error)
}

// GetData returns a handler for GET /api/data.
// Response is either the full models.Portfolio (200) or {"error": ...} (500); a partial
// payload is never sent.
func GetData(store DocumentStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// UserContext is context.Background unless something upstream set one: requests
		// have no deadline of their own, only the driver's server selection timeout.
		portfolio, err := loadPortfolio(c.UserContext(), store)
		if err != nil {
			return dataError(c, err)
		}

		c.Set(EncodingHeader, bsonjson.Version)
		if err := c.JSON(portfolio); err != nil {
			c.Response().Header.Del(EncodingHeader)
			return dataError(c, fmt.Errorf("encode response: %w", err))
		}
		return nil
	}
}

// loadPortfolio issues the six reads concurrently. There is no transaction across
// collections, so a concurrent writer can leave the result mixing old and new states.
func loadPortfolio(ctx context.Context, store DocumentStore) (*models.Portfolio, error) {
	g, ctx := errgroup.WithContext(ctx)
	p := &models.Portfolio{}

	g.Go(func() error {
		doc, err := store.FindOne(ctx, models.CollectionProfiles)
		if err != nil {
			return err
		}
		p.Profile, err = bsonjson.Document(doc)
		if err != nil {
			return fmt.Errorf("%s: %w", models.CollectionProfiles, err)
		}
		return nil
	})

	// Each goroutine writes a different field, so no locking is needed.
	lists := []struct {
		collection string
		dst        *[]models.Document
	}{
		{models.CollectionProjects, &p.Projects},
		{models.CollectionEducations, &p.Education},
		{models.CollectionSkills, &p.Skills},
		{models.CollectionCertifications, &p.Certifications},
		{models.CollectionAchievements, &p.Achievements},
	}
	for _, l := range lists {
		g.Go(func() error {
			docs, err := store.FindAll(ctx, l.collection)
			if err != nil {
				return err
			}
			*l.dst, err = bsonjson.Documents(docs)
			if err != nil {
				return fmt.Errorf("%s: %w", l.collection, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// dataError logs err and writes the matching 500 response.
// Connectivity failures get a fixed, actionable message; anything else is reported as is.
func dataError(c *fiber.Ctx, err error) error {
	if errors.Is(err, database.ErrUnavailable) {
		log.Errorf("Could not connect to MongoDB. Check your IP whitelist in MongoDB Atlas: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
			Error: ConnectionTimeoutMessage,
		})
	}

	log.Errorf("GET /api/data failed: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Error: err.Error(),
	})
}
