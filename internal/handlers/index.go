package handlers

import (
	"fmt"
	"io/fs"

	"github.com/gofiber/fiber/v2"
)

// IndexFile is the page served at "/".
const IndexFile = "index.html"

// Index returns a handler for GET /.
// The page is read from pages on every request, so a WEB_DIR on disk can be edited
// without a restart. It never touches the database. If the file is missing, the error
// is passed to the app's ErrorHandler, which answers 500.
func Index(pages fs.FS) fiber.Handler {
	return func(c *fiber.Ctx) error {
		body, err := fs.ReadFile(pages, IndexFile)
		if err != nil {
			return fmt.Errorf("read %s: %w", IndexFile, err)
		}
		c.Type("html", "utf-8")
		return c.Send(body)
	}
}
