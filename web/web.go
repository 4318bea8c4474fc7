// Package web holds the portfolio page and its assets, embedded into the binary.
package web

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
)

//go:embed public
var embedded embed.FS

// Pages returns the tree served at "/" and "/static". When dir is set, the tree is
// read from disk instead of the embedded copy.
func Pages(dir string) (fs.FS, error) {
	if dir != "" {
		info, err := os.Stat(dir)
		if err != nil {
			return nil, fmt.Errorf("web dir: %w", err)
		}
		if !info.IsDir() {
			return nil, fmt.Errorf("web dir: %s is not a directory", dir)
		}
		return os.DirFS(dir), nil
	}
	return fs.Sub(embedded, "public")
}
