package imaging

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/anthonynsimon/bild/imgio"
)

// Snapshot is a named intermediate image written for debugging.
type Snapshot struct {
	Name  string
	Image image.Image
}

// WriteSnapshots writes each snapshot to dir as <name>.png and returns the
// written paths in order. It stops at the first failure.
func WriteSnapshots(dir string, snaps []Snapshot) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	paths := make([]string, 0, len(snaps))
	for _, s := range snaps {
		if s.Image == nil {
			continue
		}
		path := filepath.Join(dir, s.Name+".png")
		if err := imgio.Save(path, s.Image, imgio.PNGEncoder()); err != nil {
			return paths, fmt.Errorf("failed to write snapshot %s: %w", s.Name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
