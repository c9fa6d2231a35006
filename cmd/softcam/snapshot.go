package main

import (
	"fmt"

	"github.com/taigrr/softcam/pkg/render"
)

// runSnapshot renders a single frame from the configured camera with the
// vector surface and writes it as a PNG.
func runSnapshot(a *app, width, height int, path string) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid snapshot size %dx%d", width, height)
	}

	s := render.NewVectorSurface(width, height)
	defer s.Close()

	stats := a.frame(s)
	if err := s.Err(); err != nil {
		return fmt.Errorf("render snapshot: %w", err)
	}
	if err := s.SavePNG(path); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}

	a.logger.Info("wrote snapshot", "path", path,
		"width", width, "height", height,
		"lines", stats.LinesDrawn, "triangles", stats.TrianglesDrawn,
		"camera", a.camera.String())
	return nil
}
