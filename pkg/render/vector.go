package render

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
)

// VectorSurface is a Surface backed by a gg drawing context. It is used for
// snapshots: lines are stroked as 1px paths through pixel centers.
type VectorSurface struct {
	dc  *gg.Context
	err error
}

// NewVectorSurface creates a width×height snapshot surface.
func NewVectorSurface(width, height int) *VectorSurface {
	dc := gg.NewContext(width, height)
	dc.SetLineWidth(1)
	dc.SetLineCap(gg.LineCapSquare)
	return &VectorSurface{dc: dc}
}

// Size returns the context dimensions.
func (s *VectorSurface) Size() (int, int) {
	return s.dc.Width(), s.dc.Height()
}

// Clear fills the whole context with c.
func (s *VectorSurface) Clear(c Color) {
	s.dc.ClearWithColor(gg.FromColor(c))
}

// DrawLine strokes a line between two pixel positions. The first stroke
// error is kept and reported by Err.
func (s *VectorSurface) DrawLine(x0, y0, x1, y1 int, c Color) {
	s.dc.SetColor(c)
	// A zero-length stroke paints nothing; fill the pixel instead.
	if x0 == x1 && y0 == y1 {
		s.dc.DrawRectangle(float64(x0), float64(y0), 1, 1)
		if err := s.dc.Fill(); err != nil && s.err == nil {
			s.err = fmt.Errorf("fill point: %w", err)
		}
		return
	}
	s.dc.DrawLine(float64(x0)+0.5, float64(y0)+0.5, float64(x1)+0.5, float64(y1)+0.5)
	if err := s.dc.Stroke(); err != nil && s.err == nil {
		s.err = fmt.Errorf("stroke line: %w", err)
	}
}

// Err returns the first drawing error, if any.
func (s *VectorSurface) Err() error {
	return s.err
}

// Image returns the rendered image.
func (s *VectorSurface) Image() image.Image {
	return s.dc.Image()
}

// SavePNG writes the rendered image as PNG.
func (s *VectorSurface) SavePNG(path string) error {
	if s.err != nil {
		return s.err
	}
	if err := s.dc.SavePNG(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Close releases the drawing context.
func (s *VectorSurface) Close() error {
	return s.dc.Close()
}
