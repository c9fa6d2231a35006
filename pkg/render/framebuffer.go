// Package render provides the software camera, projector and rasterizer for softcam.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
)

// Framebuffer is a 2D array of pixels. It implements Surface.
// For terminal output the height is 2x the terminal rows, one row per half block.
type Framebuffer struct {
	Width  int          // Width in pixels
	Height int          // Height in pixels
	Pixels []color.RGBA // Row-major pixel data
}

// NewFramebuffer creates a new framebuffer with the given dimensions.
func NewFramebuffer(width, height int) *Framebuffer {
	fb := &Framebuffer{}
	fb.Resize(width, height)
	return fb
}

// Resize changes the framebuffer dimensions, reusing the pixel slice when it
// is large enough. Contents are undefined afterwards; call Clear.
func (fb *Framebuffer) Resize(width, height int) {
	width = max(width, 0)
	height = max(height, 0)
	n := width * height
	if cap(fb.Pixels) >= n {
		fb.Pixels = fb.Pixels[:n]
	} else {
		fb.Pixels = make([]color.RGBA, n)
	}
	fb.Width = width
	fb.Height = height
}

// Size returns the framebuffer dimensions.
func (fb *Framebuffer) Size() (int, int) {
	return fb.Width, fb.Height
}

// Clear fills the framebuffer with a solid color.
func (fb *Framebuffer) Clear(c Color) {
	// Use copy-doubling for faster clearing
	n := len(fb.Pixels)
	if n == 0 {
		return
	}
	fb.Pixels[0] = c
	for i := 1; i < n; i *= 2 {
		copy(fb.Pixels[i:], fb.Pixels[:i])
	}
}

// SetPixel sets a pixel at (x, y) to the given color.
// Bounds checking is performed.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	fb.Pixels[y*fb.Width+x] = c
}

// GetPixel returns the color at (x, y).
// Returns transparent black if out of bounds.
func (fb *Framebuffer) GetPixel(x, y int) Color {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return Color{}
	}
	return fb.Pixels[y*fb.Width+x]
}

// DrawLine draws a line from (x0, y0) to (x1, y1) using Bresenham's algorithm.
// Both endpoints are inclusive. The segment is clipped to the buffer first,
// so endpoints far off screen cost nothing extra.
func (fb *Framebuffer) DrawLine(x0, y0, x1, y1 int, c Color) {
	if y0 == y1 {
		fb.drawSpan(x0, x1, y0, c)
		return
	}

	var ok bool
	x0, y0, x1, y1, ok = clipLine(x0, y0, x1, y1, fb.Width, fb.Height)
	if !ok {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx := 1
	if x0 > x1 {
		sx = -1
	}
	sy := 1
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy

	for {
		fb.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// drawSpan fills a horizontal run, clipped to the buffer. Projected cube
// edges can land far off screen, so the run is clipped before iterating.
func (fb *Framebuffer) drawSpan(x0, x1, y int, c Color) {
	if y < 0 || y >= fb.Height {
		return
	}
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	x0 = max(x0, 0)
	x1 = min(x1, fb.Width-1)
	row := fb.Pixels[y*fb.Width : (y+1)*fb.Width]
	for x := x0; x <= x1; x++ {
		row[x] = c
	}
}

// clipLine clips a segment to [0,w)×[0,h) with the Liang-Barsky algorithm.
func clipLine(x0, y0, x1, y1, w, h int) (int, int, int, int, bool) {
	if w <= 0 || h <= 0 {
		return 0, 0, 0, 0, false
	}
	inside := func(x, y int) bool { return x >= 0 && x < w && y >= 0 && y < h }
	if inside(x0, y0) && inside(x1, y1) {
		return x0, y0, x1, y1, true
	}

	fx0, fy0 := float64(x0), float64(y0)
	dx, dy := float64(x1-x0), float64(y1-y0)
	t0, t1 := 0.0, 1.0

	edges := [4][2]float64{
		{-dx, fx0},               // left
		{dx, float64(w-1) - fx0}, // right
		{-dy, fy0},               // top
		{dy, float64(h-1) - fy0}, // bottom
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}

	round := func(v float64) int { return int(math.Round(v)) }
	cx0, cy0 := round(fx0+t0*dx), round(fy0+t0*dy)
	cx1, cy1 := round(fx0+t1*dx), round(fy0+t1*dy)
	return cx0, cy0, cx1, cy1, true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// ToImage converts the framebuffer to a standard Go image.RGBA.
func (fb *Framebuffer) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			img.SetRGBA(x, y, fb.Pixels[y*fb.Width+x])
		}
	}
	return img
}

// SavePNG saves the framebuffer as a PNG file.
func (fb *Framebuffer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return png.Encode(f, fb.ToImage())
}
