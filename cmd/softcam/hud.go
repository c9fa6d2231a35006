package main

import (
	"fmt"
	"os"
	"time"

	"github.com/taigrr/softcam/pkg/render"
)

// HUD tracks frame rate and the last frame's camera and stats.
type HUD struct {
	fps       float64
	fpsFrames int
	fpsTime   time.Time

	camera string
	stats  render.Stats
	moving bool
}

// NewHUD creates a new HUD
func NewHUD() *HUD {
	return &HUD{fpsTime: time.Now()}
}

// Update records one rendered frame. moving marks smoothed motion still
// settling.
func (h *HUD) Update(cam *render.Camera, stats render.Stats, moving bool) {
	h.fpsFrames++
	elapsed := time.Since(h.fpsTime)
	if elapsed >= time.Second {
		h.fps = float64(h.fpsFrames) / elapsed.Seconds()
		h.fpsFrames = 0
		h.fpsTime = time.Now()
	}
	h.camera = cam.String()
	h.stats = stats
	h.moving = moving
}

// Text is the single status line shown by the interactive backends.
func (h *HUD) Text() string {
	text := fmt.Sprintf("%.0f FPS  %s  lines %d/%d  tris %d/%d",
		h.fps, h.camera,
		h.stats.LinesDrawn, h.stats.LinesDrawn+h.stats.LinesRejected,
		h.stats.TrianglesDrawn, h.stats.TrianglesDrawn+h.stats.TrianglesRejected)
	if h.moving {
		text += "  ~"
	}
	return text
}

// Render draws the status line over the top terminal row.
func (h *HUD) Render(width int) {
	const (
		reset     = "\x1b[0m"
		bgBlack   = "\x1b[40m"
		fgGreen   = "\x1b[92m"
		clearLine = "\x1b[2K"
	)

	text := h.Text()
	if len(text) > width-2 {
		text = text[:max(width-2, 0)]
	}
	fmt.Fprintf(os.Stdout, "\x1b[1;1H%s%s%s %s %s", clearLine, bgBlack, fgGreen, text, reset)
}
