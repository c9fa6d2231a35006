package main

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/taigrr/softcam/pkg/config"
	"github.com/taigrr/softcam/pkg/input"
	"github.com/taigrr/softcam/pkg/render"
	"github.com/taigrr/softcam/pkg/scene"
)

// app wires the camera, controller and scene builder shared by every backend.
// All of it is owned by the frame loop goroutine.
type app struct {
	cfg     config.Config
	scene   *scene.Scene
	camera  *render.Camera
	ctrl    *input.Controller
	builder *scene.Builder
	hud     *HUD
	logger  *slog.Logger

	lastStats render.Stats
}

func newApp(cfg config.Config, logger *slog.Logger) (*app, error) {
	sc := scene.Default()
	if cfg.Scene != "" {
		loaded, err := scene.LoadGLTF(cfg.Scene)
		if err != nil {
			return nil, fmt.Errorf("load scene: %w", err)
		}
		sc = loaded
		logger.Info("loaded scene", "path", cfg.Scene, "blocks", len(sc.Blocks))
	}
	sc.Grid = cfg.DrawGrid()
	if lo, hi, ok := sc.Bounds(); ok {
		logger.Debug("scene extent", "min", lo, "max", hi)
	}

	camera := cfg.NewCamera()
	// Surface is attached by the backend once its size is known.
	rasterizer := render.NewRasterizer(camera, nil)

	builder := scene.NewBuilder(rasterizer)
	builder.SetCulling(cfg.Cull)

	opts := cfg.ControllerOptions(logger)
	for action := input.ActionForward; action <= input.ActionQuit; action++ {
		logger.Debug("binding", "action", action, "keys", opts.Keymap.Keys(action))
	}

	return &app{
		cfg:     cfg,
		scene:   sc,
		camera:  camera,
		ctrl:    input.NewController(camera, opts),
		builder: builder,
		hud:     NewHUD(),
		logger:  logger,
	}, nil
}

// step applies queued events and advances smoothed motion by one tick.
// It returns false once a quit was requested; events after the quit are
// dropped.
func (a *app) step(events []input.Event) bool {
	for _, ev := range events {
		if !a.ctrl.Handle(ev) {
			a.logger.Info("quit requested")
			return false
		}
	}
	a.ctrl.Update()
	return true
}

// frame renders the scene onto s.
func (a *app) frame(s render.Surface) render.Stats {
	r := a.builder.Rasterizer()
	r.SetSurface(s)
	stats := a.builder.Frame(a.scene)
	a.hud.Update(a.camera, stats, a.ctrl.Moving())
	if stats != a.lastStats {
		a.lastStats = stats
		a.logger.Debug("frame", "lines", stats.LinesDrawn, "lines_rejected", stats.LinesRejected,
			"triangles", stats.TrianglesDrawn, "triangles_rejected", stats.TrianglesRejected,
			"culled", stats.BlocksCulled)
	}
	return stats
}

// frameDuration is the target time per frame.
func (a *app) frameDuration() time.Duration {
	return time.Second / time.Duration(a.cfg.FPS)
}
