// softcam - Software 3D Camera
// Fly a perspective camera over a ground grid and flat-shaded cubes, drawn
// entirely in software into the terminal, a window or a PNG.
//
// Controls:
//
//	Mouse        - Look around (yaw/pitch)
//	Z/W, Up      - Move forward
//	S, Down      - Move back
//	Q/A, Left    - Strafe left
//	D, Right     - Strafe right
//	Space        - Move up
//	Shift, C     - Move down
//	H            - Log camera orientation
//	Esc, Ctrl+C  - Quit
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/taigrr/softcam/pkg/config"
)

var (
	backendName = flag.String("backend", "", "Display backend: terminal, window or snapshot (overrides config)")
	configPath  = flag.String("config", "", "Path to YAML config file")
	scenePath   = flag.String("scene", "", "glTF/GLB scene to show instead of the built-in cube")
	targetFPS   = flag.Int("fps", 0, "Target FPS (overrides config)")
	smooth      = flag.Bool("smooth", false, "Smooth camera motion with springs")
	cull        = flag.Bool("cull", false, "Skip blocks outside the view")
	outPath     = flag.String("out", "softcam.png", "Output PNG for the snapshot backend")
	logPath     = flag.String("log", "", "Write logs to this file (terminal backend logs nowhere otherwise)")
	verbose     = flag.Bool("v", false, "Debug logging")
	winWidth    = flag.Int("width", 800, "Window or snapshot width in pixels")
	winHeight   = flag.Int("height", 600, "Window or snapshot height in pixels")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "softcam - Software 3D Camera\n\n")
		fmt.Fprintf(os.Stderr, "Usage: softcam [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nControls:\n")
		fmt.Fprintf(os.Stderr, "  Mouse        - Look around\n")
		fmt.Fprintf(os.Stderr, "  Z/W S Q/A D  - Move (ZQSD or WASD), arrows also work\n")
		fmt.Fprintf(os.Stderr, "  Space/Shift  - Move up/down (C also moves down)\n")
		fmt.Fprintf(os.Stderr, "  H            - Log yaw and pitch\n")
		fmt.Fprintf(os.Stderr, "  Esc          - Quit\n")
	}
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := setupLogging(cfg.Backend)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}

	// Context for clean shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.Info("starting", "backend", cfg.Backend, "blocks", len(a.scene.Blocks), "mode", a.camera.Mode)

	switch cfg.Backend {
	case config.BackendWindow:
		return runWindow(ctx, a, *winWidth, *winHeight)
	case config.BackendSnapshot:
		return runSnapshot(a, *winWidth, *winHeight, *outPath)
	default:
		return runTerminal(ctx, a)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "backend":
			cfg.Backend = *backendName
		case "scene":
			cfg.Scene = *scenePath
		case "fps":
			cfg.FPS = *targetFPS
		case "smooth":
			cfg.Smoothing = *smooth
		case "cull":
			cfg.Cull = *cull
		}
	})

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid settings: %w", err)
	}
	return cfg, nil
}

// setupLogging installs the default slog logger. The terminal backend owns
// the screen, so it only logs when -log names a file.
func setupLogging(backend string) (*slog.Logger, func(), error) {
	var w io.Writer = os.Stderr
	closeFn := func() {}

	switch {
	case *logPath != "":
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	case backend == config.BackendTerminal:
		w = io.Discard
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}
