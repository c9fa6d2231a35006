package input

import (
	"log/slog"

	"github.com/taigrr/softcam/pkg/render"
)

// Defaults for camera control.
const (
	DefaultMoveStep    = 0.15  // world units per key press
	DefaultSensitivity = 0.002 // radians per pixel of mouse motion
	DefaultFPS         = 60
)

// Options configures a Controller.
type Options struct {
	MoveStep    float64
	Sensitivity float64
	Smoothing   bool // spread key presses over several frames with a spring
	FPS         int  // frame rate the springs are tuned for
	Keymap      Keymap
	Logger      *slog.Logger
}

// DefaultOptions returns the stock control settings.
func DefaultOptions() Options {
	return Options{
		MoveStep:    DefaultMoveStep,
		Sensitivity: DefaultSensitivity,
		FPS:         DefaultFPS,
		Keymap:      DefaultKeymap(),
	}
}

// Controller applies input events to a camera.
type Controller struct {
	camera *render.Camera
	opts   Options
	logger *slog.Logger

	forward, right, up Axis
}

// NewController creates a controller for camera. Zero fields in opts fall
// back to their defaults.
func NewController(camera *render.Camera, opts Options) *Controller {
	if opts.MoveStep == 0 {
		opts.MoveStep = DefaultMoveStep
	}
	if opts.Sensitivity == 0 {
		opts.Sensitivity = DefaultSensitivity
	}
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	if opts.Keymap == nil {
		opts.Keymap = DefaultKeymap()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		camera:  camera,
		opts:    opts,
		logger:  logger,
		forward: NewAxis(opts.FPS),
		right:   NewAxis(opts.FPS),
		up:      NewAxis(opts.FPS),
	}
}

// Camera returns the controlled camera.
func (c *Controller) Camera() *render.Camera {
	return c.camera
}

// Handle applies one event. It returns false when the program should stop.
func (c *Controller) Handle(ev Event) bool {
	switch ev := ev.(type) {
	case Quit:
		return false
	case KeyDown:
		action, ok := c.opts.Keymap.Lookup(ev.Key)
		if !ok {
			return true
		}
		return c.Apply(action)
	case MouseMotion:
		c.camera.ApplyLookDelta(ev.DX, ev.DY, c.opts.Sensitivity)
	}
	return true
}

// Apply performs an action. It returns false for ActionQuit.
func (c *Controller) Apply(action Action) bool {
	step := c.opts.MoveStep
	switch action {
	case ActionForward:
		c.move(&c.forward, step, c.camera.MoveForward)
	case ActionBack:
		c.move(&c.forward, -step, c.camera.MoveForward)
	case ActionLeft:
		c.move(&c.right, -step, c.camera.MoveRight)
	case ActionRight:
		c.move(&c.right, step, c.camera.MoveRight)
	case ActionUp:
		c.move(&c.up, step, c.camera.MoveUp)
	case ActionDown:
		c.move(&c.up, -step, c.camera.MoveUp)
	case ActionDump:
		c.logger.Info("camera",
			"yaw", c.camera.Yaw,
			"pitch", c.camera.Pitch,
			"pos", c.camera.Position,
			"forward", c.camera.Forward(),
		)
	case ActionReset:
		c.camera.Reset()
		c.forward.Stop()
		c.right.Stop()
		c.up.Stop()
	case ActionQuit:
		return false
	}
	return true
}

func (c *Controller) move(axis *Axis, amount float64, apply func(float64)) {
	if c.opts.Smoothing {
		axis.Velocity += Impulse(amount, c.opts.FPS)
		return
	}
	apply(amount)
}

// Update advances smoothed motion by one frame. It is a no-op unless
// smoothing is enabled.
func (c *Controller) Update() {
	if !c.opts.Smoothing {
		return
	}
	c.camera.MoveForward(c.forward.Update())
	c.camera.MoveRight(c.right.Update())
	c.camera.MoveUp(c.up.Update())
}

// Moving reports whether smoothed motion is still in progress.
func (c *Controller) Moving() bool {
	const eps = 1e-6
	for _, a := range []Axis{c.forward, c.right, c.up} {
		if a.Velocity > eps || a.Velocity < -eps {
			return true
		}
	}
	return false
}
