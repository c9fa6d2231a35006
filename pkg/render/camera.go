package render

import (
	"fmt"
	"math"

	"github.com/taigrr/softcam/pkg/math3d"
)

// MaxPitch bounds the camera pitch in radians, just under ±π/2.
const MaxPitch = 1.55

// DefaultFocalLength is the projection scale used by NewCamera.
const DefaultFocalLength = 400.0

// MoveMode selects whether forward movement follows the pitch.
type MoveMode int

const (
	// MoveFly moves along the full view axis, so looking down and moving
	// forward also descends.
	MoveFly MoveMode = iota
	// MovePlanar keeps forward movement on the horizontal plane.
	MovePlanar
)

// String returns the config name of the mode.
func (m MoveMode) String() string {
	switch m {
	case MoveFly:
		return "fly"
	case MovePlanar:
		return "planar"
	default:
		return fmt.Sprintf("MoveMode(%d)", int(m))
	}
}

// ParseMoveMode parses a mode name as written in the config file.
func ParseMoveMode(s string) (MoveMode, error) {
	switch s {
	case "", "fly":
		return MoveFly, nil
	case "planar":
		return MovePlanar, nil
	default:
		return 0, fmt.Errorf("unknown move mode %q (use fly or planar)", s)
	}
}

// Camera is a yaw/pitch camera for the software projector.
//
// Yaw rotates about world up. Positive pitch tilts the view downward.
// With yaw and pitch at zero the camera looks down -Z.
type Camera struct {
	Position    math3d.Vec3
	Yaw         float64 // radians
	Pitch       float64 // radians, kept within ±MaxPitch
	FocalLength float64 // projection scale in pixels
	Mode        MoveMode
}

// NewCamera creates a camera at the origin looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		FocalLength: DefaultFocalLength,
	}
}

// Reset returns the camera to the origin with zero orientation.
// Focal length and move mode are kept.
func (c *Camera) Reset() {
	c.Position = math3d.Zero3()
	c.Yaw = 0
	c.Pitch = 0
}

// Forward returns the unit view axis.
func (c *Camera) Forward() math3d.Vec3 {
	sinYaw, cosYaw := math.Sincos(c.Yaw)
	sinPitch, cosPitch := math.Sincos(c.Pitch)
	return math3d.V3(-sinYaw*cosPitch, -sinPitch, -cosYaw*cosPitch)
}

// Right returns the horizontal strafe direction.
func (c *Camera) Right() math3d.Vec3 {
	sinYaw, cosYaw := math.Sincos(c.Yaw)
	return math3d.V3(cosYaw, 0, -sinYaw)
}

// MoveForward moves the camera forward (or backward if negative).
// In MovePlanar mode the height is left unchanged.
func (c *Camera) MoveForward(amount float64) {
	sinYaw, cosYaw := math.Sincos(c.Yaw)
	sinPitch, cosPitch := math.Sincos(c.Pitch)

	c.Position.X -= sinYaw * cosPitch * amount
	c.Position.Z -= cosYaw * cosPitch * amount
	if c.Mode == MoveFly {
		c.Position.Y -= sinPitch * amount
	}
}

// MoveRight strafes the camera right (or left if negative). Pitch is ignored.
func (c *Camera) MoveRight(amount float64) {
	c.Position = c.Position.Add(c.Right().Scale(amount))
}

// MoveUp moves the camera along world up (or down if negative).
func (c *Camera) MoveUp(amount float64) {
	c.Position = c.Position.Add(math3d.Up().Scale(amount))
}

// ApplyLookDelta turns the camera by a pointer delta scaled by sensitivity.
// Moving right turns right, moving down looks down.
func (c *Camera) ApplyLookDelta(dx, dy, sensitivity float64) {
	c.Yaw -= dx * sensitivity
	c.Pitch += dy * sensitivity

	if c.Pitch > MaxPitch {
		c.Pitch = MaxPitch
	}
	if c.Pitch < -MaxPitch {
		c.Pitch = -MaxPitch
	}
}

// String formats the camera state for the orientation dump.
func (c *Camera) String() string {
	return fmt.Sprintf("pos=(%.2f, %.2f, %.2f) yaw=%.3f pitch=%.3f",
		c.Position.X, c.Position.Y, c.Position.Z, c.Yaw, c.Pitch)
}
