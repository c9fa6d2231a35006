package render

import (
	"github.com/taigrr/softcam/pkg/math3d"
)

// maxCoord bounds projected coordinates so points just in front of the eye
// still convert to int and leave room for differences between them.
const maxCoord = 1 << 30

// ScreenPoint is an integer pixel coordinate.
type ScreenPoint struct {
	X, Y int
}

// ToCameraSpace transforms a world point into the camera's frame.
// The camera looks down -Z in the returned space, +Y is up.
func (c *Camera) ToCameraSpace(p math3d.Vec3) math3d.Vec3 {
	return p.Sub(c.Position).RotateY(-c.Yaw).RotateX(c.Pitch)
}

// Project maps a world point to screen coordinates for a width×height surface.
// It returns false when the point is at or behind the eye (camera-space Z >= 0).
// Coordinates are truncated, not rounded, and may lie outside the surface;
// they are clamped to ±1<<30.
func Project(c *Camera, p math3d.Vec3, width, height int) (ScreenPoint, bool) {
	v := c.ToCameraSpace(p)
	if v.Z >= 0 {
		return ScreenPoint{}, false
	}

	depth := -v.Z
	x := float64(width/2) + (v.X/depth)*c.FocalLength
	y := float64(height/2) - (v.Y/depth)*c.FocalLength
	x = max(-maxCoord, min(maxCoord, x))
	y = max(-maxCoord, min(maxCoord, y))

	return ScreenPoint{X: int(x), Y: int(y)}, true
}
