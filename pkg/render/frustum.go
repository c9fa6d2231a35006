package render

import (
	"math"

	"github.com/taigrr/softcam/pkg/math3d"
)

// Plane represents a plane in camera space using the equation
// Ax + By + Cz + D = 0, where (A, B, C) is the normal.
type Plane struct {
	Normal math3d.Vec3
	D      float64
}

// Normalize normalizes the plane equation so the normal has unit length.
func (p *Plane) Normalize() {
	l := p.Normal.Len()
	if l == 0 {
		return
	}
	p.Normal = p.Normal.Scale(1.0 / l)
	p.D /= l
}

// DistanceToPoint returns the signed distance from the plane to a point.
// Positive = in front (same side as normal), negative = behind.
func (p Plane) DistanceToPoint(point math3d.Vec3) float64 {
	return p.Normal.Dot(point) + p.D
}

// Frustum is the camera-space view volume of the pinhole projector.
// Planes are ordered Left, Right, Bottom, Top, Near and point inward.
// There is no far plane.
type Frustum struct {
	Planes [5]Plane
}

// FrustumPlane indices for clarity.
const (
	FrustumLeft = iota
	FrustumRight
	FrustumBottom
	FrustumTop
	FrustumNear
)

// NewFrustum builds the view volume of c for a width×height surface. The
// side planes sit one pixel outside the surface so that nothing which could
// round onto an edge column or row is culled.
func NewFrustum(c *Camera, width, height int) Frustum {
	tx := (float64(width/2) + 1) / c.FocalLength
	ty := (float64(height/2) + 1) / c.FocalLength

	// In camera space the view looks down -Z: visible points have -z > 0,
	// |x| <= tx*(-z) and |y| <= ty*(-z).
	f := Frustum{Planes: [5]Plane{
		FrustumLeft:   {Normal: math3d.V3(1, 0, -tx)},
		FrustumRight:  {Normal: math3d.V3(-1, 0, -tx)},
		FrustumBottom: {Normal: math3d.V3(0, 1, -ty)},
		FrustumTop:    {Normal: math3d.V3(0, -1, -ty)},
		FrustumNear:   {Normal: math3d.V3(0, 0, -1)},
	}}
	for i := range f.Planes {
		f.Planes[i].Normalize()
	}
	return f
}

// ContainsPoint reports whether a camera-space point is inside the frustum.
// Points on the near plane (the camera's own depth) are outside.
func (f Frustum) ContainsPoint(p math3d.Vec3) bool {
	if p.Z >= 0 {
		return false
	}
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectSphere reports whether a camera-space sphere is at least
// partially inside the frustum. The test is conservative: spheres near a
// corner may pass although they are outside.
func (f Frustum) IntersectSphere(center math3d.Vec3, radius float64) bool {
	for i := range f.Planes {
		if f.Planes[i].DistanceToPoint(center) < -radius {
			return false
		}
	}
	return true
}

// CubeVisible reports whether any part of an axis-aligned world-space cube
// can land on the surface, using its bounding sphere.
func (f Frustum) CubeVisible(c *Camera, center math3d.Vec3, size float64) bool {
	radius := size * math.Sqrt(3) / 2
	return f.IntersectSphere(c.ToCameraSpace(center), radius)
}
