package render

import (
	"math"

	"github.com/taigrr/softcam/pkg/math3d"
)

// Rasterizer projects world-space primitives through a camera and paints
// them onto a Surface. There is no depth buffer: primitives are painted in
// call order.
type Rasterizer struct {
	camera  *Camera
	surface Surface
	Stats   Stats // Counters for the current frame
}

// Stats counts primitives drawn and rejected since the last ResetStats.
type Stats struct {
	LinesDrawn        int
	LinesRejected     int // at least one endpoint behind the camera
	TrianglesDrawn    int
	TrianglesRejected int // at least one vertex behind the camera
	BlocksCulled      int // whole blocks skipped by frustum culling
}

// NewRasterizer creates a new rasterizer.
func NewRasterizer(camera *Camera, surface Surface) *Rasterizer {
	return &Rasterizer{
		camera:  camera,
		surface: surface,
	}
}

// Camera returns the camera used for projection.
func (r *Rasterizer) Camera() *Camera {
	return r.camera
}

// Surface returns the current drawing target.
func (r *Rasterizer) Surface() Surface {
	return r.surface
}

// SetSurface replaces the drawing target, e.g. after a resize recreated it.
func (r *Rasterizer) SetSurface(s Surface) {
	r.surface = s
}

// ResetStats resets the per-frame counters (call once per frame).
func (r *Rasterizer) ResetStats() {
	r.Stats = Stats{}
}

// DrawLine draws a 2D line with the surface's native line primitive.
func (r *Rasterizer) DrawLine(p0, p1 ScreenPoint, c Color) {
	r.surface.DrawLine(p0.X, p0.Y, p1.X, p1.Y, c)
}

// DrawLine3D draws a world-space segment. If either endpoint is behind the
// camera nothing is drawn; segments are never partially drawn.
// Returns true if the line was drawn.
func (r *Rasterizer) DrawLine3D(a, b math3d.Vec3, c Color) bool {
	w, h := r.surface.Size()

	p0, ok := Project(r.camera, a, w, h)
	if !ok {
		r.Stats.LinesRejected++
		return false
	}
	p1, ok := Project(r.camera, b, w, h)
	if !ok {
		r.Stats.LinesRejected++
		return false
	}

	r.DrawLine(p0, p1, c)
	r.Stats.LinesDrawn++
	return true
}

// DrawTriangle3D fills a world-space triangle with a flat color. If any
// vertex is behind the camera the whole triangle is dropped.
// Returns true if the triangle was drawn.
func (r *Rasterizer) DrawTriangle3D(a, b, c math3d.Vec3, col Color) bool {
	w, h := r.surface.Size()

	var pts [3]ScreenPoint
	for i, v := range [3]math3d.Vec3{a, b, c} {
		p, ok := Project(r.camera, v, w, h)
		if !ok {
			r.Stats.TrianglesRejected++
			return false
		}
		pts[i] = p
	}

	r.FillTriangle(pts[0], pts[1], pts[2], col)
	r.Stats.TrianglesDrawn++
	return true
}

// spanPoint is a triangle vertex during scan conversion. Y is always a whole
// row; X stays fractional so a split vertex does not drift off the long edge.
type spanPoint struct {
	X, Y float64
}

func toSpanPoint(p ScreenPoint) spanPoint {
	return spanPoint{X: float64(p.X), Y: float64(p.Y)}
}

// FillTriangle fills a screen-space triangle with horizontal spans.
//
// Vertices are sorted by Y. A triangle with a horizontal bottom or top edge
// is walked directly; any other triangle is split at the middle vertex into
// a flat-bottom half above and a flat-top half below. Each span covers the
// pixels between the two active edges, inclusive of pixels exactly on an
// edge. Rows outside the surface are skipped without being walked.
func (r *Rasterizer) FillTriangle(p0, p1, p2 ScreenPoint, c Color) {
	if p1.Y < p0.Y {
		p0, p1 = p1, p0
	}
	if p2.Y < p0.Y {
		p0, p2 = p2, p0
	}
	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}

	v0, v1, v2 := toSpanPoint(p0), toSpanPoint(p1), toSpanPoint(p2)

	switch {
	case p0.Y == p2.Y:
		// Zero height: one span across all three vertices.
		left := math.Min(v0.X, math.Min(v1.X, v2.X))
		right := math.Max(v0.X, math.Max(v1.X, v2.X))
		r.drawSpan(p0.Y, left, right, c)
	case p1.Y == p2.Y:
		r.fillFlatBottom(v0, v1, v2, c)
	case p0.Y == p1.Y:
		r.fillFlatTop(v0, v1, v2, p0.Y, c)
	default:
		t := (v1.Y - v0.Y) / (v2.Y - v0.Y)
		split := spanPoint{X: v0.X + t*(v2.X-v0.X), Y: v1.Y}
		r.fillFlatBottom(v0, v1, split, c)
		// The middle row belongs to the upper half.
		r.fillFlatTop(v1, split, v2, p1.Y+1, c)
	}
}

// fillFlatBottom fills a triangle whose base b–c is horizontal and below the
// apex. Rows run from the apex down to the base, inclusive.
// Requires b.Y == c.Y > apex.Y.
func (r *Rasterizer) fillFlatBottom(apex, b, c spanPoint, col Color) {
	height := b.Y - apex.Y
	invSlope1 := (b.X - apex.X) / height
	invSlope2 := (c.X - apex.X) / height

	_, h := r.surface.Size()
	yStart := max(int(apex.Y), 0)
	yEnd := min(int(b.Y), h-1)
	if yStart > yEnd {
		return
	}

	skip := float64(yStart) - apex.Y
	x1 := apex.X + invSlope1*skip
	x2 := apex.X + invSlope2*skip
	for y := yStart; y <= yEnd; y++ {
		r.drawSpan(y, x1, x2, col)
		x1 += invSlope1
		x2 += invSlope2
	}
}

// fillFlatTop fills a triangle whose top edge a–b is horizontal and above the
// apex. Rows run from the apex up to yStop, inclusive.
// Requires a.Y == b.Y < apex.Y and yStop >= a.Y.
func (r *Rasterizer) fillFlatTop(a, b, apex spanPoint, yStop int, col Color) {
	height := apex.Y - a.Y
	invSlope1 := (apex.X - a.X) / height
	invSlope2 := (apex.X - b.X) / height

	_, h := r.surface.Size()
	yStart := min(int(apex.Y), h-1)
	yEnd := max(yStop, 0)
	if yStart < yEnd {
		return
	}

	skip := apex.Y - float64(yStart)
	x1 := apex.X - invSlope1*skip
	x2 := apex.X - invSlope2*skip
	for y := yStart; y >= yEnd; y-- {
		r.drawSpan(y, x1, x2, col)
		x1 -= invSlope1
		x2 -= invSlope2
	}
}

// spanEpsilon absorbs rounding in the accumulated edge positions so a pixel
// lying exactly on an edge is not lost.
const spanEpsilon = 1e-9

// drawSpan draws the pixels of row y whose X lies between the two edge
// intercepts. A row whose intercepts fall between the same pair of pixel
// columns draws nothing.
func (r *Rasterizer) drawSpan(y int, xa, xb float64, c Color) {
	if xa > xb {
		xa, xb = xb, xa
	}
	w, _ := r.surface.Size()

	left := math.Ceil(xa - spanEpsilon)
	right := math.Floor(xb + spanEpsilon)
	// Clamp before converting so far off-screen intercepts cannot overflow.
	left = math.Max(left, -1)
	right = math.Min(right, float64(w))
	if left > right {
		return
	}

	r.surface.DrawLine(int(left), y, int(right), y, c)
}
