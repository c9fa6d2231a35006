package scene

import (
	"github.com/taigrr/softcam/pkg/math3d"
	"github.com/taigrr/softcam/pkg/render"
)

// Ground grid layout.
const (
	GridHalf = 20   // lattice spans [-GridHalf, GridHalf) on X and Z
	GridY    = -2.0 // height of the ground plane
)

// Builder issues the draw calls for a scene through a rasterizer.
type Builder struct {
	r    *render.Rasterizer
	cull bool
}

// NewBuilder creates a builder drawing through r.
func NewBuilder(r *render.Rasterizer) *Builder {
	return &Builder{r: r}
}

// SetCulling enables skipping blocks that lie entirely outside the view.
// Culled blocks are counted in Stats.BlocksCulled instead of as rejected
// primitives.
func (b *Builder) SetCulling(on bool) {
	b.cull = on
}

// Rasterizer returns the rasterizer the builder draws through.
func (b *Builder) Rasterizer() *render.Rasterizer {
	return b.r
}

// DrawCube draws a flat-shaded cube with its outline. Edge i and triangle i
// share EdgeColor(i); each edge is drawn before the triangle of the same index.
func (b *Builder) DrawCube(center math3d.Vec3, size float64) {
	v := CubeVertices(center, size)
	for i := range CubeEdges {
		c := EdgeColor(i)
		e := CubeEdges[i]
		b.r.DrawLine3D(v[e[0]], v[e[1]], c)
		t := CubeTriangles[i]
		b.r.DrawTriangle3D(v[t[0]], v[t[1]], v[t[2]], c)
	}
}

// DrawGrid draws the ground lattice on the plane y = GridY. Every cell
// contributes its two near edges; the row at z = -GridHalf is drawn green.
func (b *Builder) DrawGrid() {
	for i := -GridHalf; i < GridHalf; i++ {
		for j := -GridHalf; j < GridHalf; j++ {
			c := render.ColorWhite
			if j == -GridHalf {
				c = render.ColorGreen
			}
			x, z := float64(i), float64(j)
			p := math3d.V3(x, GridY, z)
			b.r.DrawLine3D(p, math3d.V3(x+1, GridY, z), c)
			b.r.DrawLine3D(p, math3d.V3(x, GridY, z+1), c)
		}
	}
}

// DrawScene draws the grid (if enabled) and then every block in order.
func (b *Builder) DrawScene(s *Scene) {
	if s.Grid {
		b.DrawGrid()
	}
	var frustum render.Frustum
	if b.cull {
		w, h := b.r.Surface().Size()
		frustum = render.NewFrustum(b.r.Camera(), w, h)
	}
	for _, blk := range s.Blocks {
		if b.cull && !frustum.CubeVisible(b.r.Camera(), blk.Center, blk.Size) {
			b.r.Stats.BlocksCulled++
			continue
		}
		b.DrawCube(blk.Center, blk.Size)
	}
}

// Frame renders one complete frame: clear to black, reset the counters and
// draw the scene at the surface's current size.
func (b *Builder) Frame(s *Scene) render.Stats {
	b.r.Surface().Clear(render.ColorBlack)
	b.r.ResetStats()
	b.DrawScene(s)
	return b.r.Stats
}
