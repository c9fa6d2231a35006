package scene

import (
	"github.com/taigrr/softcam/pkg/math3d"
)

// Block is an axis-aligned cube.
type Block struct {
	Center math3d.Vec3
	Size   float64 // edge length
}

// Scene owns the blocks drawn each frame.
type Scene struct {
	Blocks []Block
	Grid   bool // draw the ground grid
}

// Default returns the demo scene: the ground grid and a single cube of
// size 2 five units in front of the origin.
func Default() *Scene {
	return &Scene{
		Blocks: []Block{{Center: math3d.V3(0, 0, -5), Size: 2}},
		Grid:   true,
	}
}

// Add appends a block to the scene.
func (s *Scene) Add(b Block) {
	s.Blocks = append(s.Blocks, b)
}

// Bounds returns the world-space box enclosing every block.
// ok is false for an empty scene.
func (s *Scene) Bounds() (lo, hi math3d.Vec3, ok bool) {
	for i, b := range s.Blocks {
		half := math3d.V3(b.Size/2, b.Size/2, b.Size/2)
		bl, bh := b.Center.Sub(half), b.Center.Add(half)
		if i == 0 {
			lo, hi = bl, bh
			continue
		}
		lo, hi = lo.Min(bl), hi.Max(bh)
	}
	return lo, hi, len(s.Blocks) > 0
}
