// Package scene builds the per-frame draw calls for blocks and the ground grid.
package scene

import (
	"github.com/taigrr/softcam/pkg/math3d"
	"github.com/taigrr/softcam/pkg/render"
)

// CubeEdges lists the 12 edges of a cube as index pairs into CubeVertices.
var CubeEdges = [12][2]int{
	// Back face
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	// Front face
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	// Connecting edges
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// CubeTriangles lists the 12 triangles of a cube, two per face, as index
// triples into CubeVertices. All triangles wind clockwise seen from outside
// the cube.
var CubeTriangles = [12][3]int{
	{0, 1, 2}, {0, 2, 3}, // back (-Z)
	{4, 6, 5}, {4, 7, 6}, // front (+Z)
	{0, 3, 7}, {0, 7, 4}, // left (-X)
	{1, 5, 6}, {1, 6, 2}, // right (+X)
	{0, 4, 5}, {0, 5, 1}, // bottom (-Y)
	{3, 2, 6}, {3, 6, 7}, // top (+Y)
}

// CubeVertices returns the 8 corners of an axis-aligned cube.
func CubeVertices(center math3d.Vec3, size float64) [8]math3d.Vec3 {
	half := size / 2
	return [8]math3d.Vec3{
		{X: center.X - half, Y: center.Y - half, Z: center.Z - half}, // 0: bottom-left-back
		{X: center.X + half, Y: center.Y - half, Z: center.Z - half}, // 1: bottom-right-back
		{X: center.X + half, Y: center.Y + half, Z: center.Z - half}, // 2: top-right-back
		{X: center.X - half, Y: center.Y + half, Z: center.Z - half}, // 3: top-left-back
		{X: center.X - half, Y: center.Y - half, Z: center.Z + half}, // 4: bottom-left-front
		{X: center.X + half, Y: center.Y - half, Z: center.Z + half}, // 5: bottom-right-front
		{X: center.X + half, Y: center.Y + half, Z: center.Z + half}, // 6: top-right-front
		{X: center.X - half, Y: center.Y + half, Z: center.Z + half}, // 7: top-left-front
	}
}

// EdgeColor returns the flat color for edge and triangle i of a cube.
func EdgeColor(i int) render.Color {
	return render.RGB(uint8(21*i), uint8(5*i), uint8(i))
}
