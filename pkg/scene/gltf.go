package scene

import (
	"errors"
	"fmt"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/softcam/pkg/math3d"
)

// ErrNoBlocks is returned when a glTF file contains no mesh nodes.
var ErrNoBlocks = errors.New("no mesh nodes")

// LoadGLTF reads a glTF or GLB file and turns every node that references a
// mesh into a block. Node rotation is ignored; translation and scale are
// accumulated down the hierarchy.
func LoadGLTF(path string) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open glTF: %w", err)
	}

	s, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// FromDocument builds a scene from an already decoded glTF document.
func FromDocument(doc *gltf.Document) (*Scene, error) {
	s := &Scene{Grid: true}

	roots := rootNodes(doc)
	visited := make(map[int]bool, len(doc.Nodes))
	var walk func(idx int, offset, scale math3d.Vec3) error
	walk = func(idx int, offset, scale math3d.Vec3) error {
		if idx < 0 || idx >= len(doc.Nodes) {
			return fmt.Errorf("node index %d out of range", idx)
		}
		if visited[idx] {
			return fmt.Errorf("node %d visited twice", idx)
		}
		visited[idx] = true

		node := doc.Nodes[idx]
		t := node.Translation
		sc := nodeScale(node)
		pos := offset.Add(math3d.V3(t[0]*scale.X, t[1]*scale.Y, t[2]*scale.Z))
		scale = math3d.V3(scale.X*sc[0], scale.Y*sc[1], scale.Z*sc[2])

		if node.Mesh != nil {
			extent, err := meshExtent(doc, *node.Mesh)
			if err != nil {
				return fmt.Errorf("node %q: %w", node.Name, err)
			}
			s.Add(Block{Center: pos, Size: scale.X * extent})
		}

		for _, child := range node.Children {
			if err := walk(child, pos, scale); err != nil {
				return err
			}
		}
		return nil
	}

	for _, idx := range roots {
		if err := walk(idx, math3d.Zero3(), math3d.V3(1, 1, 1)); err != nil {
			return nil, err
		}
	}

	if len(s.Blocks) == 0 {
		return nil, ErrNoBlocks
	}
	return s, nil
}

// rootNodes returns the nodes of the default scene, or every node that is
// nobody's child when the document declares no scenes.
func rootNodes(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		idx := 0
		if doc.Scene != nil && *doc.Scene < len(doc.Scenes) {
			idx = *doc.Scene
		}
		return doc.Scenes[idx].Nodes
	}

	isChild := make(map[int]bool)
	for _, n := range doc.Nodes {
		for _, c := range n.Children {
			isChild[c] = true
		}
	}
	var roots []int
	for i := range doc.Nodes {
		if !isChild[i] {
			roots = append(roots, i)
		}
	}
	return roots
}

// nodeScale treats an all-zero scale as the glTF default of 1.
func nodeScale(n *gltf.Node) [3]float64 {
	if n.Scale == [3]float64{} {
		return [3]float64{1, 1, 1}
	}
	return n.Scale
}

// meshExtent returns the largest X extent of the POSITION bounds over all
// primitives of a mesh, or 1 when no bounds are recorded.
func meshExtent(doc *gltf.Document, meshIdx int) (float64, error) {
	if meshIdx < 0 || meshIdx >= len(doc.Meshes) {
		return 0, fmt.Errorf("mesh index %d out of range", meshIdx)
	}

	extent := 0.0
	for _, prim := range doc.Meshes[meshIdx].Primitives {
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		if posIdx < 0 || posIdx >= len(doc.Accessors) {
			return 0, fmt.Errorf("accessor index %d out of range", posIdx)
		}
		acc := doc.Accessors[posIdx]
		if len(acc.Min) == 0 || len(acc.Max) == 0 {
			continue
		}
		extent = max(extent, acc.Max[0]-acc.Min[0])
	}

	if extent <= 0 {
		return 1, nil
	}
	return extent, nil
}
