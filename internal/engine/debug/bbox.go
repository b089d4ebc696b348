// Package debug provides debug visualization utilities.
package debug

import "github.com/Faultbox/shooting-range/internal/engine/mesh"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for the target box.
const DefaultBBoxPadding = 0.05

// BBoxWireframe returns line vertices for a box, [x, y, z] per vertex.
func BBoxWireframe(minX, minY, minZ, maxX, maxY, maxZ float32) []float32 {
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// BoundsWireframe outlines world-space bounds grown by padding on every side.
func BoundsWireframe(b mesh.Bounds, padding float32) []float32 {
	return BBoxWireframe(
		b.Min.X-padding, b.Min.Y-padding, b.Min.Z-padding,
		b.Max.X+padding, b.Max.Y+padding, b.Max.Z+padding,
	)
}
