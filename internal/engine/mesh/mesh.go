// Package mesh holds indexed triangle meshes and exposes their geometry in
// world space.
package mesh

import (
	"iter"

	"github.com/Faultbox/shooting-range/pkg/math"
)

// Vertex is a mesh vertex in local space.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
}

// Triangle is three world-space corners in index order.
type Triangle struct {
	V0, V1, V2 math.Vec3
}

// Normal returns the unnormalized face normal following the winding.
func (t Triangle) Normal() math.Vec3 {
	return t.V1.Sub(t.V0).Cross(t.V2.Sub(t.V0))
}

// Mesh is an indexed triangle list. Indices are grouped in threes in draw
// order. A Mesh is not modified after it is built.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the middle of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the box extent on each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// TriangleCount returns the number of complete index triples.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Triangles yields every triangle of the mesh transformed by model.
// Positions are recomputed on each iteration so a moving transform is
// always honoured; the sequence can be ranged over any number of times.
// A trailing partial index triple is ignored.
func (m *Mesh) Triangles(model math.Mat4) iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		n := m.TriangleCount() * 3
		for i := 0; i < n; i += 3 {
			tri := Triangle{
				V0: model.TransformPoint(m.Vertices[m.Indices[i]].Position),
				V1: model.TransformPoint(m.Vertices[m.Indices[i+1]].Position),
				V2: model.TransformPoint(m.Vertices[m.Indices[i+2]].Position),
			}
			if !yield(tri) {
				return
			}
		}
	}
}

// Bounds returns the world-space box around every indexed vertex.
func (m *Mesh) Bounds(model math.Mat4) Bounds {
	var b Bounds
	first := true
	for tri := range m.Triangles(model) {
		for _, p := range [3]math.Vec3{tri.V0, tri.V1, tri.V2} {
			if first {
				b.Min, b.Max = p, p
				first = false
				continue
			}
			b.Min = math.Vec3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
			b.Max = math.Vec3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
		}
	}
	return b
}

// Positions flattens vertex positions and normals into an interleaved
// float buffer (x, y, z, nx, ny, nz) for GPU upload.
func (m *Mesh) Positions() []float32 {
	out := make([]float32, 0, len(m.Vertices)*6)
	for _, v := range m.Vertices {
		out = append(out,
			v.Position.X, v.Position.Y, v.Position.Z,
			v.Normal.X, v.Normal.Y, v.Normal.Z,
		)
	}
	return out
}
