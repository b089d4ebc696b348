// Package picking provides ray casting against triangle meshes.
package picking

import (
	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/pkg/math"
)

// Epsilon is the tolerance for parallel rays and for the minimum accepted
// ray parameter.
const Epsilon = 1e-7

// Ray represents a ray in 3D space. Direction does not need to be
// normalized; t values are in multiples of its length.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// Viewpoint is anything that can aim a ray, such as a camera.
type Viewpoint interface {
	Position() math.Vec3
	Front() math.Vec3
}

// FromViewpoint builds a ray from the viewpoint's position along its front vector.
func FromViewpoint(v Viewpoint) Ray {
	return Ray{Origin: v.Position(), Direction: v.Front()}
}

// At returns Origin + t*Direction.
func (r Ray) At(t float32) math.Vec3 {
	return math.At(r.Origin, r.Direction, t)
}

// IntersectTriangle runs the Möller–Trumbore test. Both faces count as hits.
// It returns the ray parameter of the hit; hits at or behind the origin
// (t <= Epsilon) are rejected.
func (r Ray) IntersectTriangle(tri mesh.Triangle) (t float32, ok bool) {
	edge1 := tri.V1.Sub(tri.V0)
	edge2 := tri.V2.Sub(tri.V0)
	h := r.Direction.Cross(edge2)
	a := edge1.Dot(h)

	if a > -Epsilon && a < Epsilon {
		return 0, false // Parallel to the triangle plane
	}

	f := 1 / a
	s := r.Origin.Sub(tri.V0)
	u := f * s.Dot(h)
	if u < 0 || u > 1 {
		return 0, false
	}

	q := s.Cross(edge1)
	v := f * r.Direction.Dot(q)
	if v < 0 || u+v > 1 {
		return 0, false
	}

	t = f * edge2.Dot(q)
	if t > Epsilon {
		return t, true
	}
	return 0, false // Line hit, but not in front of the origin
}

// TestHit reports whether the ray passes through any triangle of m placed
// by model.
func TestHit(r Ray, m *mesh.Mesh, model math.Mat4) bool {
	_, ok := FirstHit(r, m, model)
	return ok
}

// FirstHit returns the hit parameter of the first triangle, in index
// order, that the ray passes through. It does not look for the nearest one.
func FirstHit(r Ray, m *mesh.Mesh, model math.Mat4) (t float32, ok bool) {
	for tri := range m.Triangles(model) {
		if t, ok = r.IntersectTriangle(tri); ok {
			return t, true
		}
	}
	return 0, false
}

// NearestHit scans every triangle and returns the smallest hit parameter.
func NearestHit(r Ray, m *mesh.Mesh, model math.Mat4) (t float32, ok bool) {
	for tri := range m.Triangles(model) {
		if ti, hit := r.IntersectTriangle(tri); hit && (!ok || ti < t) {
			t, ok = ti, true
		}
	}
	return t, ok
}
