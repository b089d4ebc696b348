package picking

import (
	"testing"

	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/pkg/math"
)

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func triangleAtZ(z float32) mesh.Triangle {
	return mesh.Triangle{
		V0: math.Vec3{X: -1, Y: -1, Z: z},
		V1: math.Vec3{X: 1, Y: -1, Z: z},
		V2: math.Vec3{X: 0, Y: 1, Z: z},
	}
}

func TestIntersectTriangle(t *testing.T) {
	tests := []struct {
		name string
		ray  Ray
		tri  mesh.Triangle
		want float32
		hit  bool
	}{
		{
			name: "hit in front",
			ray:  Ray{Direction: math.Vec3{Z: -1}},
			tri:  triangleAtZ(-5),
			want: 5,
			hit:  true,
		},
		{
			name: "behind origin",
			ray:  Ray{Direction: math.Vec3{Z: -1}},
			tri:  triangleAtZ(5),
		},
		{
			name: "unnormalized direction",
			ray:  Ray{Direction: math.Vec3{Z: -2}},
			tri:  triangleAtZ(-5),
			want: 2.5,
			hit:  true,
		},
		{
			name: "back face",
			ray:  Ray{Origin: math.Vec3{Z: -10}, Direction: math.Vec3{Z: 1}},
			tri:  triangleAtZ(-5),
			want: 5,
			hit:  true,
		},
		{
			name: "miss outside u",
			ray:  Ray{Origin: math.Vec3{X: 5}, Direction: math.Vec3{Z: -1}},
			tri:  triangleAtZ(-5),
		},
		{
			name: "miss outside v",
			ray:  Ray{Origin: math.Vec3{X: 0.9, Y: 0.9}, Direction: math.Vec3{Z: -1}},
			tri:  triangleAtZ(-5),
		},
		{
			name: "origin on the plane",
			ray:  Ray{Origin: math.Vec3{Z: -5}, Direction: math.Vec3{Z: -1}},
			tri:  triangleAtZ(-5),
		},
		{
			name: "oblique",
			ray:  Ray{Origin: math.Vec3{X: -5, Z: 0}, Direction: math.Vec3{X: 1, Z: -1}},
			tri:  triangleAtZ(-5),
			want: 5,
			hit:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ray.IntersectTriangle(tt.tri)
			if ok != tt.hit {
				t.Fatalf("hit = %v, want %v (t=%v)", ok, tt.hit, got)
			}
			if ok && abs(got-tt.want) > 1e-5 {
				t.Errorf("t = %v, want %v", got, tt.want)
			}
			if ok {
				p := tt.ray.At(got)
				if abs(p.Z-tt.tri.V0.Z) > 1e-5 {
					t.Errorf("hit point %v is not on the triangle plane", p)
				}
			}
		})
	}
}

func TestIntersectTriangleParallel(t *testing.T) {
	tri := triangleAtZ(-5)
	origins := []math.Vec3{
		{},
		{Z: -5},
		{X: -3, Y: 0.2, Z: -5},
		{X: 100, Y: -100, Z: 40},
	}
	dirs := []math.Vec3{
		{X: 1},
		{Y: -1},
		{X: 0.6, Y: 0.8},
	}

	for _, o := range origins {
		for _, d := range dirs {
			if _, ok := (Ray{Origin: o, Direction: d}).IntersectTriangle(tri); ok {
				t.Errorf("parallel ray %v + t%v reported a hit", o, d)
			}
		}
	}
}

func TestIntersectDegenerateTriangle(t *testing.T) {
	tri := mesh.Triangle{
		V0: math.Vec3{Z: -5},
		V1: math.Vec3{X: 1, Z: -5},
		V2: math.Vec3{X: 2, Z: -5},
	}
	if _, ok := (Ray{Direction: math.Vec3{Z: -1}}).IntersectTriangle(tri); ok {
		t.Error("zero-area triangle should never be hit")
	}
}

func box() *mesh.Mesh {
	// Axis-aligned unit cube centered at the origin.
	p := []math.Vec3{
		{X: -1, Y: -1, Z: -1}, {X: 1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: -1}, {X: -1, Y: 1, Z: -1},
		{X: -1, Y: -1, Z: 1}, {X: 1, Y: -1, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: -1, Y: 1, Z: 1},
	}
	m := &mesh.Mesh{}
	for _, v := range p {
		m.Vertices = append(m.Vertices, mesh.Vertex{Position: v})
	}
	m.Indices = []uint32{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
	}
	return m
}

func TestTestHit(t *testing.T) {
	m := box()
	model := math.Translate(math.Vec3{X: 30, Y: 2, Z: 50})

	tests := []struct {
		name string
		ray  Ray
		want bool
	}{
		{"straight on", Ray{Origin: math.Vec3{X: 30.3, Y: 2.2}, Direction: math.Vec3{Z: 1}}, true},
		{"from inside", Ray{Origin: math.Vec3{X: 30.1, Y: 2.3, Z: 50}, Direction: math.Vec3{X: 1}}, true},
		{"wide", Ray{Origin: math.Vec3{X: 35, Y: 2}, Direction: math.Vec3{Z: 1}}, false},
		{"facing away", Ray{Origin: math.Vec3{X: 30.3, Y: 2.2}, Direction: math.Vec3{Z: -1}}, false},
		{"past the target", Ray{Origin: math.Vec3{X: 30.3, Y: 2.2, Z: 60}, Direction: math.Vec3{Z: 1}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TestHit(tt.ray, m, model); got != tt.want {
				t.Errorf("TestHit() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTestHitEmptyMesh(t *testing.T) {
	if TestHit(Ray{Direction: math.Vec3{Z: 1}}, &mesh.Mesh{}, math.Identity()) {
		t.Error("empty mesh reported a hit")
	}
}

func TestTestHitTranslationInvariant(t *testing.T) {
	m := mesh.NewDefaultTarget()
	rays := []Ray{
		{Origin: math.Vec3{X: 0.3, Y: 0.1, Z: -20}, Direction: math.Vec3{Z: 1}},  // rim
		{Origin: math.Vec3{X: 10, Y: 1, Z: 0.5}, Direction: math.Vec3{X: -1}},    // cap
		{Origin: math.Vec3{X: 10, Y: 0, Z: -20}, Direction: math.Vec3{Z: 1}},     // wide
		{Origin: math.Vec3{X: -20, Y: 6, Z: 0}, Direction: math.Vec3{X: 1}},      // above
		{Origin: math.Vec3{X: 0.3, Y: 0.1, Z: 20}, Direction: math.Vec3{Z: 1}},   // past it
	}
	want := []bool{true, true, false, false, false}
	shifts := []math.Vec3{
		{},
		{X: 30, Y: 2, Z: 50},
		{X: -12, Y: 7, Z: 3},
		{X: 64, Y: 8, Z: 100},
	}

	for _, shift := range shifts {
		model := math.Translate(shift)
		for i, r := range rays {
			moved := Ray{Origin: r.Origin.Add(shift), Direction: r.Direction}
			if got := TestHit(moved, m, model); got != want[i] {
				t.Errorf("shift %v ray %d: TestHit() = %v, want %v", shift, i, got, want[i])
			}
		}
	}
}

func TestNearestHit(t *testing.T) {
	// Two parallel triangles; the far one is enumerated first.
	far, near := triangleAtZ(-9), triangleAtZ(-3)
	m := &mesh.Mesh{
		Vertices: []mesh.Vertex{
			{Position: far.V0}, {Position: far.V1}, {Position: far.V2},
			{Position: near.V0}, {Position: near.V1}, {Position: near.V2},
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}
	r := Ray{Direction: math.Vec3{Z: -1}}

	first, ok := FirstHit(r, m, math.Identity())
	if !ok || abs(first-9) > 1e-5 {
		t.Fatalf("FirstHit() = %v, %v, want 9, true", first, ok)
	}
	got, ok := NearestHit(r, m, math.Identity())
	if !ok || abs(got-3) > 1e-5 {
		t.Errorf("NearestHit() = %v, %v, want 3, true", got, ok)
	}
	if _, ok := NearestHit(Ray{Direction: math.Vec3{Z: 1}}, m, math.Identity()); ok {
		t.Error("NearestHit() hit with the ray facing away")
	}
}

type fixedView struct{ pos, front math.Vec3 }

func (v fixedView) Position() math.Vec3 { return v.pos }
func (v fixedView) Front() math.Vec3    { return v.front }

func TestFromViewpoint(t *testing.T) {
	r := FromViewpoint(fixedView{pos: math.Vec3{X: 1, Y: 2, Z: 3}, front: math.Vec3{Z: -1}})
	if r.Origin != (math.Vec3{X: 1, Y: 2, Z: 3}) || r.Direction != (math.Vec3{Z: -1}) {
		t.Errorf("FromViewpoint() = %+v", r)
	}
}
