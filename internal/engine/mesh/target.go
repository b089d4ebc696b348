package mesh

import (
	gomath "math"

	"github.com/Faultbox/shooting-range/pkg/math"
)

// Default target board dimensions in local units.
const (
	DefaultTargetRadius    = 5.0
	DefaultTargetThickness = 1.0
	DefaultTargetSegments  = 24
)

// NewTargetDisc builds a closed disc (a short cylinder) around the local X
// axis: a cap on each face plus the rim. segments below 3 are raised to 3.
// The standard target pose turns local X toward world -Z, so the faces
// look down the range.
func NewTargetDisc(radius, thickness float32, segments int) *Mesh {
	if segments < 3 {
		segments = 3
	}
	half := thickness / 2
	m := &Mesh{}

	ring := make([]math.Vec3, segments)
	for i := range ring {
		a := 2 * gomath.Pi * float64(i) / float64(segments)
		ring[i] = math.Vec3{Y: float32(gomath.Cos(a)), Z: float32(gomath.Sin(a))}
	}

	// Caps
	for _, side := range [2]float32{1, -1} {
		face := math.Vec3{X: side}
		center := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices, Vertex{Position: math.Vec3{X: half * side}, Normal: face})
		for _, dir := range ring {
			m.Vertices = append(m.Vertices, Vertex{
				Position: math.Vec3{X: half * side, Y: dir.Y * radius, Z: dir.Z * radius},
				Normal:   face,
			})
		}
		for i := 0; i < segments; i++ {
			a := center + 1 + uint32(i)
			b := center + 1 + uint32((i+1)%segments)
			if side > 0 {
				m.Indices = append(m.Indices, center, b, a)
			} else {
				m.Indices = append(m.Indices, center, a, b)
			}
		}
	}

	// Rim
	base := uint32(len(m.Vertices))
	for _, dir := range ring {
		m.Vertices = append(m.Vertices,
			Vertex{Position: math.Vec3{X: half, Y: dir.Y * radius, Z: dir.Z * radius}, Normal: dir},
			Vertex{Position: math.Vec3{X: -half, Y: dir.Y * radius, Z: dir.Z * radius}, Normal: dir},
		)
	}
	for i := 0; i < segments; i++ {
		top := base + uint32(i*2)
		bottom := top + 1
		nextTop := base + uint32(((i+1)%segments)*2)
		nextBottom := nextTop + 1
		m.Indices = append(m.Indices,
			top, nextTop, bottom,
			bottom, nextTop, nextBottom,
		)
	}

	return m
}

// NewDefaultTarget builds the disc with the default dimensions.
func NewDefaultTarget() *Mesh {
	return NewTargetDisc(DefaultTargetRadius, DefaultTargetThickness, DefaultTargetSegments)
}
