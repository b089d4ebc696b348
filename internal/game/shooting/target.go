package shooting

import (
	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/pkg/math"
)

// Target is the shootable object. Its mesh never changes; its transform is
// replaced as a whole after every hit.
type Target struct {
	Mesh      *mesh.Mesh
	Transform math.Mat4
}

// NewTarget places m at pos with the fixed target pose.
func NewTarget(m *mesh.Mesh, pos math.Vec3, scale float32) *Target {
	return &Target{Mesh: m, Transform: TargetTransform(pos, scale)}
}

// Position returns the world position of the target origin.
func (t *Target) Position() math.Vec3 {
	return t.Transform.Translation()
}

// Bounds returns the world-space box of the target.
func (t *Target) Bounds() mesh.Bounds {
	return t.Mesh.Bounds(t.Transform)
}
