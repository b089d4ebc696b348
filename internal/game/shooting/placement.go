package shooting

import (
	"errors"
	"fmt"

	"github.com/Faultbox/shooting-range/pkg/math"
)

// ErrInvalidBounds is returned by Bounds.Validate.
var ErrInvalidBounds = errors.New("invalid placement bounds")

// Fixed target pose, applied after scaling. RotateZ acts first on the
// mesh, then RotateX.
const (
	PoseRotateXDeg = 90
	PoseRotateZDeg = -90
)

// Bounds are the ranges a repositioned target is drawn from.
type Bounds struct {
	MinX, MaxX float32
	MinY, MaxY float32
	// JitterZ is the half-width of the symmetric offset added to the
	// current Z.
	JitterZ float32
	// MinZ and MaxZ clamp Z after the jitter is applied.
	MinZ, MaxZ float32
	// Scale is the uniform target scale.
	Scale float32
}

// DefaultBounds returns the standard range layout.
func DefaultBounds() Bounds {
	return Bounds{
		MinX: 35, MaxX: 65,
		MinY: 2, MaxY: 8,
		JitterZ: 3,
		MinZ:    0, MaxZ: 100,
		Scale: 0.2,
	}
}

// Validate rejects ranges the sampler cannot draw from.
func (b Bounds) Validate() error {
	switch {
	case b.MinX > b.MaxX:
		return fmt.Errorf("%w: x range [%g, %g]", ErrInvalidBounds, b.MinX, b.MaxX)
	case b.MinY > b.MaxY:
		return fmt.Errorf("%w: y range [%g, %g]", ErrInvalidBounds, b.MinY, b.MaxY)
	case b.MinZ > b.MaxZ:
		return fmt.Errorf("%w: z clamp [%g, %g]", ErrInvalidBounds, b.MinZ, b.MaxZ)
	case b.JitterZ < 0:
		return fmt.Errorf("%w: negative z jitter %g", ErrInvalidBounds, b.JitterZ)
	case b.Scale <= 0:
		return fmt.Errorf("%w: scale %g must be positive", ErrInvalidBounds, b.Scale)
	}
	return nil
}

// TargetTransform builds the model matrix for a target at pos:
// Translate(pos) * Scale(scale) * RotateX(90°) * RotateZ(-90°).
func TargetTransform(pos math.Vec3, scale float32) math.Mat4 {
	return math.Translate(pos).
		Mul(math.ScaleUniform(scale)).
		Mul(math.RotateX(math.Radians(PoseRotateXDeg))).
		Mul(math.RotateZ(math.Radians(PoseRotateZDeg)))
}

// Placement picks new target poses.
type Placement struct {
	Bounds Bounds
	Rand   RandomSource
}

// NewPlacement validates bounds and returns a placement policy.
func NewPlacement(b Bounds, rng RandomSource) (*Placement, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return &Placement{Bounds: b, Rand: rng}, nil
}

// Reposition draws a new position near current and returns it with its
// model matrix. X and Y are drawn fresh; Z moves by a random jitter from
// the current Z and is clamped to the world extent.
func (p *Placement) Reposition(current math.Vec3) (math.Vec3, math.Mat4) {
	b := p.Bounds
	x := p.Rand.Uniform(b.MinX, b.MaxX)
	y := p.Rand.Uniform(b.MinY, b.MaxY)
	jitter := p.Rand.Uniform(-b.JitterZ, b.JitterZ)

	pos := math.Vec3{
		X: x,
		Y: y,
		Z: math.Clamp(current.Z+jitter, b.MinZ, b.MaxZ),
	}
	return pos, TargetTransform(pos, b.Scale)
}
