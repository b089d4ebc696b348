// Package camera provides the first-person camera that the player aims with.
package camera

import (
	gomath "math"

	"github.com/Faultbox/shooting-range/pkg/math"
)

// Movement is a keyboard movement direction.
type Movement int

const (
	Forward Movement = iota
	Backward
	Left
	Right
)

// Bounds limits where the camera may walk on the XZ plane.
type Bounds struct {
	MinX, MaxX float32
	MinZ, MaxZ float32
}

// FirstPersonCamera looks around with yaw/pitch and walks on a fixed
// height plane.
type FirstPersonCamera struct {
	Pos     math.Vec3
	WorldUp math.Vec3

	// Euler angles in degrees
	Yaw   float32
	Pitch float32

	// Field of view in degrees
	Zoom    float32
	MinZoom float32
	MaxZoom float32

	MaxPitch float32

	MovementSpeed    float32 // units per second
	MouseSensitivity float32 // degrees per pixel

	// Walk limits; nil disables clamping
	Bounds *Bounds

	Near, Far float32

	front, right, up math.Vec3
}

// NewFirstPersonCamera creates a camera at pos looking down -Z.
func NewFirstPersonCamera(pos math.Vec3) *FirstPersonCamera {
	c := &FirstPersonCamera{
		Pos:              pos,
		WorldUp:          math.Vec3{Y: 1},
		Yaw:              -90,
		Pitch:            0,
		Zoom:             45,
		MinZoom:          1,
		MaxZoom:          45,
		MaxPitch:         89,
		MovementSpeed:    2.5,
		MouseSensitivity: 0.1,
		Near:             0.1,
		Far:              1000,
	}
	c.updateVectors()
	return c
}

// Position returns the camera position in world space.
func (c *FirstPersonCamera) Position() math.Vec3 {
	return c.Pos
}

// Front returns the unit view direction.
func (c *FirstPersonCamera) Front() math.Vec3 {
	return c.front
}

// Right returns the unit right vector.
func (c *FirstPersonCamera) Right() math.Vec3 {
	return c.right
}

// Up returns the unit camera up vector.
func (c *FirstPersonCamera) Up() math.Vec3 {
	return c.up
}

// ViewMatrix returns the view matrix for this camera.
func (c *FirstPersonCamera) ViewMatrix() math.Mat4 {
	return math.LookAt(c.Pos, c.Pos.Add(c.front), c.up)
}

// Projection returns the perspective matrix for the given aspect ratio.
func (c *FirstPersonCamera) Projection(aspect float32) math.Mat4 {
	return math.Perspective(math.Radians(c.Zoom), aspect, c.Near, c.Far)
}

// HandleMovement walks the camera. Height is kept so the player stays on
// the ground even when looking up or down.
func (c *FirstPersonCamera) HandleMovement(dir Movement, dt float32) {
	velocity := c.MovementSpeed * dt
	height := c.Pos.Y

	switch dir {
	case Forward:
		c.Pos = c.Pos.Add(c.front.Scale(velocity))
	case Backward:
		c.Pos = c.Pos.Sub(c.front.Scale(velocity))
	case Left:
		c.Pos = c.Pos.Sub(c.right.Scale(velocity))
	case Right:
		c.Pos = c.Pos.Add(c.right.Scale(velocity))
	}

	c.Pos.Y = height
	if c.Bounds != nil {
		c.Pos.X = math.Clamp(c.Pos.X, c.Bounds.MinX, c.Bounds.MaxX)
		c.Pos.Z = math.Clamp(c.Pos.Z, c.Bounds.MinZ, c.Bounds.MaxZ)
	}
}

// HandleLook updates yaw and pitch from a mouse delta in pixels.
// Positive deltaY looks up.
func (c *FirstPersonCamera) HandleLook(deltaX, deltaY float32) {
	c.Yaw += deltaX * c.MouseSensitivity
	c.Pitch = math.Clamp(c.Pitch+deltaY*c.MouseSensitivity, -c.MaxPitch, c.MaxPitch)
	c.updateVectors()
}

// HandleZoom narrows or widens the field of view from a scroll delta.
func (c *FirstPersonCamera) HandleZoom(delta float32) {
	c.Zoom = math.Clamp(c.Zoom-delta, c.MinZoom, c.MaxZoom)
}

func (c *FirstPersonCamera) updateVectors() {
	yaw := float64(math.Radians(c.Yaw))
	pitch := float64(math.Radians(c.Pitch))

	c.front = math.Vec3{
		X: float32(gomath.Cos(yaw) * gomath.Cos(pitch)),
		Y: float32(gomath.Sin(pitch)),
		Z: float32(gomath.Sin(yaw) * gomath.Cos(pitch)),
	}.Normalize()
	c.right = c.front.Cross(c.WorldUp).Normalize()
	c.up = c.right.Cross(c.front).Normalize()
}
