// Package renderer draws the range target with OpenGL.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/shooting-range/internal/engine/debug"
	"github.com/Faultbox/shooting-range/internal/engine/lighting"
	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/internal/engine/shader"
	"github.com/Faultbox/shooting-range/internal/logger"
	"github.com/Faultbox/shooting-range/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	Sun    lighting.Sun
}

// Frame is what the renderer needs for one frame.
type Frame struct {
	View       math.Mat4
	Projection math.Mat4
	Eye        math.Vec3
	Model      math.Mat4
	// Flash is true while the muzzle flash is visible.
	Flash bool
	// Bounds, when set, is outlined as a wireframe box.
	Bounds *mesh.Bounds
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config  Config
	program *shader.Program
	lines   *shader.Program

	targetVAO   uint32
	targetVBO   uint32
	targetEBO   uint32
	targetCount int32

	boxVAO uint32
	boxVBO uint32
}

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;

uniform mat4 uModel;
uniform mat4 uView;
uniform mat4 uProjection;

out vec3 vNormal;
out vec3 vWorldPos;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = mat3(uModel) * aNormal;
	gl_Position = uProjection * uView * world;
}
`

const fragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vWorldPos;

uniform vec3 uEye;
uniform vec3 uColor;
uniform vec3 uSunDir;
uniform vec3 uSunColor;
uniform float uAmbient;

out vec4 FragColor;

void main() {
	vec3 n = normalize(vNormal);
	// Light whichever face the viewer sees
	if (dot(n, uEye - vWorldPos) < 0.0) {
		n = -n;
	}
	float diffuse = max(dot(n, normalize(uSunDir)), 0.0);
	vec3 light = uSunColor * (uAmbient + (1.0 - uAmbient) * diffuse);
	FragColor = vec4(uColor * light, 1.0);
}
`

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uView;
uniform mat4 uProjection;

void main() {
	gl_Position = uProjection * uView * vec4(aPos, 1.0);
}
`

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
`

var (
	clearColor = [3]float32{0.1, 0.1, 0.15}
	flashColor = [3]float32{0.35, 0.28, 0.12}
	targetTint = math.Vec3{X: 0.85, Y: 0.15, Z: 0.1}
	boxColor   = math.Vec3{X: 0.2, Y: 1, Z: 0.3}
)

// New creates a renderer and uploads the target mesh.
// Must be called after the OpenGL context is created.
func New(cfg Config, target *mesh.Mesh) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.lines, err = shader.NewProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		r.program.Delete()
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}

	r.uploadTarget(target)
	r.createBox()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.targetVAO != 0 {
		gl.DeleteVertexArrays(1, &r.targetVAO)
	}
	if r.targetVBO != 0 {
		gl.DeleteBuffers(1, &r.targetVBO)
	}
	if r.targetEBO != 0 {
		gl.DeleteBuffers(1, &r.targetEBO)
	}
	if r.boxVAO != 0 {
		gl.DeleteVertexArrays(1, &r.boxVAO)
	}
	if r.boxVBO != 0 {
		gl.DeleteBuffers(1, &r.boxVBO)
	}
	if r.program != nil {
		r.program.Delete()
	}
	if r.lines != nil {
		r.lines.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Aspect returns the viewport aspect ratio.
func (r *Renderer) Aspect() float32 {
	if r.config.Height == 0 {
		return 1
	}
	return float32(r.config.Width) / float32(r.config.Height)
}

// Draw renders one frame.
func (r *Renderer) Draw(f Frame) {
	c := clearColor
	if f.Flash {
		c = flashColor
	}
	gl.ClearColor(c[0], c[1], c[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.program.Use()
	r.program.SetMat4("uModel", f.Model)
	r.program.SetMat4("uView", f.View)
	r.program.SetMat4("uProjection", f.Projection)
	r.program.SetVec3("uEye", f.Eye)
	r.program.SetVec3("uColor", targetTint)
	r.program.SetVec3("uSunDir", r.config.Sun.Direction())
	r.program.SetVec3("uSunColor", r.config.Sun.Color)
	r.program.SetFloat("uAmbient", r.config.Sun.Ambient)

	gl.BindVertexArray(r.targetVAO)
	gl.DrawElements(gl.TRIANGLES, r.targetCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)

	if f.Bounds != nil {
		r.drawBox(f)
	}
}

func (r *Renderer) drawBox(f Frame) {
	vertices := debug.BoundsWireframe(*f.Bounds, debug.DefaultBBoxPadding)

	r.lines.Use()
	r.lines.SetMat4("uView", f.View)
	r.lines.SetMat4("uProjection", f.Projection)
	r.lines.SetVec3("uColor", boxColor)

	gl.BindVertexArray(r.boxVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(vertices)*4, gl.Ptr(vertices))
	gl.DrawArrays(gl.LINES, 0, debug.BBoxWireframeVertexCount)
	gl.BindVertexArray(0)
}

// createBox allocates a dynamic buffer for the bounds wireframe.
func (r *Renderer) createBox() {
	gl.GenVertexArrays(1, &r.boxVAO)
	gl.BindVertexArray(r.boxVAO)

	gl.GenBuffers(1, &r.boxVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.boxVBO)
	gl.BufferData(gl.ARRAY_BUFFER, debug.BBoxWireframeVertexCount*3*4, nil, gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
}

// uploadTarget creates the VAO for the target mesh.
func (r *Renderer) uploadTarget(m *mesh.Mesh) {
	vertices := m.Positions()
	indices := m.Indices[:m.TriangleCount()*3]

	gl.GenVertexArrays(1, &r.targetVAO)
	gl.BindVertexArray(r.targetVAO)

	gl.GenBuffers(1, &r.targetVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.targetVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	gl.GenBuffers(1, &r.targetEBO)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.targetEBO)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	// Position (location = 0), normal (location = 1)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 6*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 6*4, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)

	gl.BindVertexArray(0)
	r.targetCount = int32(len(indices))

	logger.Debug("target uploaded",
		zap.Uint32("vao", r.targetVAO),
		zap.Int("vertices", len(m.Vertices)),
		zap.Int32("indices", r.targetCount),
	)
}
