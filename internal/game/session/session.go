// Package session runs one shooting-range session: camera movement, the
// shooting controller and hit statistics, independent of windowing.
package session

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/shooting-range/internal/config"
	"github.com/Faultbox/shooting-range/internal/engine/camera"
	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/internal/game/shooting"
	"github.com/Faultbox/shooting-range/internal/logger"
	"github.com/Faultbox/shooting-range/pkg/math"
)

// Actions is the player input for one frame.
type Actions struct {
	Fire bool

	Forward, Backward, Left, Right bool

	LookX, LookY float32 // mouse delta in pixels, +Y looks up
	Zoom         float32 // scroll delta
}

// Stats summarizes the session so far.
type Stats struct {
	Shots int
	Hits  int
}

// Accuracy returns hits per shot. Continuous fire can hit more than once
// per trigger pull, so the value may exceed 1.
func (s Stats) Accuracy() float32 {
	if s.Shots == 0 {
		return 0
	}
	return float32(s.Hits) / float32(s.Shots)
}

// Session owns the simulation state.
type Session struct {
	Camera     *camera.FirstPersonCamera
	State      *shooting.State
	Controller *shooting.Controller

	log *zap.Logger
}

// New builds a session from configuration. rng may be nil, in which case a
// PCG source is seeded from cfg.Shooting.Seed or the clock.
func New(cfg *config.Config, target *mesh.Mesh, rng shooting.RandomSource) (*Session, error) {
	if rng == nil {
		if cfg.Shooting.Seed != 0 {
			rng = shooting.NewPCGSource(cfg.Shooting.Seed)
		} else {
			rng = shooting.NewTimeSeededSource()
		}
	}

	placement, err := shooting.NewPlacement(cfg.Shooting.Bounds(), rng)
	if err != nil {
		return nil, fmt.Errorf("placement: %w", err)
	}

	cc := cfg.Camera
	cam := camera.NewFirstPersonCamera(math.Vec3{X: cc.Start.X, Y: cc.Start.Y, Z: cc.Start.Z})
	cam.MovementSpeed = cc.MovementSpeed
	cam.MouseSensitivity = cc.MouseSensitivity
	cam.Bounds = &camera.Bounds{
		MinX: cc.WalkX.Min, MaxX: cc.WalkX.Max,
		MinZ: cc.WalkZ.Min, MaxZ: cc.WalkZ.Max,
	}

	ts := cfg.Shooting.TargetStart
	s := &Session{
		Camera: cam,
		State: &shooting.State{
			Camera: cam,
			Target: shooting.NewTarget(target, math.Vec3{X: ts.X, Y: ts.Y, Z: ts.Z}, cfg.Shooting.TargetScale),
		},
		Controller: shooting.NewController(cfg.Shooting.Options(), placement),
		log:        logger.Named("session"),
	}

	s.log.Info("session started",
		zap.Int("target_triangles", target.TriangleCount()),
		zap.Bool("nearest_hit", cfg.Shooting.NearestHit),
		zap.Bool("single_shot", cfg.Shooting.EdgeTriggered),
	)
	return s, nil
}

// Step advances the session by dt seconds.
func (s *Session) Step(a Actions, dt float32) shooting.Result {
	if a.LookX != 0 || a.LookY != 0 {
		s.Camera.HandleLook(a.LookX, a.LookY)
	}
	if a.Zoom != 0 {
		s.Camera.HandleZoom(a.Zoom)
	}
	if a.Forward {
		s.Camera.HandleMovement(camera.Forward, dt)
	}
	if a.Backward {
		s.Camera.HandleMovement(camera.Backward, dt)
	}
	if a.Left {
		s.Camera.HandleMovement(camera.Left, dt)
	}
	if a.Right {
		s.Camera.HandleMovement(camera.Right, dt)
	}

	from := s.State.Target.Position()
	res := s.Controller.Tick(s.State, shooting.TickInput{Fire: a.Fire, Delta: dt})
	if res.Hit {
		pos := s.State.Target.Position()
		s.log.Info("target moved",
			zap.Float32("x", pos.X),
			zap.Float32("y", pos.Y),
			zap.Float32("z", pos.Z),
			zap.Float32("moved", from.Distance(pos)),
			zap.Int("hits", s.State.Hits),
		)
	}
	return res
}

// Stats returns the shot and hit counters.
func (s *Session) Stats() Stats {
	return Stats{Shots: s.State.Shots, Hits: s.State.Hits}
}

// Close logs the final statistics.
func (s *Session) Close() {
	st := s.Stats()
	s.log.Info("session finished",
		zap.Int("shots", st.Shots),
		zap.Int("hits", st.Hits),
		zap.Float32("accuracy", st.Accuracy()),
	)
}
