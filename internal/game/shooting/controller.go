// Package shooting implements firing at the range target: hit testing from
// the camera and moving the target after each hit.
package shooting

import (
	"go.uber.org/zap"

	"github.com/Faultbox/shooting-range/internal/engine/picking"
	"github.com/Faultbox/shooting-range/internal/logger"
)

// Phase is the controller state.
type Phase int

const (
	Idle Phase = iota
	Firing
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Firing:
		return "firing"
	default:
		return "unknown"
	}
}

// DefaultVisibleDuration is how long the muzzle flash stays up, in seconds.
const DefaultVisibleDuration = 0.1

// Options tunes the controller.
type Options struct {
	// VisibleDuration is the muzzle flash time in seconds.
	VisibleDuration float32
	// NearestHit scans all triangles for the closest hit instead of
	// stopping at the first one.
	NearestHit bool
	// EdgeTriggered limits hit testing to the tick the trigger is pressed.
	// When false every tick with the trigger held is tested.
	EdgeTriggered bool
}

// DefaultOptions returns continuous-fire, first-hit settings.
func DefaultOptions() Options {
	return Options{VisibleDuration: DefaultVisibleDuration}
}

// State is the simulation state the controller works on.
type State struct {
	Camera picking.Viewpoint
	Target *Target

	Shots int
	Hits  int
}

// TickInput is the per-frame input.
type TickInput struct {
	Fire  bool
	Delta float32 // seconds since the previous tick
}

// Result reports what happened during a tick.
type Result struct {
	Fired    bool    // trigger was newly pulled from Idle
	Hit      bool    // target was hit and moved
	Distance float32 // ray parameter of the hit
}

// Controller drives the Idle/Firing state machine and hit testing.
type Controller struct {
	opts      Options
	placement *Placement
	log       *zap.Logger

	phase   Phase
	elapsed float32
	held    bool

	// OnShot and OnHit are optional notifications.
	OnShot func()
	OnHit  func(res Result)
}

// NewController creates an idle controller.
func NewController(opts Options, placement *Placement) *Controller {
	return &Controller{opts: opts, placement: placement, log: logger.Named("shooting")}
}

// Phase returns the current state.
func (c *Controller) Phase() Phase {
	return c.phase
}

// Firing reports whether the muzzle flash should be shown.
func (c *Controller) Firing() bool {
	return c.phase == Firing
}

// Elapsed returns the seconds since the current shot started.
func (c *Controller) Elapsed() float32 {
	return c.elapsed
}

// Tick advances the controller by one frame.
func (c *Controller) Tick(s *State, in TickInput) Result {
	var res Result
	pressed := in.Fire && !c.held
	c.held = in.Fire

	switch c.phase {
	case Idle:
		if pressed {
			c.phase = Firing
			c.elapsed = 0
			s.Shots++
			res.Fired = true
			c.log.Debug("shot fired", zap.Int("shots", s.Shots))
			if c.OnShot != nil {
				c.OnShot()
			}
		}
	case Firing:
		if in.Fire && c.elapsed < c.opts.VisibleDuration {
			c.elapsed += in.Delta
		}
		if c.elapsed >= c.opts.VisibleDuration {
			c.phase = Idle
		}
	}

	if !in.Fire || (c.opts.EdgeTriggered && !pressed) {
		return res
	}

	ray := picking.FromViewpoint(s.Camera)
	t, ok := c.test(ray, s.Target)
	if !ok {
		return res
	}

	from := s.Target.Position()
	pos, transform := c.placement.Reposition(from)
	s.Target.Transform = transform
	s.Hits++

	res.Hit = true
	res.Distance = t
	c.log.Debug("target hit",
		zap.Float32("distance", t),
		zap.Float32("from_x", from.X),
		zap.Float32("from_y", from.Y),
		zap.Float32("from_z", from.Z),
		zap.Float32("to_x", pos.X),
		zap.Float32("to_y", pos.Y),
		zap.Float32("to_z", pos.Z),
		zap.Int("hits", s.Hits),
		zap.Int("shots", s.Shots),
	)
	if c.OnHit != nil {
		c.OnHit(res)
	}
	return res
}

func (c *Controller) test(ray picking.Ray, target *Target) (float32, bool) {
	if c.opts.NearestHit {
		return picking.NearestHit(ray, target.Mesh, target.Transform)
	}
	return picking.FirstHit(ray, target.Mesh, target.Transform)
}
