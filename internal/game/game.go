// Package game implements the main loop: window, input, audio and drawing
// around a shooting-range session.
package game

import (
	"fmt"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/shooting-range/internal/config"
	"github.com/Faultbox/shooting-range/internal/engine/audio"
	"github.com/Faultbox/shooting-range/internal/engine/input"
	"github.com/Faultbox/shooting-range/internal/engine/lighting"
	"github.com/Faultbox/shooting-range/internal/engine/mesh"
	"github.com/Faultbox/shooting-range/internal/engine/renderer"
	"github.com/Faultbox/shooting-range/internal/engine/window"
	"github.com/Faultbox/shooting-range/internal/game/session"
	"github.com/Faultbox/shooting-range/internal/logger"
)

const title = "Shooting Range"

// Game is the main game instance.
type Game struct {
	config   *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	audio    *audio.Manager
	session  *session.Session

	showBounds bool

	log *zap.Logger
}

// New creates the window, renderer, audio and session.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{
		config: cfg,
		log:    logger.Named("game"),
	}

	g.log.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
	)

	target := mesh.NewDefaultTarget()

	var err error
	g.session, err = session.New(cfg, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:        title,
		Width:        cfg.Graphics.Width,
		Height:       cfg.Graphics.Height,
		Fullscreen:   cfg.Graphics.Fullscreen,
		VSync:        cfg.Graphics.VSync,
		CaptureMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:  width,
		Height: height,
		Sun:    lighting.DefaultSun(),
	}, target)
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	g.input = input.New()
	g.initAudio()

	if g.audio.IsInitialized() {
		g.session.Controller.OnShot = func() {
			if err := g.audio.PlayShot(); err != nil {
				g.log.Warn("shot sound failed", zap.Error(err))
			}
		}
	}

	g.log.Info("game initialized successfully")
	return g, nil
}

// initAudio sets up the shot sound. Audio failures are not fatal.
func (g *Game) initAudio() {
	ac := g.config.Audio
	g.audio = audio.New()
	g.audio.SetMasterVolume(float64(ac.MasterVolume))
	g.audio.SetSFXVolume(float64(ac.SFXVolume))
	g.audio.SetMuted(ac.Muted)

	if ac.Muted {
		return
	}
	if err := g.audio.Init(); err != nil {
		g.log.Warn("audio disabled", zap.Error(err))
		return
	}
	if ac.ShotSound != "" {
		if err := g.audio.LoadShotFile(ac.ShotSound); err != nil {
			g.log.Warn("failed to load shot sound", zap.Error(err))
		}
	}
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		// 1. Process input
		if g.input.Update() {
			g.running = false
			break
		}
		g.handleEvents()

		// 2. Update simulation
		g.session.Step(g.actions(), dt)

		// 3. Render
		g.render()

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			st := g.session.Stats()
			g.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.Float32("dt_ms", dt*1000),
			)
			g.window.SetTitle(fmt.Sprintf("%s - hits %d / shots %d", title, st.Hits, st.Shots))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (g *Game) handleEvents() {
	for _, event := range g.input.Events() {
		if event.Type == input.EventWindowResize {
			g.renderer.Resize(event.Width, event.Height)
		}
	}

	if g.input.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		g.running = false
	}
	if g.input.IsKeyPressed(sdl.SCANCODE_F1) {
		g.toggleDebug()
	}
	if g.input.IsKeyPressed(sdl.SCANCODE_F2) {
		g.toggleBounds()
	}
}

func (g *Game) toggleBounds() {
	g.showBounds = !g.showBounds
	b := g.session.State.Target.Bounds()
	center, size := b.Center(), b.Size()
	g.log.Debug("bounds overlay",
		zap.Bool("visible", g.showBounds),
		zap.Float32("center_x", center.X),
		zap.Float32("center_y", center.Y),
		zap.Float32("center_z", center.Z),
		zap.Float32("size_x", size.X),
		zap.Float32("size_y", size.Y),
		zap.Float32("size_z", size.Z),
	)
}

func (g *Game) toggleDebug() {
	next := "debug"
	if logger.Level() == "debug" {
		next = g.config.Logging.Level
		if next == "debug" {
			next = "info"
		}
	}
	logger.SetLevel(next)
	g.log.Info("log level changed", zap.String("level", next))
}

// actions maps held keys and mouse motion to session input.
func (g *Game) actions() session.Actions {
	dx, dy := g.input.MouseDelta()
	return session.Actions{
		Fire:     g.input.IsButtonHeld(sdl.BUTTON_LEFT),
		Forward:  g.input.IsKeyHeld(sdl.SCANCODE_W),
		Backward: g.input.IsKeyHeld(sdl.SCANCODE_S),
		Left:     g.input.IsKeyHeld(sdl.SCANCODE_A),
		Right:    g.input.IsKeyHeld(sdl.SCANCODE_D),
		LookX:    dx,
		LookY:    -dy, // screen Y grows downward
		Zoom:     g.input.Wheel(),
	}
}

func (g *Game) render() {
	cam := g.session.Camera
	target := g.session.State.Target
	frame := renderer.Frame{
		View:       cam.ViewMatrix(),
		Projection: cam.Projection(g.renderer.Aspect()),
		Eye:        cam.Position(),
		Model:      target.Transform,
		Flash:      g.session.Controller.Firing(),
	}
	if g.showBounds {
		b := target.Bounds()
		frame.Bounds = &b
	}
	g.renderer.Draw(frame)
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.session != nil {
		g.session.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
