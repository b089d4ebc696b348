// Package config handles range configuration loading and management.
package config

import (
	"fmt"
	"time"

	"github.com/Faultbox/shooting-range/internal/game/shooting"
)

// Config holds all simulator settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Audio    AudioConfig    `yaml:"audio"`
	Camera   CameraConfig   `yaml:"camera"`
	Shooting ShootingConfig `yaml:"shooting"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// Point is a world-space position in config files.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
	Z float32 `yaml:"z"`
}

// Range is an inclusive [min, max] interval.
type Range struct {
	Min float32 `yaml:"min"`
	Max float32 `yaml:"max"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int  `yaml:"width"`
	Height     int  `yaml:"height"`
	Fullscreen bool `yaml:"fullscreen"`
	VSync      bool `yaml:"vsync"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	ShotSound    string  `yaml:"shot_sound"` // WAV file, empty for silence
}

// CameraConfig holds first-person camera settings.
type CameraConfig struct {
	Start            Point   `yaml:"start"`
	MovementSpeed    float32 `yaml:"movement_speed"`
	MouseSensitivity float32 `yaml:"mouse_sensitivity"`
	WalkX            Range   `yaml:"walk_x"`
	WalkZ            Range   `yaml:"walk_z"`
}

// ShootingConfig holds target placement and firing settings.
type ShootingConfig struct {
	TargetStart     Point         `yaml:"target_start"`
	TargetScale     float32       `yaml:"target_scale"`
	X               Range         `yaml:"x"`
	Y               Range         `yaml:"y"`
	JitterZ         float32       `yaml:"jitter_z"`
	ClampZ          Range         `yaml:"clamp_z"`
	VisibleDuration time.Duration `yaml:"visible_duration"`
	NearestHit      bool          `yaml:"nearest_hit"`
	EdgeTriggered   bool          `yaml:"edge_triggered"`
	Seed            uint64        `yaml:"seed"` // 0 seeds from the clock
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      800,
			Height:     600,
			Fullscreen: false,
			VSync:      true,
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
			Muted:        false,
		},
		Camera: CameraConfig{
			Start:            Point{X: 50, Y: 2, Z: 90},
			MovementSpeed:    7,
			MouseSensitivity: 0.1,
			WalkX:            Range{Min: 0, Max: 100},
			WalkZ:            Range{Min: 0, Max: 100},
		},
		Shooting: ShootingConfig{
			TargetStart:     Point{X: 50, Y: 5, Z: 50},
			TargetScale:     0.2,
			X:               Range{Min: 35, Max: 65},
			Y:               Range{Min: 2, Max: 8},
			JitterZ:         3,
			ClampZ:          Range{Min: 0, Max: 100},
			VisibleDuration: 100 * time.Millisecond,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Bounds converts the placement settings.
func (s ShootingConfig) Bounds() shooting.Bounds {
	return shooting.Bounds{
		MinX: s.X.Min, MaxX: s.X.Max,
		MinY: s.Y.Min, MaxY: s.Y.Max,
		JitterZ: s.JitterZ,
		MinZ:    s.ClampZ.Min, MaxZ: s.ClampZ.Max,
		Scale: s.TargetScale,
	}
}

// Options converts the firing settings.
func (s ShootingConfig) Options() shooting.Options {
	return shooting.Options{
		VisibleDuration: float32(s.VisibleDuration.Seconds()),
		NearestHit:      s.NearestHit,
		EdgeTriggered:   s.EdgeTriggered,
	}
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if c.Camera.WalkX.Min > c.Camera.WalkX.Max || c.Camera.WalkZ.Min > c.Camera.WalkZ.Max {
		return fmt.Errorf("camera: inverted walk range")
	}
	if c.Camera.MovementSpeed < 0 {
		return fmt.Errorf("camera: negative movement speed %g", c.Camera.MovementSpeed)
	}
	if err := c.Shooting.Bounds().Validate(); err != nil {
		return fmt.Errorf("shooting: %w", err)
	}
	if c.Shooting.VisibleDuration <= 0 {
		return fmt.Errorf("shooting: visible_duration must be positive, got %s", c.Shooting.VisibleDuration)
	}
	return nil
}
