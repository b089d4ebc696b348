package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Faultbox/shooting-range/internal/game/shooting"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Graphics.Width != 800 || cfg.Graphics.Height != 600 {
		t.Errorf("expected 800x600, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.VSync {
		t.Error("expected vsync to be true by default")
	}

	if cfg.Camera.MovementSpeed != 7 {
		t.Errorf("expected movement speed 7, got %f", cfg.Camera.MovementSpeed)
	}

	b := cfg.Shooting.Bounds()
	if b != shooting.DefaultBounds() {
		t.Errorf("expected default placement bounds, got %+v", b)
	}
	if cfg.Shooting.VisibleDuration != 100*time.Millisecond {
		t.Errorf("expected visible duration 100ms, got %v", cfg.Shooting.VisibleDuration)
	}
	if cfg.Shooting.NearestHit || cfg.Shooting.EdgeTriggered {
		t.Error("expected first-hit continuous fire by default")
	}

	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestOptions(t *testing.T) {
	cfg := Default()
	cfg.Shooting.VisibleDuration = 250 * time.Millisecond
	cfg.Shooting.NearestHit = true

	opts := cfg.Shooting.Options()
	if opts.VisibleDuration != 0.25 {
		t.Errorf("expected 0.25s, got %f", opts.VisibleDuration)
	}
	if !opts.NearestHit || opts.EdgeTriggered {
		t.Errorf("unexpected options %+v", opts)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false

audio:
  master_volume: 0.5
  sfx_volume: 0.7
  muted: true
  shot_sound: "sounds/shot.wav"

camera:
  start: {x: 10, y: 3, z: 20}
  movement_speed: 4

shooting:
  x: {min: 10, max: 20}
  y: {min: 1, max: 3}
  jitter_z: 5
  visible_duration: 250ms
  nearest_hit: true
  seed: 1234

logging:
  level: "debug"
  log_file: "range.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Graphics.Width != 1920 || cfg.Graphics.Height != 1080 {
		t.Errorf("expected 1920x1080, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
	}
	if !cfg.Graphics.Fullscreen || cfg.Graphics.VSync {
		t.Error("expected fullscreen without vsync")
	}

	if !cfg.Audio.Muted || cfg.Audio.ShotSound != "sounds/shot.wav" {
		t.Errorf("unexpected audio config %+v", cfg.Audio)
	}

	if cfg.Camera.Start != (Point{X: 10, Y: 3, Z: 20}) {
		t.Errorf("expected camera start (10, 3, 20), got %+v", cfg.Camera.Start)
	}
	if cfg.Camera.MouseSensitivity != 0.1 {
		t.Errorf("unset field should keep default, got %f", cfg.Camera.MouseSensitivity)
	}

	if cfg.Shooting.X != (Range{Min: 10, Max: 20}) || cfg.Shooting.JitterZ != 5 {
		t.Errorf("unexpected placement %+v", cfg.Shooting)
	}
	if cfg.Shooting.ClampZ != (Range{Min: 0, Max: 100}) {
		t.Errorf("clamp_z should keep default, got %+v", cfg.Shooting.ClampZ)
	}
	if cfg.Shooting.VisibleDuration != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", cfg.Shooting.VisibleDuration)
	}
	if !cfg.Shooting.NearestHit || cfg.Shooting.Seed != 1234 {
		t.Errorf("unexpected shooting flags %+v", cfg.Shooting)
	}

	if cfg.Logging.Level != "debug" || cfg.Logging.LogFile != "range.log" {
		t.Errorf("unexpected logging %+v", cfg.Logging)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
graphics:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"zero width", func(c *Config) { c.Graphics.Width = 0 }, "graphics"},
		{"inverted walk", func(c *Config) { c.Camera.WalkX = Range{Min: 10, Max: 0} }, "walk"},
		{"negative speed", func(c *Config) { c.Camera.MovementSpeed = -1 }, "movement speed"},
		{"inverted x", func(c *Config) { c.Shooting.X = Range{Min: 65, Max: 35} }, "x range"},
		{"negative jitter", func(c *Config) { c.Shooting.JitterZ = -2 }, "jitter"},
		{"zero scale", func(c *Config) { c.Shooting.TargetScale = 0 }, "scale"},
		{"zero flash", func(c *Config) { c.Shooting.VisibleDuration = 0 }, "visible_duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateWrapsBoundsError(t *testing.T) {
	cfg := Default()
	cfg.Shooting.Y = Range{Min: 8, Max: 2}
	if err := cfg.Validate(); !errors.Is(err, shooting.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	os.Chdir(tmpDir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("graphics:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find config.yaml in current directory")
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*testing.T, *Config)
		teardown func()
	}{
		{
			name:  "debug flag",
			setup: func() { *flagDebug = true },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() { *flagDebug = false },
		},
		{
			name:  "fullscreen flag",
			setup: func() { *flagFullscreen = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Graphics.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() { *flagFullscreen = false },
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Graphics.Width != 2560 || cfg.Graphics.Height != 1440 {
					t.Errorf("expected 2560x1440, got %dx%d", cfg.Graphics.Width, cfg.Graphics.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name:  "seed flag",
			setup: func() { *flagSeed = 77 },
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Shooting.Seed != 77 {
					t.Errorf("expected seed 77, got %d", cfg.Shooting.Seed)
				}
			},
			teardown: func() { *flagSeed = 0 },
		},
		{
			name: "hit mode flags",
			setup: func() {
				*flagNearestHit = true
				*flagEdgeTriggered = true
			},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Shooting.NearestHit || !cfg.Shooting.EdgeTriggered {
					t.Errorf("expected nearest hit and single shot, got %+v", cfg.Shooting)
				}
			},
			teardown: func() {
				*flagNearestHit = false
				*flagEdgeTriggered = false
			},
		},
		{
			name:  "mute flag",
			setup: func() { *flagMute = true },
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Audio.Muted {
					t.Error("expected audio muted")
				}
			},
			teardown: func() { *flagMute = false },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
graphics:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width from the flag, height from the file
	if cfg.Graphics.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Graphics.Width)
	}
	if cfg.Graphics.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Graphics.Height)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("shooting:\n  y: {min: 9, max: 1}\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	*flagConfig = configPath
	defer func() { *flagConfig = "" }()

	if _, err := Load(); !errors.Is(err, shooting.ErrInvalidBounds) {
		t.Errorf("expected ErrInvalidBounds, got %v", err)
	}
}

func TestSaveWritesToConfigDir(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("config dir comes from XDG_CONFIG_HOME on Linux only")
	}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	*flagSaveConfig = true
	defer func() { *flagSaveConfig = false }()
	if !SaveRequested() {
		t.Fatal("SaveRequested() = false with --save-config set")
	}

	cfg := Default()
	cfg.Shooting.Seed = 42
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, filepath.Join(ConfigDir(), "config.yaml")); err != nil {
		t.Fatalf("reading saved config: %v", err)
	}
	if loaded.Shooting.Seed != 42 {
		t.Errorf("saved seed = %d, want 42", loaded.Shooting.Seed)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Shooting.Seed = 5
	cfg.Shooting.VisibleDuration = 150 * time.Millisecond
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo failed: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("failed to reload saved config: %v", err)
	}
	if loaded.Shooting.Seed != 5 || loaded.Shooting.VisibleDuration != 150*time.Millisecond {
		t.Errorf("saved values not reloaded: %+v", loaded.Shooting)
	}
}
