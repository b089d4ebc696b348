package config

import "flag"

var (
	flagConfig        = flag.String("config", "", "Path to config file")
	flagDebug         = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed      = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen    = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth         = flag.Int("width", 0, "Window width")
	flagHeight        = flag.Int("height", 0, "Window height")
	flagSeed          = flag.Uint64("seed", 0, "Seed for target placement (0 uses the clock)")
	flagNearestHit    = flag.Bool("nearest-hit", false, "Test every triangle and use the closest hit")
	flagEdgeTriggered = flag.Bool("single-shot", false, "Only hit test on the tick the trigger is pressed")
	flagMute          = flag.Bool("mute", false, "Disable sound")
	flagSaveConfig    = flag.Bool("save-config", false, "Write the effective config to the user config dir")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// SaveRequested reports whether --save-config was given.
func SaveRequested() bool {
	return *flagSaveConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagSeed != 0 {
		cfg.Shooting.Seed = *flagSeed
	}
	if *flagNearestHit {
		cfg.Shooting.NearestHit = true
	}
	if *flagEdgeTriggered {
		cfg.Shooting.EdgeTriggered = true
	}
	if *flagMute {
		cfg.Audio.Muted = true
	}
}
