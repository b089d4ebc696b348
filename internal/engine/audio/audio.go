// Package audio plays the shot sound effect.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/shooting-range/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager mixes shot sounds onto the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	// Volume settings (0.0 to 1.0)
	masterVolume float64
	sfxVolLevel  float64
	muted        bool

	shot *beep.Buffer

	// Mixer for overlapping shots
	sfxMixer *beep.Mixer
	log      *zap.Logger
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		sfxMixer:     &beep.Mixer{},
		sampleRate:   DefaultSampleRate,
		log:          logger.Named("audio"),
	}
}

// Init initializes the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30))
	if err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.sfxMixer)

	m.initialized = true
	m.log.Info("speaker initialized", zap.Int("sample_rate", int(m.sampleRate)))
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	m.initialized = false
}

// IsInitialized returns whether the speaker is running.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the effects volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// SetMuted silences all playback.
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.muted = muted
}

// MasterVolume returns the master volume.
func (m *Manager) MasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// SFXVolume returns the effects volume.
func (m *Manager) SFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// Muted reports whether playback is silenced.
func (m *Manager) Muted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.muted
}

// LoadShotFile reads the shot sound from a WAV file.
func (m *Manager) LoadShotFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read shot sound: %w", err)
	}
	if err := m.LoadShot(data); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	m.log.Debug("shot sound loaded", zap.String("path", path))
	return nil
}

// LoadShot decodes WAV data into memory so it can be replayed.
func (m *Manager) LoadShot(data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	m.mu.Lock()
	defer m.mu.Unlock()

	buf := beep.NewBuffer(beep.Format{SampleRate: m.sampleRate, NumChannels: 2, Precision: 2})
	if format.SampleRate != m.sampleRate {
		buf.Append(beep.Resample(4, format.SampleRate, m.sampleRate, streamer))
	} else {
		buf.Append(streamer)
	}
	m.shot = buf
	return nil
}

// HasShot reports whether a shot sound is loaded.
func (m *Manager) HasShot() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shot != nil
}

// PlayShot plays the shot sound once. It is a no-op while muted, even
// before Init, and without a loaded sound.
func (m *Manager) PlayShot() error {
	m.mu.RLock()
	initialized := m.initialized
	shot := m.shot
	vol := m.masterVolume * m.sfxVolLevel
	muted := m.muted
	m.mu.RUnlock()

	if muted {
		return nil
	}
	if !initialized {
		return ErrNotInitialized
	}
	if shot == nil || vol <= 0 {
		return nil
	}

	speaker.Lock()
	m.sfxMixer.Add(&effects.Volume{
		Streamer: shot.Streamer(0, shot.Len()),
		Base:     10,
		Volume:   volumeToDb(vol) / 20,
	})
	speaker.Unlock()
	return nil
}

// volumeToDb converts a 0-1 volume to decibels.
func volumeToDb(vol float64) float64 {
	if vol <= 0 {
		return -100
	}
	return 20 * math.Log10(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
