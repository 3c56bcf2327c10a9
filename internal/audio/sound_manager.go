// Package audio plays the game's procedurally generated sound effects.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/starshot/internal/game"
)

const sampleRate = beep.SampleRate(44100)

var _ game.SoundPlayer = (*SoundManager)(nil)

// SoundManager mixes effects onto the speaker. Every method is safe to call
// before Initialize or after it failed; sounds are then dropped.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	muted       bool
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: 1.0,
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Close silences everything and releases the speaker.
func (sm *SoundManager) Close() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	sm.muted = muted
	sm.mu.Unlock()
}

// SetVolume sets the linear master volume, clamped to [0, 1].
func (sm *SoundManager) SetVolume(volume float64) {
	sm.mu.Lock()
	sm.volume = min(max(volume, 0), 1)
	sm.mu.Unlock()
}

// Play dispatches a queued game sound.
func (sm *SoundManager) Play(s game.Sound) {
	switch s {
	case game.SoundShot:
		sm.PlayShot()
	case game.SoundExplosion:
		sm.PlayExplosion()
	case game.SoundHit:
		sm.PlayHit()
	}
}

func (sm *SoundManager) PlayShot() {
	sm.add(CreateShotSound)
}

func (sm *SoundManager) PlayExplosion() {
	sm.add(CreateExplosionSound)
}

func (sm *SoundManager) PlayHit() {
	sm.add(CreateHitSound)
}

func (sm *SoundManager) add(create func(beep.SampleRate, float64) beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}

	streamer := create(sampleRate, sm.volume)
	speaker.Lock()
	sm.mixer.Add(streamer)
	speaker.Unlock()
}
