// Package audio plays a rain bed that follows the simulated weather.
package audio

import (
	"math"
	"sync"
	"time"

	"mini-weather/internal/game"
	"mini-weather/internal/weather"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	// MaxGain is the linear gain at full rain.
	MaxGain = 0.35
	// silentGain and below mutes the bed entirely.
	silentGain = 1e-3

	patterPerImpact = 2e-6
	maxPatter       = 2e-3
)

// Ambience owns the rain bed and the speaker it plays on.
type Ambience struct {
	mu          sync.Mutex
	noise       *RainNoise
	volume      *effects.Volume
	ctrl        *beep.Ctrl
	mixer       *beep.Mixer
	gain        float64
	initialized bool
}

func NewAmbience(seed int64) *Ambience {
	noise := NewRainNoise(seed)
	volume := &effects.Volume{Streamer: noise, Base: 2, Silent: true}
	ctrl := &beep.Ctrl{Streamer: volume}
	mixer := &beep.Mixer{}
	mixer.Add(ctrl)
	return &Ambience{noise: noise, volume: volume, ctrl: ctrl, mixer: mixer}
}

// Initialize opens the default output device.
func (a *Ambience) Initialize() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(a.mixer)
	a.initialized = true
	return nil
}

// Streamer is the mixed output, for hosts that own the device themselves.
func (a *Ambience) Streamer() beep.Streamer { return a.mixer }

// Gain returns the linear gain set by the last Update.
func (a *Ambience) Gain() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gain
}

// Update follows the frame: loudness tracks the rain blend so the bed
// fades with the sky, patter tracks the live impact count.
func (a *Ambience) Update(f game.Frame) {
	gain := MaxGain * math.Min(1, f.Environment.RainBlend/weather.RainBlendTarget)
	impacts := float64(f.Counts.Splashes + f.Counts.Ripples)
	patter := math.Min(maxPatter, impacts*patterPerImpact)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.gain = gain

	if a.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	a.noise.Patter = patter
	if gain <= silentGain {
		a.volume.Silent = true
		a.volume.Volume = 0
		return
	}
	a.volume.Silent = false
	a.volume.Volume = math.Log2(gain)
}

// Cleanup stops playback and releases the device.
func (a *Ambience) Cleanup() {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.initialized {
		return
	}
	speaker.Lock()
	a.ctrl.Paused = true
	speaker.Unlock()
	speaker.Clear()
	speaker.Close()
	a.initialized = false
}
