package config

import "sync"

// RuntimeSettings holds values the host may change while a scene runs.
type RuntimeSettings struct {
	mu          sync.RWMutex
	fpsLimit    int
	rainEnabled bool
}

var globalRuntime = &RuntimeSettings{
	fpsLimit:    60,
	rainEnabled: true,
}

// GetFPSLimit returns the frame cap; 0 means uncapped.
func GetFPSLimit() int {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.fpsLimit
}

// SetFPSLimit sets the frame cap, clamped to [0, 240].
func SetFPSLimit(limit int) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()

	if limit < 0 {
		limit = 0
	}
	if limit > 240 {
		limit = 240
	}
	globalRuntime.fpsLimit = limit
}

// GetRainEnabled reports the last rain toggle requested by the host UI.
func GetRainEnabled() bool {
	globalRuntime.mu.RLock()
	defer globalRuntime.mu.RUnlock()
	return globalRuntime.rainEnabled
}

// SetRainEnabled records a rain toggle request.
func SetRainEnabled(enabled bool) {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.rainEnabled = enabled
}

// ToggleRain flips the rain request and returns the new value.
func ToggleRain() bool {
	globalRuntime.mu.Lock()
	defer globalRuntime.mu.Unlock()
	globalRuntime.rainEnabled = !globalRuntime.rainEnabled
	return globalRuntime.rainEnabled
}

// ApplyRuntime seeds the runtime registry from loaded settings.
func ApplyRuntime(s Settings) {
	SetFPSLimit(s.Host.FPSLimit)
	SetRainEnabled(s.Rain.Enabled)
}
