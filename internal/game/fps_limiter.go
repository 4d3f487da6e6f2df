package game

import (
	"time"

	"mini-weather/internal/config"
)

// idleFPS caps hosts that are paused or minimised.
const idleFPS = 30

// spinWindow is the tail of each frame that is busy-waited instead of slept.
const spinWindow = 200 * time.Microsecond

// FPSLimiter paces a host loop to a target frame rate.
type FPSLimiter struct {
	// Fixed overrides the runtime FPS setting when positive.
	Fixed int

	next time.Time
}

// NewFPSLimiter follows config.GetFPSLimit, so a host can retune it live.
func NewFPSLimiter() *FPSLimiter {
	return &FPSLimiter{}
}

// NewFixedFPSLimiter ignores the runtime setting and holds fps.
func NewFixedFPSLimiter(fps int) *FPSLimiter {
	return &FPSLimiter{Fixed: fps}
}

// Interval is the frame period for the current limit, 0 when uncapped.
func (f *FPSLimiter) Interval(idle bool) time.Duration {
	limit := config.GetFPSLimit()
	if f.Fixed > 0 {
		limit = f.Fixed
	}
	if idle && (limit <= 0 || limit > idleFPS) {
		limit = idleFPS
	}
	if limit <= 0 {
		return 0
	}
	return time.Second / time.Duration(limit)
}

// Wait blocks until the next frame is due. Sleeps most of the gap and spins
// the last few hundred microseconds.
func (f *FPSLimiter) Wait(idle bool) {
	target := f.Interval(idle)
	if target == 0 {
		f.next = time.Time{}
		return
	}

	if f.next.IsZero() {
		f.next = time.Now().Add(target)
	} else {
		f.next = f.next.Add(target)
	}

	for {
		remaining := time.Until(f.next)
		if remaining <= 0 {
			break
		}
		if remaining > spinWindow {
			time.Sleep(remaining - spinWindow)
		}
	}

	// resync after a hitch instead of racing to catch up
	if late := -time.Until(f.next); late > target {
		f.next = time.Now().Add(target)
	}
}
