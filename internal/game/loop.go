package game

import (
	"context"
	"log"
	"time"

	"mini-weather/internal/profiling"

	"github.com/go-gl/mathgl/mgl64"
)

// SlowFrame is the update time above which a frame gets logged.
const SlowFrame = 16 * time.Millisecond

// FixedStep drives a session with a constant dt, as fast as possible or
// paced by a limiter.
type FixedStep struct {
	Dt     float64
	Camera mgl64.Vec3
	// Limiter paces real time; nil runs unthrottled.
	Limiter *FPSLimiter
}

// Run advances s for frames updates (forever when frames <= 0), calling
// onFrame after each one. It stops early on ctx cancellation or when
// onFrame returns an error.
func (fs FixedStep) Run(ctx context.Context, s *Session, frames int, onFrame func(Frame) error) error {
	for i := 0; frames <= 0 || i < frames; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		f := Step(s, fs.Dt, fs.Camera)
		if onFrame != nil {
			if err := onFrame(f); err != nil {
				return err
			}
		}
		if fs.Limiter != nil {
			fs.Limiter.Wait(false)
		}
	}
	return nil
}

// Step runs one profiled update and logs it when slow.
func Step(s *Session, dt float64, camera mgl64.Vec3) Frame {
	profiling.ResetFrame()
	start := time.Now()

	f := s.Update(dt, camera)

	if d := time.Since(start); d > SlowFrame {
		log.Printf("Slow frame %d: %v. Top tasks: %s", f.Index, d, profiling.TopN(5))
	}
	return f
}
