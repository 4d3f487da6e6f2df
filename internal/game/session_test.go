package game

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"mini-weather/internal/config"
	"mini-weather/internal/weather"

	"github.com/go-gl/mathgl/mgl64"
)

func smallSettings() config.Settings {
	s := config.Default()
	s.Seed = 7
	s.World.NumLakes = 6
	s.World.NumTrees = 60
	return s
}

func newTestSession(t *testing.T, s config.Settings) *Session {
	t.Helper()
	sess, err := NewSession(s)
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	return sess
}

func TestNewSessionRejectsBadSettings(t *testing.T) {
	s := smallSettings()
	s.World.LakeMinSize = 40
	if _, err := NewSession(s); !errors.Is(err, config.ErrInvalid) {
		t.Fatalf("NewSession(min > max) = %v, want ErrInvalid", err)
	}
}

func TestSessionStartPhase(t *testing.T) {
	s := smallSettings()
	s.Cycle.Start = "night"
	sess := newTestSession(t, s)
	if !sess.Clock.IsNight() {
		t.Errorf("session configured for night starts at sun angle %v", sess.Clock.SunAngle())
	}

	s.Cycle.Start = "day"
	sess = newTestSession(t, s)
	if !sess.Clock.IsDay() {
		t.Errorf("session configured for day starts at sun angle %v", sess.Clock.SunAngle())
	}
}

func TestRainProducesDropsAndImpacts(t *testing.T) {
	sess := newTestSession(t, smallSettings())

	var f Frame
	for range 240 {
		f = sess.Update(1.0/60, mgl64.Vec3{})
	}
	if f.Index != 240 || sess.Frames() != 240 {
		t.Errorf("frame index = %d, frames = %d, want 240", f.Index, sess.Frames())
	}
	if f.Counts.Drops == 0 {
		t.Fatalf("no drops after 4s of rain")
	}
	if f.Counts.Splashes+f.Counts.Ripples == 0 {
		t.Errorf("no impacts after 4s of rain: %+v", f.Counts)
	}
	if len(f.Drops) != f.Counts.Drops {
		t.Errorf("frame carries %d drops, counts say %d", len(f.Drops), f.Counts.Drops)
	}
	if f.Environment.RainBlend <= 0 {
		t.Errorf("rain blend should rise while raining, got %v", f.Environment.RainBlend)
	}
	if f.Counts.Splashes > sess.Settings.Rain.MaxSplashes {
		t.Errorf("%d splashes exceed cap %d", f.Counts.Splashes, sess.Settings.Rain.MaxSplashes)
	}
}

func TestDisablingRainClearsEverything(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	for range 180 {
		sess.Update(1.0/60, mgl64.Vec3{})
	}

	sess.SetRainEnabled(false)
	if sess.RainEnabled() {
		t.Fatalf("rain still enabled")
	}
	f := sess.Update(1.0/60, mgl64.Vec3{})
	if f.Counts != (weather.RainCounts{}) {
		t.Errorf("rain state survived disable: %+v", f.Counts)
	}
	if len(f.Drops) != 0 || len(f.Particles) != 0 {
		t.Errorf("frame still carries bodies after disable")
	}

	before := f.Environment.RainBlend
	for range 60 {
		f = sess.Update(1.0/60, mgl64.Vec3{})
	}
	if f.Environment.RainBlend >= before {
		t.Errorf("rain blend should decay after disable: %v -> %v", before, f.Environment.RainBlend)
	}
	if f.Counts.Drops != 0 {
		t.Errorf("drops spawned while rain is off: %d", f.Counts.Drops)
	}
}

func TestRainToggleHidesSky(t *testing.T) {
	s := smallSettings()
	s.Cycle.Start = "night"
	s.Rain.Enabled = false
	sess := newTestSession(t, s)

	f := sess.Update(0.001, mgl64.Vec3{})
	if !f.Environment.Stars.Visible {
		t.Fatalf("stars should be visible on a dry night")
	}

	sess.SetRainEnabled(true)
	f = sess.Update(0.001, mgl64.Vec3{})
	if f.Environment.Stars.Visible || f.Environment.Stars.Opacity != 0 {
		t.Errorf("stars visible while raining: %+v", f.Environment.Stars)
	}
	if f.Environment.SunMoon.MoonVisible {
		t.Errorf("moon visible while raining")
	}
}

func TestIncludeBodiesOff(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	sess.IncludeBodies = false
	var f Frame
	for range 130 {
		f = sess.Update(1.0/60, mgl64.Vec3{})
	}
	if f.Counts.Drops == 0 {
		t.Fatalf("expected drops")
	}
	if f.Drops != nil || f.Particles != nil {
		t.Errorf("bodies copied with IncludeBodies off")
	}
}

func TestFrameJSON(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	var f Frame
	for range 130 {
		f = sess.Update(1.0/60, mgl64.Vec3{})
	}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal frame: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("frame is not valid JSON: %v", err)
	}
	for _, key := range []string{"frame", "environment", "counts", "drops"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("frame JSON missing %q", key)
		}
	}
	env := decoded["environment"].(map[string]any)
	if _, ok := env["skyColor"]; !ok {
		t.Errorf("environment JSON missing skyColor")
	}
}

func TestSummarize(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	sum := Summarize(sess.World, true)

	if len(sum.Lakes) != 6 || len(sum.Trees) != 60 {
		t.Fatalf("summary has %d lakes, %d trees", len(sum.Lakes), len(sum.Trees))
	}
	if sum.Seed != 7 || sum.GroundSize != 400 {
		t.Errorf("summary header = seed %d ground %v", sum.Seed, sum.GroundSize)
	}
	for i, l := range sum.Lakes {
		if len(l.Outline) != 64 {
			t.Errorf("lake %d outline has %d points", i, len(l.Outline))
		}
	}
	for i, tr := range sum.Trees {
		if tr.Color == ([3]float32{}) {
			t.Errorf("tree %d has no colour", i)
		}
	}

	bare := Summarize(sess.World, false)
	if bare.Lakes[0].Outline != nil {
		t.Errorf("outline included without asking")
	}
}

func TestSameSeedSameWorld(t *testing.T) {
	a := Summarize(newTestSession(t, smallSettings()).World, false)
	b := Summarize(newTestSession(t, smallSettings()).World, false)
	for i := range a.Trees {
		if a.Trees[i] != b.Trees[i] {
			t.Fatalf("tree %d differs between identical seeds", i)
		}
	}
}

func TestFixedStepRun(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	sess.IncludeBodies = false

	seen := 0
	err := FixedStep{Dt: 0.5}.Run(context.Background(), sess, 120, func(f Frame) error {
		seen++
		if f.Index != seen {
			t.Errorf("frame %d delivered as index %d", seen, f.Index)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if seen != 120 {
		t.Errorf("saw %d frames, want 120", seen)
	}
	// 120 * 0.5s = one full cycle of 60s
	if phase := sess.Clock.Phase(); math.Abs(phase) > 1e-9 && math.Abs(phase-1) > 1e-9 {
		t.Errorf("phase after one cycle = %v", phase)
	}
}

func TestFixedStepStops(t *testing.T) {
	sess := newTestSession(t, smallSettings())
	sess.IncludeBodies = false

	stop := errors.New("stop")
	n := 0
	err := FixedStep{Dt: 1.0 / 60}.Run(context.Background(), sess, 0, func(Frame) error {
		n++
		if n == 10 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) || n != 10 {
		t.Errorf("Run = %v after %d frames, want stop after 10", err, n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := (FixedStep{Dt: 1.0 / 60}).Run(ctx, sess, 0, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("Run on cancelled ctx = %v", err)
	}
}

func TestFPSLimiterInterval(t *testing.T) {
	old := config.GetFPSLimit()
	defer config.SetFPSLimit(old)

	config.SetFPSLimit(50)
	l := NewFPSLimiter()
	if got := l.Interval(false); got != 20*time.Millisecond {
		t.Errorf("interval at 50fps = %v", got)
	}
	if got := l.Interval(true); got != time.Second/idleFPS {
		t.Errorf("idle interval = %v", got)
	}

	config.SetFPSLimit(0)
	if got := l.Interval(false); got != 0 {
		t.Errorf("uncapped interval = %v", got)
	}

	fixed := NewFixedFPSLimiter(100)
	if got := fixed.Interval(false); got != 10*time.Millisecond {
		t.Errorf("fixed interval = %v", got)
	}
}

func TestFPSLimiterWaits(t *testing.T) {
	l := NewFixedFPSLimiter(100)
	start := time.Now()
	for range 5 {
		l.Wait(false)
	}
	if elapsed := time.Since(start); elapsed < 40*time.Millisecond {
		t.Errorf("5 frames at 100fps took only %v", elapsed)
	}
}
