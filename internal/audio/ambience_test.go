package audio

import (
	"math"
	"testing"

	"mini-weather/internal/game"
	"mini-weather/internal/weather"
)

func TestRainNoiseRange(t *testing.T) {
	n := NewRainNoise(1)
	n.Patter = 0.01
	samples := make([][2]float64, 4096)
	got, ok := n.Stream(samples)
	if !ok || got != len(samples) {
		t.Fatalf("Stream = %d, %v", got, ok)
	}
	for i, s := range samples {
		if s[0] < -1 || s[0] > 1 || s[0] != s[1] {
			t.Fatalf("sample %d = %v", i, s)
		}
	}
	if n.Err() != nil {
		t.Errorf("unexpected error %v", n.Err())
	}
}

func TestRainNoiseDeterministic(t *testing.T) {
	a, b := NewRainNoise(9), NewRainNoise(9)
	sa, sb := make([][2]float64, 256), make([][2]float64, 256)
	a.Stream(sa)
	b.Stream(sb)
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("sample %d differs for equal seeds", i)
		}
	}
}

func frameWithBlend(blend float64, impacts int) game.Frame {
	f := game.Frame{}
	f.Environment.RainBlend = blend
	f.Counts.Splashes = impacts
	return f
}

func TestAmbienceFollowsRainBlend(t *testing.T) {
	a := NewAmbience(1)

	a.Update(frameWithBlend(0, 0))
	if a.Gain() != 0 || !a.volume.Silent {
		t.Errorf("dry weather should be silent: gain=%v silent=%v", a.Gain(), a.volume.Silent)
	}

	a.Update(frameWithBlend(weather.RainBlendTarget, 300))
	if math.Abs(a.Gain()-MaxGain) > 1e-12 {
		t.Errorf("full rain gain = %v, want %v", a.Gain(), MaxGain)
	}
	if a.volume.Silent || math.Abs(a.volume.Volume-math.Log2(MaxGain)) > 1e-12 {
		t.Errorf("volume = %+v", a.volume)
	}
	if a.noise.Patter <= 0 {
		t.Errorf("impacts should add patter")
	}

	half := frameWithBlend(weather.RainBlendTarget/2, 0)
	a.Update(half)
	if math.Abs(a.Gain()-MaxGain/2) > 1e-12 {
		t.Errorf("half rain gain = %v", a.Gain())
	}
}

func TestAmbienceStreamsWithoutDevice(t *testing.T) {
	a := NewAmbience(2)
	a.Update(frameWithBlend(weather.RainBlendTarget, 0))

	samples := make([][2]float64, 512)
	n, ok := a.Streamer().Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Stream = %d, %v", n, ok)
	}
	peak := 0.0
	for _, s := range samples {
		peak = math.Max(peak, math.Abs(s[0]))
	}
	if peak == 0 || peak > MaxGain {
		t.Errorf("peak %v outside (0, %v]", peak, MaxGain)
	}

	// Cleanup before Initialize is a no-op
	a.Cleanup()
}
