package audio

import (
	"math/rand"
)

// RainNoise is low-passed white noise with sparse droplet ticks on top.
// It never ends.
type RainNoise struct {
	rng *rand.Rand
	// Smoothing is the one-pole filter coefficient in (0, 1]; lower is darker.
	Smoothing float64
	// Patter is the chance per sample that a droplet tick starts.
	Patter float64

	lp   float64
	tick float64
}

func NewRainNoise(seed int64) *RainNoise {
	return &RainNoise{
		rng:       rand.New(rand.NewSource(seed)),
		Smoothing: 0.25,
	}
}

func (n *RainNoise) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		white := n.rng.Float64()*2 - 1
		n.lp += (white - n.lp) * n.Smoothing

		if n.Patter > 0 && n.rng.Float64() < n.Patter {
			n.tick = 0.6 + n.rng.Float64()*0.4
		}
		s := n.lp*0.7 + n.tick*white*0.3
		n.tick *= 0.995

		samples[i][0] = s
		samples[i][1] = s
	}
	return len(samples), true
}

func (n *RainNoise) Err() error {
	return nil
}
