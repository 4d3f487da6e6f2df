package world

import (
	"math"
	"math/rand"
	"testing"
)

// TestHash2Deterministic verifies hash2 produces identical results for same inputs
func TestHash2Deterministic(t *testing.T) {
	first := hash2(10, 20, 42)
	for i := 0; i < 100; i++ {
		if h := hash2(10, 20, 42); h != first {
			t.Fatalf("hash2 not deterministic: first=%d, run %d=%d", first, i, h)
		}
	}
}

// TestHash2DifferentInputs verifies hash2 separates axes and seeds
func TestHash2DifferentInputs(t *testing.T) {
	seed := int64(42)
	if hash2(1, 0, seed) == hash2(2, 0, seed) {
		t.Error("hash2 should differ for different X")
	}
	if hash2(0, 1, seed) == hash2(0, 2, seed) {
		t.Error("hash2 should differ for different Z")
	}
	if hash2(1, 1, 100) == hash2(1, 1, 200) {
		t.Error("hash2 should differ for different seed")
	}
}

// TestShoreNoiseRange verifies outputs stay in [0,1]
func TestShoreNoiseRange(t *testing.T) {
	rng := rand.New(rand.NewSource(12345))
	for _, n := range []ShoreNoise{{Seed: 42, Octaves: 1}, NewShoreNoise(42)} {
		for i := 0; i < 1000; i++ {
			x := rng.Float64()*200 - 100
			z := rng.Float64()*200 - 100
			if v := n.At(x, z); v < 0 || v > 1 {
				t.Errorf("ShoreNoise%+v.At(%f, %f) = %f, expected in [0,1]", n, x, z, v)
			}
		}
	}
}

// TestShoreNoiseContinuity verifies smooth interpolation (no random jumps)
func TestShoreNoiseContinuity(t *testing.T) {
	n := NewShoreNoise(42)
	v1 := n.At(1.0, 1.0)
	v2 := n.At(1.01, 1.0)
	if diff := math.Abs(v1 - v2); diff >= 0.1 {
		t.Errorf("noise not continuous: At(1.0,1.0)=%f, At(1.01,1.0)=%f, diff=%f", v1, v2, diff)
	}
}
