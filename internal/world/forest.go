package world

import (
	"math/rand"

	"mini-weather/internal/placement"

	"github.com/go-gl/mathgl/mgl32"
)

// TreeTones are the foliage colours a tree may pick from.
var TreeTones = []mgl32.Vec3{
	hexColor(0x2E8B57),
	hexColor(0x3CB371),
	hexColor(0x006400),
	hexColor(0x228B22),
}

// TrunkColor is shared by every tree.
var TrunkColor = hexColor(0x8B5A2B)

// TreeTier is one foliage cone, in unscaled tree units.
type TreeTier struct {
	Radius  float32
	Height  float32
	OffsetY float32
}

// Tree is an immutable placed tree with its visual seed.
type Tree struct {
	X, Z  float64
	Tone  int
	Scale float32
	Tiers [3]TreeTier

	BestEffort bool
}

// Color returns the foliage colour picked at creation.
func (t Tree) Color() mgl32.Vec3 {
	return TreeTones[t.Tone]
}

// ForestField owns the trees of a world.
type ForestField struct {
	trees     []Tree
	fallbacks int
}

// GenerateForest places count trees at least minSeparation apart and outside
// every lake. Lakes must be final before this runs.
func GenerateForest(rng *rand.Rand, count int, minSeparation, bounds float64, lakes *LakeField) *ForestField {
	sampler := placement.NewSampler(rng)
	forest := &ForestField{trees: make([]Tree, 0, count)}
	points := make([]placement.Footprint, 0, count)

	for range count {
		x, z, ok := sampler.Place(points, 0, minSeparation, bounds, lakes.IsInside)
		if !ok {
			forest.fallbacks++
		}
		points = append(points, placement.Footprint{X: x, Z: z})
		t := newTree(rng, x, z)
		t.BestEffort = !ok
		forest.trees = append(forest.trees, t)
	}
	return forest
}

func newTree(rng *rand.Rand, x, z float64) Tree {
	t := Tree{X: x, Z: z, Tone: rng.Intn(len(TreeTones))}
	for j := range t.Tiers {
		t.Tiers[j] = TreeTier{
			Radius:  1.3 - float32(j)*0.4 + rng.Float32()*0.1,
			Height:  1.6 + rng.Float32()*0.2,
			OffsetY: 1.8 + float32(j),
		}
	}
	t.Scale = 3 + rng.Float32()*2
	return t
}

// Trees returns the placed trees. The slice must not be modified.
func (f *ForestField) Trees() []Tree {
	if f == nil {
		return nil
	}
	return f.trees
}

// Fallbacks counts trees placed after the attempt budget ran out.
func (f *ForestField) Fallbacks() int {
	if f == nil {
		return 0
	}
	return f.fallbacks
}

func hexColor(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}
