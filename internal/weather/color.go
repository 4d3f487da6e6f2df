package weather

import "github.com/go-gl/mathgl/mgl32"

func hexColor(c uint32) mgl32.Vec3 {
	return mgl32.Vec3{
		float32((c>>16)&0xFF) / 255,
		float32((c>>8)&0xFF) / 255,
		float32(c&0xFF) / 255,
	}
}

// lerpColor moves a toward b by t, component-wise.
func lerpColor(a, b mgl32.Vec3, t float64) mgl32.Vec3 {
	return a.Add(b.Sub(a).Mul(float32(t)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
