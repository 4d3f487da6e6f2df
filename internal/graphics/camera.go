package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	minViewSize = 20.0
	maxViewSize = 1200.0
	// eyeHeight is where the viewer hovers for sun and moon placement.
	eyeHeight = 120.0
)

// Camera is a top-down orthographic view of the X/Z ground plane.
// Screen up is world -Z.
type Camera struct {
	AspectRatio float32
	// Center is the world X/Z point under the middle of the screen.
	Center mgl32.Vec2
	// ViewSize is how many world units fit vertically.
	ViewSize float32
}

func NewCamera(width, height int, viewSize float32) *Camera {
	c := &Camera{ViewSize: viewSize}
	c.Resize(width, height)
	return c
}

// Resize keeps the aspect ratio in step with the framebuffer.
func (c *Camera) Resize(width, height int) {
	if height <= 0 {
		height = 1
	}
	c.AspectRatio = float32(width) / float32(height)
}

// Pan moves the view by world units.
func (c *Camera) Pan(dx, dz float32) {
	c.Center = c.Center.Add(mgl32.Vec2{dx, dz})
}

// Zoom scales the visible area; factor < 1 zooms in.
func (c *Camera) Zoom(factor float32) {
	c.ViewSize = mgl32.Clamp(c.ViewSize*factor, minViewSize, maxViewSize)
}

// GetProjectionMatrix maps batch coordinates (x, -z) to clip space.
func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	halfH := c.ViewSize / 2
	halfW := halfH * c.AspectRatio
	return mgl32.Ortho2D(
		c.Center.X()-halfW, c.Center.X()+halfW,
		-c.Center.Y()-halfH, -c.Center.Y()+halfH,
	)
}

// Position is the eye point handed to the clock each frame.
func (c *Camera) Position() mgl64.Vec3 {
	return mgl64.Vec3{float64(c.Center.X()), eyeHeight, float64(c.Center.Y())}
}
