// Package preview renders a frame to a still image without a GPU.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"mini-weather/internal/game"
	"mini-weather/internal/graphics"
	"mini-weather/internal/profiling"
	"mini-weather/internal/world"

	"github.com/go-gl/mathgl/mgl32"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls the output image.
type Options struct {
	Size int
	// Supersample renders at Size*Supersample and scales down.
	Supersample int
	HUD         bool
}

func DefaultOptions() Options {
	return Options{Size: 800, Supersample: 2, HUD: true}
}

// margin is the sky border around the ground, as a share of its size.
const margin = 0.05

// Render draws w and f top-down, framed on the whole ground.
func Render(w *world.World, f game.Frame, opt Options) *image.RGBA {
	defer profiling.Track("preview.Render")()

	if opt.Size <= 0 {
		opt.Size = DefaultOptions().Size
	}
	if opt.Supersample <= 0 {
		opt.Supersample = 1
	}

	big := opt.Size * opt.Supersample
	span := float32(w.GroundSize * (1 + 2*margin))
	c := &canvas{
		img:   image.NewRGBA(image.Rect(0, 0, big, big)),
		minX:  -span / 2,
		maxY:  span / 2,
		scale: float32(big) / span,
	}
	sky := f.Environment.SkyColor
	c.fill(toRGBA(sky))

	var b graphics.Batch
	b.Build(w, f)
	eachTriangle(b.Triangles, c.triangle)
	eachVertex(b.Points, func(p mgl32.Vec2, col mgl32.Vec4) {
		c.dot(p, opt.Supersample, col)
	})

	out := c.img
	if opt.Supersample > 1 {
		out = image.NewRGBA(image.Rect(0, 0, opt.Size, opt.Size))
		xdraw.ApproxBiLinear.Scale(out, out.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
	}
	if opt.HUD {
		drawHUD(out, f)
	}
	return out
}

// WritePNG encodes img.
func WritePNG(dst io.Writer, img image.Image) error {
	if err := png.Encode(dst, img); err != nil {
		return fmt.Errorf("encoding preview: %w", err)
	}
	return nil
}

// HUDLines is the text overlay for a frame.
func HUDLines(f game.Frame) []string {
	env := f.Environment
	phase := "night"
	if env.IsDay {
		phase = "day"
	}
	rain := "off"
	if f.RainEnabled {
		rain = "on"
	}
	return []string{
		fmt.Sprintf("t=%.1fs %s light=%.2f", env.Time, phase, env.Light()),
		fmt.Sprintf("rain %s blend=%.2f", rain, env.RainBlend),
		fmt.Sprintf("drops=%d splashes=%d ejecta=%d ripples=%d",
			f.Counts.Drops, f.Counts.Splashes, f.Counts.Ejecta, f.Counts.Ripples),
	}
}

func drawHUD(img *image.RGBA, f game.Frame) {
	face := basicfont.Face7x13
	lineH := face.Metrics().Height.Ceil()
	lines := HUDLines(f)

	shadow := image.Rect(0, 0, img.Bounds().Dx(), lineH*len(lines)+8)
	xdraw.Draw(img, shadow, image.NewUniform(color.RGBA{0, 0, 0, 140}), image.Point{}, xdraw.Over)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.White),
		Face: face,
	}
	for i, line := range lines {
		d.Dot = fixed.P(6, 4+lineH*(i+1)-face.Descent)
		d.DrawString(line)
	}
}

func eachVertex(verts []float32, fn func(mgl32.Vec2, mgl32.Vec4)) {
	n := graphics.FloatsPerVertex
	for i := 0; i+n <= len(verts); i += n {
		v := verts[i : i+n]
		fn(mgl32.Vec2{v[0], v[1]}, mgl32.Vec4{v[2], v[3], v[4], v[5]})
	}
}

func eachTriangle(verts []float32, fn func([3]mgl32.Vec2, mgl32.Vec4)) {
	n := graphics.FloatsPerVertex
	for i := 0; i+3*n <= len(verts); i += 3 * n {
		t := verts[i : i+3*n]
		fn([3]mgl32.Vec2{
			{t[0], t[1]},
			{t[n], t[n+1]},
			{t[2*n], t[2*n+1]},
		}, mgl32.Vec4{t[2], t[3], t[4], t[5]})
	}
}

func toRGBA(c mgl32.Vec3) color.RGBA {
	return color.RGBA{
		R: uint8(clampUnit(c[0])*255 + 0.5),
		G: uint8(clampUnit(c[1])*255 + 0.5),
		B: uint8(clampUnit(c[2])*255 + 0.5),
		A: 255,
	}
}
