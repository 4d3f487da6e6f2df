package preview

import (
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// canvas maps batch space onto an RGBA image and blends into it.
type canvas struct {
	img *image.RGBA
	// batch-space window shown by the image
	minX, maxY float32
	scale      float32 // pixels per world unit
}

func (c *canvas) toPixel(x, y float32) (float32, float32) {
	return (x - c.minX) * c.scale, (c.maxY - y) * c.scale
}

// blend composites col over the pixel at (x, y) with straight alpha.
func (c *canvas) blend(x, y int, col mgl32.Vec4) {
	if !(image.Point{x, y}.In(c.img.Rect)) {
		return
	}
	a := clampUnit(col[3])
	i := c.img.PixOffset(x, y)
	px := c.img.Pix[i : i+4 : i+4]
	for k := range 3 {
		src := clampUnit(col[k]) * 255
		px[k] = uint8(src*a + float32(px[k])*(1-a) + 0.5)
	}
	px[3] = 255
}

func (c *canvas) fill(col color.RGBA) {
	for i := 0; i < len(c.img.Pix); i += 4 {
		c.img.Pix[i], c.img.Pix[i+1], c.img.Pix[i+2], c.img.Pix[i+3] = col.R, col.G, col.B, 255
	}
}

// triangle fills by testing pixel centres against the three edges.
func (c *canvas) triangle(v [3]mgl32.Vec2, col mgl32.Vec4) {
	var p [3]mgl32.Vec2
	for i := range v {
		x, y := c.toPixel(v[i][0], v[i][1])
		p[i] = mgl32.Vec2{x, y}
	}
	area := edge(p[0], p[1], p[2])
	if area == 0 {
		return
	}

	b := c.img.Rect
	x0 := max(b.Min.X, int(math.Floor(float64(min(p[0][0], p[1][0], p[2][0])))))
	x1 := min(b.Max.X-1, int(math.Ceil(float64(max(p[0][0], p[1][0], p[2][0])))))
	y0 := max(b.Min.Y, int(math.Floor(float64(min(p[0][1], p[1][1], p[2][1])))))
	y1 := min(b.Max.Y-1, int(math.Ceil(float64(max(p[0][1], p[1][1], p[2][1])))))

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			q := mgl32.Vec2{float32(x) + 0.5, float32(y) + 0.5}
			w0 := edge(p[1], p[2], q)
			w1 := edge(p[2], p[0], q)
			w2 := edge(p[0], p[1], q)
			if area > 0 && w0 >= 0 && w1 >= 0 && w2 >= 0 ||
				area < 0 && w0 <= 0 && w1 <= 0 && w2 <= 0 {
				c.blend(x, y, col)
			}
		}
	}
}

// dot draws a size x size square centred on a batch-space point.
func (c *canvas) dot(v mgl32.Vec2, size int, col mgl32.Vec4) {
	x, y := c.toPixel(v[0], v[1])
	cx, cy := int(x)-size/2, int(y)-size/2
	for dy := range size {
		for dx := range size {
			c.blend(cx+dx, cy+dy, col)
		}
	}
}

func edge(a, b, p mgl32.Vec2) float32 {
	return (b[0]-a[0])*(p[1]-a[1]) - (b[1]-a[1])*(p[0]-a[0])
}

func clampUnit(v float32) float32 {
	return mgl32.Clamp(v, 0, 1)
}
