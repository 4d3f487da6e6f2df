package preview

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"mini-weather/internal/config"
	"mini-weather/internal/game"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

func TestTriangleCoverage(t *testing.T) {
	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, 10, 10)), minX: 0, maxY: 10, scale: 1}
	c.fill(color.RGBA{0, 0, 0, 255})

	// lower-left half of the image in batch space (y up)
	c.triangle([3]mgl32.Vec2{{0, 0}, {10, 0}, {0, 10}}, mgl32.Vec4{1, 0, 0, 1})

	if got := c.img.RGBAAt(1, 8); got.R != 255 {
		t.Errorf("pixel inside triangle = %v", got)
	}
	if got := c.img.RGBAAt(8, 1); got.R != 0 {
		t.Errorf("pixel outside triangle = %v", got)
	}

	// winding must not matter
	c.fill(color.RGBA{0, 0, 0, 255})
	c.triangle([3]mgl32.Vec2{{0, 0}, {0, 10}, {10, 0}}, mgl32.Vec4{0, 1, 0, 1})
	if got := c.img.RGBAAt(1, 8); got.G != 255 {
		t.Errorf("clockwise triangle not filled: %v", got)
	}
}

func TestBlendAlpha(t *testing.T) {
	c := &canvas{img: image.NewRGBA(image.Rect(0, 0, 1, 1)), scale: 1}
	c.fill(color.RGBA{0, 0, 0, 255})
	c.blend(0, 0, mgl32.Vec4{1, 1, 1, 0.5})
	if got := c.img.RGBAAt(0, 0); got.R < 126 || got.R > 129 {
		t.Errorf("half white over black = %v", got)
	}
	// out of bounds is ignored
	c.blend(5, 5, mgl32.Vec4{1, 1, 1, 1})
}

func TestRenderFrame(t *testing.T) {
	s := config.Default()
	s.World.NumLakes = 4
	s.World.NumTrees = 30
	s.Cycle.Start = "day"
	sess, err := game.NewSession(s)
	if err != nil {
		t.Fatal(err)
	}
	var f game.Frame
	for range 150 {
		f = sess.Update(1.0/60, mgl64.Vec3{})
	}

	img := Render(sess.World, f, Options{Size: 200, Supersample: 2, HUD: true})
	if img.Bounds().Dx() != 200 || img.Bounds().Dy() != 200 {
		t.Fatalf("image size = %v", img.Bounds())
	}

	// the corner is sky border, the centre is ground or water
	corner := img.RGBAAt(199, 199)
	want := toRGBA(f.Environment.SkyColor)
	if diff(corner.R, want.R) > 2 || diff(corner.B, want.B) > 2 {
		t.Errorf("corner = %v, want sky %v", corner, want)
	}
	if centre := img.RGBAAt(100, 150); centre == corner {
		t.Errorf("ground not drawn")
	}

	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}
	if _, err := png.Decode(&buf); err != nil {
		t.Errorf("output is not a PNG: %v", err)
	}
}

func TestHUDLines(t *testing.T) {
	f := game.Frame{RainEnabled: true}
	f.Environment.IsDay = true
	f.Counts.Drops = 42
	lines := HUDLines(f)
	joined := strings.Join(lines, "\n")
	for _, want := range []string{"day", "rain on", "drops=42"} {
		if !strings.Contains(joined, want) {
			t.Errorf("HUD %q missing %q", joined, want)
		}
	}
}

func diff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
