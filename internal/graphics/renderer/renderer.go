package renderer

import (
	"mini-weather/internal/game"
	"mini-weather/internal/graphics"
	"mini-weather/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Renderer orchestrates rendering via renderable features
type Renderer struct {
	renderables []Renderable
	camera      *graphics.Camera
}

// NewRenderer initializes every renderable in order. Needs a current GL
// context.
func NewRenderer(camera *graphics.Camera, rs ...Renderable) (*Renderer, error) {
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	for _, r := range rs {
		if err := r.Init(); err != nil {
			return nil, err
		}
	}
	return &Renderer{renderables: rs, camera: camera}, nil
}

// Render clears to the frame's sky colour and draws every feature.
func (r *Renderer) Render(w *world.World, f game.Frame) {
	sky := f.Environment.SkyColor
	gl.ClearColor(sky[0], sky[1], sky[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	ctx := RenderContext{
		Camera: r.camera,
		World:  w,
		Frame:  f,
		Proj:   r.camera.GetProjectionMatrix(),
	}
	for _, renderable := range r.renderables {
		renderable.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	for i := len(r.renderables) - 1; i >= 0; i-- {
		r.renderables[i].Dispose()
	}
}

func (r *Renderer) GetCamera() *graphics.Camera {
	return r.camera
}
