package renderer

import (
	"math"

	"mini-weather/internal/graphics"
	"mini-weather/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const pointSize = 3

// fogToView turns fog density into a flat tint for the top-down view.
// Perspective fog has no distance to work with here.
const fogToView = 20.0

// Scene uploads a graphics.Batch each frame and draws it with one program.
type Scene struct {
	shader *Shader
	vao    uint32
	vbo    uint32
	batch  graphics.Batch
}

func NewScene() *Scene {
	return &Scene{}
}

// Init needs a current GL context.
func (r *Scene) Init() error {
	var err error
	r.shader, err = NewShader(sceneVertexShader, sceneFragmentShader)
	if err != nil {
		return err
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)

	stride := int32(graphics.FloatsPerVertex * 4)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 2, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 4, gl.FLOAT, false, stride, 2*4)
	return nil
}

// Render draws the world and rain lit by the frame's environment.
func (r *Scene) Render(ctx RenderContext) {
	defer profiling.Track("renderer.Scene.Render")()

	env := ctx.Frame.Environment
	r.batch.Build(ctx.World, ctx.Frame)

	r.shader.Use()
	r.shader.SetMatrix4("projection", &ctx.Proj[0])
	r.shader.SetFloat("pointSize", pointSize)
	fog := env.Fog.Color
	r.shader.SetVector3("fogColor", fog[0], fog[1], fog[2])
	r.shader.SetFloat("fogAmount", float32(math.Min(0.5, env.Fog.Density*fogToView)))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	r.draw(gl.TRIANGLES, r.batch.Triangles)
	r.draw(gl.POINTS, r.batch.Points)
}

func (r *Scene) draw(mode uint32, verts []float32) {
	if len(verts) == 0 {
		return
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STREAM_DRAW)
	gl.DrawArrays(mode, 0, int32(len(verts)/graphics.FloatsPerVertex))
}

// Dispose releases GL objects.
func (r *Scene) Dispose() {
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.shader != nil {
		r.shader.Delete()
	}
}
