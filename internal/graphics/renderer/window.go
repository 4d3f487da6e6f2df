package renderer

import (
	"fmt"
	"log"
	"time"

	"mini-weather/internal/config"
	"mini-weather/internal/game"
	"mini-weather/internal/graphics"
	"mini-weather/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

const panSpeed = 80.0

// Viewer is the windowed host: it polls input, steps the session on wall
// clock time and draws every frame.
type Viewer struct {
	// OnFrame, when set, sees every frame after it is drawn.
	OnFrame func(game.Frame)

	window   *glfw.Window
	session  *game.Session
	camera   *graphics.Camera
	renderer *Renderer

	fpsLimiter *game.FPSLimiter
	lastTime   time.Time

	frames           int
	lastFPSCheckTime time.Time
}

// SetupWindow creates a core-profile 4.1 window. glfw.Init must have been
// called on the main thread.
func SetupWindow(width, height int, title string) (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(width, height, title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("initializing OpenGL: %w", err)
	}

	// the FPS limiter paces frames instead of v-sync
	glfw.SwapInterval(0)
	return window, nil
}

func NewViewer(window *glfw.Window, session *game.Session) (*Viewer, error) {
	width, height := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(width), int32(height))

	camera := graphics.NewCamera(width, height, float32(session.World.GroundSize))
	r, err := NewRenderer(camera, NewScene())
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		window:           window,
		session:          session,
		camera:           camera,
		renderer:         r,
		fpsLimiter:       game.NewFPSLimiter(),
		lastTime:         time.Now(),
		lastFPSCheckTime: time.Now(),
	}

	window.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		v.camera.Resize(w, h)
	})
	window.SetKeyCallback(v.onKey)
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		if yoff > 0 {
			v.camera.Zoom(0.9)
		} else if yoff < 0 {
			v.camera.Zoom(1.1)
		}
	})
	return v, nil
}

func (v *Viewer) onKey(w *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
	if action != glfw.Press {
		return
	}
	switch key {
	case glfw.KeyEscape:
		w.SetShouldClose(true)
	case glfw.KeyR:
		on := config.ToggleRain()
		v.session.SetRainEnabled(on)
		state := "off"
		if on {
			state = "on"
		}
		log.Printf("Rain %s", state)
	case glfw.KeyT:
		v.session.Clock.SetDay()
	case glfw.KeyN:
		v.session.Clock.SetNight()
	case glfw.KeyEqual:
		config.SetFPSLimit(config.GetFPSLimit() + 10)
	case glfw.KeyMinus:
		config.SetFPSLimit(config.GetFPSLimit() - 10)
	}
}

func (v *Viewer) Run() {
	for !v.window.ShouldClose() {
		v.tick()
	}
}

func (v *Viewer) Dispose() {
	v.renderer.Dispose()
}

func (v *Viewer) tick() {
	now := time.Now()
	dt := now.Sub(v.lastTime).Seconds()
	v.lastTime = now

	glfw.PollEvents()
	v.pan(dt)

	f := game.Step(v.session, dt, v.camera.Position())
	v.renderer.Render(v.session.World, f)
	v.window.SwapBuffers()
	if v.OnFrame != nil {
		v.OnFrame(f)
	}

	v.frames++
	if since := time.Since(v.lastFPSCheckTime); since >= time.Second {
		v.window.SetTitle(fmt.Sprintf("mini-weather | FPS: %d | drops: %d", v.frames, f.Counts.Drops))
		v.frames = 0
		v.lastFPSCheckTime = time.Now()
	}

	iconified := v.window.GetAttrib(glfw.Iconified) == glfw.True
	v.fpsLimiter.Wait(iconified)
}

func (v *Viewer) pan(dt float64) {
	defer profiling.Track("graphics.Viewer.pan")()
	step := float32(panSpeed * dt * float64(v.camera.ViewSize) / 400)
	if v.window.GetKey(glfw.KeyW) == glfw.Press {
		v.camera.Pan(0, -step)
	}
	if v.window.GetKey(glfw.KeyS) == glfw.Press {
		v.camera.Pan(0, step)
	}
	if v.window.GetKey(glfw.KeyA) == glfw.Press {
		v.camera.Pan(-step, 0)
	}
	if v.window.GetKey(glfw.KeyD) == glfw.Press {
		v.camera.Pan(step, 0)
	}
}
