package tui

import (
	"context"
	"fmt"
	"time"

	"mini-weather/internal/game"

	"github.com/gdamore/tcell/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// Viewer runs a session in the terminal.
type Viewer struct {
	// OnFrame, when set, sees every frame after it is drawn.
	OnFrame func(game.Frame)

	screen  tcell.Screen
	session *game.Session
	width   int
	height  int
	paused  bool
}

// NewViewer takes ownership of an initialised screen.
func NewViewer(screen tcell.Screen, s *game.Session) *Viewer {
	v := &Viewer{screen: screen, session: s}
	v.width, v.height = screen.Size()
	return v
}

// OpenScreen creates and initialises the terminal screen.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("initialising screen: %w", err)
	}
	return screen, nil
}

// Run steps the session every tick until ctx ends or the user quits.
func (v *Viewer) Run(ctx context.Context, tick time.Duration) error {
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case eventChan <- ev:
			case <-quit:
				return
			}
		}
	}()

	dt := tick.Seconds()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-eventChan:
			if !v.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			if v.paused {
				continue
			}
			f := game.Step(v.session, dt, mgl64.Vec3{})
			v.Draw(f)
			if v.OnFrame != nil {
				v.OnFrame(f)
			}
		}
	}
}

// HandleEvent applies a key or resize; false means quit.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() != tcell.KeyRune {
			return true
		}
		switch ev.Rune() {
		case 'q':
			return false
		case 'r':
			v.session.SetRainEnabled(!v.session.RainEnabled())
		case 'd':
			v.session.Clock.SetDay()
		case 'n':
			v.session.Clock.SetNight()
		case ' ':
			v.paused = !v.paused
		}
	case *tcell.EventResize:
		v.width, v.height = v.screen.Size()
		v.screen.Sync()
	}
	return true
}

// Draw paints f with a status bar on the last row.
func (v *Viewer) Draw(f game.Frame) {
	if v.height < 2 || v.width < 1 {
		return
	}
	grid := Compose(v.session.World, f, v.width, v.height-1)
	for y := range grid.Height {
		for x := range grid.Width {
			c := grid.At(x, y)
			style := tcell.StyleDefault.Foreground(rgb(c.Fg)).Background(rgb(c.Bg))
			v.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	v.drawStatus(f)
	v.screen.Show()
}

func (v *Viewer) drawStatus(f game.Frame) {
	env := f.Environment
	sky := tcell.StyleDefault.Background(rgb(env.SkyColor)).Foreground(tcell.ColorWhite)
	phase := "night"
	if env.IsDay {
		phase = "day"
	}
	status := fmt.Sprintf(" %s %4.1fs | rain %.2f | drops %d splashes %d ripples %d | r rain  d/n time  q quit",
		phase, env.Time, env.RainBlend, f.Counts.Drops, f.Counts.Splashes, f.Counts.Ripples)

	y := v.height - 1
	for x := range v.width {
		r := ' '
		if x < len(status) {
			r = rune(status[x])
		}
		v.screen.SetContent(x, y, r, nil, sky)
	}
}

func rgb(c mgl32.Vec3) tcell.Color {
	to := func(f float32) int32 { return int32(mgl32.Clamp(f, 0, 1)*255 + 0.5) }
	return tcell.NewRGBColor(to(c[0]), to(c[1]), to(c[2]))
}
