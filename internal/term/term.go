// Package term is a tcell frontend: each cell is two terminal columns painted
// with its colour attribute, with the status panel to the right.
package term

import (
	"context"
	"time"

	"conway/internal/app"
	"conway/internal/controller"
	icore "conway/internal/core"
	"conway/internal/ui"
	"conway/pkg/core"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
)

const (
	minGridSize = 1
	maxGridSize = 256
	pollEvery   = 5 * time.Millisecond
)

// App drives a controller from terminal input.
type App struct {
	screen tcell.Screen
	ctrl   *controller.Controller
	next   core.Config
	clock  *icore.FixedStep
	log    *log.Logger

	paused      bool
	showChanges bool
	changed     []core.Coordinate
	dirty       bool
}

// New wires an App to an initialised screen.
func New(screen tcell.Screen, ctrl *controller.Controller, cfg core.Config, tps int, logger *log.Logger) *App {
	a := &App{
		screen: screen,
		ctrl:   ctrl,
		next:   cfg,
		clock:  icore.NewFixedStep(tps),
		log:    logger,
		dirty:  true,
	}
	ctrl.OnUpdate(func(_ uint64, updates []core.CellUpdate) {
		a.changed = a.changed[:0]
		for _, u := range updates {
			a.changed = append(a.changed, u.Pos)
		}
		a.dirty = true
	})
	return a
}

// Next returns the configuration the next start will use.
func (a *App) Next() core.Config { return a.next }

// HandleKey applies one key press and reports whether the app should quit.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	running := a.ctrl.State() == controller.Active
	a.dirty = true

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyEnter:
		a.start()
		return false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.ctrl.Stop()
		return false
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q':
		return true
	case 's':
		a.start()
	case 'x':
		a.ctrl.Stop()
	case 'r':
		a.next.Seed = core.RandomSeed()
		a.start()
	case ' ':
		if running {
			a.paused = !a.paused
		}
	case 'd':
		a.showChanges = !a.showChanges
	case 'm':
		if !running {
			a.next.Mode = app.ToggleMode(a.next.Mode)
		}
	case '+', '=':
		if !running {
			a.next.GridSize = app.NextSize(a.next.GridSize, 4, minGridSize, maxGridSize)
		}
	case '-':
		if !running {
			a.next.GridSize = app.NextSize(a.next.GridSize, -4, minGridSize, maxGridSize)
		}
	}
	return false
}

func (a *App) start() {
	if err := a.ctrl.Start(a.next); err != nil {
		a.log.Warn("start failed", "err", err)
		return
	}
	a.paused = false
	a.changed = a.changed[:0]
	a.clock.Reset()
}

// Step runs a generation when the clock says one is due.
func (a *App) Step() error {
	if a.paused || a.ctrl.State() != controller.Active {
		return nil
	}
	if !a.clock.ShouldStep() {
		return nil
	}
	_, err := a.ctrl.Tick()
	return err
}

// Draw repaints the screen if anything changed since the last call.
func (a *App) Draw() {
	if !a.dirty {
		return
	}
	a.dirty = false
	a.screen.Clear()

	frame := a.ctrl.Frame()
	w, h := a.screen.Size()
	for i, c := range frame.Colors {
		x, y := 2*(i%frame.Size), i/frame.Size
		if x+1 >= w || y >= h {
			continue
		}
		style := tcell.StyleDefault.Background(cellColor(c))
		a.screen.SetContent(x, y, ' ', nil, style)
		a.screen.SetContent(x+1, y, ' ', nil, style)
	}
	if a.showChanges {
		mark := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		for _, pos := range a.changed {
			x, y := 2*pos.X, pos.Y
			if pos.X >= frame.Size || x >= w || y >= h {
				continue
			}
			i := pos.Y*frame.Size + pos.X
			a.screen.SetContent(x, y, '·', nil, mark.Background(cellColor(frame.Colors[i])))
		}
	}

	panelX := 2*frame.Size + 2
	lines := ui.StatusLines(a.ctrl.Parameters(), a.ctrl.State(), a.next, a.paused)
	for row, line := range lines {
		if row >= h {
			break
		}
		drawText(a.screen, panelX, row, line)
	}
	a.screen.Show()
}

// Run processes input and ticks until ctx ends or the user quits.
func (a *App) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 16)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	ticker := time.NewTicker(pollEvery)
	defer ticker.Stop()
	a.Draw()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if a.HandleKey(ev) {
					return nil
				}
			case *tcell.EventResize:
				a.screen.Sync()
				a.dirty = true
			}
			a.Draw()
		case <-ticker.C:
			if err := a.Step(); err != nil {
				return err
			}
			a.Draw()
		}
	}
}

func drawText(s tcell.Screen, x, y int, text string) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, tcell.StyleDefault)
		x++
	}
}

// cellColor converts a cell colour to a terminal colour, flattening alpha
// onto black.
func cellColor(c core.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}
