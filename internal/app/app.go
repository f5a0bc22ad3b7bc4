//go:build ebiten

package app

import (
	"image/color"

	"conway/internal/controller"
	"conway/internal/render"
	"conway/internal/ui"
	"conway/pkg/core"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	// ViewSize is the edge of the square grid viewport in pixels.
	ViewSize = 720
	// PanelWidth is the width of the HUD to the right of the viewport.
	PanelWidth = 260

	minGridSize = 1
	maxGridSize = 720
)

var background = color.RGBA{R: 24, G: 24, B: 28, A: 255}

// Game adapts the simulation controller to the ebiten.Game interface.
type Game struct {
	ctrl    *controller.Controller
	next    core.Config
	log     *log.Logger
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	paused bool
}

// New constructs a Game that starts runs from cfg. The controller's listener
// feeds changed cells straight into the painter.
func New(ctrl *controller.Controller, cfg core.Config, logger *log.Logger) *Game {
	g := &Game{
		ctrl:    ctrl,
		next:    cfg,
		log:     logger,
		hud:     ui.NewHUD(ctrl, PanelWidth),
		overlay: ui.NewOverlay(),
	}
	ctrl.OnUpdate(func(_ uint64, updates []core.CellUpdate) {
		if g.painter != nil {
			g.painter.Apply(updates)
		}
		g.overlay.Record(updates)
	})
	return g
}

// Start begins a run with the pending configuration.
func (g *Game) Start() error {
	if err := g.ctrl.Start(g.next); err != nil {
		return err
	}
	frame := g.ctrl.Frame()
	g.painter = render.NewGridPainter(frame.Size)
	g.painter.Load(frame.Colors)
	g.overlay.Reset()
	g.paused = false
	return nil
}

// Stop ends the current run.
func (g *Game) Stop() {
	g.ctrl.Stop()
	g.painter = nil
	g.overlay.Reset()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	running := g.ctrl.State() == controller.Active

	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if err := g.Start(); err != nil {
			g.log.Warn("start failed", "err", err)
		}
	}
	if running && inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.Stop()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.next.Seed = core.RandomSeed()
		if err := g.Start(); err != nil {
			g.log.Warn("restart failed", "err", err)
		}
	}
	if running && inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	// Size and mode are locked while a run is active.
	if !running {
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			g.next.Mode = ToggleMode(g.next.Mode)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyEqual) || inpututil.IsKeyJustPressed(ebiten.KeyKPAdd) {
			g.next.GridSize = NextSize(g.next.GridSize, 8, minGridSize, maxGridSize)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyMinus) || inpututil.IsKeyJustPressed(ebiten.KeyKPSubtract) {
			g.next.GridSize = NextSize(g.next.GridSize, -8, minGridSize, maxGridSize)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.next, g.paused)

	if g.ctrl.State() == controller.Active && !g.paused {
		if _, err := g.ctrl.Tick(); err != nil {
			return err
		}
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.painter != nil {
		scale := float64(ViewSize) / float64(g.painter.Size())
		g.painter.Draw(screen, 0, 0, scale)
		g.overlay.Draw(screen, g.painter.Size(), scale)
	}
	g.hud.Draw(screen, ViewSize, ViewSize)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ViewSize + PanelWidth, ViewSize
}
