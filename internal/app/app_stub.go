//go:build !ebiten

package app

import (
	"fmt"

	"conway/internal/controller"
	"conway/pkg/core"

	"github.com/charmbracelet/log"
)

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(*controller.Controller, core.Config, *log.Logger) *Game {
	panic("app.New requires building with the 'ebiten' tag")
}

// Start always reports that the GUI build tag is missing.
func (g *Game) Start() error {
	return fmt.Errorf("app.Game.Start requires building with the 'ebiten' tag")
}

// Stop is a no-op placeholder.
func (g *Game) Stop() {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error {
	return fmt.Errorf("app.Game.Update requires building with the 'ebiten' tag")
}

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
