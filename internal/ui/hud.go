//go:build ebiten

package ui

import (
	"image/color"

	"conway/internal/controller"
	"conway/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const (
	hudPadding    = 12
	hudLineHeight = 16
)

var (
	hudBackground = color.RGBA{R: 16, G: 16, B: 20, A: 230}
	hudText       = color.RGBA{R: 220, G: 220, B: 220, A: 255}
)

// HUD renders the status panel to the right of the simulation view.
type HUD struct {
	ctrl  *controller.Controller
	width int
	panel *ebiten.Image
	lines []string
}

// NewHUD constructs a HUD for the provided controller and panel width.
func NewHUD(ctrl *controller.Controller, width int) *HUD {
	if width < 0 {
		width = 0
	}
	return &HUD{ctrl: ctrl, width: width}
}

// Update refreshes the cached status text.
func (h *HUD) Update(next core.Config, paused bool) {
	if h == nil {
		return
	}
	h.lines = StatusLines(h.ctrl.Parameters(), h.ctrl.State(), next, paused)
}

// Draw paints the panel at offsetX with the given height.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, height int) {
	if h == nil || h.width == 0 || height <= 0 {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(hudBackground)
	y := hudPadding + hudLineHeight
	for _, line := range h.lines {
		if y > height-hudPadding {
			break
		}
		text.Draw(h.panel, line, basicfont.Face7x13, hudPadding, y, hudText)
		y += hudLineHeight
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}
