//go:build ebiten

package ui

import (
	"image/color"

	"conway/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var changeTint = color.RGBA{R: 255, G: 255, B: 255, A: 96}

// Overlay highlights the cells that changed in the last generation.
type Overlay struct {
	show    bool
	changed []core.Coordinate
	pixel   *ebiten.Image
}

// NewOverlay constructs a new overlay instance.
func NewOverlay() *Overlay {
	o := &Overlay{}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(changeTint)
	return o
}

// Record remembers the positions of the latest updates.
func (o *Overlay) Record(updates []core.CellUpdate) {
	o.changed = o.changed[:0]
	for _, u := range updates {
		o.changed = append(o.changed, u.Pos)
	}
}

// Reset forgets recorded changes.
func (o *Overlay) Reset() { o.changed = o.changed[:0] }

// Update toggles visibility.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		o.show = !o.show
	}
}

// Draw tints every changed cell of a size*size grid drawn at scale.
func (o *Overlay) Draw(screen *ebiten.Image, size int, scale float64) {
	if !o.show || size <= 0 {
		return
	}
	for _, pos := range o.changed {
		if pos.X >= size || pos.Y >= size {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Scale(scale, scale)
		op.GeoM.Translate(float64(pos.X)*scale, float64(pos.Y)*scale)
		screen.DrawImage(o.pixel, op)
	}
}
