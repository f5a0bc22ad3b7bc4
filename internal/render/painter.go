//go:build ebiten

package render

import (
	"conway/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads cell colours into a single image and draws it scaled.
type GridPainter struct {
	px  *Pixels
	img *ebiten.Image
}

// NewGridPainter allocates a painter for a size*size grid.
func NewGridPainter(size int) *GridPainter {
	if size < 1 {
		size = 1
	}
	return &GridPainter{px: NewPixels(size), img: ebiten.NewImage(size, size)}
}

// Size returns the grid side length the painter was built for.
func (gp *GridPainter) Size() int { return gp.px.Size() }

// Load replaces the whole image from colors.
func (gp *GridPainter) Load(colors []core.Color) {
	if gp.px.Load(colors) {
		gp.img.WritePixels(gp.px.Bytes())
	}
}

// Apply recolours only the cells that changed in the last generation.
func (gp *GridPainter) Apply(updates []core.CellUpdate) {
	if len(updates) == 0 {
		return
	}
	gp.px.Apply(updates)
	gp.img.WritePixels(gp.px.Bytes())
}

// Draw renders the grid at (x, y) with each cell scale pixels wide.
func (gp *GridPainter) Draw(dst *ebiten.Image, x, y, scale float64) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	dst.DrawImage(gp.img, op)
}
