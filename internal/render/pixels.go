package render

import (
	"image/color"

	"conway/pkg/core"
)

// fillColorsRGBA converts per-cell colours into RGBA pixels in buf.
func fillColorsRGBA(buf []byte, colors []core.Color) {
	for i, c := range colors {
		putRGBA(buf[i*4:i*4+4], c)
	}
}

// applyUpdates recolours only the pixels of cells that changed.
func applyUpdates(buf []byte, size int, updates []core.CellUpdate) {
	for _, u := range updates {
		base := (u.Pos.Y*size + u.Pos.X) * 4
		putRGBA(buf[base:base+4], u.Color)
	}
}

func putRGBA(px []byte, c color.Color) {
	r, g, b, a := c.RGBA()
	px[0] = uint8(r >> 8)
	px[1] = uint8(g >> 8)
	px[2] = uint8(b >> 8)
	px[3] = uint8(a >> 8)
}

// Pixels keeps an RGBA buffer in sync with a grid's colours.
type Pixels struct {
	size int
	buf  []byte
}

// NewPixels allocates a buffer for a size*size grid.
func NewPixels(size int) *Pixels {
	if size < 0 {
		size = 0
	}
	return &Pixels{size: size, buf: make([]byte, 4*size*size)}
}

// Size returns the grid side length.
func (p *Pixels) Size() int { return p.size }

// Bytes exposes the RGBA buffer.
func (p *Pixels) Bytes() []byte { return p.buf }

// Load repaints every pixel from colors. Mismatched lengths are ignored.
func (p *Pixels) Load(colors []core.Color) bool {
	if len(colors) != p.size*p.size {
		return false
	}
	fillColorsRGBA(p.buf, colors)
	return true
}

// Apply repaints only the cells listed in updates.
func (p *Pixels) Apply(updates []core.CellUpdate) {
	applyUpdates(p.buf, p.size, updates)
}
