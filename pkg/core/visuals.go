package core

// Visuals holds the colour attribute of every cell for renderers. The
// simulation writes it and never reads it back.
type Visuals struct {
	size   int
	colors []Color
}

// NewVisuals returns an empty attribute store.
func NewVisuals() *Visuals { return &Visuals{} }

// Resize allocates side*side colours, all zero.
func (v *Visuals) Resize(side int) {
	if side < 0 {
		side = 0
	}
	v.size = side
	v.colors = make([]Color, side*side)
}

// Release drops the backing storage.
func (v *Visuals) Release() {
	v.size = 0
	v.colors = nil
}

// Colors exposes the per-cell colours for direct writes at disjoint indices.
func (v *Visuals) Colors() []Color { return v.colors }

// At returns the colour of cell i.
func (v *Visuals) At(i int) Color { return v.colors[i] }

// Set writes the colour of cell i.
func (v *Visuals) Set(i int, c Color) { v.colors[i] = c }

// SetAt writes the colour of the cell at pos.
func (v *Visuals) SetAt(pos Coordinate, c Color) {
	v.colors[pos.Y*v.size+pos.X] = c
}

// Paint recolours every cell from states.
func (v *Visuals) Paint(states []bool, pal Palette) {
	for i, alive := range states {
		v.colors[i] = pal.For(alive)
	}
}
